package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/errs"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/gemini"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/utils"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/prompt"
)

// 텍스트 응답이 비었을 때
const (
	FallbackContent     = "No content generated."
	FallbackAnalysis    = "No analysis generated."
	FallbackCraft       = "Failed to process request."
	FallbackDescription = "No description generated."
)

// 콜라주 이미지 개수
const (
	MinCollageImages = 2
	MaxCollageImages = 6
)

// Client - 호출 한 번 = GenerateContent 한 번. 재시도 없음
type Client struct {
	gen     gemini.ContentGenerator
	builder *prompt.Builder
	maxEdge int
	log     logger.Logger
}

// NewClient - 생성 클라이언트
func NewClient(gen gemini.ContentGenerator, builder *prompt.Builder, maxEdge int, log logger.Logger) *Client {
	return &Client{gen: gen, builder: builder, maxEdge: maxEdge, log: log}
}

// Do - 요청 형태에 따라 분기
func (c *Client) Do(ctx context.Context, req Request) (Output, error) {
	switch r := req.(type) {
	case SynthesizeRequest:
		url, err := c.Synthesize(ctx, r)
		return Output{ImageURL: url}, err
	case EditRequest:
		url, err := c.Edit(ctx, r)
		return Output{ImageURL: url}, err
	case CollageRequest:
		url, err := c.Collage(ctx, r)
		return Output{ImageURL: url}, err
	case SimplePostRequest:
		url, err := c.SimplePost(ctx, r)
		return Output{ImageURL: url}, err
	case TextRequest:
		text, err := c.GenerateText(ctx, r)
		return Output{Text: text}, err
	case AnalyzeRequest:
		text, err := c.Analyze(ctx, r)
		return Output{Text: text}, err
	case CraftRequest:
		text, err := c.CraftPrompt(ctx, r)
		return Output{Text: text}, err
	case DescribeRequest:
		text, err := c.DescribeImage(ctx, r)
		return Output{Text: text}, err
	default:
		return Output{}, errs.Preconditionf("generation.Do", "unsupported request type %T", req)
	}
}

// Synthesize - 텍스트(+참조 이미지)로 이미지 생성
func (c *Client) Synthesize(ctx context.Context, req SynthesizeRequest) (string, error) {
	const op = "generation.Synthesize"
	refs, err := c.prepareAttachments(ctx, op, req.ReferenceImages)
	if err != nil {
		return "", err
	}
	return c.generateImage(ctx, op, c.builder.Synthesize(req.Spec(), refs), "No image data found.")
}

// Edit - 원본 이미지 편집. 원본이 없으면 호출하지 않는다
func (c *Client) Edit(ctx context.Context, req EditRequest) (string, error) {
	const op = "generation.Edit"
	if strings.TrimSpace(req.SourceImage) == "" {
		return "", errs.Precondition(op, "Source image required.")
	}
	src, err := c.prepareOne(ctx, op, req.SourceImage)
	if err != nil {
		return "", err
	}
	spec := prompt.EditSpec{Prompt: req.Prompt, Mood: req.Mood, Size: req.Size}
	return c.generateImage(ctx, op, c.builder.Edit(spec, *src), "No image data found.")
}

// Collage - 2~6장의 이미지를 하나로
func (c *Client) Collage(ctx context.Context, req CollageRequest) (string, error) {
	const op = "generation.Collage"
	images, err := c.prepareAttachments(ctx, op, req.Images)
	if err != nil {
		return "", err
	}
	if len(images) < MinCollageImages {
		return "", errs.Preconditionf(op, "At least %d images are required for a collage.", MinCollageImages)
	}
	if len(images) > MaxCollageImages {
		return "", errs.Preconditionf(op, "A collage supports at most %d images.", MaxCollageImages)
	}
	spec := prompt.CollageSpec{Prompt: req.Prompt, Layout: req.Layout, Theme: req.Theme, Size: req.Size}
	return c.generateImage(ctx, op, c.builder.Collage(spec, images), "No collage data found.")
}

// SimplePost - 로고/배경 이미지가 있는 소셜 그래픽
func (c *Client) SimplePost(ctx context.Context, req SimplePostRequest) (string, error) {
	const op = "generation.SimplePost"
	logo, err := c.prepareOne(ctx, op, req.Logo)
	if err != nil {
		return "", err
	}
	bg, err := c.prepareOne(ctx, op, req.BgImage)
	if err != nil {
		return "", err
	}
	return c.generateImage(ctx, op, c.builder.SimplePost(req.Spec(), logo, bg), "No image data found.")
}

// GenerateText - 플랫폼용 글 작성
func (c *Client) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	const op = "generation.GenerateText"
	if strings.TrimSpace(req.Topic) == "" {
		return "", errs.Precondition(op, "Topic required.")
	}
	refs, err := c.prepareAttachments(ctx, op, req.ReferenceImages)
	if err != nil {
		return "", err
	}
	return c.generateText(ctx, op, c.builder.Text(req.Spec(), refs), FallbackContent)
}

// Analyze - 아트 디렉터 관점 리뷰
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (string, error) {
	const op = "generation.Analyze"
	if strings.TrimSpace(req.SourceImage) == "" {
		return "", errs.Precondition(op, "Source image required.")
	}
	src, err := c.prepareOne(ctx, op, req.SourceImage)
	if err != nil {
		return "", err
	}
	spec := prompt.AnalyzeSpec{Prompt: req.Prompt, Language: req.Language}
	return c.generateText(ctx, op, c.builder.Analyze(spec, *src), FallbackAnalysis)
}

// CraftPrompt - 초안(+이미지)을 페르소나로 다듬기
func (c *Client) CraftPrompt(ctx context.Context, req CraftRequest) (string, error) {
	const op = "generation.CraftPrompt"
	refs, err := c.prepareAttachments(ctx, op, req.ReferenceImages)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(req.Draft) == "" && len(refs) == 0 {
		return "", errs.Precondition(op, "Enter a draft or attach an image.")
	}
	return c.generateText(ctx, op, c.builder.Craft(req.Spec(), refs), FallbackCraft)
}

// DescribeImage - 이미지를 생성용 프롬프트로 설명
func (c *Client) DescribeImage(ctx context.Context, req DescribeRequest) (string, error) {
	const op = "generation.DescribeImage"
	if strings.TrimSpace(req.SourceImage) == "" {
		return "", errs.Precondition(op, "Source image required.")
	}
	src, err := c.prepareOne(ctx, op, req.SourceImage)
	if err != nil {
		return "", err
	}
	return c.generateText(ctx, op, c.builder.Describe(*src), FallbackDescription)
}

func (c *Client) generateImage(ctx context.Context, op string, p prompt.Payload, missing string) (string, error) {
	resp, err := c.call(ctx, op, p)
	if err != nil {
		return "", err
	}
	img, ok := firstInlineImage(resp)
	if !ok {
		c.log.Error().Str("op", op).Msg("❌ [Generation] No image in response")
		return "", errs.Boundary(op, errors.New(missing))
	}
	c.log.Info().Str("op", op).Int("bytes", len(img.Data)).Msg("✅ [Generation] Image received")
	return img.DataURI(), nil
}

func (c *Client) generateText(ctx context.Context, op string, p prompt.Payload, fallback string) (string, error) {
	resp, err := c.call(ctx, op, p)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		c.log.Warn().Str("op", op).Msg("⚠️ [Generation] Empty text response")
		return fallback, nil
	}
	c.log.Info().Str("op", op).Int("chars", len(text)).Msg("✅ [Generation] Text received")
	return text, nil
}

func (c *Client) call(ctx context.Context, op string, p prompt.Payload) (*genai.GenerateContentResponse, error) {
	contents, cfg := toContents(p)

	c.log.Info().
		Str("op", op).
		Str("model", p.Model).
		Int("attachments", len(p.Attachments)).
		Str("aspectRatio", p.AspectRatio).
		Msg("📤 [Generation] Sending request")

	resp, err := c.gen.GenerateContent(ctx, p.Model, contents, cfg)
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Msg("❌ [Generation] Provider call failed")
		return nil, errs.Boundary(op, err)
	}
	if resp == nil {
		return nil, errs.Boundary(op, fmt.Errorf("empty response from %s", p.Model))
	}
	return resp, nil
}

// toContents - 첨부 이미지가 먼저, 텍스트가 마지막
func toContents(p prompt.Payload) ([]*genai.Content, *genai.GenerateContentConfig) {
	parts := make([]*genai.Part, 0, len(p.Attachments)+1)
	for _, a := range p.Attachments {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: a.MIMEType, Data: a.Data},
		})
	}
	parts = append(parts, genai.NewPartFromText(p.Text))

	cfg := &genai.GenerateContentConfig{}
	if p.AspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: p.AspectRatio}
	}
	if p.Seed != nil {
		seed := *p.Seed
		cfg.Seed = &seed
	}
	if p.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.SystemInstruction, genai.RoleUser)
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg
}

// firstInlineImage - 첫 번째 후보의 첫 인라인 이미지
func firstInlineImage(resp *genai.GenerateContentResponse) (utils.InlineImage, bool) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return utils.InlineImage{}, false
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = utils.DefaultMIMEType
			}
			return utils.InlineImage{MIMEType: mimeType, Data: part.InlineData.Data}, true
		}
	}
	return utils.InlineImage{}, false
}
