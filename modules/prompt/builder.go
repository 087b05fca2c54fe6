package prompt

import (
	"fmt"
	"strings"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/i18n"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/utils"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/sizing"
)

// ReferenceDirective - 참조 이미지가 있을 때 프롬프트 앞에 붙는 지시문
const ReferenceDirective = "[System Instruction: Replicate the composition and layout of reference images.] "

// Attachment - 인라인 이미지
type Attachment = utils.InlineImage

// Payload - 모델 호출 한 번에 필요한 모든 것
type Payload struct {
	Model             string
	Text              string
	SystemInstruction string
	Attachments       []Attachment
	AspectRatio       string // 비어 있으면 imageConfig 생략
	Seed              *int32
}

// Models - 용도별 모델명
type Models struct {
	Image     string
	Text      string
	Reasoning string
}

// Builder - 구조화된 입력을 요청 페이로드로 바꾼다. 부수효과 없음
type Builder struct {
	models Models
}

func NewBuilder(models Models) *Builder {
	return &Builder{models: models}
}

// Models - 설정된 모델명
func (b *Builder) Models() Models {
	return b.models
}

// ImageSpec - 이미지 생성 입력
type ImageSpec struct {
	Prompt         string
	Style          Option[string]
	Mood           Option[string]
	Lighting       Option[string]
	Camera         Option[string]
	ColorGrade     Option[string]
	NegativePrompt Option[string]
	Seed           Option[int32]
	Size           string
}

// StyleOf - 메인/서브 스타일 조합
func StyleOf(main, sub Option[string]) Option[string] {
	m, ok := main.Get()
	if !ok {
		return None[string]()
	}
	if s, ok := sub.Get(); ok {
		return Text(m + " - " + s)
	}
	return Text(m)
}

// CameraOf - 카메라 앵글, 렌즈, 포커스를 하나의 설명으로
func CameraOf(camera, lens, focus Option[string]) Option[string] {
	var parts []string
	for _, o := range []Option[string]{camera, lens, focus} {
		if v, ok := o.Get(); ok {
			parts = append(parts, v)
		}
	}
	return Text(strings.Join(parts, ", "))
}

// ComposeImagePrompt - 고정 순서로 설명을 이어 붙인 최종 프롬프트
func ComposeImagePrompt(spec ImageSpec, hasReferences bool) string {
	var sb strings.Builder
	if hasReferences {
		sb.WriteString(ReferenceDirective)
	}
	sb.WriteString(spec.Prompt)

	appendLabeled(&sb, "Style", spec.Style)
	appendLabeled(&sb, "Mood", spec.Mood)
	appendLabeled(&sb, "Lighting", spec.Lighting)
	appendLabeled(&sb, "View/Camera", spec.Camera)
	appendLabeled(&sb, "Color Grade", spec.ColorGrade)
	sb.WriteString(sizing.Resolve(spec.Size).Suffix)
	appendLabeled(&sb, "Exclude", spec.NegativePrompt)

	return sb.String()
}

func appendLabeled(sb *strings.Builder, label string, o Option[string]) {
	if v, ok := o.Get(); ok {
		sb.WriteString(", ")
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(v)
	}
}

// Synthesize - 이미지 생성 페이로드. 참조 이미지가 먼저, 텍스트가 마지막
func (b *Builder) Synthesize(spec ImageSpec, references []Attachment) Payload {
	p := Payload{
		Model:       b.models.Image,
		Text:        ComposeImagePrompt(spec, len(references) > 0),
		Attachments: references,
		AspectRatio: sizing.Resolve(spec.Size).RatioOrSquare(),
	}
	if seed, ok := spec.Seed.Get(); ok {
		p.Seed = &seed
	}
	return p
}

// EditSpec - 이미지 편집 입력
type EditSpec struct {
	Prompt string
	Mood   Option[string]
	Size   string
}

// Edit - 원본 이미지 + 지시문. 비율은 매핑될 때만 지정
func (b *Builder) Edit(spec EditSpec, source Attachment) Payload {
	res := sizing.Resolve(spec.Size)

	var sb strings.Builder
	sb.WriteString(spec.Prompt)
	appendLabeled(&sb, "Mood", spec.Mood)
	sb.WriteString(res.Suffix)

	return Payload{
		Model:       b.models.Image,
		Text:        sb.String(),
		Attachments: []Attachment{source},
		AspectRatio: res.AspectRatio,
	}
}

// CollageSpec - 콜라주 입력
type CollageSpec struct {
	Prompt string
	Layout string
	Theme  string
	Size   string
}

// Collage - 여러 이미지를 하나의 콜라주로
func (b *Builder) Collage(spec CollageSpec, images []Attachment) Payload {
	instructions := strings.TrimSpace(spec.Prompt)
	if instructions == "" {
		instructions = "Arrange these images beautifully."
	}
	text := strings.Join([]string{
		"Create a professional photo collage using the provided images.",
		fmt.Sprintf("Layout Style: %s.", spec.Layout),
		fmt.Sprintf("Background Theme: %s.", spec.Theme),
		"User Instructions: " + instructions,
		"Ensure high-end composition, professional spacing, and a cohesive aesthetic.",
	}, "\n")

	return Payload{
		Model:       b.models.Image,
		Text:        text,
		Attachments: images,
		AspectRatio: sizing.Resolve(spec.Size).RatioOrSquare(),
	}
}

// CTAType - 연락처 종류
type CTAType string

const (
	CTAPhone CTAType = "phone"
	CTAEmail CTAType = "email"
)

// CTA - 포스트 하단 연락처
type CTA struct {
	Type  CTAType `json:"type"`
	Value string  `json:"value"`
}

// FormatCTAs - 비어 있지 않은 연락처만 이모지와 함께, 공백 두 칸으로 연결
func FormatCTAs(ctas []CTA) string {
	var out []string
	for _, cta := range ctas {
		v := strings.TrimSpace(cta.Value)
		if v == "" {
			continue
		}
		emoji := "📧"
		if cta.Type == CTAPhone {
			emoji = "📞"
		}
		out = append(out, emoji+" "+cta.Value)
	}
	return strings.Join(out, "  ")
}

// PostSpec - 심플 소셜 포스트 입력
type PostSpec struct {
	Headline string
	Tagline  string
	Content  string
	Address  Option[string]
	Theme    Option[string]
	CTAs     []CTA
	Size     string
}

// SimplePost - 로고(있으면 먼저), 배경 이미지, 텍스트 순서
func (b *Builder) SimplePost(spec PostSpec, logo, background *Attachment) Payload {
	lines := []string{
		"Create a professional, high-end social media graphic for a modern brand.",
		"Composition Rules:",
		"- Balanced layout, premium design aesthetic.",
		"- Typography must be highly legible, clean, and elegant.",
		"- If a logo is provided, place it prominently (e.g. top corner) and use complementary colors.",
	}
	if background != nil {
		lines = append(lines, "- Use the provided background image as the backdrop of the design.")
	}
	lines = append(lines,
		"",
		"Content to include exactly in the graphic design:",
		fmt.Sprintf("Headline: \"%s\"", spec.Headline),
		fmt.Sprintf("Tagline: \"%s\"", spec.Tagline),
		fmt.Sprintf("Body Content: \"%s\"", spec.Content),
	)
	if addr, ok := spec.Address.Get(); ok {
		lines = append(lines, fmt.Sprintf("Address: \"%s\"", addr))
	}
	lines = append(lines, fmt.Sprintf("Call to Action / Contact Information: \"%s\"", FormatCTAs(spec.CTAs)), "")
	if theme, ok := spec.Theme.Get(); ok {
		lines = append(lines, "Visual Theme: "+theme+".")
	}
	lines = append(lines, "Background Style: Minimalist, sophisticated workspace or architectural abstract, matching a high-end corporate or lifestyle brand.")

	var attachments []Attachment
	if logo != nil {
		attachments = append(attachments, *logo)
	}
	if background != nil {
		attachments = append(attachments, *background)
	}

	return Payload{
		Model:       b.models.Image,
		Text:        strings.Join(lines, "\n"),
		Attachments: attachments,
		AspectRatio: sizing.Resolve(spec.Size).RatioOrSquare(),
	}
}

// TextSpec - 콘텐츠 스튜디오 입력
type TextSpec struct {
	PageName          Option[string]
	Persona           string
	Topic             string
	Platform          string
	TargetAudience    Option[string]
	Tone              string
	Length            string
	UseEmojis         bool
	ReferenceURLs     []string
	AdditionalContext Option[string]
	Language          i18n.Language
}

// Text - 페르소나 시스템 지시문 + 주제
func (b *Builder) Text(spec TextSpec, references []Attachment) Payload {
	emojis := "No"
	if spec.UseEmojis {
		emojis = "Yes"
	}
	system := fmt.Sprintf(
		"You are an expert Content Creator acting as: %s. Goal: High-quality content for %s. Tone: %s. Length: %s. Emojis: %s. Language: %s. Return clean Markdown.",
		spec.Persona, spec.Platform, spec.Tone, spec.Length, emojis, spec.Language.OrDefault().DisplayName(),
	)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Write content about: \"%s\".\n\n", spec.Topic)
	if v, ok := spec.AdditionalContext.Get(); ok {
		fmt.Fprintf(&sb, "Context: %s\n\n", v)
	}
	if v, ok := spec.PageName.Get(); ok {
		fmt.Fprintf(&sb, "Page / Brand: %s\n\n", v)
	}
	if v, ok := spec.TargetAudience.Get(); ok {
		fmt.Fprintf(&sb, "Target Audience: %s\n\n", v)
	}
	var urls []string
	for _, u := range spec.ReferenceURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) > 0 {
		fmt.Fprintf(&sb, "Reference links: %s\n\n", strings.Join(urls, ", "))
	}

	return Payload{
		Model:             b.models.Text,
		Text:              sb.String(),
		SystemInstruction: system,
		Attachments:       references,
	}
}

// AnalyzeSpec - 이미지 분석 입력
type AnalyzeSpec struct {
	Prompt   string
	Language i18n.Language
}

// Analyze - 아트 디렉터 리뷰
func (b *Builder) Analyze(spec AnalyzeSpec, source Attachment) Payload {
	languageInstruction := ""
	if spec.Language == i18n.Myanmar {
		languageInstruction = "Provide response in Myanmar language."
	}
	focus := strings.TrimSpace(spec.Prompt)
	if focus == "" {
		focus = "General Analysis"
	}
	text := fmt.Sprintf(
		"Act as a senior Art Director. Review this image. %s Structure: 1. Executive Summary, 2. Good Points, 3. Points to Fix. User Context: %s",
		languageInstruction, focus,
	)
	return Payload{
		Model:       b.models.Text,
		Text:        text,
		Attachments: []Attachment{source},
	}
}

// CraftSpec - 프롬프트 랩 입력
type CraftSpec struct {
	Draft       string
	Target      string // image 또는 text
	Complexity  string
	Instruction Option[string]
}

// Craft - 페르소나 기반 프롬프트 다듬기
func (b *Builder) Craft(spec CraftSpec, references []Attachment) Payload {
	persona := spec.Instruction.OrElse("General Assistant")
	complexity := spec.Complexity
	if strings.TrimSpace(complexity) == "" {
		complexity = "Detailed"
	}

	system := strings.Join([]string{
		fmt.Sprintf("You are a professional assistant specialized as per the following persona: \"%s\".", persona),
		"",
		"**Your Mission**:",
		`1. If the input is code and your persona is an expert (like "Code Refactoring Expert"), REFACTOR the code directly. Provide a complete, clean, and commented solution.`,
		`2. If the persona is "Midjourney Photographer" or similar, brainstorm and provide high-quality image prompts based on the user's idea.`,
		"3. If the input is a general request, act as the persona to provide the best possible output (copywriting, analysis, etc.).",
		"",
		fmt.Sprintf("**Complexity**: %s.", complexity),
		`- If "Concise", be direct.`,
		`- If "Detailed", provide thorough explanations or highly descriptive prompts.`,
		`- If "Chain of Thought", think through the problem out loud before providing the final result.`,
		"",
		"Always return clean, professional output.",
	}, "\n")
	if spec.Target == "image" {
		system += "\nThe output will be used as an image-generation prompt."
	}

	return Payload{
		Model:             b.models.Reasoning,
		Text:              fmt.Sprintf("User Input: \"%s\"", spec.Draft),
		SystemInstruction: system,
		Attachments:       references,
	}
}

// Describe - 이미지를 보고 이미지 생성용 프롬프트를 작성
func (b *Builder) Describe(source Attachment) Payload {
	return Payload{
		Model: b.models.Text,
		Text: "Describe this image as a detailed prompt for an image-generation model. " +
			"Cover subject, composition, style, lighting, camera angle and color palette in one paragraph. " +
			"Return only the prompt.",
		Attachments: []Attachment{source},
	}
}
