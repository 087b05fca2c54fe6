package generation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/i18n"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/prompt"
)

// Action - 워크스페이스에서 실행하는 작업
type Action string

const (
	ActionGenerate Action = "generate"
	ActionEdit     Action = "edit"
	ActionCollage  Action = "collage"
	ActionPost     Action = "post"
	ActionAnalyze  Action = "analyze"
	ActionDescribe Action = "describe"
	ActionContent  Action = "content"
	ActionCraft    Action = "craft"
)

// Workspace - 작업이 속한 워크스페이스
func (a Action) Workspace() model.Workspace {
	switch a {
	case ActionContent:
		return model.WorkspaceContent
	case ActionCraft:
		return model.WorkspacePrompt
	default:
		return model.WorkspaceGraphic
	}
}

// Output - 생성 결과. ImageURL 또는 Text 중 하나만 채워진다
type Output struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Result - 워크스페이스 결과로 변환
func (o Output) Result() model.GeneratedResult {
	return model.GeneratedResult{ImageURL: o.ImageURL, Text: o.Text}
}

// Request - 호출 형태별 요청 (tagged union)
type Request interface {
	Action() Action
	// History - 성공 시 남길 히스토리 항목. false 면 기록하지 않음
	History(out Output) (model.NewHistoryItem, bool)
}

// SynthesizeRequest - 이미지 생성
type SynthesizeRequest struct {
	Prompt          string                `json:"prompt"`
	MainStyle       prompt.Option[string] `json:"mainStyle"`
	SubStyle        prompt.Option[string] `json:"subStyle"`
	Mood            prompt.Option[string] `json:"mood"`
	Lighting        prompt.Option[string] `json:"lighting"`
	Camera          prompt.Option[string] `json:"camera"`
	Lens            prompt.Option[string] `json:"lens"`
	Focus           prompt.Option[string] `json:"focus"`
	ColorGrade      prompt.Option[string] `json:"colorGrade"`
	NegativePrompt  prompt.Option[string] `json:"negativePrompt"`
	Seed            string                `json:"seed"`
	Size            string                `json:"size"`
	ReferenceImages []string              `json:"referenceImages"`
}

func (SynthesizeRequest) Action() Action { return ActionGenerate }

func (r SynthesizeRequest) History(out Output) (model.NewHistoryItem, bool) {
	return model.NewHistoryItem{Type: model.TypeImage, Prompt: r.Prompt, Result: out.ImageURL}, true
}

// Spec - 빌더 입력으로 변환
func (r SynthesizeRequest) Spec() prompt.ImageSpec {
	return prompt.ImageSpec{
		Prompt:         r.Prompt,
		Style:          prompt.StyleOf(r.MainStyle, r.SubStyle),
		Mood:           r.Mood,
		Lighting:       r.Lighting,
		Camera:         prompt.CameraOf(r.Camera, r.Lens, r.Focus),
		ColorGrade:     r.ColorGrade,
		NegativePrompt: r.NegativePrompt,
		Seed:           parseSeed(r.Seed),
		Size:           r.Size,
	}
}

// 숫자가 아니면 시드 미지정
func parseSeed(s string) prompt.Option[int32] {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return prompt.None[int32]()
	}
	return prompt.Some(int32(n))
}

// EditRequest - 이미지 편집
type EditRequest struct {
	SourceImage string                `json:"sourceImage"`
	Prompt      string                `json:"prompt"`
	Mood        prompt.Option[string] `json:"mood"`
	Size        string                `json:"size"`
}

func (EditRequest) Action() Action { return ActionEdit }

func (r EditRequest) History(out Output) (model.NewHistoryItem, bool) {
	return model.NewHistoryItem{Type: model.TypeImage, Prompt: r.Prompt, Result: out.ImageURL}, true
}

// CollageRequest - 콜라주
type CollageRequest struct {
	Images []string `json:"images"`
	Prompt string   `json:"prompt"`
	Layout string   `json:"layout"`
	Theme  string   `json:"theme"`
	Size   string   `json:"size"`
}

func (CollageRequest) Action() Action { return ActionCollage }

func (r CollageRequest) History(out Output) (model.NewHistoryItem, bool) {
	return model.NewHistoryItem{Type: model.TypeImage, Prompt: "Collage: " + r.Layout, Result: out.ImageURL}, true
}

// SimplePostRequest - 심플 소셜 포스트
type SimplePostRequest struct {
	Logo     string                `json:"logo"`
	BgImage  string                `json:"bgImage"`
	Headline string                `json:"headline"`
	Tagline  string                `json:"tagline"`
	Content  string                `json:"content"`
	Address  prompt.Option[string] `json:"address"`
	Theme    prompt.Option[string] `json:"theme"`
	CTAs     []prompt.CTA          `json:"ctas"`
	Size     string                `json:"size"`
}

func (SimplePostRequest) Action() Action { return ActionPost }

func (r SimplePostRequest) History(out Output) (model.NewHistoryItem, bool) {
	label := r.Headline
	if strings.TrimSpace(label) == "" {
		label = r.Address.OrElse("")
	}
	return model.NewHistoryItem{Type: model.TypeImage, Prompt: "Post: " + label, Result: out.ImageURL}, true
}

func (r SimplePostRequest) Spec() prompt.PostSpec {
	return prompt.PostSpec{
		Headline: r.Headline,
		Tagline:  r.Tagline,
		Content:  r.Content,
		Address:  r.Address,
		Theme:    r.Theme,
		CTAs:     r.CTAs,
		Size:     r.Size,
	}
}

// TextRequest - 콘텐츠 스튜디오
type TextRequest struct {
	PageName          prompt.Option[string] `json:"pageName"`
	CreatorPersona    string                `json:"creatorPersona"`
	Topic             string                `json:"topic"`
	Platform          string                `json:"platform"`
	TargetAudience    prompt.Option[string] `json:"targetAudience"`
	Tone              string                `json:"tone"`
	Length            string                `json:"length"`
	UseEmojis         bool                  `json:"useEmojis"`
	ReferenceURLs     []string              `json:"referenceUrls"`
	ReferenceImages   []string              `json:"referenceImages"`
	AdditionalContext prompt.Option[string] `json:"additionalContext"`
	Language          i18n.Language         `json:"-"`
}

func (TextRequest) Action() Action { return ActionContent }

func (r TextRequest) History(out Output) (model.NewHistoryItem, bool) {
	return model.NewHistoryItem{
		Type:   model.TypeText,
		Prompt: fmt.Sprintf("%s: %s...", r.Platform, truncate(r.Topic, 30)),
		Result: out.Text,
	}, true
}

func (r TextRequest) Spec() prompt.TextSpec {
	return prompt.TextSpec{
		PageName:          r.PageName,
		Persona:           r.CreatorPersona,
		Topic:             r.Topic,
		Platform:          r.Platform,
		TargetAudience:    r.TargetAudience,
		Tone:              r.Tone,
		Length:            r.Length,
		UseEmojis:         r.UseEmojis,
		ReferenceURLs:     r.ReferenceURLs,
		AdditionalContext: r.AdditionalContext,
		Language:          r.Language,
	}
}

// AnalyzeRequest - 이미지 분석
type AnalyzeRequest struct {
	SourceImage string        `json:"sourceImage"`
	Prompt      string        `json:"prompt"`
	Language    i18n.Language `json:"-"`
}

func (AnalyzeRequest) Action() Action { return ActionAnalyze }

func (r AnalyzeRequest) History(out Output) (model.NewHistoryItem, bool) {
	return model.NewHistoryItem{Type: model.TypeAnalysis, Prompt: "Analysis", Result: out.Text}, true
}

// CraftRequest - 프롬프트 랩
type CraftRequest struct {
	Draft             string                `json:"draft"`
	Complexity        string                `json:"complexity"`
	SystemInstruction prompt.Option[string] `json:"systemInstruction"`
	SelectedTemplate  string                `json:"selectedTemplate"`
	Target            string                `json:"target"`
	ReferenceImages   []string              `json:"referenceImages"`
}

func (CraftRequest) Action() Action { return ActionCraft }

func (r CraftRequest) History(out Output) (model.NewHistoryItem, bool) {
	label := r.SelectedTemplate
	if strings.TrimSpace(label) == "" {
		label = "Custom"
	}
	return model.NewHistoryItem{Type: model.TypeText, Prompt: "Lab: " + label, Result: out.Text}, true
}

// Spec - 템플릿이 선택되어 있고 지시문이 비어 있으면 템플릿 지시문 사용
func (r CraftRequest) Spec() prompt.CraftSpec {
	spec := prompt.CraftSpec{
		Draft:       r.Draft,
		Target:      r.Target,
		Complexity:  r.Complexity,
		Instruction: r.SystemInstruction,
	}
	if tpl, ok := prompt.FindTemplate(r.SelectedTemplate); ok {
		if !spec.Instruction.IsSet() {
			spec.Instruction = prompt.Text(tpl.Instruction)
		}
		if spec.Target == "" {
			spec.Target = tpl.DefaultTarget
		}
	}
	return spec
}

// DescribeRequest - 이미지 → 프롬프트. 히스토리에 남기지 않음
type DescribeRequest struct {
	SourceImage string `json:"sourceImage"`
}

func (DescribeRequest) Action() Action { return ActionDescribe }

func (DescribeRequest) History(Output) (model.NewHistoryItem, bool) {
	return model.NewHistoryItem{}, false
}

// 룬 단위로 자른다
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
