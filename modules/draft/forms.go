package draft

import (
	"github.com/jElioSpace/Lumina-AI-Studio/modules/prompt"
)

// Graphic - 이미지 스튜디오 폼 (lumina_graphic_state)
type Graphic struct {
	GenPrompt         string       `json:"genPrompt"`
	GenMainStyle      string       `json:"genMainStyle"`
	GenSubStyle       string       `json:"genSubStyle"`
	GenMood           string       `json:"genMood"`
	GenLighting       string       `json:"genLighting"`
	GenCamera         string       `json:"genCamera"`
	GenLens           string       `json:"genLens"`
	GenFocus          string       `json:"genFocus"`
	GenColor          string       `json:"genColor"`
	GenNegativePrompt string       `json:"genNegativePrompt"`
	GenSeed           string       `json:"genSeed"`
	GenSize           string       `json:"genSize"`
	ReferenceImages   []string     `json:"referenceImages"`
	SimpleLogo        *string      `json:"simpleLogo"`
	SimpleBgImage     *string      `json:"simpleBgImage"`
	SimpleHeadline    string       `json:"simpleHeadline"`
	SimpleTagline     string       `json:"simpleTagline"`
	SimpleContent     string       `json:"simpleContent"`
	SimpleAddress     string       `json:"simpleAddress"`
	SimplePostTheme   string       `json:"simplePostTheme"`
	SimpleCtas        []prompt.CTA `json:"simpleCtas"`
	SourceImage       *string      `json:"sourceImage"`
	EditPrompt        string       `json:"editPrompt"`
	EditMood          string       `json:"editMood"`
	EditSize          string       `json:"editSize"`
	AnalyzePrompt     string       `json:"analyzePrompt"`
	ActiveTab         string       `json:"activeTab"`
}

func DefaultGraphic() Graphic {
	return Graphic{
		GenMainStyle:    "None",
		GenSubStyle:     "None",
		GenMood:         "None",
		GenLighting:     "Natural",
		GenCamera:       "None",
		GenLens:         "None",
		GenFocus:        "None",
		GenColor:        "None",
		GenSize:         "16:9",
		ReferenceImages: []string{},
		SimplePostTheme: "Clean Minimalist",
		SimpleCtas:      []prompt.CTA{{Type: prompt.CTAPhone, Value: ""}},
		EditMood:        "None",
		EditSize:        "original",
		ActiveTab:       "generate",
	}
}

func (g *Graphic) Normalize() {
	def := DefaultGraphic()
	orDefault(&g.GenMainStyle, def.GenMainStyle)
	orDefault(&g.GenSubStyle, def.GenSubStyle)
	orDefault(&g.GenMood, def.GenMood)
	orDefault(&g.GenLighting, def.GenLighting)
	orDefault(&g.GenCamera, def.GenCamera)
	orDefault(&g.GenLens, def.GenLens)
	orDefault(&g.GenFocus, def.GenFocus)
	orDefault(&g.GenColor, def.GenColor)
	orDefault(&g.GenSize, def.GenSize)
	orDefault(&g.SimplePostTheme, def.SimplePostTheme)
	orDefault(&g.EditMood, def.EditMood)
	orDefault(&g.EditSize, def.EditSize)
	orDefault(&g.ActiveTab, def.ActiveTab)
	if g.ReferenceImages == nil {
		g.ReferenceImages = []string{}
	}
	if len(g.SimpleCtas) == 0 {
		g.SimpleCtas = def.SimpleCtas
	}
}

// Content - 콘텐츠 스튜디오 폼 (lumina_content_state)
type Content struct {
	PageName          string   `json:"pageName"`
	CreatorPersona    string   `json:"creatorPersona"`
	Topic             string   `json:"topic"`
	Platform          string   `json:"platform"`
	TargetAudience    string   `json:"targetAudience"`
	Tone              string   `json:"tone"`
	Length            string   `json:"length"`
	UseEmojis         bool     `json:"useEmojis"`
	ReferenceURLs     []string `json:"referenceUrls"`
	ReferenceImages   []string `json:"referenceImages"`
	AdditionalContext string   `json:"additionalContext"`
}

func DefaultContent() Content {
	return Content{
		CreatorPersona:  "General",
		Platform:        "Facebook",
		Tone:            "Professional",
		Length:          "Medium",
		UseEmojis:       true,
		ReferenceURLs:   []string{},
		ReferenceImages: []string{},
	}
}

func (c *Content) Normalize() {
	def := DefaultContent()
	orDefault(&c.CreatorPersona, def.CreatorPersona)
	orDefault(&c.Platform, def.Platform)
	orDefault(&c.Tone, def.Tone)
	orDefault(&c.Length, def.Length)
	if c.ReferenceURLs == nil {
		c.ReferenceURLs = []string{}
	}
	if c.ReferenceImages == nil {
		c.ReferenceImages = []string{}
	}
}

// Prompt - 프롬프트 랩 폼 (lumina_prompt_state)
type Prompt struct {
	Draft             string `json:"draft"`
	Complexity        string `json:"complexity"`
	SystemInstruction string `json:"systemInstruction"`
	SelectedTemplate  string `json:"selectedTemplate"`
}

func DefaultPrompt() Prompt {
	return Prompt{Complexity: "Detailed"}
}

func (p *Prompt) Normalize() {
	orDefault(&p.Complexity, "Detailed")
}
