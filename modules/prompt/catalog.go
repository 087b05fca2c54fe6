package prompt

// Choice - 화면 선택지 (label 은 표시용, value 가 프롬프트에 들어감)
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Template - 프롬프트 랩 페르소나 템플릿
type Template struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Instruction   string `json:"instruction"`
	DefaultTarget string `json:"defaultTarget"`
}

// Catalog - 워크스페이스 옵션 전체
type Catalog struct {
	Styles          map[string][]string `json:"styles"`
	ColorGrades     []Choice            `json:"colorGrades"`
	Lighting        []Choice            `json:"lighting"`
	Cameras         []Choice            `json:"cameras"`
	Lenses          []Choice            `json:"lenses"`
	Focus           []Choice            `json:"focus"`
	CollageLayouts  []Choice            `json:"collageLayouts"`
	PostThemes      []Choice            `json:"postThemes"`
	Personas        []string            `json:"personas"`
	Platforms       []string            `json:"platforms"`
	Tones           []string            `json:"tones"`
	Lengths         []string            `json:"lengths"`
	Complexities    []string            `json:"complexities"`
	PromptTemplates []Template          `json:"promptTemplates"`
}

// StyleHierarchy - 메인 스타일 → 서브 스타일
var StyleHierarchy = map[string][]string{
	"None":               {"None"},
	"Photography":        {"None", "Cinematic", "Portrait", "Macro", "Street Photography", "Bokeh", "Editorial"},
	"Digital Art":        {"None", "Digital Painting", "Concept Art", "Matte Painting", "Vector Art", "Low-poly"},
	"Fine Art":           {"None", "Oil Painting", "Acrylic", "Watercolor", "Pencil Sketch", "Charcoal", "Impressionism", "Abstract"},
	"Illustration":       {"None", "Children’s Book", "Comic Book", "Graphic Novel", "Line Art", "Botantical"},
	"3D & Render":        {"None", "Unreal Engine 5", "Octane Render", "Isometric 3D", "Hyper-realistic", "Claymorphism"},
	"Anime & Manga":      {"None", "Anime", "Manga", "Studio Ghibli Style", "Chibi"},
	"Vintage & Retro":    {"None", "1980s Synthwave", "1950s Poster", "Noir", "Vaporwave", "Pixel Art"},
	"Design & Corporate": {"None", "Minimalist", "Flat Design", "Corporate Memphis", "UI/UX Mockup", "Architectural"},
	"Atmospheric":        {"None", "Ethereal", "Dark Fantasy", "Cyberpunk", "Steampunk", "Surrealism"},
}

var ColorGrades = []Choice{
	{"None", "None"},
	{"Vibrant", "Vibrant"},
	{"Muted", "Muted"},
	{"Warm", "Warm"},
	{"Cool", "Cool"},
	{"Sepia", "Sepia"},
	{"Black & White", "Black & White"},
	{"Teal & Orange", "Teal & Orange"},
	{"Technicolor", "Technicolor"},
	{"Kodak Portra", "Kodak Portra"},
	{"Fujifilm Pro", "Fujifilm Pro"},
}

var Lighting = []Choice{
	{"Natural", "Natural"},
	{"Studio Soft Light", "Studio Soft Light"},
	{"Cinematic Soft Light", "Cinematic Soft Light"},
	{"Rembrandt", "Strong Contrast"},
	{"Golden Hour", "Warm Golden Light"},
	{"Neon Accent", "Glow / Neon Accent Light"},
	{"Moonlight", "Soft Moonlight"},
	{"Flash Photography", "Harsh Flash"},
}

var Cameras = []Choice{
	{"None", "None"},
	{"Eye Level", "Eye Level"},
	{"Low Angle", "Low Angle"},
	{"High Angle", "High Angle"},
	{"Bird's Eye View", "Bird's Eye View"},
	{"Drone / Aerial", "Aerial Shot"},
	{"Dutch Angle", "Dutch Angle"},
	{"Extreme Close Up", "Extreme Close Up"},
}

var Lenses = []Choice{
	{"None", "None"},
	{"35mm Wide", "35mm Lens"},
	{"50mm Prime", "50mm Prime Lens"},
	{"85mm Portrait", "85mm Portrait Lens"},
	{"Telephoto", "Telephoto Lens"},
	{"Wide Angle", "Wide Angle Lens"},
	{"Fish Eye", "Fish Eye Lens"},
	{"Anamorphic", "Anamorphic Lens"},
}

var Focus = []Choice{
	{"None", "None"},
	{"Deep Focus", "Deep Focus"},
	{"Shallow Focus", "Shallow Focus (Bokeh)"},
	{"Sharp Focus", "Sharp Focus"},
	{"Soft Focus", "Soft Focus"},
	{"Motion Blur", "Motion Blur"},
}

var CollageLayouts = []Choice{
	{"Balanced Grid", "Balanced Grid"},
	{"Vertical Stack", "Vertical Stack"},
	{"Horizontal Stack", "Horizontal Stack"},
	{"Creative Grid", "Creative Grid"},
	{"Asymmetric Mix", "Asymmetric Mix"},
	{"Overlap Collage", "Overlap Collage"},
	{"Circular Radial", "Circular Radial"},
}

var PostThemes = []Choice{
	{"Clean Minimalist", "Clean Minimalist"},
	{"Modern Corporate", "Modern Corporate"},
	{"Luxury & Gold", "Luxury & Gold"},
	{"Bold Typography", "Bold Typography"},
	{"Pastel Dream", "Pastel Dream"},
	{"Cyberpunk Industrial", "Cyberpunk Industrial"},
	{"Nature Inspired", "Nature Inspired"},
	{"Abstract Geometric", "Abstract Geometric"},
	{"Street Style", "Street Style"},
}

var Personas = []string{"General", "Tech Expert", "Fitness Guru", "Business Consultant", "Creative Writer", "Digital Marketer", "Influencer", "Academic"}

var Platforms = []string{"Facebook", "Instagram", "Twitter/X", "LinkedIn", "Blog Post", "Email", "YouTube", "TikTok"}

var Tones = []string{"Professional", "Casual", "Witty", "Urgent", "Empathetic", "Educational", "Inspiring"}

var Lengths = []string{"Short", "Medium", "Long"}

var Complexities = []string{"Concise", "Detailed", "Chain of Thought"}

// PromptTemplates - 프롬프트 랩 템플릿
var PromptTemplates = []Template{
	{ID: "promptWriter", Label: "Prompt Architect", Instruction: "Expert Prompt Architect persona. Turn rough ideas into precise, well-structured prompts with clear roles, context, constraints and output format.", DefaultTarget: "text"},
	{ID: "code", Label: "Code Refactor", Instruction: "You are a Clean Code expert. Your task is to refactor the provided code to be more readable, efficient, and maintainable. Follow SOLID principles and explain your changes.", DefaultTarget: "text"},
	{ID: "linguist", Label: "Linguist", Instruction: "You are a professional linguist and translator. Your goal is to translate text preserving the original tone, cultural nuances, and idioms. Do not translate literally if it loses meaning; translate for the target audience.", DefaultTarget: "text"},
	{ID: "writer", Label: "Creative Writer", Instruction: "You are a bestselling creative fiction writer. Write with evocative language, strong sensory details, and deep character psychology. Show, don't tell.", DefaultTarget: "text"},
	{ID: "midjourney", Label: "Midjourney Photographer", Instruction: "Act as a professional photographer using a high-end camera. Focus on lighting, composition, camera lens specifications, and hyper-realistic details. Keywords: 8k, photorealistic, cinematic lighting.", DefaultTarget: "image"},
	{ID: "marketing", Label: "Marketing Copywriter", Instruction: "You are a world-class copywriter. Write persuasive, high-converting copy that addresses pain points and desires. Use psychological triggers like urgency and social proof.", DefaultTarget: "text"},
}

// FindTemplate - ID 로 템플릿 찾기
func FindTemplate(id string) (Template, bool) {
	for _, t := range PromptTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// DefaultCatalog - 카탈로그 엔드포인트 응답
func DefaultCatalog() Catalog {
	return Catalog{
		Styles:          StyleHierarchy,
		ColorGrades:     ColorGrades,
		Lighting:        Lighting,
		Cameras:         Cameras,
		Lenses:          Lenses,
		Focus:           Focus,
		CollageLayouts:  CollageLayouts,
		PostThemes:      PostThemes,
		Personas:        Personas,
		Platforms:       Platforms,
		Tones:           Tones,
		Lengths:         Lengths,
		Complexities:    Complexities,
		PromptTemplates: PromptTemplates,
	}
}
