package model

// ItemType - 히스토리 항목 종류
type ItemType string

const (
	TypeImage    ItemType = "image"
	TypeText     ItemType = "text"
	TypeAnalysis ItemType = "analysis"
)

// Valid - 알려진 종류인지 확인
func (t ItemType) Valid() bool {
	switch t {
	case TypeImage, TypeText, TypeAnalysis:
		return true
	}
	return false
}

// HistoryItem - 생성 결과 기록 (생성 후 변경되지 않음)
type HistoryItem struct {
	ID        string   `json:"id"`
	Type      ItemType `json:"type"`
	Prompt    string   `json:"prompt"`
	Result    string   `json:"result"`    // 이미지는 data URI, 텍스트/분석은 본문
	Timestamp int64    `json:"timestamp"` // epoch millis
}

// NewHistoryItem - append 입력 (id, timestamp는 저장 시점에 부여)
type NewHistoryItem struct {
	Type   ItemType `json:"type"`
	Prompt string   `json:"prompt"`
	Result string   `json:"result"`
}

// GeneratedResult - 워크스페이스 결과 상태
// loading 중에는 ImageURL/Text/Error 모두 비어 있음
type GeneratedResult struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Text     string `json:"text,omitempty"`
	Error    string `json:"error,omitempty"`
	Loading  bool   `json:"loading"`
}

// Populated - 결과 또는 에러가 채워져 있는지
func (r GeneratedResult) Populated() bool {
	return r.ImageURL != "" || r.Text != "" || r.Error != ""
}

// Workspace - 독립된 도구 모드
type Workspace string

const (
	WorkspaceGraphic Workspace = "graphic"
	WorkspaceContent Workspace = "content"
	WorkspacePrompt  Workspace = "prompt"
)

// Workspaces - 전체 워크스페이스 목록
var Workspaces = []Workspace{WorkspaceGraphic, WorkspaceContent, WorkspacePrompt}

// ParseWorkspace - 문자열을 워크스페이스로 변환
func ParseWorkspace(s string) (Workspace, bool) {
	for _, ws := range Workspaces {
		if string(ws) == s {
			return ws, true
		}
	}
	return "", false
}

// 로컬 저장 키 (오너 네임스페이스 안에서 고정)
const (
	KeyGraphicDraft = "lumina_graphic_state"
	KeyContentDraft = "lumina_content_state"
	KeyPromptDraft  = "lumina_prompt_state"
	KeyHistory      = "lumina_history"
	KeyAPIKey       = "lumina_api_key"
	KeyLanguage     = "lumina_lang"
	KeyTheme        = "lumina_theme"
)
