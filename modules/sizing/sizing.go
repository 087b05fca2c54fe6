package sizing

import "strings"

// Square - 기본 비율
const Square = "1:1"

// Original - 원본 비율 유지 토큰
const Original = "original"

// NativeRatios - 모델이 직접 지원하는 비율
var NativeRatios = []string{"1:1", "16:9", "9:16", "4:3", "3:4"}

// 네이티브가 아닌 토큰 → 가장 가까운 네이티브 비율
var mapped = map[string]string{
	"1080x1080": "1:1",
	"1080x1350": "3:4",
	"1080x1920": "9:16",
	"1280x720":  "16:9",
	"400x400":   "1:1",
	"4:5":       "3:4",
	"3:1":       "16:9",
	"4:1":       "16:9",
	"21:9":      "16:9",
	"3:2":       "16:9",
}

// Resolution - 매핑 결과
// AspectRatio가 비어 있으면 "원본 유지" (비율 미지정)
type Resolution struct {
	AspectRatio string
	Suffix      string
}

// Resolve - 크기 토큰을 지원 비율과 프롬프트 접미사로 변환. 모든 입력에 대해 결과를 반환한다
func Resolve(token string) Resolution {
	if token == "" || token == Original {
		return Resolution{}
	}
	if IsNative(token) {
		return Resolution{AspectRatio: token}
	}

	ratio, ok := mapped[token]
	if !ok {
		ratio = Square
	}
	return Resolution{
		AspectRatio: ratio,
		Suffix:      ", exact resolution/aspect ratio: " + strings.Replace(token, "x", "×", 1),
	}
}

// IsNative - 네이티브 비율 여부
func IsNative(ratio string) bool {
	for _, r := range NativeRatios {
		if r == ratio {
			return true
		}
	}
	return false
}

// Set - 비율이 지정되었는지
func (r Resolution) Set() bool {
	return r.AspectRatio != ""
}

// RatioOrSquare - 미지정이면 1:1
func (r Resolution) RatioOrSquare() string {
	if r.AspectRatio == "" {
		return Square
	}
	return r.AspectRatio
}

// Option - 선택 가능한 크기 토큰
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Group - 카테고리별 옵션 묶음
type Group struct {
	Label   string   `json:"label"`
	Options []Option `json:"options"`
}

// Options - 화면에서 고르는 크기 목록
func Options() []Group {
	return []Group{
		{Label: "Social", Options: []Option{
			{Label: "Square (1080x1080)", Value: "1080x1080"},
			{Label: "Portrait (1080x1350)", Value: "1080x1350"},
			{Label: "Story (1080x1920)", Value: "1080x1920"},
			{Label: "Landscape (1280x720)", Value: "1280x720"},
		}},
		{Label: "Standard", Options: []Option{
			{Label: "1:1", Value: "1:1"},
			{Label: "4:3", Value: "4:3"},
			{Label: "16:9", Value: "16:9"},
		}},
	}
}
