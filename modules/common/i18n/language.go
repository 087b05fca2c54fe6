package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Language - 앱 언어 코드 (en, mm)
type Language string

const (
	English Language = "en"
	Myanmar Language = "mm"
)

// 앱은 미얀마어를 "mm"으로 저장하지만 BCP 47 태그는 "my"
var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Burmese,
})

// Parse - 저장된 값 또는 헤더 값을 앱 언어로 변환. 모르면 false
func Parse(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return "", false
	case string(English):
		return English, true
	case string(Myanmar):
		return Myanmar, true
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	return fromTag(tag), true
}

// Negotiate - Accept-Language 헤더로 언어 결정
func Negotiate(acceptLanguage string) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return English
	}
	if idx == 1 {
		return Myanmar
	}
	return English
}

func fromTag(tag language.Tag) Language {
	base, _ := tag.Base()
	burmese, _ := language.Burmese.Base()
	if base == burmese {
		return Myanmar
	}
	return English
}

// DisplayName - 프롬프트용 언어 이름
func (l Language) DisplayName() string {
	if l == Myanmar {
		return "Myanmar"
	}
	return "English"
}

// OrDefault - 비어 있으면 영어
func (l Language) OrDefault() Language {
	if l == "" {
		return English
	}
	return l
}

type localeContextKey struct{}

// FromRequest - X-Locale 우선, 없으면 Accept-Language
func FromRequest(r *http.Request) (Language, bool) {
	if v := r.Header.Get("X-Locale"); v != "" {
		if lang, ok := Parse(v); ok {
			return lang, true
		}
	}
	if v := r.Header.Get("Accept-Language"); v != "" {
		return Negotiate(v), true
	}
	return English, false
}

// WithLanguage - 컨텍스트에 언어 저장
func WithLanguage(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, localeContextKey{}, lang)
}

// FromContext - 컨텍스트의 언어 (없으면 영어)
func FromContext(ctx context.Context) Language {
	if v, ok := ctx.Value(localeContextKey{}).(Language); ok {
		return v
	}
	return English
}
