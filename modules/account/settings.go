package account

import (
	"context"
	"errors"
	"strings"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/errs"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/i18n"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/kv"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
)

// Theme - 화면 테마
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme - light/dark 외에는 false
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// Settings - 오너 설정 (API 키 원문은 내보내지 않음)
type Settings struct {
	Language  i18n.Language `json:"language"`
	Theme     Theme         `json:"theme"`
	HasAPIKey bool          `json:"hasApiKey"`
}

// SettingsPatch - 비어 있는 필드는 유지
type SettingsPatch struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

// SettingsStore - 오너 네임스페이스 kv 위의 설정
type SettingsStore struct {
	store kv.Store
	log   logger.Logger
}

func NewSettingsStore(store kv.Store, log logger.Logger) *SettingsStore {
	return &SettingsStore{store: store, log: log}
}

// Load - 저장된 값이 없거나 깨졌으면 기본값 (en, light)
func (s *SettingsStore) Load(ctx context.Context) Settings {
	out := Settings{Language: i18n.English, Theme: ThemeLight}

	if raw := s.get(ctx, model.KeyLanguage); raw != "" {
		if lang, ok := i18n.Parse(raw); ok {
			out.Language = lang
		}
	}
	if raw := s.get(ctx, model.KeyTheme); raw != "" {
		if theme, ok := ParseTheme(raw); ok {
			out.Theme = theme
		}
	}
	out.HasAPIKey = s.APIKey(ctx) != ""
	return out
}

// Update - 언어/테마 변경. 알 수 없는 값은 precondition 에러
func (s *SettingsStore) Update(ctx context.Context, patch SettingsPatch) (Settings, error) {
	const op = "account.UpdateSettings"

	if patch.Language != "" {
		lang, ok := i18n.Parse(patch.Language)
		if !ok {
			return Settings{}, errs.Preconditionf(op, "unsupported language %q", patch.Language)
		}
		if err := s.store.Set(ctx, model.KeyLanguage, []byte(lang)); err != nil {
			return Settings{}, errs.Persistence(op, err)
		}
	}
	if patch.Theme != "" {
		theme, ok := ParseTheme(patch.Theme)
		if !ok {
			return Settings{}, errs.Preconditionf(op, "unsupported theme %q", patch.Theme)
		}
		if err := s.store.Set(ctx, model.KeyTheme, []byte(theme)); err != nil {
			return Settings{}, errs.Persistence(op, err)
		}
	}
	return s.Load(ctx), nil
}

// APIKey - 저장된 Gemini 키. 없으면 빈 문자열
func (s *SettingsStore) APIKey(ctx context.Context) string {
	return strings.TrimSpace(s.get(ctx, model.KeyAPIKey))
}

// SetAPIKey - 키 저장. 이전 키를 돌려준다
func (s *SettingsStore) SetAPIKey(ctx context.Context, key string) (string, error) {
	const op = "account.SetAPIKey"
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errs.Precondition(op, "API key required.")
	}
	prev := s.APIKey(ctx)
	if err := s.store.Set(ctx, model.KeyAPIKey, []byte(key)); err != nil {
		return prev, errs.Persistence(op, err)
	}
	s.log.Info().Msg("🔑 [Settings] API key saved")
	return prev, nil
}

// ClearAPIKey - 키 삭제. 이전 키를 돌려준다
func (s *SettingsStore) ClearAPIKey(ctx context.Context) (string, error) {
	prev := s.APIKey(ctx)
	if err := s.store.Delete(ctx, model.KeyAPIKey); err != nil {
		return prev, errs.Persistence("account.ClearAPIKey", err)
	}
	s.log.Info().Msg("🔑 [Settings] API key removed")
	return prev, nil
}

func (s *SettingsStore) get(ctx context.Context, key string) string {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Warn().Err(err).Str("key", key).Msg("⚠️ [Settings] Read failed, using default")
		}
		return ""
	}
	return string(raw)
}
