package generation

import (
	"strings"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/errs"
)

// ResolveAPIKey - 서버 키가 우선, 없으면 사용자가 저장한 키
func ResolveAPIKey(serverKey, savedKey string) (string, error) {
	if k := strings.TrimSpace(serverKey); k != "" {
		return k, nil
	}
	if k := strings.TrimSpace(savedKey); k != "" {
		return k, nil
	}
	return "", errs.Precondition("generation.ResolveAPIKey", "API key required. Add your Gemini API key in settings.")
}
