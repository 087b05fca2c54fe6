package studio

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/auth"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/errs"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/workspace"
)

// MaxBodyBytes - data URI 첨부를 포함한 요청 본문 상한
const MaxBodyBytes = 48 << 20

// internalMessage - 내부 에러 대신 보여주는 문구
const internalMessage = "Something went wrong. Please try again."

var (
	errNotFound   = errors.New("not found")
	errStorageOff = errors.New("publishing is not configured")
)

// errorResponse - 에러 응답 본문
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// statusOf - 에러 분류를 HTTP 상태/코드/노출 메시지로
func statusOf(err error) (int, string, string) {
	switch {
	case errors.Is(err, workspace.ErrSuperseded), errors.Is(err, workspace.ErrClosed):
		return http.StatusConflict, "superseded", err.Error()
	case errors.Is(err, auth.ErrAnonymousBlocked):
		return http.StatusUnauthorized, "sign_in_required", err.Error()
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized", auth.ErrInvalidToken.Error()
	case errors.Is(err, errNotFound):
		return http.StatusNotFound, "not_found", err.Error()
	case errors.Is(err, errStorageOff):
		return http.StatusServiceUnavailable, "unavailable", err.Error()
	}

	switch errs.KindOf(err) {
	case errs.KindPrecondition:
		return http.StatusBadRequest, "precondition", err.Error()
	case errs.KindBoundary:
		return http.StatusBadGateway, "generation_failed", err.Error()
	default:
		// 저장소 에러 등은 노출하지 않음
		return http.StatusInternalServerError, "internal", internalMessage
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, kind, msg := statusOf(err)
	writeJSON(w, code, errorResponse{Error: msg, Code: kind, RequestID: RequestIDFromContext(r.Context())})
}

// readBody - 본문 전체 (상한 초과는 precondition)
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, errs.Preconditionf("studio.readBody", "request body too large or unreadable: %v", err)
	}
	return raw, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	raw, err := readBody(w, r)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errs.Preconditionf("studio.decodeJSON", "invalid payload: %v", err)
	}
	return nil
}
