package studio

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/account"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/auth"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/errs"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/utils"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/draft"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/prompt"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/sizing"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/workspace"
)

// catalogResponse - 선택지 전체 + 크기 목록
type catalogResponse struct {
	prompt.Catalog
	Sizes []sizing.Group `json:"sizes"`
}

func (s *Server) catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{Catalog: prompt.DefaultCatalog(), Sizes: sizing.Options()})
}

// workspaceSession - 경로의 {ws} 로 세션 조회
func (s *Server) workspaceSession(r *http.Request) (*workspace.Session, error) {
	ws, ok := model.ParseWorkspace(mux.Vars(r)["ws"])
	if !ok {
		return nil, fmt.Errorf("workspace %q: %w", mux.Vars(r)["ws"], errNotFound)
	}
	sess, ok := s.account(r).Workspaces.Get(ws)
	if !ok {
		return nil, errNotFound
	}
	return sess, nil
}

func (s *Server) getResult(w http.ResponseWriter, r *http.Request) {
	sess, err := s.workspaceSession(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) clearResult(w http.ResponseWriter, r *http.Request) {
	sess, err := s.workspaceSession(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess.Clear()
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func draftWorkspace(r *http.Request) (model.Workspace, error) {
	ws, ok := model.ParseWorkspace(mux.Vars(r)["ws"])
	if !ok {
		return "", fmt.Errorf("workspace %q: %w", mux.Vars(r)["ws"], errNotFound)
	}
	return ws, nil
}

func (s *Server) getDraft(w http.ResponseWriter, r *http.Request) {
	ws, err := draftWorkspace(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, err := s.account(r).Drafts.Load(r.Context(), ws)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) resetDraft(w http.ResponseWriter, r *http.Request) {
	ws, err := draftWorkspace(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, err := s.account(r).Drafts.Reset(r.Context(), ws)
	if err != nil && !errs.Is(err, errs.KindPersistence) {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) replaceDraft(w http.ResponseWriter, r *http.Request) {
	s.writeDraft(w, r, false)
}

func (s *Server) patchDraft(w http.ResponseWriter, r *http.Request) {
	s.writeDraft(w, r, true)
}

// writeDraft - 저장 실패는 로그만 남기고 병합 결과는 그대로 돌려준다. 읽기 실패면 병합하지 않는다
func (s *Server) writeDraft(w http.ResponseWriter, r *http.Request, patch bool) {
	ws, err := draftWorkspace(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	raw, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	drafts := s.account(r).Drafts
	var d any
	if patch {
		d, err = drafts.Patch(r.Context(), ws, raw)
	} else {
		d, err = drafts.Replace(r.Context(), ws, raw)
	}
	if err != nil {
		if !errs.Is(err, errs.KindPersistence) || errors.Is(err, draft.ErrUnreadable) {
			writeError(w, r, err)
			return
		}
		s.log.Warn().Err(err).Str("workspace", string(ws)).Msg("⚠️ [Studio] Draft not persisted")
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	items := s.account(r).History.List()
	if t := r.URL.Query().Get("type"); t != "" {
		filtered := items[:0]
		for _, it := range items {
			if string(it.Type) == t {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	s.account(r).History.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeHistory(w http.ResponseWriter, r *http.Request) {
	s.account(r).History.Remove(r.Context(), mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// historyItem - 경로의 {id} 항목
func (s *Server) historyItem(r *http.Request) (*account.Context, model.HistoryItem, error) {
	acct := s.account(r)
	id := mux.Vars(r)["id"]
	item, ok := acct.History.Get(id)
	if !ok {
		return acct, model.HistoryItem{}, fmt.Errorf("history %q: %w", id, errNotFound)
	}
	return acct, item, nil
}

func (s *Server) exportHistory(w http.ResponseWriter, r *http.Request) {
	_, item, err := s.historyItem(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	format, err := ParseFormat(r.URL.Query().Get("format"), item.Type)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := ExportItem(item, format)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Data)
}

// publishHistory - 이미지 항목을 WebP 로 스토리지에 올리고 공개 URL 반환
func (s *Server) publishHistory(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil || !s.publisher.Enabled() {
		writeError(w, r, errStorageOff)
		return
	}
	acct, item, err := s.historyItem(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if item.Type != model.TypeImage {
		writeError(w, r, errs.Precondition("studio.publish", "Only images can be published."))
		return
	}
	img, err := utils.ParseDataURI(item.Result)
	if err != nil {
		writeError(w, r, errs.Preconditionf("studio.publish", "stored image is not a valid data URI: %v", err))
		return
	}

	upload, err := s.publisher.UploadImage(r.Context(), img.Data, acct.Owner.ID)
	if err != nil {
		writeError(w, r, errs.Boundary("studio.publish", err))
		return
	}
	writeJSON(w, http.StatusCreated, upload)
}

// settingsResponse - 설정 + 오너 정보
type settingsResponse struct {
	account.Settings
	Owner        auth.Owner `json:"owner"`
	ServerAPIKey bool       `json:"serverApiKey"`
}

func (s *Server) settingsFor(acct *account.Context, st account.Settings) settingsResponse {
	return settingsResponse{Settings: st, Owner: acct.Owner, ServerAPIKey: s.opts.ServerAPIKey != ""}
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	acct := s.account(r)
	writeJSON(w, http.StatusOK, s.settingsFor(acct, acct.Settings.Load(r.Context())))
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var patch account.SettingsPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	acct := s.account(r)
	st, err := acct.Settings.Update(r.Context(), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.settingsFor(acct, st))
}

type apiKeyRequest struct {
	APIKey string `json:"apiKey"`
}

func (s *Server) saveAPIKey(w http.ResponseWriter, r *http.Request) {
	var req apiKeyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	acct := s.account(r)
	prev, err := acct.Settings.SetAPIKey(r.Context(), req.APIKey)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.models.Forget(prev)
	writeJSON(w, http.StatusOK, s.settingsFor(acct, acct.Settings.Load(r.Context())))
}

func (s *Server) deleteAPIKey(w http.ResponseWriter, r *http.Request) {
	acct := s.account(r)
	prev, err := acct.Settings.ClearAPIKey(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.models.Forget(prev)
	writeJSON(w, http.StatusOK, s.settingsFor(acct, acct.Settings.Load(r.Context())))
}

// signOut - 오너 컨텍스트 정리. 저장된 드래프트/설정/히스토리는 남는다
func (s *Server) signOut(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())
	dropped := s.registry.SignOut(owner)
	writeJSON(w, http.StatusOK, map[string]bool{"signedOut": dropped})
}
