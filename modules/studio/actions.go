package studio

import (
	"context"
	"net/http"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/account"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/errs"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/i18n"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/generation"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/workspace"
)

// actionResponse - 성공 응답
type actionResponse struct {
	Action  generation.Action  `json:"action"`
	Result  generation.Output  `json:"result"`
	History *model.HistoryItem `json:"history,omitempty"`
}

// handleAction - 요청 본문을 T 로 디코드해서 실행
func handleAction[T generation.Request](s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req T
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		s.runAction(w, r, req)
	}
}

// runAction - Begin → 생성 → Complete/Fail → 히스토리
func (s *Server) runAction(w http.ResponseWriter, r *http.Request, req generation.Request) {
	acct := s.account(r)
	req = withLanguage(req, s.language(r, acct))

	action := req.Action()
	sess, ok := acct.Workspaces.Get(action.Workspace())
	if !ok {
		writeError(w, r, errs.Preconditionf("studio.runAction", "unknown workspace for %s", action))
		return
	}

	ticket, err := sess.Begin(string(action))
	if err != nil {
		writeError(w, r, err)
		return
	}

	// 클라이언트가 끊겨도 공급자 호출은 끝까지 (중간 취소 없음)
	ctx := context.WithoutCancel(r.Context())
	log := s.log.With().
		Str("requestId", RequestIDFromContext(ctx)).
		Str("owner", acct.Owner.Key()).
		Str("action", string(action)).
		Logger()

	out, err := s.generate(ctx, acct, req)
	if err != nil {
		if !sess.Fail(ticket, err.Error()) {
			writeError(w, r, workspace.ErrSuperseded)
			return
		}
		log.Warn().Err(err).Str("kind", errs.KindOf(err).String()).Msg("⚠️ [Studio] Action failed")
		writeError(w, r, err)
		return
	}

	if !sess.Complete(ticket, out.Result()) {
		log.Info().Msg("🗑️ [Studio] Result superseded, not recorded")
		writeError(w, r, workspace.ErrSuperseded)
		return
	}

	resp := actionResponse{Action: action, Result: out}
	if item, ok := req.History(out); ok {
		saved := acct.History.Append(ctx, item)
		resp.History = &saved
	}
	log.Info().Msg("✅ [Studio] Action completed")
	writeJSON(w, http.StatusOK, resp)
}

// generate - 키 결정 → 클라이언트 → 호출
func (s *Server) generate(ctx context.Context, acct *account.Context, req generation.Request) (generation.Output, error) {
	key, err := generation.ResolveAPIKey(s.opts.ServerAPIKey, acct.Settings.APIKey(ctx))
	if err != nil {
		return generation.Output{}, err
	}
	gen, err := s.models.For(ctx, key)
	if err != nil {
		return generation.Output{}, errs.Boundary("studio.generate", err)
	}
	client := generation.NewClient(gen, s.builder, s.opts.MaxAttachmentEdge, s.log)
	return client.Do(ctx, req)
}

// language - 요청 헤더가 있으면 우선, 없으면 오너 설정
func (s *Server) language(r *http.Request, acct *account.Context) i18n.Language {
	if _, ok := i18n.FromRequest(r); ok {
		return i18n.FromContext(r.Context())
	}
	return acct.Settings.Load(r.Context()).Language
}

func withLanguage(req generation.Request, lang i18n.Language) generation.Request {
	switch v := req.(type) {
	case generation.TextRequest:
		v.Language = lang
		return v
	case generation.AnalyzeRequest:
		v.Language = lang
		return v
	}
	return req
}
