package draft

import (
	"context"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/errs"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/kv"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
)

// Set - 오너의 워크스페이스별 드래프트
type Set struct {
	Graphic *Controller[Graphic]
	Content *Controller[Content]
	Prompt  *Controller[Prompt]
}

// NewSet - 오너 네임스페이스 kv 위에 세 개의 컨트롤러
func NewSet(store kv.Store, log logger.Logger) *Set {
	return &Set{
		Graphic: NewController(store, model.KeyGraphicDraft, DefaultGraphic, log),
		Content: NewController(store, model.KeyContentDraft, DefaultContent, log),
		Prompt:  NewController(store, model.KeyPromptDraft, DefaultPrompt, log),
	}
}

// Load - 워크스페이스 이름으로 조회 (HTTP 계층용)
func (s *Set) Load(ctx context.Context, ws model.Workspace) (any, error) {
	switch ws {
	case model.WorkspaceGraphic:
		return s.Graphic.Load(ctx), nil
	case model.WorkspaceContent:
		return s.Content.Load(ctx), nil
	case model.WorkspacePrompt:
		return s.Prompt.Load(ctx), nil
	}
	return nil, errs.Preconditionf("draft.Load", "unknown workspace %q", ws)
}

// Replace - 전체 덮어쓰기. 본문은 defaults 위에 병합된다
func (s *Set) Replace(ctx context.Context, ws model.Workspace, raw []byte) (any, error) {
	switch ws {
	case model.WorkspaceGraphic:
		return replace(ctx, s.Graphic, raw)
	case model.WorkspaceContent:
		return replace(ctx, s.Content, raw)
	case model.WorkspacePrompt:
		return replace(ctx, s.Prompt, raw)
	}
	return nil, errs.Preconditionf("draft.Replace", "unknown workspace %q", ws)
}

// Patch - 부분 병합
func (s *Set) Patch(ctx context.Context, ws model.Workspace, raw []byte) (any, error) {
	switch ws {
	case model.WorkspaceGraphic:
		return s.Graphic.Patch(ctx, raw)
	case model.WorkspaceContent:
		return s.Content.Patch(ctx, raw)
	case model.WorkspacePrompt:
		return s.Prompt.Patch(ctx, raw)
	}
	return nil, errs.Preconditionf("draft.Patch", "unknown workspace %q", ws)
}

func replace[T any](ctx context.Context, c *Controller[T], raw []byte) (T, error) {
	d, err := merge(c.defaults(), raw)
	if err != nil {
		return d, errs.Preconditionf("draft.Replace", "invalid draft: %v", err)
	}
	return d, c.Save(ctx, d)
}

// Reset - 워크스페이스 드래프트를 기본값으로
func (s *Set) Reset(ctx context.Context, ws model.Workspace) (any, error) {
	switch ws {
	case model.WorkspaceGraphic:
		return s.Graphic.Reset(ctx)
	case model.WorkspaceContent:
		return s.Content.Reset(ctx)
	case model.WorkspacePrompt:
		return s.Prompt.Reset(ctx)
	}
	return nil, errs.Preconditionf("draft.Reset", "unknown workspace %q", ws)
}
