package draft

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/errs"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/kv"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
)

// ErrUnreadable - 저장된 드래프트를 읽지 못해 병합을 중단함
var ErrUnreadable = errors.New("stored draft could not be read")

// Normalizer - 비어 있는 필드를 기본값으로 되돌리는 드래프트
type Normalizer interface {
	Normalize()
}

// Controller - 워크스페이스 하나의 폼 상태 (전체 레코드를 덮어쓴다)
type Controller[T any] struct {
	kv       kv.Store
	key      string
	defaults func() T
	log      logger.Logger
}

// NewController - key 는 오너 네임스페이스 안의 고정 키
func NewController[T any](store kv.Store, key string, defaults func() T, log logger.Logger) *Controller[T] {
	return &Controller[T]{
		kv:       store,
		key:      key,
		defaults: defaults,
		log:      log.With().Str("draft", key).Logger(),
	}
}

// Key - 저장 키
func (c *Controller[T]) Key() string {
	return c.key
}

// Load - defaults 위에 저장된 값을 덮는다. 없거나 깨졌으면 defaults
func (c *Controller[T]) Load(ctx context.Context) T {
	d, err := c.load(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("⚠️ [Draft] Read failed, using defaults")
		return c.defaults()
	}
	return d
}

// load - 읽기 실패만 에러로 돌려준다. 없거나 깨진 값은 defaults
func (c *Controller[T]) load(ctx context.Context) (T, error) {
	raw, err := c.kv.Get(ctx, c.key)
	if errors.Is(err, kv.ErrNotFound) {
		return c.defaults(), nil
	}
	if err != nil {
		var zero T
		return zero, errs.Persistence("draft.Load", err)
	}

	d, err := merge(c.defaults(), raw)
	if err != nil {
		c.log.Warn().Err(err).Msg("⚠️ [Draft] Stored draft is malformed, using defaults")
		return c.defaults(), nil
	}
	return d, nil
}

// Save - 전체 드래프트 저장. 마지막 쓰기가 이긴다
func (c *Controller[T]) Save(ctx context.Context, d T) error {
	normalize(&d)
	raw, err := json.Marshal(d)
	if err != nil {
		return errors.Wrap(err, "failed to encode draft")
	}
	if err := c.kv.Set(ctx, c.key, raw); err != nil {
		err = errs.Persistence("draft.Save", err)
		c.log.Warn().Err(err).Msg("⚠️ [Draft] Write failed")
		return err
	}
	return nil
}

// Patch - 부분 JSON 을 현재 드래프트에 병합 후 전체 저장. 현재 값을 못 읽으면 쓰지 않는다
func (c *Controller[T]) Patch(ctx context.Context, patch []byte) (T, error) {
	cur, err := c.load(ctx)
	if err != nil {
		return cur, errs.Persistence("draft.Patch", errors.Wrap(ErrUnreadable, err.Error()))
	}
	next, err := merge(cur, patch)
	if err != nil {
		return cur, errs.Preconditionf("draft.Patch", "invalid draft patch: %v", err)
	}
	return next, c.Save(ctx, next)
}

// Reset - 기본값으로 되돌림
func (c *Controller[T]) Reset(ctx context.Context) (T, error) {
	d := c.defaults()
	return d, c.Save(ctx, d)
}

func merge[T any](base T, raw []byte) (T, error) {
	if err := json.Unmarshal(raw, &base); err != nil {
		var zero T
		return zero, err
	}
	normalize(&base)
	return base, nil
}

func normalize[T any](d *T) {
	if n, ok := any(d).(Normalizer); ok {
		n.Normalize()
	}
}

func orDefault(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
