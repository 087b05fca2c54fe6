package history

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/kv"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
)

// errCorrupt - 저장된 목록을 해석할 수 없음
var errCorrupt = errors.New("local history is malformed")

// Local - 오너 kv 네임스페이스의 lumina_history 키에 JSON 배열로 저장
type Local struct {
	// 읽기-수정-쓰기 구간 보호
	mu  sync.Mutex
	kv  kv.Store
	now func() time.Time
}

func NewLocal(store kv.Store) *Local {
	return &Local{kv: store, now: time.Now}
}

func (l *Local) Name() string { return "local" }

func (l *Local) List(ctx context.Context) ([]model.HistoryItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read(ctx)
}

func (l *Local) read(ctx context.Context) ([]model.HistoryItem, error) {
	raw, err := l.kv.Get(ctx, model.KeyHistory)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read local history")
	}
	var items []model.HistoryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.Wrapf(errCorrupt, "failed to parse local history: %v", err)
	}
	return items, nil
}

func (l *Local) Append(ctx context.Context, item model.NewHistoryItem) (model.HistoryItem, error) {
	saved := model.HistoryItem{
		ID:        uuid.NewString(),
		Type:      item.Type,
		Prompt:    item.Prompt,
		Result:    item.Result,
		Timestamp: l.now().UnixMilli(),
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.read(ctx)
	switch {
	case errors.Is(err, errCorrupt):
		// 깨진 목록만 새로 시작. 읽기 실패는 덮어쓰지 않는다
		items = nil
	case err != nil:
		return model.HistoryItem{}, err
	}
	return saved, l.write(ctx, append([]model.HistoryItem{saved}, items...))
}

func (l *Local) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.read(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return l.write(ctx, kept)
}

func (l *Local) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.kv.Delete(ctx, model.KeyHistory); err != nil && !errors.Is(err, kv.ErrNotFound) {
		return errors.Wrap(err, "failed to clear local history")
	}
	return nil
}

func (l *Local) write(ctx context.Context, items []model.HistoryItem) error {
	if items == nil {
		items = []model.HistoryItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "failed to encode local history")
	}
	return errors.Wrap(l.kv.Set(ctx, model.KeyHistory, raw), "failed to write local history")
}
