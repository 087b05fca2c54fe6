package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/database"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/kv"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
)

// --- Mocks ---

type failingDriver struct {
	err error
}

func (f *failingDriver) Name() string { return "failing" }

func (f *failingDriver) List(context.Context) ([]model.HistoryItem, error) { return nil, f.err }

func (f *failingDriver) Append(context.Context, model.NewHistoryItem) (model.HistoryItem, error) {
	return model.HistoryItem{}, f.err
}

func (f *failingDriver) Remove(context.Context, string) error { return f.err }

func (f *failingDriver) Clear(context.Context) error { return f.err }

type fakeTable struct {
	mu   sync.Mutex
	rows map[string][]database.HistoryRow
	seq  int
}

func newFakeTable() *fakeTable {
	return &fakeTable{rows: make(map[string][]database.HistoryRow)}
}

func (f *fakeTable) FetchHistory(userID string) ([]database.HistoryRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]database.HistoryRow(nil), f.rows[userID]...), nil
}

func (f *fakeTable) InsertHistory(userID string, item model.NewHistoryItem) (database.HistoryRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	row := database.HistoryRow{
		ID:        fmt.Sprintf("row-%d", f.seq),
		UserID:    userID,
		Type:      string(item.Type),
		Prompt:    item.Prompt,
		Result:    item.Result,
		Timestamp: fmt.Sprintf("2025-01-01T00:00:%02d.000+00:00", f.seq),
	}
	f.rows[userID] = append(f.rows[userID], row)
	return row, nil
}

func (f *fakeTable) DeleteHistory(userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []database.HistoryRow
	for _, r := range f.rows[userID] {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows[userID] = kept
	return nil
}

func (f *fakeTable) ClearHistory(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, userID)
	return nil
}

// flakyStore - Get 을 failGets 번 실패시키고, 읽기마다 delay 만큼 지연
type flakyStore struct {
	kv.Store
	mu       sync.Mutex
	failGets int
	delay    time.Duration
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.failGets > 0
	if fail {
		f.failGets--
	}
	f.mu.Unlock()
	if fail {
		return nil, errors.New("i/o timeout")
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.Store.Get(ctx, key)
}

// recordingDriver - Append 실패 후 Remove 호출 여부를 기록
type recordingDriver struct {
	failingDriver
	mu      sync.Mutex
	removed []string
}

func (r *recordingDriver) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, id)
	return nil
}
