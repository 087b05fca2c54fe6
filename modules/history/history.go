package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/errs"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
)

// Driver - 히스토리 영속 계층 (오너 한 명 기준)
type Driver interface {
	Name() string
	List(ctx context.Context) ([]model.HistoryItem, error)
	// Append - id, timestamp 는 드라이버가 부여
	Append(ctx context.Context, item model.NewHistoryItem) (model.HistoryItem, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// Store - 오너별 히스토리 미러. 저장 실패는 로그만 남기고 미러는 항상 변경을 반영한다
type Store struct {
	mu     sync.RWMutex
	items  []model.HistoryItem
	driver Driver
	log    logger.Logger

	// 저장에 실패해 미러에만 있는 id
	unsaved map[string]struct{}
}

// NewStore - 미러 생성 (Load 전에는 비어 있음)
func NewStore(driver Driver, log logger.Logger) *Store {
	return &Store{
		driver:  driver,
		log:     log.With().Str("history", driver.Name()).Logger(),
		unsaved: make(map[string]struct{}),
	}
}

// Load - 저장소에서 미러 채우기
func (s *Store) Load(ctx context.Context) {
	items, err := s.driver.List(ctx)
	if err != nil {
		s.logPersistence("history.Load", err)
		return
	}
	sortNewestFirst(items)

	s.mu.Lock()
	s.items = items
	s.unsaved = make(map[string]struct{})
	s.mu.Unlock()
	s.log.Debug().Int("count", len(items)).Msg("📚 History loaded")
}

// Append - 새 항목을 맨 앞에 추가
func (s *Store) Append(ctx context.Context, item model.NewHistoryItem) model.HistoryItem {
	saved, err := s.driver.Append(ctx, item)
	persisted := err == nil
	if err != nil {
		s.logPersistence("history.Append", err)
		saved = model.HistoryItem{
			ID:        uuid.NewString(),
			Type:      item.Type,
			Prompt:    item.Prompt,
			Result:    item.Result,
			Timestamp: time.Now().UnixMilli(),
		}
	}

	s.mu.Lock()
	s.items = append([]model.HistoryItem{saved}, s.items...)
	if !persisted {
		s.unsaved[saved.ID] = struct{}{}
	}
	s.mu.Unlock()
	return saved
}

// Remove - 단건 삭제. 저장된 적 없는 항목은 미러에서만 지운다
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.RLock()
	_, localOnly := s.unsaved[id]
	s.mu.RUnlock()

	if !localOnly {
		if err := s.driver.Remove(ctx, id); err != nil {
			s.logPersistence("history.Remove", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.unsaved, id)
	kept := s.items[:0:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// Clear - 오너의 히스토리 전체 삭제 (되돌릴 수 없음)
func (s *Store) Clear(ctx context.Context) {
	if err := s.driver.Clear(ctx); err != nil {
		s.logPersistence("history.Clear", err)
	}
	s.mu.Lock()
	s.items = nil
	s.unsaved = make(map[string]struct{})
	s.mu.Unlock()
}

// List - 최신순 복사본
func (s *Store) List() []model.HistoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.HistoryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get - id 로 조회
func (s *Store) Get(id string) (model.HistoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.HistoryItem{}, false
}

func (s *Store) logPersistence(op string, err error) {
	err = errs.Persistence(op, err)
	s.log.Warn().Err(err).Str("op", op).Msg("⚠️ [History] Persistence failed, keeping in-memory state")
}

func sortNewestFirst(items []model.HistoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
}

// Driver - 사용 중인 드라이버 이름
func (s *Store) Driver() string {
	return s.driver.Name()
}
