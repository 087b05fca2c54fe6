package history

import (
	"context"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/database"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
)

// HistoryTable - database.Client 의 히스토리 테이블 연산
type HistoryTable interface {
	FetchHistory(userID string) ([]database.HistoryRow, error)
	InsertHistory(userID string, item model.NewHistoryItem) (database.HistoryRow, error)
	DeleteHistory(userID, id string) error
	ClearHistory(userID string) error
}

// Supabase - PostgREST history 테이블
type Supabase struct {
	table  HistoryTable
	userID string
}

func NewSupabase(table HistoryTable, userID string) *Supabase {
	return &Supabase{table: table, userID: userID}
}

func (s *Supabase) Name() string { return "supabase" }

func (s *Supabase) List(_ context.Context) ([]model.HistoryItem, error) {
	rows, err := s.table.FetchHistory(s.userID)
	if err != nil {
		return nil, err
	}
	items := make([]model.HistoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.Item())
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Supabase) Append(_ context.Context, item model.NewHistoryItem) (model.HistoryItem, error) {
	row, err := s.table.InsertHistory(s.userID, item)
	if err != nil {
		return model.HistoryItem{}, err
	}
	return row.Item(), nil
}

func (s *Supabase) Remove(_ context.Context, id string) error {
	return s.table.DeleteHistory(s.userID, id)
}

func (s *Supabase) Clear(_ context.Context) error {
	return s.table.ClearHistory(s.userID)
}
