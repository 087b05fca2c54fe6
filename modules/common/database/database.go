package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/supabase-go"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/config"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
)

// HistoryTable - 히스토리 테이블 이름
const HistoryTable = "history"

type Client struct {
	supabase *supabase.Client
	log      logger.Logger
}

// HistoryRow - history 테이블 레코드
type HistoryRow struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Prompt    string `json:"prompt"`
	Result    string `json:"result"`
	Timestamp string `json:"timestamp"`
}

// Item - 앱 모델로 변환 (timestamptz → epoch millis)
func (r HistoryRow) Item() model.HistoryItem {
	return model.HistoryItem{
		ID:        r.ID,
		Type:      model.ItemType(r.Type),
		Prompt:    r.Prompt,
		Result:    r.Result,
		Timestamp: ParseTimestamp(r.Timestamp),
	}
}

// ParseTimestamp - PostgREST 타임스탬프 문자열을 epoch millis 로. 실패하면 0
func ParseTimestamp(s string) int64 {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05.999999-07"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// NewClient - Database 클라이언트 생성
func NewClient(cfg *config.Config, log logger.Logger) (*Client, error) {
	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, &supabase.ClientOptions{})
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to create Supabase client")
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}

	log.Info().Str("url", cfg.SupabaseURL).Msg("✅ Supabase client ready")
	return &Client{
		supabase: supabaseClient,
		log:      log,
	}, nil
}

// FetchHistory - 사용자 히스토리 조회 (정렬은 호출자가)
func (c *Client) FetchHistory(userID string) ([]HistoryRow, error) {
	c.log.Debug().Str("user", userID).Msg("🔍 Fetching history from Supabase")

	data, _, err := c.supabase.From(HistoryTable).
		Select("*", "exact", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to query Supabase: %w", err)
	}

	var rows []HistoryRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.log.Debug().Str("user", userID).Int("count", len(rows)).Msg("✅ History fetched")
	return rows, nil
}

// InsertHistory - 히스토리 추가. id, timestamp 는 서버가 부여
func (c *Client) InsertHistory(userID string, item model.NewHistoryItem) (HistoryRow, error) {
	insertData := map[string]interface{}{
		"user_id": userID,
		"type":    string(item.Type),
		"prompt":  item.Prompt,
		"result":  item.Result,
	}

	data, _, err := c.supabase.From(HistoryTable).
		Insert(insertData, false, "", "representation", "").
		Execute()
	if err != nil {
		return HistoryRow{}, fmt.Errorf("failed to insert history: %w", err)
	}

	var rows []HistoryRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return HistoryRow{}, fmt.Errorf("failed to parse insert response: %w", err)
	}
	if len(rows) == 0 {
		return HistoryRow{}, fmt.Errorf("no history record returned")
	}

	c.log.Info().Str("user", userID).Str("id", rows[0].ID).Msg("💾 History saved")
	return rows[0], nil
}

// DeleteHistory - 단건 삭제 (소유자 조건 포함)
func (c *Client) DeleteHistory(userID, id string) error {
	_, _, err := c.supabase.From(HistoryTable).
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete history %s: %w", id, err)
	}
	c.log.Info().Str("user", userID).Str("id", id).Msg("🗑️ History removed")
	return nil
}

// ClearHistory - 사용자 히스토리 전체 삭제
func (c *Client) ClearHistory(userID string) error {
	_, _, err := c.supabase.From(HistoryTable).
		Delete("", "").
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	c.log.Info().Str("user", userID).Msg("🗑️ History cleared")
	return nil
}
