package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
)

// OpenMySQL - DSN 으로 연결. parseTime 은 항상 켠다
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "invalid MYSQL_DSN")
	}
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open mysql")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping mysql")
	}
	return db, nil
}

// EnsureMySQLTables - history 테이블 생성
func EnsureMySQLTables(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS `history` (" +
			"`id` VARCHAR(36) NOT NULL PRIMARY KEY," +
			"`user_id` VARCHAR(256) NOT NULL," +
			"`type` VARCHAR(16) NOT NULL," +
			"`prompt` TEXT NOT NULL," +
			"`result` LONGTEXT NOT NULL," +
			"`timestamp` BIGINT NOT NULL," +
			"INDEX `idx_history_user_ts` (`user_id`, `timestamp`)" +
			")",
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return errors.Wrap(err, "failed to ensure history table")
		}
	}
	return nil
}

// MySQL - MySQL 은 RETURNING 이 없으므로 id, timestamp 를 여기서 만든다
type MySQL struct {
	db     *sql.DB
	userID string
	now    func() time.Time
}

func NewMySQL(db *sql.DB, userID string) *MySQL {
	return &MySQL{db: db, userID: userID, now: time.Now}
}

func (m *MySQL) Name() string { return "mysql" }

func (m *MySQL) List(ctx context.Context) ([]model.HistoryItem, error) {
	rows, err := m.db.QueryContext(ctx,
		"SELECT `id`, `type`, `prompt`, `result`, `timestamp` FROM `history` WHERE `user_id` = ? ORDER BY `timestamp` DESC",
		m.userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query history")
	}
	defer rows.Close()

	var items []model.HistoryItem
	for rows.Next() {
		var it model.HistoryItem
		if err := rows.Scan(&it.ID, &it.Type, &it.Prompt, &it.Result, &it.Timestamp); err != nil {
			return nil, errors.Wrap(err, "failed to scan history")
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (m *MySQL) Append(ctx context.Context, item model.NewHistoryItem) (model.HistoryItem, error) {
	saved := model.HistoryItem{
		ID:        uuid.NewString(),
		Type:      item.Type,
		Prompt:    item.Prompt,
		Result:    item.Result,
		Timestamp: m.now().UnixMilli(),
	}
	_, err := m.db.ExecContext(ctx,
		"INSERT INTO `history` (`id`, `user_id`, `type`, `prompt`, `result`, `timestamp`) VALUES (?, ?, ?, ?, ?, ?)",
		saved.ID, m.userID, string(saved.Type), saved.Prompt, saved.Result, saved.Timestamp)
	if err != nil {
		return model.HistoryItem{}, errors.Wrap(err, "failed to insert history")
	}
	return saved, nil
}

func (m *MySQL) Remove(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM `history` WHERE `id` = ? AND `user_id` = ?", id, m.userID)
	return errors.Wrap(err, "failed to delete history")
}

func (m *MySQL) Clear(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM `history` WHERE `user_id` = ?", m.userID)
	return errors.Wrap(err, "failed to clear history")
}
