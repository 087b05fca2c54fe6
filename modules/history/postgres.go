package history

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
)

// PgxConn - *pgxpool.Pool 이 만족하는 최소 인터페이스
type PgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EnsurePostgresTables - history 테이블 생성
func EnsurePostgresTables(ctx context.Context, conn PgxConn) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS history (
			id        UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id   TEXT NOT NULL,
			type      TEXT NOT NULL,
			prompt    TEXT NOT NULL DEFAULT '',
			result    TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_user_ts ON history(user_id, timestamp DESC)`,
	}
	for _, s := range stmts {
		if _, err := conn.Exec(ctx, s); err != nil {
			return errors.Wrap(err, "failed to ensure history table")
		}
	}
	return nil
}

// Postgres - pgx 로 직접 접근하는 history 테이블
type Postgres struct {
	conn   PgxConn
	userID string
}

func NewPostgres(conn PgxConn, userID string) *Postgres {
	return &Postgres{conn: conn, userID: userID}
}

func (p *Postgres) Name() string { return "postgres" }

const pgEpochMillis = `(extract(epoch from timestamp) * 1000)::bigint`

func (p *Postgres) List(ctx context.Context) ([]model.HistoryItem, error) {
	rows, err := p.conn.Query(ctx,
		`SELECT id::text, type, prompt, result, `+pgEpochMillis+`
		 FROM history WHERE user_id = $1 ORDER BY timestamp DESC`, p.userID)
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

func (p *Postgres) Append(ctx context.Context, item model.NewHistoryItem) (model.HistoryItem, error) {
	saved := model.HistoryItem{Type: item.Type, Prompt: item.Prompt, Result: item.Result}
	err := p.conn.QueryRow(ctx,
		`INSERT INTO history (user_id, type, prompt, result) VALUES ($1, $2, $3, $4)
		 RETURNING id::text, `+pgEpochMillis,
		p.userID, string(item.Type), item.Prompt, item.Result,
	).Scan(&saved.ID, &saved.Timestamp)
	if err != nil {
		return model.HistoryItem{}, errors.Wrap(err, "failed to insert history")
	}
	return saved, nil
}

func (p *Postgres) Remove(ctx context.Context, id string) error {
	_, err := p.conn.Exec(ctx, `DELETE FROM history WHERE id::text = $1 AND user_id = $2`, id, p.userID)
	return errors.Wrap(err, "failed to delete history")
}

func (p *Postgres) Clear(ctx context.Context) error {
	_, err := p.conn.Exec(ctx, `DELETE FROM history WHERE user_id = $1`, p.userID)
	return errors.Wrap(err, "failed to clear history")
}
