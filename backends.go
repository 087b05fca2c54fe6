package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/account"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/config"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/database"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/kv"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	redisClient "github.com/jElioSpace/Lumina-AI-Studio/modules/common/redis"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/history"
)

// openKV - 드래프트/설정/로컬 히스토리 저장소
func openKV(ctx context.Context, cfg *config.Config, log logger.Logger) (kv.Store, error) {
	switch cfg.KVBackend {
	case config.KVRedis:
		rdb, err := redisClient.Connect(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return kv.NewRedis(rdb), nil
	case config.KVMemory:
		log.Warn().Msg("⚠️ Using in-memory kv store, drafts and settings are lost on restart")
		return kv.NewMemory(), nil
	default:
		store, err := kv.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("✅ SQLite kv store ready")
		return store, nil
	}
}

// historyBackend - 원격 히스토리 연결과 테이블 생성
type historyBackend struct {
	drivers account.HistoryDriverFunc
	migrate func(ctx context.Context) error
	close   func()
}

// openHistory - local 이면 모든 오너가 kv 히스토리
func openHistory(ctx context.Context, cfg *config.Config, log logger.Logger) (*historyBackend, error) {
	noop := func() {}

	switch cfg.HistoryBackend {
	case config.HistorySupabase:
		db, err := database.NewClient(cfg, log)
		if err != nil {
			return nil, err
		}
		return &historyBackend{
			drivers: account.RemoteForUsers(func(userID string) history.Driver {
				return history.NewSupabase(db, userID)
			}),
			migrate: func(context.Context) error {
				log.Info().Msg("ℹ️ Supabase tables are managed by the project, nothing to migrate")
				return nil
			},
			close: noop,
		}, nil

	case config.HistoryPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create postgres pool")
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, errors.Wrap(err, "failed to ping postgres")
		}
		log.Info().Msg("✅ Postgres connected")
		return &historyBackend{
			drivers: account.RemoteForUsers(func(userID string) history.Driver {
				return history.NewPostgres(pool, userID)
			}),
			migrate: func(ctx context.Context) error {
				return history.EnsurePostgresTables(ctx, pool)
			},
			close: pool.Close,
		}, nil

	case config.HistoryMySQL:
		db, err := history.OpenMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("✅ MySQL connected")
		return &historyBackend{
			drivers: account.RemoteForUsers(func(userID string) history.Driver {
				return history.NewMySQL(db, userID)
			}),
			migrate: func(ctx context.Context) error {
				return history.EnsureMySQLTables(ctx, db)
			},
			close: func() { db.Close() },
		}, nil
	}

	return &historyBackend{
		drivers: account.LocalHistory,
		migrate: func(context.Context) error { return nil },
		close:   noop,
	}, nil
}
