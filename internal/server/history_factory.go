package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/team-matches-service/internal/config"
	"github.com/preston-bernstein/team-matches-service/internal/history"
	"github.com/preston-bernstein/team-matches-service/internal/logging"
)

func buildHistoryBackend(cfg config.HistoryConfig) (history.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		backend, err := history.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case config.BackendRedis:
		return history.NewRedisBackend(history.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.RedisKey,
		}), nil
	default:
		return history.NewFileBackend(cfg.Path), nil
	}
}

// loadHistory warms the store. A failed load starts from empty history.
func loadHistory(store *history.Store, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	if err := store.Load(ctx); err != nil {
		logging.Warn(logger, "history load failed, starting empty",
			"error", err,
			logging.FieldBackend, store.BackendName(),
		)
		return
	}
	logging.Info(logger, "history loaded",
		logging.FieldBackend, store.BackendName(),
		logging.FieldCount, store.Len(),
	)
}
