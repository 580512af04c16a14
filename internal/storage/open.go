package storage

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/makaka119911-oss/Tatiana-Server/internal/config"
)

// Open builds the store selected by configuration. Postgres connects with a
// bounded retry loop; when every attempt fails and the memory fallback is
// enabled, the service degrades to the ephemeral store instead of refusing
// to start.
func Open(cfg *config.Config, log *zap.Logger) (Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Info("Using in-memory store; records will not survive a restart")
		return NewMemory(), nil
	case config.DriverPostgres, "":
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	attempts := cfg.Database.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		store, err := NewPostgres(cfg.Database, log)
		if err == nil {
			log.Info("Database connection established successfully.")
			return store, nil
		}
		lastErr = err
		log.Warn("Database connection failed",
			zap.Int("attempt", attempt),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
		if attempt < attempts {
			time.Sleep(cfg.Database.RetryDelay)
		}
	}

	if cfg.Storage.FallbackToMemory {
		log.Warn("Falling back to the in-memory store; records will be lost on restart", zap.Error(lastErr))
		return NewMemory(), nil
	}
	return nil, lastErr
}
