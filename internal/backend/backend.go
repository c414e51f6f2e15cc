// Package backend selects and opens the configured store
// implementation.
package backend

import (
	"context"
	"fmt"

	"expensed/internal/config"
	"expensed/internal/log"
	"expensed/internal/store"
	"expensed/internal/store/memory"
	"expensed/internal/store/postgres"
	"expensed/internal/store/sqlite"
)

// Type identifies a store implementation.
type Type string

const (
	PostgresBackend Type = "postgres"
	SQLiteBackend   Type = "sqlite"
	MemoryBackend   Type = "memory"
)

func (t Type) String() string { return string(t) }

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case PostgresBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Result holds the opened store and its cleanup function.
type Result struct {
	Store   store.Store
	Cleanup func() error
}

// Open creates the store selected by cfg.DataBackend.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentBackend)
	}

	t := Type(cfg.DataBackend)
	switch t {
	case PostgresBackend:
		st, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres store: %w", err)
		}
		logger.Info("Initialized postgres backend")
		return &Result{Store: st, Cleanup: st.Close}, nil

	case SQLiteBackend:
		st, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: st, Cleanup: st.Close}, nil

	case MemoryBackend:
		st := memory.New()
		logger.Info("Initialized memory backend")
		return &Result{Store: st, Cleanup: st.Close}, nil

	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}
}
