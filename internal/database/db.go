package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	connectAttempts = 10
	retryDelay      = 2 * time.Second
	pingTimeout     = 5 * time.Second
)

// NewDB opens a pgx-backed pool and waits for the server to answer,
// retrying while it starts up.
func NewDB(ctx context.Context, uri string) (*sql.DB, error) {
	db, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	for i := 1; ; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.PingContext(pctx)
		cancel()
		if err == nil {
			return db, nil
		}
		if i == connectAttempts {
			break
		}
		slog.Warn("database not ready, retrying", "attempt", i, "error", err)
		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping db: %w", ctx.Err())
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("failed to ping db after %d attempts: %w", connectAttempts, err)
}

func CloseDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("failed to close DB", "error", err)
	}
}
