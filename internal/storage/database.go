package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

type Storage struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database at path and creates tables.
func Open(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.Open(): failed to open database: %w", err)
	}

	ctx := context.Background()
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage.Open(): failed to connect to database: %w", err)
	}

	// "database is locked" 방지
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("storage.Open(): %s: %w", pragma, err)
		}
	}

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"name" TEXT NOT NULL UNIQUE,
			"password_hash" TEXT NOT NULL,
			"avatar" TEXT NOT NULL DEFAULT '',
			"gender" TEXT NOT NULL DEFAULT 'x',
			"bio" TEXT NOT NULL DEFAULT ''
	);`
	createSessionsTable := `
	CREATE TABLE IF NOT EXISTS sessions (
			"id" TEXT PRIMARY KEY,
			"data" TEXT NOT NULL,
			"expires_at" INTEGER NOT NULL
	);`

	if _, err := db.ExecContext(ctx, createUsersTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage.Open(): failed to create users table: %w", err)
	}
	if _, err := db.ExecContext(ctx, createSessionsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage.Open(): failed to create sessions table: %w", err)
	}
	log.Println("storage.Open(): Init and create table successfully!")

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
