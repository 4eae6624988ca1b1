package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ProfileBoard/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// SaveSession inserts or replaces the session row.
func (s *Storage) SaveSession(ctx context.Context, sess models.Session) error {
	data, err := json.Marshal(sess.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions(id, data, expires_at) VALUES(?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`,
		sess.ID, string(data), sess.ExpiresAt.Unix(),
	)
	return err
}

// GetSession loads a session; expired rows are removed and reported as ErrSessionExpired.
func (s *Storage) GetSession(ctx context.Context, id string) (models.Session, error) {
	var (
		raw       string
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx, "SELECT data, expires_at FROM sessions WHERE id = ?", id).Scan(&raw, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}

	sess := models.Session{ID: id, ExpiresAt: time.Unix(expiresAt, 0)}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.DeleteSession(ctx, id)
		return models.Session{}, ErrSessionExpired
	}
	if err := json.Unmarshal([]byte(raw), &sess.Data); err != nil {
		return models.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return sess, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	return err
}

// DeleteExpiredSessions removes every session past its expiry and returns the count.
func (s *Storage) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < ?", time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
