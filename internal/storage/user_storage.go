package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ProfileBoard/internal/models"

	"modernc.org/sqlite"
)

// SQLITE_CONSTRAINT_UNIQUE
const sqliteConstraintUnique = 2067

var (
	ErrNameExists   = errors.New("user name already exists")
	ErrUserNotFound = errors.New("user not found")
)

// CreateUser inserts u and returns its new id.
func (s *Storage) CreateUser(ctx context.Context, u models.User) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users(name, password_hash, avatar, gender, bio) VALUES(?, ?, ?, ?, ?)",
		u.Name, u.PasswordHash, u.Avatar, u.Gender, u.Bio,
	)
	if err != nil {
		return 0, translateError(err)
	}
	return res.LastInsertId()
}

func (s *Storage) GetUserByName(ctx context.Context, name string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, password_hash, avatar, gender, bio FROM users WHERE name = ?", name)
	return scanUser(row)
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, password_hash, avatar, gender, bio FROM users WHERE id = ?", id)
	return scanUser(row)
}

// UpdateUserInfoByID writes the non-nil fields of upd to user id.
func (s *Storage) UpdateUserInfoByID(ctx context.Context, id int64, upd models.UserUpdate) error {
	var (
		sets []string
		args []interface{}
	)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *upd.PasswordHash)
	}
	if upd.Avatar != nil {
		sets = append(sets, "avatar = ?")
		args = append(args, *upd.Avatar)
	}
	if upd.Bio != nil {
		sets = append(sets, "bio = ?")
		args = append(args, *upd.Bio)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return translateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.Avatar, &u.Gender, &u.Bio); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func translateError(err error) error {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteConstraintUnique {
		return ErrNameExists
	}
	return err
}
