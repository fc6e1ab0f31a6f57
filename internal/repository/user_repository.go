package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/model"
)

// UserRepo provides access to the users table.
type UserRepo struct {
	q querier
	d database.Dialect
}

// Create inserts u with an already hashed password.  The unique index on
// username is the authority: a violation is reported as ErrDuplicate even
// when two registrations race.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Username = strings.TrimSpace(u.Username)
	now := nowUTC()
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		u.Username, u.PasswordHash, r.d.Time(now))
	if err != nil {
		if r.d.IsDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	u.CreatedAt = now
	return nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, "username = ?", strings.TrimSpace(username))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *UserRepo) getOne(ctx context.Context, cond string, arg any) (*model.User, error) {
	var u model.User
	err := r.q.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE "+cond+" LIMIT 1", arg).
		Scan(&u.ID, &u.Username, &u.PasswordHash, timeDest{&u.CreatedAt})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Count returns the number of users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}
