package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-catalog/internal/database"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Store groups the repositories over one connection pool or, inside Tx,
// over one transaction.
type Store struct {
	db   *database.DB
	inTx bool

	Movies  *MovieRepo
	Actors  *ActorRepo
	Ratings *RatingRepo
	Users   *UserRepo
}

// NewStore builds a Store over db.
func NewStore(db *database.DB) *Store {
	return newStore(db, db.DB, false)
}

func newStore(db *database.DB, q querier, inTx bool) *Store {
	d := db.Dialect
	return &Store{
		db:      db,
		inTx:    inTx,
		Movies:  &MovieRepo{q: q, d: d},
		Actors:  &ActorRepo{q: q, d: d},
		Ratings: &RatingRepo{q: q, d: d},
		Users:   &UserRepo{q: q, d: d},
	}
}

// Tx runs fn with a Store bound to a single transaction.  Calling Tx on a
// Store that is already transactional reuses the open transaction.
func (s *Store) Tx(ctx context.Context, fn func(tx *Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return database.WithTx(ctx, s.db.DB, func(tx *sql.Tx) error {
		return fn(newStore(s.db, tx, true))
	})
}

// Ping checks the underlying pool; used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
