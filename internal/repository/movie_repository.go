package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/model"
)

const movieColumns = "id, title, description, release_date, genre, created_at, updated_at"

// MovieRepo provides access to the movies table and the movie side of the
// movie_actors join table.
type MovieRepo struct {
	q querier
	d database.Dialect
}

func scanMovie(s rowScanner, m *model.Movie) error {
	return s.Scan(&m.ID, &m.Title, stringDest{&m.Description}, dateDest{&m.ReleaseDate},
		stringDest{&m.Genre}, timeDest{&m.CreatedAt}, timeDest{&m.UpdatedAt})
}

// List returns one page of movies, newest first, optionally filtered by a
// title substring, with actors and ratings attached.
func (r *MovieRepo) List(ctx context.Context, p model.PaginationQuery) ([]model.Movie, int64, error) {
	lq := newListQuery(r.d, "movies", movieColumns).whereContains("title", p.Search)
	var movies []model.Movie
	total, err := lq.run(ctx, r.q, p, func(s rowScanner) error {
		var m model.Movie
		if err := scanMovie(s, &m); err != nil {
			return err
		}
		movies = append(movies, m)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachRelations(ctx, movies); err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

// Get fetches a movie with its actors and ratings.
func (r *MovieRepo) Get(ctx context.Context, id uint64) (*model.Movie, error) {
	m, err := r.GetBare(ctx, id)
	if err != nil {
		return nil, err
	}
	movies := []model.Movie{*m}
	if err := r.attachRelations(ctx, movies); err != nil {
		return nil, err
	}
	return &movies[0], nil
}

// GetBare fetches a movie row without relations.
func (r *MovieRepo) GetBare(ctx context.Context, id uint64) (*model.Movie, error) {
	var m model.Movie
	err := scanMovie(r.q.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id = ? LIMIT 1", id), &m)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Exists reports whether a movie row with id is present.
func (r *MovieRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(1) FROM movies WHERE id = ?", id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts m and populates its ID and timestamps.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	now := nowUTC()
	const q = `INSERT INTO movies (title, description, release_date, genre, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q, m.Title, m.Description, m.ReleaseDate, m.Genre,
		r.d.Time(now), r.d.Time(now))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	m.CreatedAt, m.UpdatedAt = now, now
	return nil
}

// Update persists the scalar columns of m and bumps updated_at.  Callers
// load the row first; MySQL reports zero affected rows for no-op updates.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	now := nowUTC()
	const q = `UPDATE movies SET title = ?, description = ?, release_date = ?, genre = ?, updated_at = ?
	           WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, q, m.Title, m.Description, m.ReleaseDate, m.Genre, r.d.Time(now), m.ID); err != nil {
		return err
	}
	m.UpdatedAt = now
	return nil
}

// Delete removes a movie.  Ratings and join rows cascade in the schema; they
// are also deleted here first so the result does not depend on the
// connection enforcing foreign keys.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	if _, err := r.q.ExecContext(ctx, "DELETE FROM ratings WHERE movie_id = ?", id); err != nil {
		return err
	}
	if _, err := r.q.ExecContext(ctx, "DELETE FROM movie_actors WHERE movie_id = ?", id); err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Actors returns the cast of one movie, newest actor first.
func (r *MovieRepo) Actors(ctx context.Context, movieID uint64) ([]model.Actor, error) {
	byMovie, err := loadMovieActors(ctx, r.q, []uint64{movieID})
	if err != nil {
		return nil, err
	}
	actors := byMovie[movieID]
	if actors == nil {
		actors = []model.Actor{}
	}
	return actors, nil
}

// ReplaceActors makes actorIDs the exact cast of the movie.  An empty list
// clears the cast.
func (r *MovieRepo) ReplaceActors(ctx context.Context, movieID uint64, actorIDs []uint64) error {
	if _, err := r.q.ExecContext(ctx, "DELETE FROM movie_actors WHERE movie_id = ?", movieID); err != nil {
		return err
	}
	ids := uniqueIDs(actorIDs)
	if len(ids) == 0 {
		return nil
	}
	query := "INSERT INTO movie_actors (movie_id, actor_id) VALUES "
	args := make([]any, 0, len(ids)*2)
	for i, id := range ids {
		if i > 0 {
			query += ", "
		}
		query += "(?, ?)"
		args = append(args, movieID, id)
	}
	_, err := r.q.ExecContext(ctx, query, args...)
	return err
}

func (r *MovieRepo) attachRelations(ctx context.Context, movies []model.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	ids := make([]uint64, len(movies))
	for i := range movies {
		ids[i] = movies[i].ID
	}
	actors, err := loadMovieActors(ctx, r.q, ids)
	if err != nil {
		return err
	}
	ratings, err := loadMovieRatings(ctx, r.q, ids)
	if err != nil {
		return err
	}
	for i := range movies {
		movies[i].Actors = nonNil(actors[movies[i].ID])
		movies[i].Ratings = nonNil(ratings[movies[i].ID])
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Count returns the number of movies.
func (r *MovieRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&n)
	return n, err
}
