package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/model"
)

const ratingColumns = "id, value, comment, movie_id, created_at, updated_at"

// RatingRepo provides access to the ratings table.
type RatingRepo struct {
	q querier
	d database.Dialect
}

func scanRating(s rowScanner, rt *model.Rating) error {
	return s.Scan(&rt.ID, &rt.Value, stringDest{&rt.Comment}, &rt.MovieID,
		timeDest{&rt.CreatedAt}, timeDest{&rt.UpdatedAt})
}

// List returns one page of ratings, optionally restricted to one movie,
// each with its movie attached.  Ratings have no text search.
func (r *RatingRepo) List(ctx context.Context, q model.RatingQuery) ([]model.Rating, int64, error) {
	lq := newListQuery(r.d, "ratings", ratingColumns)
	if q.MovieID != 0 {
		lq.whereEq("movie_id", q.MovieID)
	}
	var ratings []model.Rating
	total, err := lq.run(ctx, r.q, q.PaginationQuery, func(s rowScanner) error {
		var rt model.Rating
		if err := scanRating(s, &rt); err != nil {
			return err
		}
		ratings = append(ratings, rt)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachMovies(ctx, ratings); err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

// Get fetches a rating with its movie.
func (r *RatingRepo) Get(ctx context.Context, id uint64) (*model.Rating, error) {
	var rt model.Rating
	err := scanRating(r.q.QueryRowContext(ctx,
		"SELECT "+ratingColumns+" FROM ratings WHERE id = ? LIMIT 1", id), &rt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ratings := []model.Rating{rt}
	if err := r.attachMovies(ctx, ratings); err != nil {
		return nil, err
	}
	return &ratings[0], nil
}

func (r *RatingRepo) Create(ctx context.Context, rt *model.Rating) error {
	now := nowUTC()
	const q = `INSERT INTO ratings (value, comment, movie_id, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q, rt.Value, rt.Comment, rt.MovieID, r.d.Time(now), r.d.Time(now))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	rt.CreatedAt, rt.UpdatedAt = now, now
	return nil
}

// Update persists value and comment.  movie_id is immutable.
func (r *RatingRepo) Update(ctx context.Context, rt *model.Rating) error {
	now := nowUTC()
	const q = `UPDATE ratings SET value = ?, comment = ?, updated_at = ? WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, q, rt.Value, rt.Comment, r.d.Time(now), rt.ID); err != nil {
		return err
	}
	rt.UpdatedAt = now
	return nil
}

func (r *RatingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM ratings WHERE id = ?", id)
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

func (r *RatingRepo) attachMovies(ctx context.Context, ratings []model.Rating) error {
	if len(ratings) == 0 {
		return nil
	}
	ids := make([]uint64, len(ratings))
	for i := range ratings {
		ids[i] = ratings[i].MovieID
	}
	movies, err := loadMoviesByID(ctx, r.q, ids)
	if err != nil {
		return err
	}
	for i := range ratings {
		if m, ok := movies[ratings[i].MovieID]; ok {
			ratings[i].Movie = &m
		}
	}
	return nil
}
