package repository

import (
	"context"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// Relation loaders run one query per relation for a whole batch of parent
// ids, never one per row.  Children come back newest first, matching the
// list order.

func loadMovieActors(ctx context.Context, q querier, movieIDs []uint64) (map[uint64][]model.Actor, error) {
	out := make(map[uint64][]model.Actor, len(movieIDs))
	if len(movieIDs) == 0 {
		return out, nil
	}
	query := `SELECT ma.movie_id, a.id, a.first_name, a.last_name, a.birth_date, a.created_at, a.updated_at
		FROM movie_actors ma
		JOIN actors a ON a.id = ma.actor_id
		WHERE ma.movie_id IN (` + placeholders(len(movieIDs)) + `)
		ORDER BY a.created_at DESC, a.id DESC`
	rows, err := q.QueryContext(ctx, query, idArgs(movieIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var movieID uint64
		var a model.Actor
		if err := rows.Scan(&movieID, &a.ID, &a.FirstName, &a.LastName, dateDest{&a.BirthDate},
			timeDest{&a.CreatedAt}, timeDest{&a.UpdatedAt}); err != nil {
			return nil, err
		}
		out[movieID] = append(out[movieID], a)
	}
	return out, rows.Err()
}

func loadActorMovies(ctx context.Context, q querier, actorIDs []uint64) (map[uint64][]model.Movie, error) {
	out := make(map[uint64][]model.Movie, len(actorIDs))
	if len(actorIDs) == 0 {
		return out, nil
	}
	query := `SELECT ma.actor_id, m.id, m.title, m.description, m.release_date, m.genre, m.created_at, m.updated_at
		FROM movie_actors ma
		JOIN movies m ON m.id = ma.movie_id
		WHERE ma.actor_id IN (` + placeholders(len(actorIDs)) + `)
		ORDER BY m.created_at DESC, m.id DESC`
	rows, err := q.QueryContext(ctx, query, idArgs(actorIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var actorID uint64
		var m model.Movie
		if err := rows.Scan(&actorID, &m.ID, &m.Title, stringDest{&m.Description}, dateDest{&m.ReleaseDate},
			stringDest{&m.Genre}, timeDest{&m.CreatedAt}, timeDest{&m.UpdatedAt}); err != nil {
			return nil, err
		}
		out[actorID] = append(out[actorID], m)
	}
	return out, rows.Err()
}

func loadMovieRatings(ctx context.Context, q querier, movieIDs []uint64) (map[uint64][]model.Rating, error) {
	out := make(map[uint64][]model.Rating, len(movieIDs))
	if len(movieIDs) == 0 {
		return out, nil
	}
	query := "SELECT " + ratingColumns + " FROM ratings WHERE movie_id IN (" +
		placeholders(len(movieIDs)) + ") ORDER BY created_at DESC, id DESC"
	rows, err := q.QueryContext(ctx, query, idArgs(movieIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rt model.Rating
		if err := scanRating(rows, &rt); err != nil {
			return nil, err
		}
		out[rt.MovieID] = append(out[rt.MovieID], rt)
	}
	return out, rows.Err()
}

// loadMoviesByID fetches bare movie rows keyed by id.
func loadMoviesByID(ctx context.Context, q querier, ids []uint64) (map[uint64]model.Movie, error) {
	ids = uniqueIDs(ids)
	out := make(map[uint64]model.Movie, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := "SELECT " + movieColumns + " FROM movies WHERE id IN (" + placeholders(len(ids)) + ")"
	rows, err := q.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var m model.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, err
		}
		out[m.ID] = m
	}
	return out, rows.Err()
}
