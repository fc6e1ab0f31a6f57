package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/model"
)

const actorColumns = "id, first_name, last_name, birth_date, created_at, updated_at"

// ActorRepo provides access to the actors table.
type ActorRepo struct {
	q querier
	d database.Dialect
}

func scanActor(s rowScanner, a *model.Actor) error {
	return s.Scan(&a.ID, &a.FirstName, &a.LastName, dateDest{&a.BirthDate},
		timeDest{&a.CreatedAt}, timeDest{&a.UpdatedAt})
}

// List returns one page of actors.  Search matches "first last" as a single
// string, so a term may span the space between the names.
func (r *ActorRepo) List(ctx context.Context, p model.PaginationQuery) ([]model.Actor, int64, error) {
	fullName := r.d.Concat("first_name", "' '", "last_name")
	lq := newListQuery(r.d, "actors", actorColumns).whereContains(fullName, p.Search)
	var actors []model.Actor
	total, err := lq.run(ctx, r.q, p, func(s rowScanner) error {
		var a model.Actor
		if err := scanActor(s, &a); err != nil {
			return err
		}
		actors = append(actors, a)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachMovies(ctx, actors); err != nil {
		return nil, 0, err
	}
	return actors, total, nil
}

// Get fetches an actor with the movies it appears in.
func (r *ActorRepo) Get(ctx context.Context, id uint64) (*model.Actor, error) {
	a, err := r.GetBare(ctx, id)
	if err != nil {
		return nil, err
	}
	actors := []model.Actor{*a}
	if err := r.attachMovies(ctx, actors); err != nil {
		return nil, err
	}
	return &actors[0], nil
}

// GetBare fetches the actor row only.
func (r *ActorRepo) GetBare(ctx context.Context, id uint64) (*model.Actor, error) {
	var a model.Actor
	err := scanActor(r.q.QueryRowContext(ctx,
		"SELECT "+actorColumns+" FROM actors WHERE id = ? LIMIT 1", id), &a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByIDs returns the actors whose ids appear in ids.  Unknown ids are
// not an error; the result may be shorter than the input.
func (r *ActorRepo) FindByIDs(ctx context.Context, ids []uint64) ([]model.Actor, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []model.Actor{}, nil
	}
	query := "SELECT " + actorColumns + " FROM actors WHERE id IN (" + placeholders(len(ids)) +
		") ORDER BY created_at DESC, id DESC"
	rows, err := r.q.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	actors := []model.Actor{}
	for rows.Next() {
		var a model.Actor
		if err := scanActor(rows, &a); err != nil {
			return nil, err
		}
		actors = append(actors, a)
	}
	return actors, rows.Err()
}

func (r *ActorRepo) Create(ctx context.Context, a *model.Actor) error {
	now := nowUTC()
	const q = `INSERT INTO actors (first_name, last_name, birth_date, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q, a.FirstName, a.LastName, a.BirthDate, r.d.Time(now), r.d.Time(now))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	a.CreatedAt, a.UpdatedAt = now, now
	return nil
}

func (r *ActorRepo) Update(ctx context.Context, a *model.Actor) error {
	now := nowUTC()
	const q = `UPDATE actors SET first_name = ?, last_name = ?, birth_date = ?, updated_at = ? WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, q, a.FirstName, a.LastName, a.BirthDate, r.d.Time(now), a.ID); err != nil {
		return err
	}
	a.UpdatedAt = now
	return nil
}

// ClearLinks removes the actor from every movie's cast and reports how many
// join rows were removed.  The join table does not cascade on the actor
// side, so this must run before Delete.
func (r *ActorRepo) ClearLinks(ctx context.Context, actorID uint64) (int64, error) {
	res, err := r.q.ExecContext(ctx, "DELETE FROM movie_actors WHERE actor_id = ?", actorID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the actor row.  It fails with a foreign key error while join
// rows still reference the actor.
func (r *ActorRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM actors WHERE id = ?", id)
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

// Movies returns the movies an actor appears in.
func (r *ActorRepo) Movies(ctx context.Context, actorID uint64) ([]model.Movie, error) {
	byActor, err := loadActorMovies(ctx, r.q, []uint64{actorID})
	if err != nil {
		return nil, err
	}
	return nonNil(byActor[actorID]), nil
}

func (r *ActorRepo) attachMovies(ctx context.Context, actors []model.Actor) error {
	if len(actors) == 0 {
		return nil
	}
	ids := make([]uint64, len(actors))
	for i := range actors {
		ids[i] = actors[i].ID
	}
	movies, err := loadActorMovies(ctx, r.q, ids)
	if err != nil {
		return err
	}
	for i := range actors {
		actors[i].Movies = nonNil(movies[actors[i].ID])
	}
	return nil
}
