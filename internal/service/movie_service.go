package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

const resourceMovie = "Movie"

// MovieService implements the movie operations.
type MovieService struct {
	store *repository.Store
	n     notifier
}

func NewMovieService(store *repository.Store, pub Publisher, log zerolog.Logger) *MovieService {
	return &MovieService{store: store, n: notifier{pub: pub, log: log.With().Str("service", "movies").Logger()}}
}

// FindAll lists movies, newest first, with actors and ratings attached.
func (s *MovieService) FindAll(ctx context.Context, q model.PaginationQuery) (model.Page[model.Movie], error) {
	q = q.Normalize()
	movies, total, err := s.store.Movies.List(ctx, q)
	if err != nil {
		return model.Page[model.Movie]{}, err
	}
	return model.NewPage(movies, total, q), nil
}

func (s *MovieService) FindOne(ctx context.Context, id uint64) (*model.Movie, error) {
	m, err := s.store.Movies.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, resourceMovie, id)
	}
	return m, nil
}

// GetActors returns the cast of a movie.
func (s *MovieService) GetActors(ctx context.Context, id uint64) ([]model.Actor, error) {
	ok, err := s.store.Movies.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFound(resourceMovie, id)
	}
	return s.store.Movies.Actors(ctx, id)
}

// Create inserts a movie and links the actors among in.ActorIDs that exist.
func (s *MovieService) Create(ctx context.Context, p model.Principal, in model.MovieInput) (*model.Movie, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, Validation("title must not be empty")
	}
	var out *model.Movie
	err := s.store.Tx(ctx, func(tx *repository.Store) error {
		actorIDs, err := resolveActors(ctx, tx, in.ActorIDs)
		if err != nil {
			return err
		}
		m := &model.Movie{
			Title:       title,
			Description: in.Description,
			ReleaseDate: in.ReleaseDate,
			Genre:       in.Genre,
		}
		if err := tx.Movies.Create(ctx, m); err != nil {
			return err
		}
		if len(actorIDs) > 0 {
			if err := tx.Movies.ReplaceActors(ctx, m.ID, actorIDs); err != nil {
				return err
			}
		}
		out, err = tx.Movies.Get(ctx, m.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.n.changed(ctx, p, queue.ResourceMovie, queue.ActionCreated, out.ID)
	return out, nil
}

// Update loads the movie, merges the fields present in patch, applies the
// cast rules and persists, all in one transaction.
func (s *MovieService) Update(ctx context.Context, p model.Principal, id uint64, patch model.MoviePatch) (*model.Movie, error) {
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, Validation("title must not be empty")
		}
		patch.Title = &t
	}
	var out *model.Movie
	err := s.store.Tx(ctx, func(tx *repository.Store) error {
		m, err := tx.Movies.GetBare(ctx, id)
		if err != nil {
			return notFound(err, resourceMovie, id)
		}
		patch.Apply(m)
		if err := tx.Movies.Update(ctx, m); err != nil {
			return err
		}
		if err := applyActorPatch(ctx, tx, id, patch.ActorIDs); err != nil {
			return err
		}
		out, err = tx.Movies.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.n.changed(ctx, p, queue.ResourceMovie, queue.ActionUpdated, id)
	return out, nil
}

// Remove deletes the movie; its ratings and cast links go with it.
func (s *MovieService) Remove(ctx context.Context, p model.Principal, id uint64) (model.Deleted, error) {
	err := s.store.Tx(ctx, func(tx *repository.Store) error {
		if _, err := tx.Movies.GetBare(ctx, id); err != nil {
			return notFound(err, resourceMovie, id)
		}
		return notFound(tx.Movies.Delete(ctx, id), resourceMovie, id)
	})
	if err != nil {
		return model.Deleted{}, err
	}
	s.n.changed(ctx, p, queue.ResourceMovie, queue.ActionDeleted, id)
	return model.Deleted{Deleted: true}, nil
}
