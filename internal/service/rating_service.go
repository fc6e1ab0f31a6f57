package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

const resourceRating = "Rating"

// RatingService implements the rating operations.
type RatingService struct {
	store *repository.Store
	n     notifier
}

func NewRatingService(store *repository.Store, pub Publisher, log zerolog.Logger) *RatingService {
	return &RatingService{store: store, n: notifier{pub: pub, log: log.With().Str("service", "ratings").Logger()}}
}

func checkValue(v int) error {
	if v < model.MinRating || v > model.MaxRating {
		return Validation("value must be between %d and %d", model.MinRating, model.MaxRating)
	}
	return nil
}

// FindAll lists ratings, optionally for one movie.  Search does not apply.
func (s *RatingService) FindAll(ctx context.Context, q model.RatingQuery) (model.Page[model.Rating], error) {
	q.PaginationQuery = q.Normalize()
	ratings, total, err := s.store.Ratings.List(ctx, q)
	if err != nil {
		return model.Page[model.Rating]{}, err
	}
	return model.NewPage(ratings, total, q.PaginationQuery), nil
}

func (s *RatingService) FindOne(ctx context.Context, id uint64) (*model.Rating, error) {
	rt, err := s.store.Ratings.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, resourceRating, id)
	}
	return rt, nil
}

// Create rates an existing movie.  A missing movie is reported as a Movie
// not found, not a Rating one.
func (s *RatingService) Create(ctx context.Context, p model.Principal, in model.RatingInput) (*model.Rating, error) {
	if err := checkValue(in.Value); err != nil {
		return nil, err
	}
	var out *model.Rating
	err := s.store.Tx(ctx, func(tx *repository.Store) error {
		ok, err := tx.Movies.Exists(ctx, in.MovieID)
		if err != nil {
			return err
		}
		if !ok {
			return NotFound(resourceMovie, in.MovieID)
		}
		rt := &model.Rating{Value: in.Value, Comment: in.Comment, MovieID: in.MovieID}
		if err := tx.Ratings.Create(ctx, rt); err != nil {
			return err
		}
		out, err = tx.Ratings.Get(ctx, rt.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.n.changed(ctx, p, queue.ResourceRating, queue.ActionCreated, out.ID)
	return out, nil
}

// Update changes value and comment; the movie of a rating never changes.
func (s *RatingService) Update(ctx context.Context, p model.Principal, id uint64, patch model.RatingPatch) (*model.Rating, error) {
	if patch.Value != nil {
		if err := checkValue(*patch.Value); err != nil {
			return nil, err
		}
	}
	var out *model.Rating
	err := s.store.Tx(ctx, func(tx *repository.Store) error {
		rt, err := tx.Ratings.Get(ctx, id)
		if err != nil {
			return notFound(err, resourceRating, id)
		}
		patch.Apply(rt)
		if err := tx.Ratings.Update(ctx, rt); err != nil {
			return err
		}
		out, err = tx.Ratings.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.n.changed(ctx, p, queue.ResourceRating, queue.ActionUpdated, id)
	return out, nil
}

func (s *RatingService) Remove(ctx context.Context, p model.Principal, id uint64) (model.Deleted, error) {
	err := s.store.Tx(ctx, func(tx *repository.Store) error {
		if _, err := tx.Ratings.Get(ctx, id); err != nil {
			return notFound(err, resourceRating, id)
		}
		return notFound(tx.Ratings.Delete(ctx, id), resourceRating, id)
	})
	if err != nil {
		return model.Deleted{}, err
	}
	s.n.changed(ctx, p, queue.ResourceRating, queue.ActionDeleted, id)
	return model.Deleted{Deleted: true}, nil
}
