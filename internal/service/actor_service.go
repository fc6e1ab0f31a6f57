package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

const resourceActor = "Actor"

// ActorService implements the actor operations.
type ActorService struct {
	store *repository.Store
	n     notifier
}

func NewActorService(store *repository.Store, pub Publisher, log zerolog.Logger) *ActorService {
	return &ActorService{store: store, n: notifier{pub: pub, log: log.With().Str("service", "actors").Logger()}}
}

// FindAll lists actors; search matches against "first last".
func (s *ActorService) FindAll(ctx context.Context, q model.PaginationQuery) (model.Page[model.Actor], error) {
	q = q.Normalize()
	actors, total, err := s.store.Actors.List(ctx, q)
	if err != nil {
		return model.Page[model.Actor]{}, err
	}
	return model.NewPage(actors, total, q), nil
}

func (s *ActorService) FindOne(ctx context.Context, id uint64) (*model.Actor, error) {
	a, err := s.store.Actors.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, resourceActor, id)
	}
	return a, nil
}

// GetMovies returns the movies an actor appears in.
func (s *ActorService) GetMovies(ctx context.Context, id uint64) ([]model.Movie, error) {
	if _, err := s.store.Actors.GetBare(ctx, id); err != nil {
		return nil, notFound(err, resourceActor, id)
	}
	return s.store.Actors.Movies(ctx, id)
}

func (s *ActorService) Create(ctx context.Context, p model.Principal, in model.ActorInput) (*model.Actor, error) {
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, Validation("firstName and lastName must not be empty")
	}
	var out *model.Actor
	err := s.store.Tx(ctx, func(tx *repository.Store) error {
		a := &model.Actor{FirstName: first, LastName: last, BirthDate: in.BirthDate}
		if err := tx.Actors.Create(ctx, a); err != nil {
			return err
		}
		var err error
		out, err = tx.Actors.Get(ctx, a.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.n.changed(ctx, p, queue.ResourceActor, queue.ActionCreated, out.ID)
	return out, nil
}

func (s *ActorService) Update(ctx context.Context, p model.Principal, id uint64, patch model.ActorPatch) (*model.Actor, error) {
	for _, f := range []*string{patch.FirstName, patch.LastName} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return nil, Validation("firstName and lastName must not be empty")
		}
	}
	var out *model.Actor
	err := s.store.Tx(ctx, func(tx *repository.Store) error {
		a, err := tx.Actors.GetBare(ctx, id)
		if err != nil {
			return notFound(err, resourceActor, id)
		}
		patch.Apply(a)
		if err := tx.Actors.Update(ctx, a); err != nil {
			return err
		}
		out, err = tx.Actors.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.n.changed(ctx, p, queue.ResourceActor, queue.ActionUpdated, id)
	return out, nil
}

// Remove takes the actor out of every movie's cast and then deletes it.
// Both steps share one transaction: if either fails nothing changes.
func (s *ActorService) Remove(ctx context.Context, p model.Principal, id uint64) (model.Deleted, error) {
	var unlinked int64
	err := s.store.Tx(ctx, func(tx *repository.Store) error {
		if _, err := tx.Actors.GetBare(ctx, id); err != nil {
			return notFound(err, resourceActor, id)
		}
		n, err := tx.Actors.ClearLinks(ctx, id)
		if err != nil {
			return err
		}
		unlinked = n
		return notFound(tx.Actors.Delete(ctx, id), resourceActor, id)
	})
	if err != nil {
		return model.Deleted{}, err
	}
	s.n.log.Debug().Uint64("id", id).Int64("unlinked", unlinked).Msg("actor removed from casts")
	s.n.changed(ctx, p, queue.ResourceActor, queue.ActionDeleted, id)
	return model.Deleted{Deleted: true}, nil
}
