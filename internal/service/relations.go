package service

import (
	"context"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/repository"
)

// resolveActors turns requested actor ids into the ids of actors that exist.
// Unknown ids are dropped without error, so the result can be shorter than
// the request.  An empty request resolves to an empty set without a query.
func resolveActors(ctx context.Context, tx *repository.Store, ids []uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	actors, err := tx.Actors.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, len(actors))
	for i, a := range actors {
		out[i] = a.ID
	}
	return out, nil
}

// applyActorPatch implements the three update cases of a movie's cast:
// absent leaves it alone, empty clears it, non-empty replaces it wholesale.
func applyActorPatch(ctx context.Context, tx *repository.Store, movieID uint64, ids *[]uint64) error {
	if ids == nil {
		return nil
	}
	resolved, err := resolveActors(ctx, tx, *ids)
	if err != nil {
		return err
	}
	return tx.Movies.ReplaceActors(ctx, movieID, resolved)
}

// notFound maps repository.ErrNotFound to a named NotFound error and passes
// every other error through.
func notFound(err error, resource string, id uint64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NotFound(resource, id)
	}
	return err
}
