package testsupport

import (
	"context"
	"testing"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// MustOpenStore opens and migrates a SQLite store for tests and registers
// cleanup.  A nil cfg uses NewConfig.
func MustOpenStore(t testing.TB, cfg *config.Config) *repository.Store {
	t.Helper()
	if cfg == nil {
		cfg = NewConfig(t)
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		t.Fatalf("database.Open: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewStore(db)
}

// NewActor inserts an actor directly through the repository.
func NewActor(t testing.TB, store *repository.Store, first, last string) *model.Actor {
	t.Helper()

	a := &model.Actor{FirstName: first, LastName: last}
	if err := store.Actors.Create(context.Background(), a); err != nil {
		t.Fatalf("create actor: %v", err)
	}
	return a
}

// NewMovie inserts a movie and links the given actors.
func NewMovie(t testing.TB, store *repository.Store, title string, actorIDs ...uint64) *model.Movie {
	t.Helper()

	ctx := context.Background()
	m := &model.Movie{Title: title}
	if err := store.Movies.Create(ctx, m); err != nil {
		t.Fatalf("create movie: %v", err)
	}
	if len(actorIDs) > 0 {
		if err := store.Movies.ReplaceActors(ctx, m.ID, actorIDs); err != nil {
			t.Fatalf("link actors: %v", err)
		}
	}
	return m
}

// NewRating inserts a rating for movieID.
func NewRating(t testing.TB, store *repository.Store, movieID uint64, value int) *model.Rating {
	t.Helper()

	rt := &model.Rating{MovieID: movieID, Value: value}
	if err := store.Ratings.Create(context.Background(), rt); err != nil {
		t.Fatalf("create rating: %v", err)
	}
	return rt
}

// PrincipalFor returns a principal for tests that do not care about identity.
func PrincipalFor(username string) model.Principal {
	return model.Principal{UserID: 1, Username: username}
}
