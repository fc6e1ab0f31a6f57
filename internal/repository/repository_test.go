package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/testsupport"
)

func TestMovieListPaginationAndOrder(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	ctx := context.Background()

	var ids []uint64
	for i := 0; i < 7; i++ {
		ids = append(ids, testsupport.NewMovie(t, store, fmt.Sprintf("Movie %d", i)).ID)
	}

	page1, total1, err := store.Movies.List(ctx, model.PaginationQuery{Page: 1, Limit: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	page3, total3, err := store.Movies.List(ctx, model.PaginationQuery{Page: 3, Limit: 3})
	if err != nil {
		t.Fatalf("list page 3: %v", err)
	}
	beyond, totalBeyond, err := store.Movies.List(ctx, model.PaginationQuery{Page: 10, Limit: 3})
	if err != nil {
		t.Fatalf("list beyond: %v", err)
	}

	if total1 != 7 || total3 != 7 || totalBeyond != 7 {
		t.Fatalf("total must not depend on page: %d %d %d", total1, total3, totalBeyond)
	}
	if len(page1) != 3 || len(page3) != 1 || len(beyond) != 0 {
		t.Fatalf("unexpected page sizes: %d %d %d", len(page1), len(page3), len(beyond))
	}
	// newest first
	if page1[0].ID != ids[6] || page3[0].ID != ids[0] {
		t.Fatalf("unexpected order: first=%d last=%d", page1[0].ID, page3[0].ID)
	}
	if page1[0].Actors == nil || page1[0].Ratings == nil {
		t.Fatalf("list must eager load relations")
	}
}

func TestMovieSearchIsCaseInsensitiveAndEscaped(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	ctx := context.Background()
	testsupport.NewMovie(t, store, "Inception")
	testsupport.NewMovie(t, store, "The Avengers")
	testsupport.NewMovie(t, store, "100% Wolf")

	got, total, err := store.Movies.List(ctx, model.PaginationQuery{Search: "INCEP"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || got[0].Title != "Inception" {
		t.Fatalf("unexpected search result: %d %+v", total, got)
	}

	_, total, err = store.Movies.List(ctx, model.PaginationQuery{Search: "%"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Fatalf("%% must match literally, got %d rows", total)
	}
	_, total, _ = store.Movies.List(ctx, model.PaginationQuery{Search: "_"})
	if total != 0 {
		t.Fatalf("_ must match literally, got %d rows", total)
	}
}

func TestActorSearchSpansFullName(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	ctx := context.Background()
	hanks := testsupport.NewActor(t, store, "Tom", "Hanks")
	testsupport.NewActor(t, store, "Tomás", "Han")
	testsupport.NewActor(t, store, "Tom", "Hardy")

	got, total, err := store.Actors.List(ctx, model.PaginationQuery{Search: "tom han"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].ID != hanks.ID {
		t.Fatalf("expected only Tom Hanks, got %d %+v", total, got)
	}
}

func TestActorSearchFoldsNonASCII(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	ctx := context.Background()
	nunez := testsupport.NewActor(t, store, "Tomás", "Ñúñez")
	testsupport.NewActor(t, store, "Tom", "Nunez")

	for _, term := range []string{"Ñúñez", "ñúñez", "ÑÚÑEZ", "Tomás Ñ", "TOMÁS"} {
		got, total, err := store.Actors.List(ctx, model.PaginationQuery{Search: term})
		if err != nil {
			t.Fatalf("list %q: %v", term, err)
		}
		if total != 1 || len(got) != 1 || got[0].ID != nunez.ID {
			t.Fatalf("search %q: expected only Tomás Ñúñez, got %d %+v", term, total, got)
		}
	}
}

func TestReplaceActorsAndFindByIDs(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	ctx := context.Background()
	a1 := testsupport.NewActor(t, store, "Leonardo", "DiCaprio")
	a2 := testsupport.NewActor(t, store, "Tom", "Hardy")
	m := testsupport.NewMovie(t, store, "Inception", a1.ID, a2.ID)

	found, err := store.Actors.FindByIDs(ctx, []uint64{a1.ID, a1.ID, 999})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 1 || found[0].ID != a1.ID {
		t.Fatalf("unknown ids must be dropped and duplicates collapsed: %+v", found)
	}

	if err := store.Movies.ReplaceActors(ctx, m.ID, []uint64{a2.ID}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	cast, err := store.Movies.Actors(ctx, m.ID)
	if err != nil {
		t.Fatalf("actors: %v", err)
	}
	if len(cast) != 1 || cast[0].ID != a2.ID {
		t.Fatalf("expected cast {a2}, got %+v", cast)
	}

	if err := store.Movies.ReplaceActors(ctx, m.ID, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	cast, _ = store.Movies.Actors(ctx, m.ID)
	if len(cast) != 0 {
		t.Fatalf("expected empty cast, got %+v", cast)
	}
}

func TestActorDeleteRequiresClearedLinks(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	ctx := context.Background()
	a := testsupport.NewActor(t, store, "Brad", "Pitt")
	m1 := testsupport.NewMovie(t, store, "Once Upon a Time in Hollywood", a.ID)
	m2 := testsupport.NewMovie(t, store, "Fight Club", a.ID)

	if err := store.Actors.Delete(ctx, a.ID); err == nil {
		t.Fatal("deleting a linked actor must fail on the join table foreign key")
	}

	n, err := store.Actors.ClearLinks(ctx, a.ID)
	if err != nil {
		t.Fatalf("clear links: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 join rows removed, got %d", n)
	}
	if err := store.Actors.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, id := range []uint64{m1.ID, m2.ID} {
		cast, err := store.Movies.Actors(ctx, id)
		if err != nil {
			t.Fatalf("actors: %v", err)
		}
		if len(cast) != 0 {
			t.Fatalf("movie %d still lists removed actor", id)
		}
	}
	if _, err := store.Actors.Get(ctx, a.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestActorClearLinksRollsBackWithTx(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	ctx := context.Background()
	a := testsupport.NewActor(t, store, "Brad", "Pitt")
	testsupport.NewMovie(t, store, "Fight Club", a.ID)
	testsupport.NewMovie(t, store, "Seven", a.ID)

	boom := errors.New("boom")
	err := store.Tx(ctx, func(tx *repository.Store) error {
		n, err := tx.Actors.ClearLinks(ctx, a.ID)
		if err != nil {
			return err
		}
		if n != 2 {
			t.Errorf("cleared %d links inside tx, want 2", n)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected tx error, got %v", err)
	}

	movies, err := store.Actors.Movies(ctx, a.ID)
	if err != nil {
		t.Fatalf("movies: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("links must survive a rolled back clear, got %d movies", len(movies))
	}
}

func TestMovieDeleteRemovesRatingsAndLinks(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	ctx := context.Background()
	a := testsupport.NewActor(t, store, "Margot", "Robbie")
	m := testsupport.NewMovie(t, store, "Barbie", a.ID)
	rt := testsupport.NewRating(t, store, m.ID, 8)

	got, err := store.Movies.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Actors) != 1 || len(got.Ratings) != 1 {
		t.Fatalf("expected relations loaded, got %+v", got)
	}

	if err := store.Movies.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Ratings.Get(ctx, rt.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("rating should be gone, got %v", err)
	}
	movies, err := store.Actors.Movies(ctx, a.ID)
	if err != nil {
		t.Fatalf("movies: %v", err)
	}
	if len(movies) != 0 {
		t.Fatalf("join rows should be gone")
	}
	if err := store.Movies.Delete(ctx, m.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
}

func TestRatingListFiltersByMovie(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	ctx := context.Background()
	m1 := testsupport.NewMovie(t, store, "Iron Man")
	m2 := testsupport.NewMovie(t, store, "The Avengers")
	testsupport.NewRating(t, store, m1.ID, 7)
	testsupport.NewRating(t, store, m2.ID, 9)
	testsupport.NewRating(t, store, m2.ID, 10)

	got, total, err := store.Ratings.List(ctx, model.RatingQuery{MovieID: m2.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Fatalf("expected 2 ratings, got %d", total)
	}
	for _, rt := range got {
		if rt.MovieID != m2.ID || rt.Movie == nil || rt.Movie.Title != "The Avengers" {
			t.Fatalf("unexpected rating %+v", rt)
		}
	}

	_, total, _ = store.Ratings.List(ctx, model.RatingQuery{})
	if total != 3 {
		t.Fatalf("unfiltered total = %d", total)
	}
}

func TestRatingValueCheckConstraint(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	m := testsupport.NewMovie(t, store, "Dune")
	err := store.Ratings.Create(context.Background(), &model.Rating{MovieID: m.ID, Value: 11})
	if err == nil {
		t.Fatal("store must reject out of range values")
	}
}

func TestUserDuplicateUsername(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	ctx := context.Background()

	u := &model.User{Username: "admin", PasswordHash: "x"}
	if err := store.Users.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected id to be set")
	}
	err := store.Users.Create(ctx, &model.User{Username: "admin", PasswordHash: "y"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := store.Users.GetByUsername(ctx, "admin")
	if err != nil || got.ID != u.ID || got.PasswordHash != "x" {
		t.Fatalf("lookup = %+v, %v", got, err)
	}
	if _, err := store.Users.GetByUsername(ctx, "nobody"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTxRollsBackOnError(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Tx(ctx, func(tx *repository.Store) error {
		if err := tx.Movies.Create(ctx, &model.Movie{Title: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	n, err := store.Movies.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("movie survived rollback")
	}
}
