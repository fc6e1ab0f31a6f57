package service_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/service"
	"github.com/iliyamo/movie-catalog/internal/testsupport"
)

func TestSeedIsSkippedOnceMoviesExist(t *testing.T) {
	store := testsupport.MustOpenStore(t, nil)
	ctx := context.Background()

	res, err := service.Seed(ctx, store, 4, zerolog.Nop())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if res.Skipped || res.Users != 1 || res.Actors != 6 || res.Movies != 6 || res.Ratings != 7 {
		t.Fatalf("unexpected seed result: %+v", res)
	}

	again, err := service.Seed(ctx, store, 4, zerolog.Nop())
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if !again.Skipped {
		t.Fatalf("second seed must be skipped: %+v", again)
	}

	movies := service.NewMovieService(store, nil, zerolog.Nop())
	page, err := movies.FindAll(ctx, model.PaginationQuery{Search: "inception"})
	if err != nil || page.Total != 1 {
		t.Fatalf("find inception = %+v, %v", page, err)
	}
	inception := page.Data[0]
	if len(inception.Actors) != 2 || len(inception.Ratings) != 2 {
		t.Fatalf("inception relations: %d actors, %d ratings", len(inception.Actors), len(inception.Ratings))
	}
	if inception.ReleaseDate == nil || inception.ReleaseDate.String() != "2010-07-16" {
		t.Fatalf("release date = %v", inception.ReleaseDate)
	}

	auth := service.NewAuthService(store, "s", 60, 4, nil, zerolog.Nop())
	if _, err := auth.Login(ctx, service.SeedUsername, service.SeedPassword); err != nil {
		t.Fatalf("seeded admin cannot log in: %v", err)
	}
}
