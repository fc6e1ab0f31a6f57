package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

// Demo login created by Seed.
const (
	SeedUsername = "admin"
	SeedPassword = "password123"
)

// SeedResult reports what Seed inserted.
type SeedResult struct {
	Skipped bool
	Users   int
	Actors  int
	Movies  int
	Ratings int
}

type seedActor struct {
	first, last string
	born        model.Date
}

type seedMovie struct {
	title, description, genre string
	released                  model.Date
	cast                      []int // indexes into seedActors
	ratings                   []seedRating
}

type seedRating struct {
	value   int
	comment string
}

var seedActors = []seedActor{
	{"Leonardo", "DiCaprio", model.NewDate(1974, time.November, 11)},
	{"Brad", "Pitt", model.NewDate(1963, time.December, 18)},
	{"Margot", "Robbie", model.NewDate(1990, time.July, 2)},
	{"Robert", "Downey Jr.", model.NewDate(1965, time.April, 4)},
	{"Scarlett", "Johansson", model.NewDate(1984, time.November, 22)},
	{"Tom", "Hardy", model.NewDate(1977, time.September, 15)},
}

var seedMovies = []seedMovie{
	{
		title:       "Inception",
		description: "A thief who steals corporate secrets through dream-sharing technology is given the task of planting an idea into the mind of a C.E.O.",
		genre:       "Sci-Fi",
		released:    model.NewDate(2010, time.July, 16),
		cast:        []int{0, 5},
		ratings:     []seedRating{{9, "Mind-bending masterpiece!"}, {8, "Visually stunning"}},
	},
	{
		title:       "Once Upon a Time in Hollywood",
		description: "A faded television actor and his stunt double strive to achieve fame and success in the final years of Hollywood's Golden Age.",
		genre:       "Comedy/Drama",
		released:    model.NewDate(2019, time.July, 26),
		cast:        []int{0, 1, 2},
		ratings:     []seedRating{{8, "Tarantino at his best"}},
	},
	{
		title:       "The Avengers",
		description: "Earth's mightiest heroes must come together to stop Loki and his alien army from enslaving humanity.",
		genre:       "Action",
		released:    model.NewDate(2012, time.May, 4),
		cast:        []int{3, 4},
		ratings:     []seedRating{{9, "Epic superhero ensemble"}},
	},
	{
		title:       "Iron Man",
		description: "After being held captive, billionaire engineer Tony Stark creates a unique weaponized suit of armor to fight evil.",
		genre:       "Action",
		released:    model.NewDate(2008, time.May, 2),
		cast:        []int{3},
		ratings:     []seedRating{{7, "Started the MCU revolution"}},
	},
	{
		title:       "The Wolf of Wall Street",
		description: "Based on the true story of Jordan Belfort, from his rise to a wealthy stock-broker to his fall involving crime and corruption.",
		genre:       "Biography/Drama",
		released:    model.NewDate(2013, time.December, 25),
		cast:        []int{0, 2},
		ratings:     []seedRating{{10, "DiCaprio deserved the Oscar for this"}},
	},
	{
		title:       "The Dark Knight Rises",
		description: "Eight years after the Joker's reign of anarchy, Batman must return to defend Gotham City against Bane.",
		genre:       "Action",
		released:    model.NewDate(2012, time.July, 20),
		cast:        []int{5},
		ratings:     []seedRating{{8, "Great conclusion to the trilogy"}},
	},
}

// Seed fills an empty catalog with demo data in one transaction.  It does
// nothing when at least one movie exists.  The admin user is created only
// if missing.
func Seed(ctx context.Context, store *repository.Store, bcryptCost int, log zerolog.Logger) (SeedResult, error) {
	var res SeedResult
	err := store.Tx(ctx, func(tx *repository.Store) error {
		n, err := tx.Movies.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			res.Skipped = true
			return nil
		}

		if _, err := tx.Users.GetByUsername(ctx, SeedUsername); errors.Is(err, repository.ErrNotFound) {
			hash, err := utils.HashPassword(SeedPassword, bcryptCost)
			if err != nil {
				return err
			}
			if err := tx.Users.Create(ctx, &model.User{Username: SeedUsername, PasswordHash: hash}); err != nil {
				return err
			}
			res.Users++
		} else if err != nil {
			return err
		}

		actorIDs := make([]uint64, len(seedActors))
		for i, sa := range seedActors {
			born := sa.born
			a := &model.Actor{FirstName: sa.first, LastName: sa.last, BirthDate: &born}
			if err := tx.Actors.Create(ctx, a); err != nil {
				return err
			}
			actorIDs[i] = a.ID
			res.Actors++
		}

		for _, sm := range seedMovies {
			desc, genre, released := sm.description, sm.genre, sm.released
			m := &model.Movie{Title: sm.title, Description: &desc, Genre: &genre, ReleaseDate: &released}
			if err := tx.Movies.Create(ctx, m); err != nil {
				return err
			}
			cast := make([]uint64, len(sm.cast))
			for i, idx := range sm.cast {
				cast[i] = actorIDs[idx]
			}
			if err := tx.Movies.ReplaceActors(ctx, m.ID, cast); err != nil {
				return err
			}
			res.Movies++
			for _, sr := range sm.ratings {
				comment := sr.comment
				if err := tx.Ratings.Create(ctx, &model.Rating{MovieID: m.ID, Value: sr.value, Comment: &comment}); err != nil {
					return err
				}
				res.Ratings++
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	if res.Skipped {
		log.Info().Msg("seed skipped: catalog already has movies")
	} else {
		log.Info().Int("actors", res.Actors).Int("movies", res.Movies).Int("ratings", res.Ratings).Msg("database seeded")
	}
	return res, nil
}
