package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/service"
)

func newSeedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo data into an empty catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig(cmd.Context())
			if err != nil {
				return err
			}
			log := ctx.logger(cfg)
			db, err := ctx.openDB(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := service.Seed(cmd.Context(), repository.NewStore(db), cfg.BcryptCost, log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Skipped {
				fmt.Fprintln(out, "catalog already has movies; nothing seeded")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Kind", "Created"},
				[][]string{
					{"users", strconv.Itoa(res.Users)},
					{"actors", strconv.Itoa(res.Actors)},
					{"movies", strconv.Itoa(res.Movies)},
					{"ratings", strconv.Itoa(res.Ratings)},
				},
				[]columnAlignment{alignLeft, alignRight},
			))
			if res.Users > 0 {
				fmt.Fprintf(out, "login: %s / %s\n", service.SeedUsername, service.SeedPassword)
			}
			return nil
		},
	}
}
