package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/logger"
)

// commandContext loads configuration once and hands it to subcommands.
type commandContext struct {
	configOnce sync.Once
	config     config.Config
	configErr  error
}

func (c *commandContext) ensureConfig(ctx context.Context) (config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.Load(ctx)
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cfg config.Config) zerolog.Logger {
	return logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
}

// openDB opens the configured store and applies pending migrations.
func (c *commandContext) openDB(ctx context.Context, cfg config.Config, log zerolog.Logger) (*database.DB, error) {
	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	applied, err := db.Migrate(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migration applied")
	}
	return db, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "movie-catalog",
		Short:         "Movie catalog REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig(cmd.Context())
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newSeedCommand(ctx))
	rootCmd.AddCommand(newRoutesCommand())
	return rootCmd
}
