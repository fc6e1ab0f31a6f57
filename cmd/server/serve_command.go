package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/router"
	"github.com/iliyamo/movie-catalog/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig(cmd.Context())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), ctx, cfg)
		},
	}
}

func runServe(parent context.Context, cc *commandContext, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := cc.logger(cfg)
	db, err := cc.openDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()
	store := repository.NewStore(db)

	if cfg.RunSeed {
		res, err := service.Seed(ctx, store, cfg.BcryptCost, log)
		if err != nil {
			return err
		}
		log.Info().Bool("skipped", res.Skipped).Int("movies", res.Movies).Msg("seed finished")
	}

	rdb := config.NewRedisClient(ctx, cfg.Redis)
	if rdb == nil {
		log.Warn().Str("addr", cfg.Redis.Address()).Msg("redis unavailable; cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	var pub service.Publisher
	if cfg.AMQP.Enabled {
		pub = queue.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue, log)
		if cfg.AMQP.Consume {
			consumer := queue.NewConsumer(cfg.AMQP.URL, cfg.AMQP.Queue, cfg.AMQP.AuditDir, log)
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error().Err(err).Msg("audit consumer stopped")
				}
			}()
		}
	}

	e := router.New(cfg, store, router.NewServices(cfg, store, pub, log), rdb, log)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Str("driver", cfg.DB.Driver).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
