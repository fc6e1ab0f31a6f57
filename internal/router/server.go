package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// Handlers groups the resource handlers mounted by RegisterCatalog.
type Handlers struct {
	Movies  *handler.MovieHandler
	Actors  *handler.ActorHandler
	Ratings *handler.RatingHandler
}

// Services is everything New needs from the service layer.
type Services struct {
	Movies  *service.MovieService
	Actors  *service.ActorService
	Ratings *service.RatingService
	Auth    *service.AuthService
}

// NewServices builds the service layer on top of one store.
func NewServices(cfg config.Config, store *repository.Store, pub service.Publisher, log zerolog.Logger) Services {
	return Services{
		Movies:  service.NewMovieService(store, pub, log),
		Actors:  service.NewActorService(store, pub, log),
		Ratings: service.NewRatingService(store, pub, log),
		Auth:    service.NewAuthService(store, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost, pub, log),
	}
}

// New builds the Echo instance with the global middleware chain and every
// route registered.  rdb may be nil, which disables the cache and the rate
// limiter.
func New(cfg config.Config, store *repository.Store, svc Services, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))

	limit := middleware.NewTokenBucket(cfg.RateLimit, rdb, log)
	cache := middleware.NewRedisCache(cfg.Cache, rdb, log)

	RegisterRoutes(e, handler.NewReadinessHandler(store, rdb))
	RegisterAuth(e, handler.NewAuthHandler(svc.Auth), svc.Auth, limit)
	RegisterCatalog(e, Handlers{
		Movies:  handler.NewMovieHandler(svc.Movies),
		Actors:  handler.NewActorHandler(svc.Actors),
		Ratings: handler.NewRatingHandler(svc.Ratings),
	}, svc.Auth, limit, cache)
	return e
}
