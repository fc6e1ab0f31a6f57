package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
)

// RegisterRoutes registers the operational endpoints: liveness, readiness
// and the Prometheus scrape target.  They bypass the cache and rate limiter.
func RegisterRoutes(e *echo.Echo, ready *handler.ReadinessHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/health/ready", ready.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the authentication routes.  Register and login are
// open; /auth/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, tokens middleware.TokenParser, limit echo.MiddlewareFunc) {
	g := e.Group("/auth", limit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.GET("/me", a.Me, middleware.JWTAuth(tokens))
}

// RegisterCatalog registers the movie, actor and rating resources.  Reads are
// public; every write requires a Bearer token.  The cache middleware wraps
// writes as well so that a successful mutation invalidates cached reads.
func RegisterCatalog(e *echo.Echo, h Handlers, tokens middleware.TokenParser, limit, cache echo.MiddlewareFunc) {
	auth := middleware.JWTAuth(tokens)

	movies := e.Group("/movies", limit, cache)
	movies.GET("", h.Movies.List)
	movies.GET("/:id", h.Movies.Get)
	movies.GET("/:id/actors", h.Movies.Actors)
	movies.POST("", h.Movies.Create, auth)
	movies.PATCH("/:id", h.Movies.Update, auth)
	movies.PUT("/:id", h.Movies.Update, auth) // same partial semantics as PATCH
	movies.DELETE("/:id", h.Movies.Delete, auth)

	actors := e.Group("/actors", limit, cache)
	actors.GET("", h.Actors.List)
	actors.GET("/:id", h.Actors.Get)
	actors.GET("/:id/movies", h.Actors.Movies)
	actors.POST("", h.Actors.Create, auth)
	actors.PATCH("/:id", h.Actors.Update, auth)
	actors.PUT("/:id", h.Actors.Update, auth)
	actors.DELETE("/:id", h.Actors.Delete, auth)

	ratings := e.Group("/ratings", limit, cache)
	ratings.GET("", h.Ratings.List)
	ratings.GET("/:id", h.Ratings.Get)
	ratings.POST("", h.Ratings.Create, auth)
	ratings.PATCH("/:id", h.Ratings.Update, auth)
	ratings.PUT("/:id", h.Ratings.Update, auth)
	ratings.DELETE("/:id", h.Ratings.Delete, auth)
}
