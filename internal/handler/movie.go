package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// MovieHandler serves /movies.
type MovieHandler struct {
	Movies *service.MovieService
}

func NewMovieHandler(s *service.MovieService) *MovieHandler { return &MovieHandler{Movies: s} }

// List: GET /movies?page=&limit=&search=
func (h *MovieHandler) List(c echo.Context) error {
	var q model.PaginationQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Movies.FindAll(ctx, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Get: GET /movies/:id
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Movies.FindOne(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Actors: GET /movies/:id/actors
func (h *MovieHandler) Actors(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	actors, err := h.Movies.GetActors(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actors)
}

// Create: POST /movies
func (h *MovieHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in model.MovieInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Movies.Create(ctx, p, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// Update: PATCH|PUT /movies/:id
func (h *MovieHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var patch model.MoviePatch
	if err := bindBody(c, &patch); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Movies.Update(ctx, p, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Delete: DELETE /movies/:id
func (h *MovieHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Movies.Remove(ctx, p, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
