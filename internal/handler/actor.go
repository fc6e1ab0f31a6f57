package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// ActorHandler serves /actors.
type ActorHandler struct {
	Actors *service.ActorService
}

func NewActorHandler(s *service.ActorService) *ActorHandler { return &ActorHandler{Actors: s} }

func (h *ActorHandler) List(c echo.Context) error {
	var q model.PaginationQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Actors.FindAll(ctx, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ActorHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Actors.FindOne(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Movies: GET /actors/:id/movies
func (h *ActorHandler) Movies(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	movies, err := h.Actors.GetMovies(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movies)
}

func (h *ActorHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in model.ActorInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Actors.Create(ctx, p, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *ActorHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var patch model.ActorPatch
	if err := bindBody(c, &patch); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Actors.Update(ctx, p, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Delete removes the actor from every cast before deleting it.
func (h *ActorHandler) Delete(c echo.Context) error {
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

	res, err := h.Actors.Remove(ctx, p, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
