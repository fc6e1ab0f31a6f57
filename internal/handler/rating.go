package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// RatingHandler serves /ratings.
type RatingHandler struct {
	Ratings *service.RatingService
}

func NewRatingHandler(s *service.RatingService) *RatingHandler { return &RatingHandler{Ratings: s} }

// List: GET /ratings?movieId=&page=&limit=
func (h *RatingHandler) List(c echo.Context) error {
	var q model.RatingQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Ratings.FindAll(ctx, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *RatingHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rt, err := h.Ratings.FindOne(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rt)
}

func (h *RatingHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in model.RatingInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rt, err := h.Ratings.Create(ctx, p, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rt)
}

func (h *RatingHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var patch model.RatingPatch
	if err := bindBody(c, &patch); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rt, err := h.Ratings.Update(ctx, p, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rt)
}

func (h *RatingHandler) Delete(c echo.Context) error {
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

	res, err := h.Ratings.Remove(ctx, p, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
