package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler { return &AuthHandler{Auth: s} }

// ----- DTOs -----

type registerResp struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type loginResp struct {
	AccessToken string `json:"access_token"`
}

// Register: POST /auth/register -> 201 {id, username}
func (h *AuthHandler) Register(c echo.Context) error {
	var req model.Credentials
	if err := bindBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Auth.Register(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, registerResp{ID: u.ID, Username: u.Username})
}

// Login: POST /auth/login -> 200 {access_token}
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.Credentials
	if err := bindBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	token, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResp{AccessToken: token})
}

// Me: GET /auth/me (protected)
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Auth.Me(ctx, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}
