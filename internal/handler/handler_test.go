package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/service"
)

func TestValidatorMessagesUseJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&model.RatingInput{Value: 11})
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
	msg := he.Message.(string)
	if !strings.Contains(msg, "value must be at most 10") || !strings.Contains(msg, "movieId is required") {
		t.Fatalf("message = %q", msg)
	}

	if err := v.Validate(&model.RatingInput{Value: 10, MovieID: 1}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestErrorHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{service.NotFound("Actor", 3), http.StatusNotFound, "Actor with ID 3 not found"},
		{service.Conflict("Username already exists"), http.StatusConflict, "Username already exists"},
		{service.Validation("value must be between %d and %d", 1, 10), http.StatusBadRequest, "value must be between 1 and 10"},
		{service.Unauthorized("invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"), http.StatusTooManyRequests, "rate limit exceeded"},
		{fmt.Errorf("remove actor: %w", service.NotFound("Actor", 3)), http.StatusNotFound, "Actor with ID 3 not found"},
		{errors.New("db exploded"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/actors/3", nil), rec)
		h(tc.err, c)

		if rec.Code != tc.code {
			t.Fatalf("%v: status = %d, want %d", tc.err, rec.Code, tc.code)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.StatusCode != tc.code || body.Message != tc.msg || body.Path != "/actors/3" {
			t.Fatalf("%v: envelope = %+v", tc.err, body)
		}
	}
}

func TestParseID(t *testing.T) {
	e := echo.New()
	for in, ok := range map[string]bool{"1": true, "42": true, "0": false, "-1": false, "x": false} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(in)
		_, err := parseID(c)
		if (err == nil) != ok {
			t.Fatalf("parseID(%q) err = %v", in, err)
		}
	}
}

func TestBindBodyRejectsUnknownFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"A","bogus":1}`)), httptest.NewRecorder())

	var in model.MovieInput
	err := bindBody(c, &in)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
