package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/movie-catalog/internal/router"
	"github.com/iliyamo/movie-catalog/internal/testsupport"
)

type api struct {
	t *testing.T
	e *echo.Echo
}

func newAPI(t *testing.T) *api {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	svc := router.NewServices(*cfg, store, nil, zerolog.Nop())
	return &api{t: t, e: router.New(*cfg, store, svc, nil, zerolog.Nop())}
}

func (a *api) do(method, path, body, token string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// token registers a fresh user and logs in.
func (a *api) token() string {
	a.t.Helper()
	if rec := a.do(http.MethodPost, "/auth/register", `{"username":"critic","password":"secret123"}`, ""); rec.Code != http.StatusCreated {
		a.t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}
	rec := a.do(http.MethodPost, "/auth/login", `{"username":"critic","password":"secret123"}`, "")
	if rec.Code != http.StatusOK {
		a.t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	decode(a.t, rec, &out)
	if out.AccessToken == "" {
		a.t.Fatalf("empty access token")
	}
	return out.AccessToken
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

type envelope struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, code int, path string) envelope {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status = %d, want %d (%s)", rec.Code, code, rec.Body.String())
	}
	var env envelope
	decode(t, rec, &env)
	if env.StatusCode != code || env.Path != path || env.Timestamp == "" || env.Error != http.StatusText(code) {
		t.Fatalf("bad envelope %+v", env)
	}
	return env
}

func TestHealthEndpoints(t *testing.T) {
	a := newAPI(t)

	if rec := a.do(http.MethodGet, "/healthz", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}

	rec := a.do(http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ready: %d %s", rec.Code, rec.Body.String())
	}
	var ready struct {
		Status       string `json:"status"`
		Dependencies map[string]struct {
			Status string `json:"status"`
		} `json:"dependencies"`
	}
	decode(t, rec, &ready)
	if ready.Status != "ok" || ready.Dependencies["database"].Status != "ok" || ready.Dependencies["redis"].Status != "disabled" {
		t.Fatalf("unexpected readiness %+v", ready)
	}

	rec = a.do(http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "catalog_http_requests_total") {
		t.Fatalf("metrics endpoint missing request counter")
	}
}

func TestAuthFlow(t *testing.T) {
	a := newAPI(t)
	tok := a.token()

	rec := a.do(http.MethodPost, "/auth/register", `{"username":"critic","password":"another1"}`, "")
	env := expectError(t, rec, http.StatusConflict, "/auth/register")
	if env.Message != "Username already exists" {
		t.Fatalf("message = %q", env.Message)
	}

	rec = a.do(http.MethodPost, "/auth/login", `{"username":"critic","password":"wrong"}`, "")
	expectError(t, rec, http.StatusUnauthorized, "/auth/login")

	rec = a.do(http.MethodGet, "/auth/me", "", tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: %d %s", rec.Code, rec.Body.String())
	}
	var me map[string]any
	decode(t, rec, &me)
	if me["username"] != "critic" {
		t.Fatalf("me = %v", me)
	}
	if _, leaked := me["passwordHash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}

	expectError(t, a.do(http.MethodGet, "/auth/me", "", "garbage"), http.StatusUnauthorized, "/auth/me")
}

func TestRegisterValidation(t *testing.T) {
	a := newAPI(t)
	rec := a.do(http.MethodPost, "/auth/register", `{"username":"ab","password":"123"}`, "")
	env := expectError(t, rec, http.StatusBadRequest, "/auth/register")
	if !strings.Contains(env.Message, "username") || !strings.Contains(env.Message, "password") {
		t.Fatalf("expected both fields reported, got %q", env.Message)
	}
}

func TestWritesRequireToken(t *testing.T) {
	a := newAPI(t)
	cases := []struct{ method, path string }{
		{http.MethodPost, "/movies"},
		{http.MethodPatch, "/movies/1"},
		{http.MethodPut, "/actors/1"},
		{http.MethodDelete, "/ratings/1"},
	}
	for _, tc := range cases {
		rec := a.do(tc.method, tc.path, `{}`, "")
		expectError(t, rec, http.StatusUnauthorized, tc.path)
	}
}

func TestMovieLifecycle(t *testing.T) {
	a := newAPI(t)
	tok := a.token()

	rec := a.do(http.MethodPost, "/actors", `{"firstName":"Leonardo","lastName":"DiCaprio","birthDate":"1974-11-11"}`, tok)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create actor: %d %s", rec.Code, rec.Body.String())
	}
	var actor struct {
		ID        uint64 `json:"id"`
		BirthDate string `json:"birthDate"`
	}
	decode(t, rec, &actor)
	if actor.BirthDate != "1974-11-11" {
		t.Fatalf("birthDate = %q", actor.BirthDate)
	}

	body := `{"title":"Inception","genre":"Sci-Fi","releaseDate":"2010-07-16","actorIds":[` + itoa(actor.ID) + `,9999]}`
	rec = a.do(http.MethodPost, "/movies", body, tok)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create movie: %d %s", rec.Code, rec.Body.String())
	}
	var movie struct {
		ID     uint64 `json:"id"`
		Title  string `json:"title"`
		Actors []struct {
			ID uint64 `json:"id"`
		} `json:"actors"`
	}
	decode(t, rec, &movie)
	if movie.Title != "Inception" || len(movie.Actors) != 1 || movie.Actors[0].ID != actor.ID {
		t.Fatalf("unexpected movie %+v", movie)
	}
	moviePath := "/movies/" + itoa(movie.ID)

	rec = a.do(http.MethodGet, "/movies?search=incep&page=1&limit=5", "", "")
	var page struct {
		Data  []map[string]any `json:"data"`
		Total int64            `json:"total"`
		Page  int              `json:"page"`
		Limit int              `json:"limit"`
	}
	decode(t, rec, &page)
	if page.Total != 1 || len(page.Data) != 1 || page.Page != 1 || page.Limit != 5 {
		t.Fatalf("unexpected page %+v", page)
	}

	rec = a.do(http.MethodPost, "/ratings", `{"value":9,"comment":"great","movieId":`+itoa(movie.ID)+`}`, tok)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create rating: %d %s", rec.Code, rec.Body.String())
	}

	rec = a.do(http.MethodGet, "/actors/"+itoa(actor.ID)+"/movies", "", "")
	var films []map[string]any
	decode(t, rec, &films)
	if len(films) != 1 || films[0]["title"] != "Inception" {
		t.Fatalf("actor movies = %v", films)
	}

	rec = a.do(http.MethodPatch, moviePath, `{"actorIds":[]}`, tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: %d %s", rec.Code, rec.Body.String())
	}
	rec = a.do(http.MethodGet, moviePath+"/actors", "", "")
	var cast []map[string]any
	decode(t, rec, &cast)
	if len(cast) != 0 {
		t.Fatalf("cast should be empty, got %v", cast)
	}

	rec = a.do(http.MethodDelete, moviePath, "", tok)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"deleted":true`) {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body.String())
	}
	env := expectError(t, a.do(http.MethodDelete, moviePath, "", tok), http.StatusNotFound, moviePath)
	if env.Message != "Movie with ID "+itoa(movie.ID)+" not found" {
		t.Fatalf("message = %q", env.Message)
	}

	rec = a.do(http.MethodGet, "/ratings?movieId="+itoa(movie.ID), "", "")
	decode(t, rec, &page)
	if page.Total != 0 {
		t.Fatalf("ratings must be removed with their movie, total=%d", page.Total)
	}
}

func TestBadRequests(t *testing.T) {
	a := newAPI(t)
	tok := a.token()

	env := expectError(t, a.do(http.MethodPost, "/movies", `{"title":"X","rating":5}`, tok), http.StatusBadRequest, "/movies")
	if !strings.Contains(env.Message, "rating") {
		t.Fatalf("unknown field not named: %q", env.Message)
	}
	expectError(t, a.do(http.MethodPost, "/movies", `{"genre":"Drama"}`, tok), http.StatusBadRequest, "/movies")
	expectError(t, a.do(http.MethodGet, "/movies/abc", "", ""), http.StatusBadRequest, "/movies/abc")
	expectError(t, a.do(http.MethodGet, "/movies?page=-1", "", ""), http.StatusBadRequest, "/movies")

	for _, v := range []string{"0", "11"} {
		expectError(t, a.do(http.MethodPost, "/ratings", `{"value":`+v+`,"movieId":1}`, tok), http.StatusBadRequest, "/ratings")
	}

	env = expectError(t, a.do(http.MethodPost, "/ratings", `{"value":5,"movieId":999}`, tok), http.StatusNotFound, "/ratings")
	if env.Message != "Movie with ID 999 not found" {
		t.Fatalf("message = %q", env.Message)
	}

	expectError(t, a.do(http.MethodGet, "/nowhere", "", ""), http.StatusNotFound, "/nowhere")
}

func TestRoutesAreRegistered(t *testing.T) {
	a := newAPI(t)
	seen := map[string]bool{}
	for _, r := range a.e.Routes() {
		seen[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /movies", "GET /movies/:id/actors", "PUT /movies/:id",
		"GET /actors/:id/movies", "DELETE /actors/:id",
		"GET /ratings", "PATCH /ratings/:id",
		"POST /auth/login", "GET /auth/me", "GET /metrics",
	} {
		if !seen[want] {
			t.Fatalf("route %q not registered", want)
		}
	}
}

func itoa(n uint64) string { return strconv.FormatUint(n, 10) }
