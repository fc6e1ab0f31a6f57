package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iliyamo/movie-catalog/internal/service"
	"github.com/iliyamo/movie-catalog/internal/testsupport"
)

func newAuth(t *testing.T) *service.AuthService {
	t.Helper()
	store := testsupport.MustOpenStore(t, nil)
	return service.NewAuthService(store, "test-secret", 60, 4, nil, zerolog.Nop())
}

func TestRegisterLoginAndParse(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()

	u, err := auth.Register(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == 0 || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}

	for _, bad := range [][2]string{{"al", "password123"}, {"bob", "12345"}, {"  ", "password123"}} {
		if _, err := auth.Register(ctx, bad[0], bad[1]); !errors.Is(err, service.ErrValidation) {
			t.Fatalf("register(%q, %q): expected validation error, got %v", bad[0], bad[1], err)
		}
	}
	if _, err := auth.Register(ctx, "alice", "other-pass"); !errors.Is(err, service.ErrConflict) {
		t.Fatalf("duplicate register = %v, want conflict", err)
	}

	if got, err := auth.ValidateCredentials(ctx, "alice", "wrong"); err != nil || got != nil {
		t.Fatalf("wrong password = %+v, %v", got, err)
	}
	if got, err := auth.ValidateCredentials(ctx, "nobody", "x"); err != nil || got != nil {
		t.Fatalf("unknown user = %+v, %v", got, err)
	}
	valid, err := auth.ValidateCredentials(ctx, "alice", "password123")
	if err != nil || valid == nil || valid.PasswordHash != "" {
		t.Fatalf("valid credentials = %+v, %v", valid, err)
	}

	token, err := auth.Login(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	p, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.UserID != u.ID || p.Username != "alice" {
		t.Fatalf("principal = %+v", p)
	}
	if _, err := auth.Login(ctx, "alice", "nope"); !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("bad login = %v", err)
	}
	if _, err := auth.ParseToken("garbage"); !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("parse garbage = %v", err)
	}
	me, err := auth.Me(ctx, p)
	if err != nil || me.Username != "alice" {
		t.Fatalf("me = %+v, %v", me, err)
	}
}

func TestConcurrentRegistrationOnlyOneWins(t *testing.T) {
	auth := newAuth(t)
	ctx := context.Background()

	const n = 5
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := auth.Register(ctx, "racer", "password123")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, service.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflicts != n-1 {
		t.Fatalf("ok=%d conflicts=%d", ok, conflicts)
	}
}
