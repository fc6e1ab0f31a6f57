package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iliyamo/movie-catalog/internal/logger"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v: %v (output %q)", args, err, out.String())
	}
	return out.String()
}

func sqliteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_LEVEL", "error")
	logger.Reset()
	t.Cleanup(logger.Reset)
}

func TestRoutesCommandListsCatalog(t *testing.T) {
	out := execute(t, "routes")
	for _, want := range []string{"/movies/:id/actors", "/actors/:id/movies", "/ratings", "/auth/login", "/health/ready"} {
		if !strings.Contains(out, want) {
			t.Fatalf("routes output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "echo_route_not_found") {
		t.Fatalf("not-found placeholders must be hidden")
	}
}

func TestMigrateThenSeed(t *testing.T) {
	sqliteEnv(t)

	if out := execute(t, "migrate"); !strings.Contains(out, "schema up to date (sqlite)") {
		t.Fatalf("migrate output %q", out)
	}

	out := execute(t, "seed")
	if !strings.Contains(out, "movies") || !strings.Contains(out, "login: admin") {
		t.Fatalf("seed output %q", out)
	}

	if out := execute(t, "seed"); !strings.Contains(out, "nothing seeded") {
		t.Fatalf("second seed should skip, got %q", out)
	}
}
