package router

import (
	"net/http"
	"testing"
	"time"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/database"
	"portfolio-api/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type noopPool struct{}

func (noopPool) Submit(worker.Task) {}
func (noopPool) Stop()              {}

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, noopPool{}, time.Minute)

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodPost + " /api/login",
		http.MethodGet + " /api/me",
		http.MethodPost + " /api/reset-password",
		http.MethodPost + " /api/articles",
		http.MethodGet + " /api/articles",
		http.MethodGet + " /api/articles/:slug",
		http.MethodPut + " /api/articles/:id",
		http.MethodDelete + " /api/articles/:id",
		http.MethodPost + " /api/projects",
		http.MethodGet + " /api/projects",
		http.MethodGet + " /api/projects/:slug",
		http.MethodPut + " /api/projects/:id",
		http.MethodDelete + " /api/projects/:id",
		http.MethodPost + " /api/users",
		http.MethodGet + " /api/users",
		http.MethodGet + " /api/users/:user_id",
		http.MethodPut + " /api/users/:user_id",
		http.MethodDelete + " /api/users/:user_id",
	}

	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}
