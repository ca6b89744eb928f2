package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	loadConfig = config.Load
	newPgxPool = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	exitFunc = func(code int) {}
}

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL: "postgres://localhost/portfolio",
		JWTSecret:   "secret",
		RedisAddr:   "127.0.0.1:6379",
		WorkerCount: 1,
	}
}

// seedRow fills scan destinations with zero-ish values so the seed's
// lookups and inserts both succeed.
type seedRow struct {
	scanErr error
}

func (r seedRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	for _, d := range dest {
		switch v := d.(type) {
		case *int:
			*v = 1
		case *string:
			*v = "x"
		case *bool:
			*v = false
		case *time.Time:
			*v = time.Now()
		case *uuid.UUID:
			*v = uuid.New()
		case **string, **time.Time:
			// leave optional fields nil
		}
	}
	return nil
}

func TestRunWithExistingData(t *testing.T) {
	t.Cleanup(restoreGlobals)
	loadConfig = func() (*config.Config, error) { return testConfig(), nil }
	runMigrationsFn = func(string) error { return nil }

	inserts := 0
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			if strings.HasPrefix(strings.TrimSpace(sql), "INSERT") {
				inserts++
			}
			return seedRow{}
		},
	}
	newPgxPool = func(context.Context, string) (database.DB, error) { return db, nil }

	require.NoError(t, run())
	require.Zero(t, inserts, "existing records must not be re-inserted")
}

func TestRunSeedsFreshDatabase(t *testing.T) {
	t.Cleanup(restoreGlobals)
	loadConfig = func() (*config.Config, error) { return testConfig(), nil }
	runMigrationsFn = func(string) error { return nil }

	inserts := 0
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			if strings.HasPrefix(strings.TrimSpace(sql), "INSERT") {
				inserts++
				return seedRow{}
			}
			return seedRow{scanErr: pgx.ErrNoRows}
		},
	}
	newPgxPool = func(context.Context, string) (database.DB, error) { return db, nil }

	require.NoError(t, run())
	// one admin, two articles, two projects
	require.Equal(t, 5, inserts)
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)

	loadConfig = func() (*config.Config, error) { return nil, errors.New("config") }
	require.Error(t, run())

	loadConfig = func() (*config.Config, error) { return testConfig(), nil }
	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.Error(t, run())

	runMigrationsFn = func(string) error { return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.Error(t, run())
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	loadConfig = func() (*config.Config, error) { return nil, errors.New("config") }
	main()
	require.Equal(t, 1, exitCode)
}
