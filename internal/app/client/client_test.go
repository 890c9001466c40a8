package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"admingrid/internal/app/client/config"
	"admingrid/internal/domain/collection"
	"admingrid/internal/domain/grid"
)

func newTestApp(t *testing.T, srv *httptest.Server, cols map[string]collection.Config) *App {
	t.Helper()
	for name, col := range cols {
		col.ApplyDefaults()
		cols[name] = col
	}
	cfg := &config.Config{
		ServerAddress: strings.TrimPrefix(srv.URL, "http://"),
		SnapshotPath:  filepath.Join(t.TempDir(), "snapshots.db"),
		Collections:   cols,
	}
	app, err := New(cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestApp_LoadGrid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"1","email":"a@x"},{"id":"2","email":"b@x"}]`))
	}))
	defer srv.Close()

	app := newTestApp(t, srv, map[string]collection.Config{
		"users": {Path: "/api/users", BaseColumns: []string{"id", "email"}},
	})

	engine, info, err := app.LoadGrid(context.Background(), "users", false)
	require.NoError(t, err)
	assert.False(t, info.Stale)
	assert.Len(t, engine.Rows(), 2)
	assert.Equal(t, []string{"id", "email"}, engine.Columns())
}

func TestApp_LoadGridUnknownCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	app := newTestApp(t, srv, map[string]collection.Config{})
	_, _, err := app.LoadGrid(context.Background(), "missing", false)
	assert.ErrorIs(t, err, collection.ErrNotConfigured)
}

func TestApp_LoadGridStaleFallback(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"id":"1","email":"a@x"}]`))
	}))
	defer srv.Close()

	app := newTestApp(t, srv, map[string]collection.Config{
		"users": {Path: "/api/users"},
	})

	// First load succeeds and leaves a snapshot behind.
	_, _, err := app.LoadGrid(context.Background(), "users", true)
	require.NoError(t, err)

	// The backend dies; the stale copy is served instead.
	healthy = false
	engine, info, err := app.LoadGrid(context.Background(), "users", true)
	require.NoError(t, err)
	assert.True(t, info.Stale)
	require.Len(t, engine.Rows(), 1)
	assert.Equal(t, "1", engine.Rows()[0].ID())

	// Without allowStale the failure surfaces.
	_, _, err = app.LoadGrid(context.Background(), "users", false)
	var apiErr *collection.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestApp_LoadGridUnauthorizedNeverMasked(t *testing.T) {
	unauthorized := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if unauthorized {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[{"id":"1"}]`))
	}))
	defer srv.Close()

	app := newTestApp(t, srv, map[string]collection.Config{
		"users": {Path: "/api/users"},
	})

	_, _, err := app.LoadGrid(context.Background(), "users", true)
	require.NoError(t, err)

	// A snapshot exists, but a 401 must not be hidden behind it.
	unauthorized = true
	_, _, err = app.LoadGrid(context.Background(), "users", true)
	assert.ErrorIs(t, err, collection.ErrUnauthorized)
}

func TestApp_CreateRowNormalizesInput(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer srv.Close()

	app := newTestApp(t, srv, map[string]collection.Config{
		"users": {Path: "/api/users", BoolFields: []string{"approved"}},
	})

	err := app.CreateRow(context.Background(), "users", map[string]string{
		"email":    "  a@x  ",
		"approved": "yes",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"email":"a@x","approved":true}`, gotBody)
}

func TestApp_CreateRowValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid input must not reach the backend")
	}))
	defer srv.Close()

	app := newTestApp(t, srv, map[string]collection.Config{
		"users": {Path: "/api/users", TimeFields: []string{"active_until"}},
	})

	err := app.CreateRow(context.Background(), "users", map[string]string{
		"active_until": "not a date",
	})

	var verr *grid.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSummaryReducer(t *testing.T) {
	col := collection.Config{}
	col.ApplyDefaults()
	reduce := summaryReducer(col)

	t.Run("pending member wins", func(t *testing.T) {
		got := reduce([]grid.Row{
			grid.NewRow("id", "1", "approved", true, "created_at", "2026-01-01 00:00:00"),
			grid.NewRow("id", "2", "approved", false, "created_at", "2026-02-01 00:00:00"),
		})
		assert.Equal(t, "2", got.ID())
	})

	t.Run("newest pending wins among several", func(t *testing.T) {
		got := reduce([]grid.Row{
			grid.NewRow("id", "1", "approved", false, "created_at", "2026-01-01 00:00:00"),
			grid.NewRow("id", "2", "approved", false, "created_at", "2026-03-01 00:00:00"),
		})
		assert.Equal(t, "2", got.ID())
	})

	t.Run("furthest expiry when none pending", func(t *testing.T) {
		got := reduce([]grid.Row{
			grid.NewRow("id", "1", "approved", true, "active_until", "2026-05-01 00:00:00"),
			grid.NewRow("id", "2", "approved", true, "active_until", "2026-09-01 00:00:00"),
		})
		assert.Equal(t, "2", got.ID())
	})

	t.Run("newest created as last resort", func(t *testing.T) {
		got := reduce([]grid.Row{
			grid.NewRow("id", "1", "approved", true, "created_at", "2026-01-01 00:00:00"),
			grid.NewRow("id", "2", "approved", true, "created_at", "2026-02-01 00:00:00"),
		})
		assert.Equal(t, "2", got.ID())
	})

	t.Run("first member when nothing else decides", func(t *testing.T) {
		got := reduce([]grid.Row{
			grid.NewRow("id", "1", "approved", true),
			grid.NewRow("id", "2", "approved", true),
		})
		assert.Equal(t, "1", got.ID())
	})
}
