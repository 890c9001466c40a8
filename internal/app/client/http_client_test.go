package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"admingrid/internal/app/client/config"
	"admingrid/internal/domain/collection"
)

func newTestHTTPClient(t *testing.T, srv *httptest.Server, cfg *config.Config) *httpClient {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.ServerAddress = strings.TrimPrefix(srv.URL, "http://")
	h, err := NewHTTPClient(cfg, slog.Default())
	require.NoError(t, err)
	return h
}

func usersCollection() collection.Config {
	c := collection.Config{Path: "/api/users"}
	c.ApplyDefaults()
	return c
}

func TestHTTPClient_ListRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users", r.URL.Path)
		w.Write([]byte(`{"total":2,"items":[{"id":"1"},{"id":"2"}]}`))
	}))
	defer srv.Close()

	h := newTestHTTPClient(t, srv, nil)
	rows, err := h.ListRows(context.Background(), usersCollection())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].ID())
}

func TestHTTPClient_ListRowsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"7","email":"a@x"}]`))
	}))
	defer srv.Close()

	h := newTestHTTPClient(t, srv, nil)
	rows, err := h.ListRows(context.Background(), usersCollection())
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestHTTPClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	h := newTestHTTPClient(t, srv, nil)
	_, err := h.ListRows(context.Background(), usersCollection())
	assert.ErrorIs(t, err, collection.ErrUnauthorized)
}

func TestHTTPClient_APIErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"user not found"}`))
	}))
	defer srv.Close()

	h := newTestHTTPClient(t, srv, nil)
	err := h.UpdateRow(context.Background(), usersCollection(), "99", map[string]any{})

	var apiErr *collection.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "user not found", apiErr.Message)
}

func TestHTTPClient_UpdateRowWrapData(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
	}))
	defer srv.Close()

	col := usersCollection()
	col.WrapData = true

	h := newTestHTTPClient(t, srv, nil)
	err := h.UpdateRow(context.Background(), col, "7", map[string]any{"approved": true})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, map[string]any{"data": map[string]any{"approved": true}}, gotBody)
}

func TestHTTPClient_UpdateRowPatchFlat(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
	}))
	defer srv.Close()

	col := usersCollection()
	col.UpdateMethod = collection.MethodPatch

	h := newTestHTTPClient(t, srv, nil)
	err := h.UpdateRow(context.Background(), col, "7", map[string]any{"approved": true})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/users/7", gotPath)
	assert.Equal(t, map[string]any{"approved": true}, gotBody)
}

func TestHTTPClient_BearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := &config.Config{AuthScheme: config.AuthBearer, Token: "tok-123"}
	h := newTestHTTPClient(t, srv, cfg)
	_, err := h.ListRows(context.Background(), usersCollection())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestHTTPClient_BasicAuth(t *testing.T) {
	var gotUser, gotPass string
	var gotOK bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := &config.Config{AuthScheme: config.AuthBasic, Username: "admin", Password: "pw"}
	h := newTestHTTPClient(t, srv, cfg)
	_, err := h.ListRows(context.Background(), usersCollection())
	require.NoError(t, err)

	require.True(t, gotOK)
	assert.Equal(t, "admin", gotUser)
	assert.Equal(t, "pw", gotPass)
}

func TestHTTPClient_CreateAndDelete(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
	}))
	defer srv.Close()

	h := newTestHTTPClient(t, srv, nil)
	col := usersCollection()

	require.NoError(t, h.CreateRow(context.Background(), col, map[string]any{"email": "a@x"}))
	require.NoError(t, h.DeleteRow(context.Background(), col, "7"))

	assert.Equal(t, []string{"POST /api/users", "DELETE /api/users/7"}, calls)
}

func TestHTTPClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	h := newTestHTTPClient(t, srv, nil)
	_, err := h.ListRows(context.Background(), usersCollection())

	var netErr *collection.NetworkError
	assert.ErrorAs(t, err, &netErr)
}
