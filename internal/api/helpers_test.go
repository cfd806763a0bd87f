package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"hotel/internal/auth"
	"hotel/internal/config"
	"hotel/internal/database"
	"hotel/internal/events"
	"hotel/internal/repository"
	"hotel/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "anna@example.com"
	adminPassword = "admin123"
	userEmail     = "jan@example.com"
	userPassword  = "password123"
)

type testEnv struct {
	t   *testing.T
	db  *database.DB
	srv *HTTPServer
	ts  *httptest.Server
	bus *events.EventBus
}

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// newTestEnv starts the full HTTP stack over an in-memory database. When
// seed is set the demo dataset is loaded first.
func newTestEnv(t *testing.T, seed bool, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db := newTestDB(t)
	if seed {
		_, err := db.Seed(context.Background(), auth.HashPassword)
		require.NoError(t, err)
	}

	cfg := &config.Config{
		App: config.AppConfig{Name: "Hotel Test"},
		API: config.APIConfig{
			CORS: config.APICORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
	}
	for _, m := range mutate {
		m(cfg)
	}

	store := repository.NewMemorySessionStore()
	sessions := auth.NewSessions("test-secret", time.Hour, false, store, db)
	bus := events.NewEventBus(&logger)
	svc := Services{
		Users:        service.NewUserService(db, store, &logger),
		Rooms:        service.NewRoomService(db, db, bus, &logger),
		Reservations: service.NewReservationService(db, bus, nil, cfg.Reservations.PreventOverlap, &logger),
		Staff:        service.NewStaffService(db, &logger),
		Overview:     service.NewOverviewService(db),
	}

	srv := NewHTTPServer(cfg, db, sessions, svc, &logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testEnv{t: t, db: db, srv: srv, ts: ts, bus: bus}
}

// client returns an anonymous client that keeps cookies between calls.
func (e *testEnv) client() *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(e.t, err)
	return &http.Client{Jar: jar}
}

func (e *testEnv) login(email, password string) *http.Client {
	c := e.client()
	resp, body := e.do(c, http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password})
	require.Equal(e.t, http.StatusOK, resp.StatusCode, string(body))
	return c
}

func (e *testEnv) do(c *http.Client, method, path string, payload any) (*http.Response, []byte) {
	e.t.Helper()
	var body io.Reader = http.NoBody
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(e.t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.ts.URL+path, body)
	require.NoError(e.t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp, raw
}

func decodeBody[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func errorMessage(t *testing.T, raw []byte) string {
	t.Helper()
	return decodeBody[map[string]string](t, raw)["error"]
}
