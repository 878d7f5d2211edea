package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"kanmind/internal/storage/sqlite"
)

// newTestServer wires the full stack over an in-memory database.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, logger)
}

// doJSON performs a request against the engine and records the response.
func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeArray(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	return raw
}

// register creates an account and returns its token and user id.
func register(t *testing.T, srv *Server, fullname, email string) (string, int64) {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/registration", "", map[string]any{
		"fullname":          fullname,
		"email":             email,
		"password":          "secret123",
		"repeated_password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeObject(t, w)
	return body["token"].(string), int64(body["user_id"].(float64))
}

// loginAdmin bootstraps a superuser account and logs it in.
func loginAdmin(t *testing.T, srv *Server) string {
	t.Helper()
	err := srv.services.Accounts.EnsureAdmin(context.Background(), "admin@example.com", "adminpass")
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodPost, "/api/login", "", map[string]any{
		"email":    "admin@example.com",
		"password": "adminpass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeObject(t, w)["token"].(string)
}

// createBoard creates a board and returns its id.
func createBoard(t *testing.T, srv *Server, token, title string, members []int64) int64 {
	t.Helper()
	payload := map[string]any{"title": title}
	if members != nil {
		payload["members"] = members
	}
	w := doJSON(t, srv, http.MethodPost, "/api/boards", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(decodeObject(t, w)["id"].(float64))
}

// createTask creates a task on a board and returns its id.
func createTask(t *testing.T, srv *Server, token string, boardID int64, extra map[string]any) int64 {
	t.Helper()
	payload := map[string]any{"title": "Task", "board": boardID}
	for k, v := range extra {
		payload[k] = v
	}
	w := doJSON(t, srv, http.MethodPost, "/api/tasks", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(decodeObject(t, w)["id"].(float64))
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/api/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/boards", "/api/tasks", "/api/dashboard", "/api/users", "/api/email-check?email=a@b.com"} {
		w := doJSON(t, srv, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := doJSON(t, srv, http.MethodGet, "/api/boards", "not-a-real-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
