package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createComment(t *testing.T, srv *Server, token string, taskID int64, content string) int64 {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tasks/%d/comments", taskID), token, map[string]any{
		"content": content,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(decodeObject(t, w)["id"].(float64))
}

func TestCommentAuthorIsAlwaysTheRequester(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "Alice Smith", "alice@example.com")
	boardID := createBoard(t, srv, token, "Sprint 1", nil)
	taskID := createTask(t, srv, token, boardID, nil)

	// author and board in the payload are ignored, the server derives both
	w := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tasks/%d/comments", taskID), token, map[string]any{
		"content": "Looks good",
		"author":  "Mallory",
		"board":   999,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeObject(t, w)
	assert.Equal(t, "Alice Smith", body["author"])
	assert.Equal(t, float64(boardID), body["board"])
	assert.Equal(t, float64(taskID), body["task"])
}

func TestCommentValidationAndAccess(t *testing.T) {
	srv := newTestServer(t)
	tokenA, _ := register(t, srv, "Alice Smith", "alice@example.com")
	tokenB, _ := register(t, srv, "Bob Jones", "bob@example.com")
	boardID := createBoard(t, srv, tokenA, "Sprint 1", nil)
	taskID := createTask(t, srv, tokenA, boardID, nil)

	w := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tasks/%d/comments", taskID), tokenA, map[string]any{
		"content": "  ",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeObject(t, w), "content")

	// non-members can neither post nor list
	w = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tasks/%d/comments", taskID), tokenB, map[string]any{
		"content": "Hi",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d/comments", taskID), tokenB, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// unknown task
	w = doJSON(t, srv, http.MethodPost, "/api/tasks/999/comments", tokenA, map[string]any{
		"content": "Hi",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentListOrderAndCount(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "Alice Smith", "alice@example.com")
	boardID := createBoard(t, srv, token, "Sprint 1", nil)
	taskID := createTask(t, srv, token, boardID, nil)

	createComment(t, srv, token, taskID, "first")
	createComment(t, srv, token, taskID, "second")

	w := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d/comments", taskID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	comments := decodeArray(t, w)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0]["content"])
	assert.Equal(t, "second", comments[1]["content"])

	// the comment count is reflected on the task
	w = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeObject(t, w)["comments_count"])
}

func TestCommentDeleteIsAuthorOnly(t *testing.T) {
	srv := newTestServer(t)
	tokenA, idA := register(t, srv, "Alice Smith", "alice@example.com")
	tokenB, idB := register(t, srv, "Bob Jones", "bob@example.com")
	boardID := createBoard(t, srv, tokenA, "Sprint 1", []int64{idA, idB})
	taskID := createTask(t, srv, tokenA, boardID, nil)

	commentID := createComment(t, srv, tokenB, taskID, "Bob's remark")
	path := fmt.Sprintf("/api/tasks/%d/comments/%d", taskID, commentID)

	// fellow members may read it
	w := doJSON(t, srv, http.MethodGet, path, tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the board owner is not the author and may not delete it
	w = doJSON(t, srv, http.MethodDelete, path, tokenA, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, srv, http.MethodDelete, path, tokenB, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, srv, http.MethodGet, path, tokenA, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// admins may delete any comment
	adminToken := loginAdmin(t, srv)
	other := createComment(t, srv, tokenB, taskID, "another")
	w = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/tasks/%d/comments/%d", taskID, other), adminToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestCommentLookupIsScopedToTask(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "Alice Smith", "alice@example.com")
	boardID := createBoard(t, srv, token, "Sprint 1", nil)
	taskA := createTask(t, srv, token, boardID, nil)
	taskB := createTask(t, srv, token, boardID, nil)

	commentID := createComment(t, srv, token, taskA, "on task A")

	w := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d/comments/%d", taskB, commentID), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBoardDeleteCascadesThroughTheAPI(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "Alice Smith", "alice@example.com")
	boardID := createBoard(t, srv, token, "Sprint 1", nil)
	taskID := createTask(t, srv, token, boardID, nil)
	createComment(t, srv, token, taskID, "soon to be gone")

	w := doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/boards/%d", boardID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
