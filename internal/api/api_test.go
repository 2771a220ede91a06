package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/profiles"
	"github.com/abhisek/spinlab/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]catalog.SkillItem{
			{ID: "a", Name: "A", Tier: 1, XPReward: 50, GroupID: "m"},
			{ID: "b", Name: "B", Tier: 2, XPReward: 100, GroupID: "m", Prerequisites: []string{"a"}},
		},
		[]catalog.Module{{ID: "m", PathID: "p", Name: "M"}},
		[]catalog.Path{{ID: "p", Name: "P", Level: 1}},
	)
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	s, err := store.Open("file:" + filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	m := profiles.NewManager(testCatalog(), s.SnapshotRepo(), s.EventRepo(), profiles.Options{Retention: 3})
	return NewRouter(m, nil)
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndCatalog(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/catalog/paths", nil)
	require.Equal(t, http.StatusOK, w.Code)
	paths := decode[[]map[string]any](t, w)
	require.Len(t, paths, 1)
	assert.Equal(t, "p", paths[0]["id"])
}

func TestMasteryFlow(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/users/alice/items/b/master", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "prerequisite_not_met", body.Kind)
	assert.Equal(t, []string{"a"}, body.Missing)

	w = do(t, r, http.MethodPost, "/users/alice/items/a/master", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[map[string]any](t, w)
	assert.EqualValues(t, 75, out["xp_awarded"])

	w = do(t, r, http.MethodGet, "/users/alice/items/b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "available", decode[map[string]any](t, w)["state"])

	w = do(t, r, http.MethodGet, "/users/alice/modules/m", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 50, decode[map[string]any](t, w)["percentage"])

	w = do(t, r, http.MethodGet, "/users/alice/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = do(t, r, http.MethodDelete, "/users/alice/notifications/first-trick", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]map[string]any](t, w))

	w = do(t, r, http.MethodDelete, "/users/alice/notifications/first-trick", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestErrorMapping(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown item", http.MethodPost, "/users/alice/items/zzz/watch", nil, http.StatusNotFound},
		{"unknown path", http.MethodGet, "/users/alice/paths/zzz", nil, http.StatusNotFound},
		{"negative watch time", http.MethodPost, "/users/alice/items/a/watch-time", map[string]int{"seconds": -5}, http.StatusBadRequest},
		{"negative xp", http.MethodPost, "/users/alice/xp", map[string]int{"amount": -1}, http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/users/alice/badges/next?limit=x", nil, http.StatusBadRequest},
		{"quiz answer without quiz", http.MethodPost, "/users/alice/onboarding/quiz/answer", map[string]bool{"yes": true}, http.StatusConflict},
		{"quiz answer missing", http.MethodPost, "/users/alice/onboarding/quiz/answer", map[string]string{}, http.StatusBadRequest},
		{"bad skill level", http.MethodPost, "/users/alice/onboarding/answers", map[string]string{"skill_level": "wizard"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestWatchTimeAndBonus(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/users/alice/items/a/watch-time", map[string]int{"seconds": 120})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/users/alice/xp", map[string]any{"amount": 40, "reason": "daily login"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/users/alice/level", nil)
	require.Equal(t, http.StatusOK, w.Code)
	lvl := decode[map[string]any](t, w)
	assert.EqualValues(t, 40, lvl["lifetime_xp"])

	w = do(t, r, http.MethodGet, "/users/alice/streak", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, w)["current"])
}

func TestOnboardingFlow(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/users/alice/onboarding/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "skill_level", decode[map[string]any](t, w)["step"])

	w = do(t, r, http.MethodPost, "/users/alice/onboarding/answers", map[string]any{"skill_level": "beginner"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]any](t, w)["can_advance"])

	w = do(t, r, http.MethodPost, "/users/alice/onboarding/skip", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]any](t, w)["completed"])

	w = do(t, r, http.MethodPost, "/users/alice/onboarding/back", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodDelete, "/users/alice", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/users/alice/onboarding", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode[map[string]any](t, w)["completed"])
}

func TestUsers(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[map[string][]string](t, w)["users"])

	w = do(t, r, http.MethodPost, "/users", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[map[string]string](t, w)["id"]
	assert.NotEmpty(t, id)

	w = do(t, r, http.MethodGet, "/users/"+id+"/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[map[string]any](t, w)
	assert.Contains(t, dash, "level")
	assert.Contains(t, dash, "paths")

	w = do(t, r, http.MethodGet, "/users", nil)
	assert.Equal(t, []string{id}, decode[map[string][]string](t, w)["users"])
}

func TestHistory(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodGet, "/users/alice/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]map[string]any](t, w))

	do(t, r, http.MethodPost, "/users/alice/items/a/master", nil)

	w = do(t, r, http.MethodGet, "/users/alice/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	acts := decode[[]map[string]any](t, w)
	require.Len(t, acts, 4)
	kinds := map[string]int{}
	for _, a := range acts {
		kinds[a["kind"].(string)]++
	}
	assert.Equal(t, map[string]int{"transition": 1, "xp": 2, "badge": 1}, kinds)
	assert.Greater(t, acts[0]["sequence"].(float64), acts[3]["sequence"].(float64))

	w = do(t, r, http.MethodGet, "/users/alice/history?limit=2", nil)
	assert.Len(t, decode[[]map[string]any](t, w), 2)

	w = do(t, r, http.MethodGet, "/users/alice/history?limit=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
