package achievements

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target, userID string, body string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if userID != "" {
		r = r.WithContext(context.WithValue(r.Context(), utils.UserIDKey, userID))
	}
	return r
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func newAchievementsRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/achievements/structure", StructureHandler).Methods(http.MethodGet)
	r.HandleFunc("/achievements/users/{userId}/achievements", ListHandler).Methods(http.MethodGet)
	r.HandleFunc("/achievements/users/{userId}/achievements/check", CheckHandler).Methods(http.MethodPost)
	return r
}

func TestListRejectsOtherUsers(t *testing.T) {
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodGet, "/achievements/users/user-2/achievements", "user-1", "")
	newAchievementsRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "You can only access your own achievements", resp.Message)
}

func TestListRequiresAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodGet, "/achievements/users/user-1/achievements", "", "")
	newAchievementsRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckRejectsMissingCategory(t *testing.T) {
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/achievements/users/user-1/achievements/check", "user-1", `{}`)
	newAchievementsRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Category is required", resp.Message)
}

func TestCheckRejectsUnknownCategory(t *testing.T) {
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/achievements/users/user-1/achievements/check", "user-1", `{"category":"Gardening"}`)
	newAchievementsRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Invalid category: Gardening", resp.Message)
}

func TestStructureIsPublic(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/achievements/structure", nil)
	newAchievementsRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, data["categories"], len(models.Categories))
	assert.Len(t, data["milestones"], len(models.Milestones))
	assert.Len(t, data["achievements"], models.TotalAchievements)
}
