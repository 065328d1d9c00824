package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var goalCols = []string{"id", "user_id", "title", "description", "category", "progress", "completed", "coin_reward", "target_date", "created_at", "updated_at"}

func swapGlobalDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func progressRequest(userID, goalID, body string) (*httptest.ResponseRecorder, *http.Request) {
	r := httptest.NewRequest(http.MethodPut, "/goals/"+goalID+"/progress", strings.NewReader(body))
	r = r.WithContext(context.WithValue(r.Context(), utils.UserIDKey, userID))
	return httptest.NewRecorder(), r
}

func newGoalsRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/goals/{id}/progress", UpdateGoalProgressHandler).Methods(http.MethodPut)
	return r
}

func expectLoadGoal(mock sqlmock.Sqlmock, progress int, completed bool) {
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM .goals.`).
		WillReturnRows(sqlmock.NewRows(goalCols).
			AddRow(1, "user-1", "Run", "", "Health", progress, completed, 10, nil, now, now))
	mock.ExpectQuery(`SELECT \* FROM .subgoals.`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "goal_id", "title", "completed", "created_at", "updated_at"}))
}

func goalFromResponse(t *testing.T, rec *httptest.ResponseRecorder) (map[string]interface{}, utils.APIResponse) {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	goal, ok := data["goal"].(map[string]interface{})
	require.True(t, ok)
	return goal, resp
}

func TestUpdateGoalProgressLoweringClearsCompleted(t *testing.T) {
	db, mock := newMockDB(t)
	swapGlobalDB(t, db)

	expectLoadGoal(mock, 100, true)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE .goals.`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec, req := progressRequest("user-1", "1", `{"progress": 60}`)
	newGoalsRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	goal, resp := goalFromResponse(t, rec)
	assert.Equal(t, "Progress updated", resp.Message)
	assert.Equal(t, float64(60), goal["progress"])
	assert.Equal(t, false, goal["completed"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateGoalProgressRecompletionAwardsAgain(t *testing.T) {
	db, mock := newMockDB(t)
	swapGlobalDB(t, db)

	expectLoadGoal(mock, 60, false)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE .goals.`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE .users. SET .coins.`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO .streak_days.`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT \* FROM .streaks.`).WillReturnRows(sqlmock.NewRows(streakCols))
	mock.ExpectExec(`INSERT INTO .streaks.`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT count\(\*\) FROM .goals.`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM .user_achievements.`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "milestone", "achievement_id", "title", "unlocked_at"}))

	rec, req := progressRequest("user-1", "1", `{"progress": 100}`)
	newGoalsRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	goal, resp := goalFromResponse(t, rec)
	assert.Equal(t, "Goal completed", resp.Message)
	assert.Equal(t, true, goal["completed"])
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(10), data["coins_awarded"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
