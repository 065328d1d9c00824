package achievements

import (
	"testing"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/models"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

func expectCompletedCount(mock sqlmock.Sqlmock, n int64) {
	mock.ExpectQuery(`SELECT count\(\*\) FROM .goals.`).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(n))
}

var achievementCols = []string{"id", "user_id", "category", "milestone", "achievement_id", "title", "unlocked_at"}

func expectPersisted(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT \* FROM .user_achievements.`).WillReturnRows(rows)
}

func expectInsert(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO .user_achievements.`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
}

func TestCheckAndUnlockBelowFirstMilestone(t *testing.T) {
	db, mock := newMockDB(t)
	expectCompletedCount(mock, 5)
	expectPersisted(mock, sqlmock.NewRows(achievementCols))

	unlocked, completed, err := CheckAndUnlock(db, "user-1", "Health")
	require.NoError(t, err)
	assert.Empty(t, unlocked)
	assert.Equal(t, int64(5), completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAndUnlockCrossesMultipleMilestones(t *testing.T) {
	db, mock := newMockDB(t)
	expectCompletedCount(mock, 30)
	expectPersisted(mock, sqlmock.NewRows(achievementCols))
	expectInsert(mock)
	expectInsert(mock)
	expectInsert(mock)

	unlocked, completed, err := CheckAndUnlock(db, "user-1", "Health")
	require.NoError(t, err)
	require.Len(t, unlocked, 3)
	assert.Equal(t, int64(30), completed)

	// milestones come back in ascending order
	assert.Equal(t, 7, unlocked[0].Milestone)
	assert.Equal(t, 14, unlocked[1].Milestone)
	assert.Equal(t, 30, unlocked[2].Milestone)
	assert.Equal(t, "health_7", unlocked[0].ID)
	assert.Equal(t, int64(30), unlocked[0].CompletedGoals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAndUnlockSkipsPersistedMilestones(t *testing.T) {
	db, mock := newMockDB(t)
	expectCompletedCount(mock, 14)
	expectPersisted(mock, sqlmock.NewRows(achievementCols).
		AddRow(1, "user-1", "Learning", 7, "learning_7", "Knowledge Seeker", time.Now()))
	expectInsert(mock)

	unlocked, _, err := CheckAndUnlock(db, "user-1", "Learning")
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, 14, unlocked[0].Milestone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAndUnlockSwallowsDuplicateInsert(t *testing.T) {
	db, mock := newMockDB(t)
	expectCompletedCount(mock, 7)
	expectPersisted(mock, sqlmock.NewRows(achievementCols))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO .user_achievements.`).
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	// a concurrent check won the insert race; not an error, just no new unlock
	unlocked, completed, err := CheckAndUnlock(db, "user-1", "Work")
	require.NoError(t, err)
	assert.Empty(t, unlocked)
	assert.Equal(t, int64(7), completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAndUnlockIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	expectCompletedCount(mock, 7)
	expectPersisted(mock, sqlmock.NewRows(achievementCols).
		AddRow(1, "user-1", "Work", 7, "work_7", "Task Tackler", time.Now()))

	// second run with the row already persisted performs no inserts
	unlocked, _, err := CheckAndUnlock(db, "user-1", "Work")
	require.NoError(t, err)
	assert.Empty(t, unlocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildStatusDerivesFullGrid(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT category, COUNT\(\*\) AS n FROM .goals.`).
		WillReturnRows(sqlmock.NewRows([]string{"category", "n"}).AddRow("Health", 14))
	expectPersisted(mock, sqlmock.NewRows(achievementCols).
		AddRow(1, "user-1", "Health", 7, "health_7", "Health Kickstarter", time.Now()))

	report, err := BuildStatus(db, "user-1")
	require.NoError(t, err)
	assert.Len(t, report.Achievements, models.TotalAchievements)
	assert.Equal(t, models.TotalAchievements, report.TotalAchievements)

	// 14 completed Health goals unlock the 7 and 14 milestones, nothing else
	assert.Equal(t, 2, report.UnlockedCount)
	assert.Equal(t, CategoryStats{Completed: 14, Total: 14}, report.Categories["Health"])
	assert.Equal(t, CategoryStats{}, report.Categories["Finance"])

	byID := make(map[string]AchievementStatus, len(report.Achievements))
	for _, st := range report.Achievements {
		byID[st.ID] = st
	}
	assert.True(t, byID["health_7"].IsUnlocked)
	assert.NotNil(t, byID["health_7"].UnlockedAt)
	assert.True(t, byID["health_14"].IsUnlocked)
	// derivation runs ahead of the audit trail: unlocked without a persisted row
	assert.Nil(t, byID["health_14"].UnlockedAt)
	assert.False(t, byID["health_30"].IsUnlocked)
	assert.Equal(t, 47, byID["health_30"].Progress)
	assert.Equal(t, 100, byID["health_7"].Progress)
	assert.False(t, byID["finance_7"].IsUnlocked)
	assert.Equal(t, int64(0), byID["finance_7"].CompletedGoals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryStatusSingleCategory(t *testing.T) {
	db, mock := newMockDB(t)
	expectCompletedCount(mock, 90)
	expectPersisted(mock, sqlmock.NewRows(achievementCols))

	statuses, completed, err := CategoryStatus(db, "user-1", "Personal")
	require.NoError(t, err)
	assert.Equal(t, int64(90), completed)
	require.Len(t, statuses, len(models.Milestones))
	for _, st := range statuses {
		assert.True(t, st.IsUnlocked)
		assert.Equal(t, 100, st.Progress)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardSummary(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT category, COUNT\(\*\) AS n FROM .goals.`).
		WillReturnRows(sqlmock.NewRows([]string{"category", "n"}).
			AddRow("Health", 90).
			AddRow("Work", 7))
	now := time.Now()
	expectPersisted(mock, sqlmock.NewRows(achievementCols).
		AddRow(2, "user-1", "Health", 14, "health_14", "Wellness Warrior", now).
		AddRow(1, "user-1", "Health", 7, "health_7", "Health Kickstarter", now.Add(-time.Hour)))

	summary, err := DashboardSummary(db, "user-1")
	require.NoError(t, err)
	// all four Health milestones plus the first Work milestone
	assert.Equal(t, 5, summary.UnlockedCount)
	assert.Equal(t, models.TotalAchievements, summary.TotalPossible)
	assert.Equal(t, 21, summary.ProgressPercentage)
	require.Len(t, summary.RecentAchievements, 2)
	assert.Equal(t, "health_14", summary.RecentAchievements[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'u-Health-7'"}))
	assert.False(t, isDuplicateKey(&mysqldriver.MySQLError{Number: 1452, Message: "foreign key"}))
	assert.False(t, isDuplicateKey(assert.AnError))
}
