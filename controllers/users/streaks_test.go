package users

import (
	"testing"
	"time"

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

var streakCols = []string{"id", "user_id", "current_streak", "longest_streak", "last_active_on", "created_at", "updated_at"}

func TestCreditStreakDaySecondCompletionSameDay(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO .streak_days.`).
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	advanced, err := CreditStreakDay(db, "user-1", time.Now())
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditStreakDayAdvancesExistingStreak(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO .streak_days.`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM .streaks.`).
		WillReturnRows(sqlmock.NewRows(streakCols).
			AddRow(3, "user-1", 4, 6, yesterday, yesterday, yesterday))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE .streaks.`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	advanced, err := CreditStreakDay(db, "user-1", now)
	require.NoError(t, err)
	assert.True(t, advanced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditStreakDayCreatesFirstStreak(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO .streak_days.`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM .streaks.`).
		WillReturnRows(sqlmock.NewRows(streakCols))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO .streaks.`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	advanced, err := CreditStreakDay(db, "user-9", time.Now())
	require.NoError(t, err)
	assert.True(t, advanced)
	assert.NoError(t, mock.ExpectationsWereMet())
}
