package utils

import (
	"testing"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRevokeJTIFallsBackToDatabase(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	prevDB, prevRedis := database.DB, RedisClient
	database.DB, RedisClient = gdb, nil
	t.Cleanup(func() { database.DB, RedisClient = prevDB, prevRedis })

	mock.ExpectExec(`INSERT INTO revoked_tokens`).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, RevokeJTI("jti-1", time.Minute))
	assert.NoError(t, mock.ExpectationsWereMet())

	// the fallback writes the table the RevokedToken migration owns
	assert.Equal(t, "revoked_tokens", models.RevokedToken{}.TableName())
}

func TestRevokeJTIRejectsEmptyID(t *testing.T) {
	assert.Error(t, RevokeJTI("", time.Minute))
}
