package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackupFlagsSplitsMultipleFlags(t *testing.T) {
	t.Setenv("DB_BACKUP_FLAGS", "--single-transaction --quick futuremove")
	assert.Equal(t, []string{"--single-transaction", "--quick", "futuremove"}, backupFlags())
}

func TestBackupFlagsEmpty(t *testing.T) {
	t.Setenv("DB_BACKUP_FLAGS", "")
	assert.Empty(t, backupFlags())
}
