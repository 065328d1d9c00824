package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueNowNeverCompleted(t *testing.T) {
	rt := Routine{Frequency: "daily"}
	assert.True(t, rt.DueNow(time.Now()))
}

func TestDueNowDailyResetsAtMidnight(t *testing.T) {
	done := time.Date(2025, 6, 10, 23, 50, 0, 0, time.UTC)
	rt := Routine{Frequency: "daily", LastCompleted: &done}

	assert.False(t, rt.DueNow(time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)))
	assert.True(t, rt.DueNow(time.Date(2025, 6, 11, 0, 10, 0, 0, time.UTC)))
}

func TestDueNowWeeklyNeedsSevenDays(t *testing.T) {
	done := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	rt := Routine{Frequency: "weekly", LastCompleted: &done}

	assert.False(t, rt.DueNow(done.Add(6*24*time.Hour)))
	assert.True(t, rt.DueNow(done.Add(7*24*time.Hour)))
}
