package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceStreakFirstActivity(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, AdvanceStreak(0, nil, now))
}

func TestAdvanceStreakSameDayKeepsCounter(t *testing.T) {
	now := time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC)
	last := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 4, AdvanceStreak(4, &last, now))
	// a zero counter with activity today still counts as a one-day streak
	assert.Equal(t, 1, AdvanceStreak(0, &last, now))
}

func TestAdvanceStreakNextDayIncrements(t *testing.T) {
	now := time.Date(2025, 6, 11, 1, 0, 0, 0, time.UTC)
	last := time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, AdvanceStreak(4, &last, now))
}

func TestAdvanceStreakGapResets(t *testing.T) {
	now := time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC)
	last := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, AdvanceStreak(9, &last, now))
}

func TestAdvanceStreakUsesLocalCalendarDays(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*60*60)

	// crossing local midnight starts a new day even when less than 24h passed
	last := time.Date(2025, 6, 10, 23, 30, 0, 0, zone)
	now := time.Date(2025, 6, 11, 0, 30, 0, 0, zone)
	assert.Equal(t, 5, AdvanceStreak(4, &last, now))

	// a skipped local calendar day resets the counter
	last = time.Date(2025, 6, 10, 23, 0, 0, 0, zone)
	now = time.Date(2025, 6, 12, 1, 0, 0, 0, zone)
	assert.Equal(t, 1, AdvanceStreak(9, &last, now))

	// same local day, more than a UTC day boundary apart in absolute time
	last = time.Date(2025, 6, 10, 0, 30, 0, 0, zone)
	now = time.Date(2025, 6, 10, 23, 30, 0, 0, zone)
	assert.Equal(t, 4, AdvanceStreak(4, &last, now))
}
