package models

import "time"

// Streak holds one row per user with the running counters. The per-day history
// lives in StreakDay.
type Streak struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        string     `gorm:"size:64;uniqueIndex;not null" json:"user_id"`
	CurrentStreak int        `gorm:"default:0" json:"current_streak"`
	LongestStreak int        `gorm:"default:0" json:"longest_streak"`
	LastActiveOn  *time.Time `json:"last_active_on,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Streak) TableName() string {
	return "streaks"
}

// StreakDay marks a calendar day on which the user completed at least one goal
// or routine. The (user, date) unique index makes repeated completions on the
// same day a no-op at the storage layer.
type StreakDay struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_user_day" json:"user_id"`
	Date      string    `gorm:"type:date;not null;uniqueIndex:idx_user_day" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func (StreakDay) TableName() string {
	return "streak_days"
}

// AdvanceStreak computes the next streak counter given the last active day and
// the current day. Same day keeps the counter, the next day increments it by
// one, and any longer gap resets to one.
func AdvanceStreak(current int, lastActive *time.Time, now time.Time) int {
	if lastActive == nil {
		return 1
	}
	switch days := calendarDaysBetween(*lastActive, now); {
	case days <= 0:
		if current < 1 {
			return 1
		}
		return current
	case days == 1:
		return current + 1
	default:
		return 1
	}
}

// calendarDaysBetween counts the calendar-date boundaries crossed between from
// and to, each read in its own location. Streak days are local dates, so the
// gap cannot be measured in wall-clock hours.
func calendarDaysBetween(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
