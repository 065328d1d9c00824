package models

import "time"

// Routine is a recurring item. Unlike goals it never completes permanently;
// CompletedToday is derived from LastCompleted server-side.
type Routine struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        string     `gorm:"size:64;index;not null" json:"user_id"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Category      string     `gorm:"type:enum('Personal','Work','Learning','Health','Repair','Finance');not null" json:"category"`
	Frequency     string     `gorm:"type:enum('daily','weekly');default:'daily'" json:"frequency"`
	CoinReward    int        `gorm:"default:5" json:"coin_reward"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Routine) TableName() string {
	return "routines"
}

// DueNow reports whether the routine can be completed again at the given time.
// Daily routines reset at midnight, weekly ones seven days after completion.
func (rt *Routine) DueNow(now time.Time) bool {
	if rt.LastCompleted == nil {
		return true
	}
	last := *rt.LastCompleted
	if rt.Frequency == "weekly" {
		return now.Sub(last) >= 7*24*time.Hour
	}
	y1, m1, d1 := last.Date()
	y2, m2, d2 := now.Date()
	return y1 != y2 || m1 != m2 || d1 != d2
}
