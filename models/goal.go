package models

import "time"

// The six life-area categories. Every goal, routine and achievement belongs to
// exactly one of these; anything else is rejected at the handler boundary.
var Categories = []string{"Personal", "Work", "Learning", "Health", "Repair", "Finance"}

func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Goal progress runs 0..100; a goal counts as completed once progress hits 100.
type Goal struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:64;index;not null" json:"user_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:enum('Personal','Work','Learning','Health','Repair','Finance');not null;index" json:"category"`
	Progress    int       `gorm:"default:0" json:"progress"`
	Completed   bool      `gorm:"default:false;index" json:"completed"`
	CoinReward  int       `gorm:"default:10" json:"coin_reward"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	SubGoals    []SubGoal `gorm:"foreignKey:GoalID" json:"subgoals,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Goal) TableName() string {
	return "goals"
}

// SubGoal is a checklist item under a goal.
type SubGoal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GoalID    uint      `gorm:"index;not null" json:"goal_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Completed bool      `gorm:"default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SubGoal) TableName() string {
	return "subgoals"
}
