package models

import (
	"fmt"
	"strings"
	"time"
)

// Milestones is the unlock ladder: completing this many goals in a category
// unlocks the matching achievement. Order matters (ascending).
var Milestones = []int{7, 14, 30, 90}

// TotalAchievements is the full grid size (categories x milestones).
var TotalAchievements = len(Categories) * len(Milestones)

// AchievementDefinition is the static description of one (category, milestone)
// cell. Definitions are fixed at compile time and never persisted.
type AchievementDefinition struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Milestone   int    `json:"milestone"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageName   string `json:"image_name"`
}

var achievementTitles = map[string]map[int]string{
	"Personal": {7: "Personal Pioneer", 14: "Self Starter", 30: "Growth Guru", 90: "Life Master"},
	"Work":     {7: "Task Tackler", 14: "Career Climber", 30: "Productivity Pro", 90: "Workplace Legend"},
	"Learning": {7: "Knowledge Seeker", 14: "Curious Mind", 30: "Scholar", 90: "Lifelong Learner"},
	"Health":   {7: "Health Kickstarter", 14: "Wellness Warrior", 30: "Fitness Fanatic", 90: "Health Hero"},
	"Repair":   {7: "Fix-It Novice", 14: "Handy Helper", 30: "Restoration Expert", 90: "Master Craftsman"},
	"Finance":  {7: "Budget Beginner", 14: "Money Manager", 30: "Savings Star", 90: "Financial Guru"},
}

// AchievementTitle returns the display title for a (category, milestone) pair.
// Unknown pairs fall back to a generated "{category} Achievement" title.
func AchievementTitle(category string, milestone int) string {
	if byMilestone, ok := achievementTitles[category]; ok {
		if title, ok := byMilestone[milestone]; ok {
			return title
		}
	}
	return category + " Achievement"
}

// DefinitionFor builds the static definition for a (category, milestone) pair.
func DefinitionFor(category string, milestone int) AchievementDefinition {
	return AchievementDefinition{
		ID:          AchievementID(category, milestone),
		Category:    category,
		Milestone:   milestone,
		Title:       AchievementTitle(category, milestone),
		Description: fmt.Sprintf("Complete %d %s goals", milestone, category),
		ImageName:   AchievementID(category, milestone),
	}
}

// AchievementID is the stable identifier for a definition, e.g. "learning_7".
func AchievementID(category string, milestone int) string {
	return fmt.Sprintf("%s_%d", strings.ToLower(category), milestone)
}

// AllDefinitions returns the full grid in category order, milestones ascending.
func AllDefinitions() []AchievementDefinition {
	defs := make([]AchievementDefinition, 0, TotalAchievements)
	for _, cat := range Categories {
		for _, m := range Milestones {
			defs = append(defs, DefinitionFor(cat, m))
		}
	}
	return defs
}

// UserAchievement is the persisted record of a crossed milestone. The composite
// unique index is the sole guard against double inserts under concurrent
// unlock checks: the second insert fails with a duplicate-key error and is
// treated as already unlocked.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"size:64;not null;uniqueIndex:idx_user_category_milestone" json:"user_id"`
	Category      string    `gorm:"type:enum('Personal','Work','Learning','Health','Repair','Finance');not null;uniqueIndex:idx_user_category_milestone" json:"category"`
	Milestone     int       `gorm:"not null;uniqueIndex:idx_user_category_milestone" json:"milestone"`
	AchievementID string    `gorm:"size:50;not null" json:"achievement_id"`
	Title         string    `gorm:"size:100;not null" json:"title"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
