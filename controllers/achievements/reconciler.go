package achievements

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// The reconciler keeps user_achievements rows consistent with live
// goal-completion counts. The persisted table is an audit trail, not the
// source of truth: every status answer below is derived from counting
// completed goals, and rows are only ever inserted, exactly once per
// (user, category, milestone), guarded by the table's unique index.

// AchievementStatus is one cell of the full status grid.
type AchievementStatus struct {
	models.AchievementDefinition
	IsUnlocked     bool       `json:"is_unlocked"`
	Progress       int        `json:"progress"`
	CompletedGoals int64      `json:"completed_goals"`
	UnlockedAt     *time.Time `json:"unlocked_at,omitempty"`
}

// CategoryStats mirrors the mobile client's per-category display pair. Total
// deliberately duplicates Completed (it is the completed-goal count shown as
// the stat denominator, not the milestone count).
type CategoryStats struct {
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}

// StatusReport is the listAllAchievements result.
type StatusReport struct {
	Achievements      []AchievementStatus      `json:"achievements"`
	Categories        map[string]CategoryStats `json:"categories"`
	UnlockedCount     int                      `json:"unlocked_achievements"`
	TotalAchievements int                      `json:"total_achievements"`
}

// NewUnlock describes a milestone crossed for the first time by this check.
type NewUnlock struct {
	models.AchievementDefinition
	CompletedGoals int64     `json:"completed_goals"`
	UnlockedAt     time.Time `json:"unlocked_at"`
}

// RecentAchievement annotates a persisted row with its static definition.
type RecentAchievement struct {
	models.AchievementDefinition
	UnlockedAt time.Time `json:"unlocked_at"`
}

// Summary is the dashboardSummary result.
type Summary struct {
	UnlockedCount      int                 `json:"unlocked_count"`
	TotalPossible      int                 `json:"total_possible"`
	ProgressPercentage int                 `json:"progress_percentage"`
	RecentAchievements []RecentAchievement `json:"recent_achievements"`
}

func completedGoalCount(db *gorm.DB, userID, category string) (int64, error) {
	var n int64
	err := db.Model(&models.Goal{}).
		Where("user_id = ? AND category = ? AND progress = 100", userID, category).
		Count(&n).Error
	return n, err
}

// completedCountsByCategory returns the completed-goal count for every known
// category in one grouped query. Categories with no completed goals map to 0.
func completedCountsByCategory(db *gorm.DB, userID string) (map[string]int64, error) {
	type row struct {
		Category string
		N        int64
	}
	var rows []row
	err := db.Model(&models.Goal{}).
		Select("category, COUNT(*) AS n").
		Where("user_id = ? AND progress = 100", userID).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(models.Categories))
	for _, c := range models.Categories {
		counts[c] = 0
	}
	for _, r := range rows {
		counts[r.Category] = r.N
	}
	return counts, nil
}

// unlockedAtByKey fetches persisted unlock timestamps keyed by achievement ID.
// Pass an empty category to fetch all of a user's rows.
func unlockedAtByKey(db *gorm.DB, userID, category string) (map[string]time.Time, error) {
	q := db.Where("user_id = ?", userID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var rows []models.UserAchievement
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	byKey := make(map[string]time.Time, len(rows))
	for _, ua := range rows {
		byKey[models.AchievementID(ua.Category, ua.Milestone)] = ua.UnlockedAt
	}
	return byKey, nil
}

func statusFor(def models.AchievementDefinition, completed int64, persisted map[string]time.Time) AchievementStatus {
	st := AchievementStatus{
		AchievementDefinition: def,
		IsUnlocked:            completed >= int64(def.Milestone),
		Progress:              utils.PercentOf(int(completed), def.Milestone),
		CompletedGoals:        completed,
	}
	if ts, ok := persisted[def.ID]; ok {
		t := ts
		st.UnlockedAt = &t
	}
	return st
}

// BuildStatus derives the full 24-entry grid for a user. It never mutates the
// store; unlocked counts come from the live derivation, so they may run ahead
// of the persisted rows between goal completion and the next unlock check.
func BuildStatus(db *gorm.DB, userID string) (*StatusReport, error) {
	counts, err := completedCountsByCategory(db, userID)
	if err != nil {
		return nil, err
	}
	persisted, err := unlockedAtByKey(db, userID, "")
	if err != nil {
		return nil, err
	}

	report := &StatusReport{
		Achievements:      make([]AchievementStatus, 0, models.TotalAchievements),
		Categories:        make(map[string]CategoryStats, len(models.Categories)),
		TotalAchievements: models.TotalAchievements,
	}
	for _, cat := range models.Categories {
		completed := counts[cat]
		report.Categories[cat] = CategoryStats{Completed: completed, Total: completed}
		for _, m := range models.Milestones {
			st := statusFor(models.DefinitionFor(cat, m), completed, persisted)
			if st.IsUnlocked {
				report.UnlockedCount++
			}
			report.Achievements = append(report.Achievements, st)
		}
	}
	return report, nil
}

// CategoryStatus is BuildStatus restricted to one category.
func CategoryStatus(db *gorm.DB, userID, category string) ([]AchievementStatus, int64, error) {
	completed, err := completedGoalCount(db, userID, category)
	if err != nil {
		return nil, 0, err
	}
	persisted, err := unlockedAtByKey(db, userID, category)
	if err != nil {
		return nil, 0, err
	}
	statuses := make([]AchievementStatus, 0, len(models.Milestones))
	for _, m := range models.Milestones {
		statuses = append(statuses, statusFor(models.DefinitionFor(category, m), completed, persisted))
	}
	return statuses, completed, nil
}

// CheckAndUnlock recomputes the completed-goal count for one category and
// inserts a row for every milestone the count has crossed that is not yet
// persisted. It may run concurrently for the same (user, category): when two
// calls race, the unique index rejects the second insert and that milestone is
// simply omitted from the loser's result. A failed insert never aborts the
// remaining milestones; a missed one is picked up by the next check since the
// whole operation is re-derivable.
func CheckAndUnlock(db *gorm.DB, userID, category string) ([]NewUnlock, int64, error) {
	completed, err := completedGoalCount(db, userID, category)
	if err != nil {
		return nil, 0, err
	}
	persisted, err := unlockedAtByKey(db, userID, category)
	if err != nil {
		return nil, 0, err
	}

	var unlocked []NewUnlock
	for _, m := range models.Milestones {
		if completed < int64(m) {
			continue
		}
		def := models.DefinitionFor(category, m)
		if _, already := persisted[def.ID]; already {
			continue
		}
		row := models.UserAchievement{
			UserID:        userID,
			Category:      category,
			Milestone:     m,
			AchievementID: def.ID,
			Title:         def.Title,
			UnlockedAt:    time.Now(),
		}
		if err := db.Create(&row).Error; err != nil {
			if isDuplicateKey(err) {
				// lost the race to a concurrent check; already unlocked
				continue
			}
			log.Printf("[achievements] insert failed for %s %s/%d: %v", userID, category, m, err)
			continue
		}
		unlocked = append(unlocked, NewUnlock{
			AchievementDefinition: def,
			CompletedGoals:        completed,
			UnlockedAt:            row.UnlockedAt,
		})
	}
	return unlocked, completed, nil
}

// DashboardSummary derives the unlocked count live and pairs it with the five
// most recently persisted unlocks for the home-screen strip.
func DashboardSummary(db *gorm.DB, userID string) (*Summary, error) {
	counts, err := completedCountsByCategory(db, userID)
	if err != nil {
		return nil, err
	}
	unlockedCount := 0
	for _, cat := range models.Categories {
		for _, m := range models.Milestones {
			if counts[cat] >= int64(m) {
				unlockedCount++
			}
		}
	}

	var recent []models.UserAchievement
	if err := db.Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return nil, err
	}

	summary := &Summary{
		UnlockedCount:      unlockedCount,
		TotalPossible:      models.TotalAchievements,
		ProgressPercentage: utils.PercentOf(unlockedCount, models.TotalAchievements),
		RecentAchievements: make([]RecentAchievement, 0, len(recent)),
	}
	for _, ua := range recent {
		summary.RecentAchievements = append(summary.RecentAchievements, RecentAchievement{
			AchievementDefinition: models.DefinitionFor(ua.Category, ua.Milestone),
			UnlockedAt:            ua.UnlockedAt,
		})
	}
	return summary, nil
}

// isDuplicateKey reports whether err is a unique-constraint violation. MySQL
// error 1062 is matched directly; the message check covers drivers that wrap it.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(strings.ToLower(err.Error()), "duplicate key")
}
