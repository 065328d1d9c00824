package admins

import (
	"net/http"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"
)

type DailyGrowth struct {
	Day   string `json:"day"`
	Count *int64 `json:"count"`
}

type DashboardStats struct {
	TotalUsers      int64         `json:"total_users"`
	GrowthUsers     []DailyGrowth `json:"growth_users"`
	TotalGoals      int64         `json:"total_goals"`
	CompletedGoals  int64         `json:"completed_goals"`
	TotalPosts      int64         `json:"total_posts"`
	PendingRequests int64         `json:"pending_requests"`
	UnlockedBadges  int64         `json:"unlocked_badges"`
}

func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	var stats DashboardStats
	db := database.DB

	// initialize slice to ensure an empty array is returned (not null)
	stats.GrowthUsers = make([]DailyGrowth, 0)

	db.Model(&models.User{}).Count(&stats.TotalUsers)
	db.Model(&models.Goal{}).Count(&stats.TotalGoals)
	db.Model(&models.Goal{}).Where("completed = ?", true).Count(&stats.CompletedGoals)
	db.Model(&models.Post{}).Count(&stats.TotalPosts)
	db.Model(&models.CommunityRequest{}).Where("status = ?", "Pending").Count(&stats.PendingRequests)
	db.Model(&models.UserAchievement{}).Count(&stats.UnlockedBadges)

	// signups per day over the last 7 days
	type row struct {
		Day   string
		Count int64
	}
	var rows []row
	since := time.Now().AddDate(0, 0, -6).Truncate(24 * time.Hour)
	db.Model(&models.User{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows)
	byDay := make(map[string]int64, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row.Count
	}
	for i := 0; i < 7; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		n := byDay[day]
		stats.GrowthUsers = append(stats.GrowthUsers, DailyGrowth{Day: day, Count: &n})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: stats})
}
