package users

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// CreditStreakDay marks today on the user's streak calendar and advances the
// streak counters when this is the first completion of the day. The (user,
// date) unique index makes the day insert idempotent: on a duplicate the
// counters are left alone and advanced reports false.
func CreditStreakDay(db *gorm.DB, userID string, now time.Time) (advanced bool, err error) {
	day := models.StreakDay{UserID: userID, Date: now.Format("2006-01-02")}
	if err := db.Create(&day).Error; err != nil {
		if isDuplicateKey(err) {
			return false, nil
		}
		return false, err
	}

	var streak models.Streak
	err = db.Where("user_id = ?", userID).First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		streak = models.Streak{UserID: userID}
		err = nil
	}
	if err != nil {
		return false, err
	}

	streak.CurrentStreak = models.AdvanceStreak(streak.CurrentStreak, streak.LastActiveOn, now)
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	t := now
	streak.LastActiveOn = &t
	if err := db.Save(&streak).Error; err != nil {
		return false, err
	}
	return true, nil
}

// GET /users/streak
func GetStreakHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	var streak models.Streak
	if err := db.Where("user_id = ?", uid).First(&streak).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
			return
		}
		streak = models.Streak{UserID: uid}
	}

	// last 30 calendar days of activity for the streak grid
	since := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	var days []models.StreakDay
	if err := db.Where("user_id = ? AND date >= ?", uid, since).Order("date ASC").Find(&days).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}
	history := make([]string, 0, len(days))
	for _, d := range days {
		history = append(history, d.Date)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"current_streak": streak.CurrentStreak,
		"longest_streak": streak.LongestStreak,
		"last_active_on": streak.LastActiveOn,
		"history":        history,
	}})
}

// isDuplicateKey reports whether err is a unique-constraint violation (MySQL 1062).
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
