package users

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/controllers/achievements"
	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/middleware"
	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// GET /users/goals
func GoalListHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	q := db.Where("user_id = ?", uid)
	if cat := r.URL.Query().Get("category"); cat != "" {
		if !models.IsValidCategory(cat) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid category: " + cat})
			return
		}
		q = q.Where("category = ?", cat)
	}
	if c := r.URL.Query().Get("completed"); c == "true" || c == "false" {
		q = q.Where("completed = ?", c == "true")
	}

	var goals []models.Goal
	if err := q.Preload("SubGoals").Order("created_at DESC").Find(&goals).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: goals})
}

// POST /users/goals
func CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var req struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		Category    string `json:"category" validate:"required,category"`
		CoinReward  int    `json:"coin_reward"`
		TargetDate  string `json:"target_date"`
	}
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	goal := models.Goal{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CoinReward:  req.CoinReward,
	}
	if goal.CoinReward <= 0 {
		goal.CoinReward = 10
	}
	if req.TargetDate != "" {
		if t, err := time.Parse("2006-01-02", req.TargetDate); err == nil {
			goal.TargetDate = &t
		}
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create goal"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Goal created", Data: goal})
}

// loadOwnGoal fetches a goal by path id and verifies ownership.
func loadOwnGoal(w http.ResponseWriter, r *http.Request) (*models.Goal, bool) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return nil, false
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid goal id"})
		return nil, false
	}
	var goal models.Goal
	if err := database.DB.Preload("SubGoals").First(&goal, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Goal not found"})
		return nil, false
	}
	if goal.UserID != uid {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "You can only access your own goals"})
		return nil, false
	}
	return &goal, true
}

// GET /users/goals/{id}
func GetGoalHandler(w http.ResponseWriter, r *http.Request) {
	goal, ok := loadOwnGoal(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: goal})
}

// PUT /users/goals/{id}
func UpdateGoalHandler(w http.ResponseWriter, r *http.Request) {
	goal, ok := loadOwnGoal(w, r)
	if !ok {
		return
	}
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		TargetDate  *string `json:"target_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request"})
		return
	}
	if req.Title != nil && *req.Title != "" {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.Category != nil {
		if !models.IsValidCategory(*req.Category) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid category: " + *req.Category})
			return
		}
		goal.Category = *req.Category
	}
	if req.TargetDate != nil {
		if *req.TargetDate == "" {
			goal.TargetDate = nil
		} else if t, err := time.Parse("2006-01-02", *req.TargetDate); err == nil {
			goal.TargetDate = &t
		}
	}
	if err := database.DB.Save(goal).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update goal"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Goal updated", Data: goal})
}

// DELETE /users/goals/{id}
func DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	goal, ok := loadOwnGoal(w, r)
	if !ok {
		return
	}
	db := database.DB
	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.SubGoal{}).Error; err != nil {
			return err
		}
		return tx.Delete(goal).Error
	}); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete goal"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Goal deleted"})
}

// PUT /users/goals/{id}/progress
// Setting progress to 100 completes the goal: coins are credited and the streak
// day recorded in one transaction, then the achievement check runs for the
// goal's category. The check is safe to re-run, so a failure there is reported
// but never rolls back the completion.
func UpdateGoalProgressHandler(w http.ResponseWriter, r *http.Request) {
	goal, ok := loadOwnGoal(w, r)
	if !ok {
		return
	}
	var req struct {
		Progress int `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request"})
		return
	}
	if req.Progress < 0 {
		req.Progress = 0
	}
	if req.Progress > 100 {
		req.Progress = 100
	}

	db := database.DB
	justCompleted := req.Progress == 100 && !goal.Completed
	coinsAwarded := 0

	if err := db.Transaction(func(tx *gorm.DB) error {
		goal.Progress = req.Progress
		// completed always mirrors progress so the flag and the derived
		// achievement counts cannot drift apart
		goal.Completed = req.Progress == 100
		if err := tx.Save(goal).Error; err != nil {
			return err
		}
		if justCompleted {
			coinsAwarded = goal.CoinReward
			if err := tx.Model(&models.User{}).Where("id = ?", goal.UserID).
				Update("coins", gorm.Expr("coins + ?", goal.CoinReward)).Error; err != nil {
				return err
			}
			if _, err := CreditStreakDay(tx, goal.UserID, time.Now()); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update progress"})
		return
	}

	newUnlocks := []achievements.NewUnlock{}
	if justCompleted {
		unlocked, _, err := achievements.CheckAndUnlock(db, goal.UserID, goal.Category)
		if err != nil {
			log.Printf("[goals] achievement check failed for %s/%s: %v", goal.UserID, goal.Category, err)
		} else {
			newUnlocks = append(newUnlocks, unlocked...)
		}
	}

	message := "Progress updated"
	if justCompleted {
		message = "Goal completed"
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: message, Data: map[string]interface{}{
		"goal":             goal,
		"coins_awarded":    coinsAwarded,
		"new_achievements": newUnlocks,
	}})
}
