package users

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/middleware"
	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// GET /users/routines
func RoutineListHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var routines []models.Routine
	if err := database.DB.Where("user_id = ?", uid).Order("created_at ASC").Find(&routines).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}

	now := time.Now()
	resp := make([]map[string]interface{}, 0, len(routines))
	for _, rt := range routines {
		resp = append(resp, map[string]interface{}{
			"id":              rt.ID,
			"title":           rt.Title,
			"category":        rt.Category,
			"frequency":       rt.Frequency,
			"coin_reward":     rt.CoinReward,
			"last_completed":  rt.LastCompleted,
			"completed_today": !rt.DueNow(now),
		})
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: resp})
}

// POST /users/routines
func CreateRoutineHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var req struct {
		Title     string `json:"title" validate:"required"`
		Category  string `json:"category" validate:"required,category"`
		Frequency string `json:"frequency"`
	}
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Frequency != "weekly" {
		req.Frequency = "daily"
	}
	routine := models.Routine{UserID: uid, Title: req.Title, Category: req.Category, Frequency: req.Frequency}
	if err := database.DB.Create(&routine).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create routine"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Routine created", Data: routine})
}

func loadOwnRoutine(w http.ResponseWriter, r *http.Request) (*models.Routine, bool) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return nil, false
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid routine id"})
		return nil, false
	}
	var routine models.Routine
	if err := database.DB.First(&routine, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Routine not found"})
		return nil, false
	}
	if routine.UserID != uid {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "You can only access your own routines"})
		return nil, false
	}
	return &routine, true
}

// PUT /users/routines/{id}
func UpdateRoutineHandler(w http.ResponseWriter, r *http.Request) {
	routine, ok := loadOwnRoutine(w, r)
	if !ok {
		return
	}
	var req struct {
		Title     *string `json:"title"`
		Category  *string `json:"category"`
		Frequency *string `json:"frequency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request"})
		return
	}
	if req.Title != nil && *req.Title != "" {
		routine.Title = *req.Title
	}
	if req.Category != nil {
		if !models.IsValidCategory(*req.Category) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid category: " + *req.Category})
			return
		}
		routine.Category = *req.Category
	}
	if req.Frequency != nil && (*req.Frequency == "daily" || *req.Frequency == "weekly") {
		routine.Frequency = *req.Frequency
	}
	if err := database.DB.Save(routine).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update routine"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Routine updated", Data: routine})
}

// DELETE /users/routines/{id}
func DeleteRoutineHandler(w http.ResponseWriter, r *http.Request) {
	routine, ok := loadOwnRoutine(w, r)
	if !ok {
		return
	}
	if err := database.DB.Delete(routine).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete routine"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Routine deleted"})
}

// POST /users/routines/{id}/complete
func CompleteRoutineHandler(w http.ResponseWriter, r *http.Request) {
	routine, ok := loadOwnRoutine(w, r)
	if !ok {
		return
	}
	now := time.Now()
	if !routine.DueNow(now) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Routine already completed for this period"})
		return
	}

	db := database.DB
	if err := db.Transaction(func(tx *gorm.DB) error {
		routine.LastCompleted = &now
		if err := tx.Save(routine).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", routine.UserID).
			Update("coins", gorm.Expr("coins + ?", routine.CoinReward)).Error; err != nil {
			return err
		}
		_, err := CreditStreakDay(tx, routine.UserID, now)
		return err
	}); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to complete routine"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Routine completed", Data: map[string]interface{}{
		"routine":       routine,
		"coins_awarded": routine.CoinReward,
	}})
}
