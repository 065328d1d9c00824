package users

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"

	"github.com/gorilla/mux"
)

// POST /users/goals/{id}/subgoals
func CreateSubGoalHandler(w http.ResponseWriter, r *http.Request) {
	goal, ok := loadOwnGoal(w, r)
	if !ok {
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Title is required"})
		return
	}
	sub := models.SubGoal{GoalID: goal.ID, Title: req.Title}
	if err := database.DB.Create(&sub).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create subgoal"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Subgoal created", Data: sub})
}

// loadOwnSubGoal fetches a subgoal by path id and verifies the parent goal ownership.
func loadOwnSubGoal(w http.ResponseWriter, r *http.Request) (*models.SubGoal, *models.Goal, bool) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return nil, nil, false
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid subgoal id"})
		return nil, nil, false
	}
	var sub models.SubGoal
	if err := database.DB.First(&sub, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Subgoal not found"})
		return nil, nil, false
	}
	var goal models.Goal
	if err := database.DB.First(&goal, sub.GoalID).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Goal not found"})
		return nil, nil, false
	}
	if goal.UserID != uid {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "You can only access your own goals"})
		return nil, nil, false
	}
	return &sub, &goal, true
}

// PUT /users/subgoals/{id}
// Toggling the last open subgoal does not auto-complete the goal; the client
// confirms completion through the progress endpoint so the coin/streak credit
// happens exactly once.
func UpdateSubGoalHandler(w http.ResponseWriter, r *http.Request) {
	sub, goal, ok := loadOwnSubGoal(w, r)
	if !ok {
		return
	}
	var req struct {
		Title     *string `json:"title"`
		Completed *bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request"})
		return
	}
	if req.Title != nil && *req.Title != "" {
		sub.Title = *req.Title
	}
	if req.Completed != nil {
		sub.Completed = *req.Completed
	}
	if err := database.DB.Save(sub).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update subgoal"})
		return
	}

	// derived checklist progress for the client
	var total, done int64
	database.DB.Model(&models.SubGoal{}).Where("goal_id = ?", goal.ID).Count(&total)
	database.DB.Model(&models.SubGoal{}).Where("goal_id = ? AND completed = ?", goal.ID, true).Count(&done)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Subgoal updated", Data: map[string]interface{}{
		"subgoal":            sub,
		"checklist_progress": utils.PercentOf(int(done), int(total)),
	}})
}

// DELETE /users/subgoals/{id}
func DeleteSubGoalHandler(w http.ResponseWriter, r *http.Request) {
	sub, _, ok := loadOwnSubGoal(w, r)
	if !ok {
		return
	}
	if err := database.DB.Delete(sub).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete subgoal"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Subgoal deleted"})
}
