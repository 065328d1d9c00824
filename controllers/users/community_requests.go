package users

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/middleware"
	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"
)

// Each user may file at most this many community requests per rolling 24h window.
const maxRequestsPerDay = 3

// POST /community-requests
func CreateCommunityRequestHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var req struct {
		Name        string `json:"name" validate:"required"`
		Category    string `json:"category" validate:"required,category"`
		Description string `json:"description"`
	}
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB
	since := time.Now().Add(-24 * time.Hour)
	var recent int64
	if err := db.Model(&models.CommunityRequest{}).
		Where("user_id = ? AND created_at >= ?", uid, since).
		Count(&recent).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}
	if recent >= maxRequestsPerDay {
		utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{
			Success: false,
			Message: fmt.Sprintf("Request limit reached, you can submit at most %d requests per day", maxRequestsPerDay),
		})
		return
	}

	request := models.CommunityRequest{
		UserID:      uid,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Status:      "Pending",
	}
	if err := db.Create(&request).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create request"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Request submitted", Data: request})
}

// GET /community-requests
func ListCommunityRequestsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var requests []models.CommunityRequest
	if err := database.DB.Where("user_id = ?", uid).Order("created_at DESC").Find(&requests).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: requests})
}
