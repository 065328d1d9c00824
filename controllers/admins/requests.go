package admins

import (
	"net/http"
	"strconv"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"

	"github.com/gorilla/mux"
)

// GET /admin/community-requests?status=Pending
func ListRequests(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	q := db.Model(&models.CommunityRequest{})
	status := r.URL.Query().Get("status")
	switch status {
	case "":
	case "Pending", "Approved", "Rejected":
		q = q.Where("status = ?", status)
	default:
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid status filter"})
		return
	}

	var requests []models.CommunityRequest
	if err := q.Order("created_at ASC").Find(&requests).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: requests})
}

func resolveRequest(w http.ResponseWriter, r *http.Request, status string) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request id"})
		return
	}
	var request models.CommunityRequest
	if err := database.DB.First(&request, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Request not found"})
		return
	}
	if request.Status != "Pending" {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Request already resolved"})
		return
	}
	request.Status = status
	if err := database.DB.Save(&request).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update request"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Request " + status, Data: request})
}

// POST /admin/community-requests/{id}/approve
func ApproveRequest(w http.ResponseWriter, r *http.Request) {
	resolveRequest(w, r, "Approved")
}

// POST /admin/community-requests/{id}/reject
func RejectRequest(w http.ResponseWriter, r *http.Request) {
	resolveRequest(w, r, "Rejected")
}
