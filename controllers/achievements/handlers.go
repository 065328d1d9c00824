package achievements

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"

	"github.com/gorilla/mux"
)

// requireSelf extracts the {userId} path variable and verifies it matches the
// authenticated caller. Authorization runs before any storage access.
func requireSelf(w http.ResponseWriter, r *http.Request) (string, bool) {
	pathUserID := mux.Vars(r)["userId"]
	if pathUserID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "User ID is required"})
		return "", false
	}
	callerID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return "", false
	}
	if callerID != pathUserID {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "You can only access your own achievements"})
		return "", false
	}
	return pathUserID, true
}

// GET /achievements/users/{userId}/achievements
func ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r)
	if !ok {
		return
	}
	report, err := BuildStatus(database.DB, userID)
	if err != nil {
		log.Printf("[achievements] list failed for %s: %v", userID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to retrieve achievements"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: report})
}

// POST /achievements/users/{userId}/achievements/check
func CheckHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r)
	if !ok {
		return
	}
	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Category == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Category is required"})
		return
	}
	if !models.IsValidCategory(req.Category) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid category: " + req.Category})
		return
	}

	unlocked, completed, err := CheckAndUnlock(database.DB, userID, req.Category)
	if err != nil {
		log.Printf("[achievements] check failed for %s/%s: %v", userID, req.Category, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to check achievements"})
		return
	}

	message := "No new achievements"
	if len(unlocked) > 0 {
		message = fmt.Sprintf("Unlocked %d new achievement(s)", len(unlocked))
	}
	// empty list rather than null when nothing unlocked
	if unlocked == nil {
		unlocked = []NewUnlock{}
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: message, Data: map[string]interface{}{
		"new_achievements": unlocked,
		"completed_goals":  completed,
		"category":         req.Category,
	}})
}

// GET /achievements/users/{userId}/achievements/summary
func SummaryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r)
	if !ok {
		return
	}
	summary, err := DashboardSummary(database.DB, userID)
	if err != nil {
		log.Printf("[achievements] summary failed for %s: %v", userID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to retrieve achievement summary"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: summary})
}

// GET /achievements/users/{userId}/achievements/category/{category}
func CategoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r)
	if !ok {
		return
	}
	category := mux.Vars(r)["category"]
	if !models.IsValidCategory(category) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid category: " + category})
		return
	}
	statuses, completed, err := CategoryStatus(database.DB, userID, category)
	if err != nil {
		log.Printf("[achievements] category status failed for %s/%s: %v", userID, category, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to retrieve category achievements"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"category":        category,
		"completed_goals": completed,
		"achievements":    statuses,
	}})
}

// GET /achievements/structure
// Public: the static category/milestone/title table the mobile client renders from.
func StructureHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"categories":   models.Categories,
		"milestones":   models.Milestones,
		"achievements": models.AllDefinitions(),
	}})
}
