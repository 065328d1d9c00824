package admins

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"

	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid JSON body",
		})
		return
	}

	var admin models.Admin
	if err := database.DB.Where("username = ? AND is_active = ?", req.Username, true).First(&admin).Error; err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Invalid username or password",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Invalid username or password",
		})
		return
	}

	token, err := utils.GenerateAccessToken(strconv.FormatUint(uint64(admin.ID), 10), "admin")
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to create token",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"token": token,
			"admin": map[string]interface{}{
				"id":       admin.ID,
				"username": admin.Username,
			},
		},
	})
}
