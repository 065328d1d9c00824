package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"
)

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutHandler revokes a specific refresh token and (optionally) the access token jti from Authorization header
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.RefreshToken == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "refresh_token is required"})
		return
	}

	// Attempt to revoke the access-token jti if an Authorization header is present
	authz := r.Header.Get("Authorization")
	if authz != "" && strings.HasPrefix(authz, "Bearer ") {
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		if _, claims, err := utils.ValidateAccessToken(tokenStr); err == nil && claims != nil {
			if jtiRaw, ok := claims["jti"].(string); ok && jtiRaw != "" {
				var ttl time.Duration
				if expRaw, ok := claims["exp"].(float64); ok {
					ttl = time.Until(time.Unix(int64(expRaw), 0))
				}
				if ttl < 0 {
					ttl = 0
				}
				_ = utils.RevokeJTI(jtiRaw, ttl)
			}
		}
		// ignore errors parsing the access token; still revoke the refresh token
	}

	if database.DB == nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	// If the row is missing still return success to avoid token enumeration
	_ = database.DB.Model(&models.RefreshToken{}).Where("id = ?", req.RefreshToken).Update("revoked", true).Error
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
