package users

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"

	"gorm.io/gorm"
)

// GET /users/info
func InfoHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	var user models.User
	if err := db.First(&user, "id = ?", uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	var streak models.Streak
	if err := db.Where("user_id = ?", uid).First(&streak).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}

	var goalCount, completedCount int64
	db.Model(&models.Goal{}).Where("user_id = ?", uid).Count(&goalCount)
	// same predicate as the achievement derivation
	db.Model(&models.Goal{}).Where("user_id = ? AND progress = 100", uid).Count(&completedCount)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"id":              user.ID,
		"name":            user.Name,
		"username":        user.Username,
		"email":           user.Email,
		"coins":           user.Coins,
		"profile_image":   user.ProfileImage,
		"current_streak":  streak.CurrentStreak,
		"longest_streak":  streak.LongestStreak,
		"total_goals":     goalCount,
		"completed_goals": completedCount,
	}})
}

// PUT /users/profile
// Multipart form: optional "name" field and optional "image" file.
func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	if err := r.ParseMultipartForm(6 << 20); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form data"})
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, "id = ?", uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name != "" && name != "null" {
		user.Name = name
	}

	file, handler, err := r.FormFile("image")
	if err == nil && handler != nil {
		defer file.Close()
		data, ext, rerr := readUploadedImage(file, handler)
		if rerr != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: rerr.Error()})
			return
		}
		key := utils.NewImageObjectKey("profiles", ext)
		url, uerr := utils.UploadImage(r.Context(), key, bytes.NewReader(data), int64(len(data)))
		if uerr != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to upload image"})
			return
		}
		user.ProfileImage = &url
	}

	if err := db.Save(&user).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to save profile"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Profile updated", Data: map[string]interface{}{
		"name":          user.Name,
		"profile_image": user.ProfileImage,
	}})
}

// DELETE /users/profile
// Removes the avatar; the object delete is best-effort.
func DeleteProfileImageHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB
	var user models.User
	if err := db.First(&user, "id = ?", uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}
	if user.ProfileImage != nil {
		if base := utils.PublicObjectURL(""); base != "" {
			if key, ok := strings.CutPrefix(*user.ProfileImage, base); ok {
				_ = utils.DeleteObject(r.Context(), key)
			}
		}
		if err := db.Model(&user).Update("profile_image", nil).Error; err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update profile"})
			return
		}
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Profile image removed"})
}
