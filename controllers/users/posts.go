package users

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/database"
	"github.com/alxsaunders/FutureMove-sub003/models"
	"github.com/alxsaunders/FutureMove-sub003/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type postAuthor struct {
	Name         string
	Username     string
	ProfileImage *string
}

// authorsByID loads display info for a set of post/comment authors in one query.
func authorsByID(db *gorm.DB, ids map[string]struct{}) map[string]postAuthor {
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	authorMap := make(map[string]postAuthor, len(list))
	if len(list) == 0 {
		return authorMap
	}
	var users []models.User
	db.Select("id", "name", "username", "profile_image").Where("id IN ?", list).Find(&users)
	for _, u := range users {
		authorMap[u.ID] = postAuthor{u.Name, u.Username, u.ProfileImage}
	}
	return authorMap
}

// GET /posts
func PostFeedHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	var totalRows int64
	if err := db.Model(&models.Post{}).Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}
	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))
	offset := (page - 1) * limit

	var posts []models.Post
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}

	userIDs := make(map[string]struct{})
	postIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		userIDs[p.UserID] = struct{}{}
		postIDs = append(postIDs, p.ID)
	}
	authors := authorsByID(db, userIDs)

	// like and comment counts in two grouped queries
	type countRow struct {
		PostID uint
		N      int64
	}
	likeCounts := map[uint]int64{}
	commentCounts := map[uint]int64{}
	likedByMe := map[uint]bool{}
	if len(postIDs) > 0 {
		var rows []countRow
		db.Model(&models.PostLike{}).Select("post_id, COUNT(*) AS n").Where("post_id IN ?", postIDs).Group("post_id").Scan(&rows)
		for _, c := range rows {
			likeCounts[c.PostID] = c.N
		}
		rows = nil
		db.Model(&models.Comment{}).Select("post_id, COUNT(*) AS n").Where("post_id IN ?", postIDs).Group("post_id").Scan(&rows)
		for _, c := range rows {
			commentCounts[c.PostID] = c.N
		}
		var mine []models.PostLike
		db.Where("post_id IN ? AND user_id = ?", postIDs, uid).Find(&mine)
		for _, l := range mine {
			likedByMe[l.PostID] = true
		}
	}

	type postResp struct {
		ID           uint    `json:"id"`
		UserID       string  `json:"user_id"`
		Name         string  `json:"name"`
		Username     string  `json:"username"`
		ProfileImage *string `json:"profile_image,omitempty"`
		Content      string  `json:"content"`
		ImageURL     *string `json:"image_url,omitempty"`
		LikeCount    int64   `json:"like_count"`
		CommentCount int64   `json:"comment_count"`
		LikedByMe    bool    `json:"liked_by_me"`
		Time         string  `json:"time"`
	}
	resp := make([]postResp, 0, len(posts))
	for _, p := range posts {
		a := authors[p.UserID]
		resp = append(resp, postResp{
			ID:           p.ID,
			UserID:       p.UserID,
			Name:         a.Name,
			Username:     a.Username,
			ProfileImage: a.ProfileImage,
			Content:      p.Content,
			ImageURL:     p.ImageURL,
			LikeCount:    likeCounts[p.ID],
			CommentCount: commentCounts[p.ID],
			LikedByMe:    likedByMe[p.ID],
			Time:         p.CreatedAt.Format(time.RFC3339),
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"data": resp,
		"pagination": map[string]interface{}{
			"page":        page,
			"limit":       limit,
			"total_rows":  totalRows,
			"total_pages": totalPages,
		},
	}})
}

// POST /posts
// Multipart form: "content" field and optional "image" file.
func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	if err := r.ParseMultipartForm(6 << 20); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form data"})
		return
	}
	content := strings.TrimSpace(r.FormValue("content"))
	if content == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Content is required"})
		return
	}

	post := models.Post{UserID: uid, Content: content}

	file, handler, err := r.FormFile("image")
	if err == nil && handler != nil {
		defer file.Close()
		data, ext, rerr := readUploadedImage(file, handler)
		if rerr != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: rerr.Error()})
			return
		}
		key := utils.NewImageObjectKey("posts", ext)
		url, uerr := utils.UploadImage(r.Context(), key, bytes.NewReader(data), int64(len(data)))
		if uerr != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to upload image"})
			return
		}
		post.ImageURL = &url
	}

	if err := database.DB.Create(&post).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create post"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Post created", Data: post})
}

func loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid post id"})
		return nil, false
	}
	var post models.Post
	if err := database.DB.First(&post, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Post not found"})
		return nil, false
	}
	return &post, true
}

// DELETE /posts/{id}
func DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	post, ok := loadPost(w, r)
	if !ok {
		return
	}
	if post.UserID != uid {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "You can only delete your own posts"})
		return
	}
	db := database.DB
	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	}); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete post"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Post deleted"})
}

// POST /posts/{id}/like
// Toggle: a duplicate like turns into an unlike. The unique index on
// (post_id, user_id) keeps a racing double-tap at one row.
func TogglePostLikeHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	post, ok := loadPost(w, r)
	if !ok {
		return
	}
	db := database.DB

	res := db.Where("post_id = ? AND user_id = ?", post.ID, uid).Delete(&models.PostLike{})
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}
	liked := false
	if res.RowsAffected == 0 {
		like := models.PostLike{PostID: post.ID, UserID: uid}
		if err := db.Create(&like).Error; err != nil && !isDuplicateKey(err) {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to like post"})
			return
		}
		liked = true
	}

	var likeCount int64
	db.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&likeCount)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"liked":      liked,
		"like_count": likeCount,
	}})
}

// GET /posts/{id}/comments
func ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserID(r); !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	post, ok := loadPost(w, r)
	if !ok {
		return
	}
	db := database.DB

	var comments []models.Comment
	if err := db.Where("post_id = ?", post.ID).Order("created_at ASC").Find(&comments).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}

	userIDs := make(map[string]struct{})
	for _, c := range comments {
		userIDs[c.UserID] = struct{}{}
	}
	authors := authorsByID(db, userIDs)

	type commentResp struct {
		ID           uint    `json:"id"`
		UserID       string  `json:"user_id"`
		Name         string  `json:"name"`
		Username     string  `json:"username"`
		ProfileImage *string `json:"profile_image,omitempty"`
		Content      string  `json:"content"`
		Time         string  `json:"time"`
	}
	resp := make([]commentResp, 0, len(comments))
	for _, c := range comments {
		a := authors[c.UserID]
		resp = append(resp, commentResp{
			ID:           c.ID,
			UserID:       c.UserID,
			Name:         a.Name,
			Username:     a.Username,
			ProfileImage: a.ProfileImage,
			Content:      c.Content,
			Time:         c.CreatedAt.Format(time.RFC3339),
		})
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: resp})
}

// POST /posts/{id}/comments
func CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	post, ok := loadPost(w, r)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Content is required"})
		return
	}
	comment := models.Comment{PostID: post.ID, UserID: uid, Content: strings.TrimSpace(req.Content)}
	if err := database.DB.Create(&comment).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create comment"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Comment created", Data: comment})
}

// DELETE /comments/{id}
func DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid comment id"})
		return
	}
	var comment models.Comment
	if err := database.DB.First(&comment, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Comment not found"})
		return
	}
	if comment.UserID != uid {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "You can only delete your own comments"})
		return
	}
	if err := database.DB.Delete(&comment).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete comment"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Comment deleted"})
}
