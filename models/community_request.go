package models

import "time"

// CommunityRequest is a user submission asking for a new community. Requests
// start Pending and are resolved by an admin.
type CommunityRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:64;index;not null" json:"user_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Category    string    `gorm:"type:enum('Personal','Work','Learning','Health','Repair','Finance');not null" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"type:enum('Pending','Approved','Rejected');default:'Pending';index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CommunityRequest) TableName() string {
	return "community_requests"
}
