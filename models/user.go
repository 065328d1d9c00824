package models

import "time"

// User IDs are the opaque string UIDs issued at registration. Mobile clients
// carry them in every per-user route, so they are the primary key directly.
type User struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	Coins        int       `gorm:"default:0" json:"coins"`
	ProfileImage *string   `gorm:"type:varchar(512);null" json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
