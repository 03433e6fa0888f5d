package model

import "time"

// User is a registered account. IDs are allocated by the application, not the store.
type User struct {
	ID           int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Username     string    `json:"username" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	ProfilePic   *string   `json:"profile_pic,omitempty" gorm:"size:512"`
	Banner       *string   `json:"banner,omitempty" gorm:"size:512"`
	CreatedAt    time.Time `json:"created_at"`
}
