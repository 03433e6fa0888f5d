package model

import "time"

// Notification is an unread message for UserID. Reading one deletes it.
type Notification struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       int       `json:"user_id" gorm:"not null;index"`
	OriginUserID int       `json:"origin_user_id" gorm:"not null;index"`
	Message      string    `json:"message" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Recipient User `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Origin    User `json:"-" gorm:"foreignKey:OriginUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
