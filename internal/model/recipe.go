package model

import "time"

// Recipe is owned by its author and removed with them.
type Recipe struct {
	ID          int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Title       string    `json:"title" gorm:"size:255;not null;index"`
	Ingredients string    `json:"ingredients" gorm:"type:text;not null"`
	Steps       string    `json:"steps" gorm:"type:text;not null"`
	AuthorID    int       `json:"author_id" gorm:"not null;index"`
	Image       *string   `json:"image,omitempty" gorm:"size:512"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
