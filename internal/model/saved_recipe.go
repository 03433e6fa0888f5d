package model

import "time"

// SavedRecipe marks a recipe as saved by a user. The pair is unique.
type SavedRecipe struct {
	UserID    int       `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	RecipeID  int       `json:"recipe_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
