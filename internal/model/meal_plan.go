package model

import "time"

// MealType is the slot of a day a planned recipe fills.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Valid reports whether m is a known meal type.
func (m MealType) Valid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

var mealOrder = map[MealType]int{MealTypeBreakfast: 0, MealTypeLunch: 1, MealTypeDinner: 2, MealTypeSnack: 3}

// Order is the position of m within a day; unknown types sort last.
func (m MealType) Order() int {
	if o, ok := mealOrder[m]; ok {
		return o
	}
	return len(mealOrder)
}

// Weekdays in planner order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// WeekdayIndex returns the position of day in Weekdays, or -1.
func WeekdayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}

// MealPlanEntry places a recipe on a user's weekly plan.
type MealPlanEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" gorm:"not null;index"`
	RecipeID  int       `json:"recipe_id" gorm:"not null;index"`
	MealType  MealType  `json:"meal_type" gorm:"type:varchar(20);not null"`
	DayOfWeek string    `json:"day_of_week" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
