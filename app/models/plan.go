package models

import (
	"time"

	"gorm.io/datatypes"
)

// Meal is one entry of a diet plan.
type Meal struct {
	Name     string   `json:"name" validate:"required,max=255"`
	Time     string   `json:"time" validate:"max=50"`
	Items    []string `json:"items"`
	Calories float64  `json:"calories" validate:"min=0"`
	Protein  float64  `json:"protein" validate:"min=0"`
	Carbs    float64  `json:"carbs" validate:"min=0"`
	Fats     float64  `json:"fats" validate:"min=0"`
	Notes    string   `json:"notes"`
}

// Exercise is one movement of a training day.
type Exercise struct {
	Name  string `json:"name" validate:"required,max=255"`
	Sets  int    `json:"sets" validate:"min=0"`
	Reps  string `json:"reps" validate:"max=50"`
	Rest  string `json:"rest" validate:"max=50"`
	Notes string `json:"notes"`
}

// Day is one training day of a workout plan.
type Day struct {
	Day       string     `json:"day" validate:"required,max=50"`
	Focus     string     `json:"focus" validate:"max=255"`
	Exercises []Exercise `json:"exercises" validate:"dive"`
}

// DietPlan stores its meals as a JSON column, in order.
type DietPlan struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	GymID       uint           `gorm:"not null;index" json:"gymId"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Meals       datatypes.JSON `json:"meals"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// WorkoutPlan stores its days as a JSON column, in order.
type WorkoutPlan struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	GymID       uint           `gorm:"not null;index" json:"gymId"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Days        datatypes.JSON `json:"days"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
