package models

import (
	"time"

	"github.com/gymstack/gymcore/pkg/auth"
)

// Member is a person enrolled in one gym. GymID is set on create and never
// written by an update.
type Member struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	GymID    uint      `gorm:"not null;index" json:"gymId"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Email    string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string    `gorm:"size:255;not null" json:"-"`
	Role     auth.Role `gorm:"size:50;not null;default:user" json:"role"`
	Phone    string    `gorm:"size:50" json:"phone"`
	JoinedAt time.Time `json:"joinedAt"`

	CurrentDietPlanID    *uint `gorm:"index" json:"currentDietPlan"`
	CurrentWorkoutPlanID *uint `gorm:"index" json:"currentWorkoutPlan"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
