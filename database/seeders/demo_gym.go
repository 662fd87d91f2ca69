package seeders

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gymstack/gymcore/app/models"
	"github.com/gymstack/gymcore/pkg/auth"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password123"

func init() {
	Register("demo_gym", SeedDemoGym)
}

// SeedDemoGym creates one gym with a diet plan, a workout plan and a member
// following both. It does nothing when the demo gym already exists.
func SeedDemoGym(db *gorm.DB) error {
	err := db.Where("email = ?", "demo@gym.test").First(&models.Gym{}).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	meals, _ := json.Marshal([]models.Meal{
		{Name: "Breakfast", Time: "07:30", Items: []string{"oats", "banana"}, Calories: 420, Protein: 18, Carbs: 70, Fats: 8},
		{Name: "Lunch", Time: "13:00", Items: []string{"chicken", "rice", "broccoli"}, Calories: 650, Protein: 48, Carbs: 72, Fats: 14},
	})
	days, _ := json.Marshal([]models.Day{
		{Day: "Monday", Focus: "Push", Exercises: []models.Exercise{{Name: "Bench press", Sets: 4, Reps: "8", Rest: "90s"}}},
		{Day: "Wednesday", Focus: "Pull", Exercises: []models.Exercise{{Name: "Deadlift", Sets: 3, Reps: "5", Rest: "120s"}}},
	})

	return db.Transaction(func(tx *gorm.DB) error {
		gym := models.Gym{
			Name: "Demo Gym", OwnerName: "Dana Demo", Email: "demo@gym.test",
			Password: hash, Phone: "555-0100", Address: "1 Demo Street", Verified: true,
		}
		if err := tx.Create(&gym).Error; err != nil {
			return err
		}

		diet := models.DietPlan{GymID: gym.ID, Name: "Lean bulk", Meals: meals}
		if err := tx.Create(&diet).Error; err != nil {
			return err
		}
		workout := models.WorkoutPlan{GymID: gym.ID, Name: "Push pull", Days: days}
		if err := tx.Create(&workout).Error; err != nil {
			return err
		}

		return tx.Create(&models.Member{
			GymID: gym.ID, Name: "Morgan Member", Email: "member@gym.test",
			Password: hash, Role: auth.RoleUser, JoinedAt: time.Now(),
			CurrentDietPlanID: &diet.ID, CurrentWorkoutPlanID: &workout.ID,
		}).Error
	})
}
