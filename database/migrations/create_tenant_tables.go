package migrations

import (
	"gorm.io/gorm"

	"github.com/gymstack/gymcore/app/models"
	"github.com/gymstack/gymcore/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_gyms_table", &CreateGymsTable{})
	migration.Register("20260301000001_create_diet_plans_table", &CreateDietPlansTable{})
	migration.Register("20260301000002_create_workout_plans_table", &CreateWorkoutPlansTable{})
	migration.Register("20260301000003_create_members_table", &CreateMembersTable{})
}

type CreateGymsTable struct{}

func (CreateGymsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Gym{})
}

func (CreateGymsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("gyms")
}

type CreateDietPlansTable struct{}

func (CreateDietPlansTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.DietPlan{})
}

func (CreateDietPlansTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("diet_plans")
}

type CreateWorkoutPlansTable struct{}

func (CreateWorkoutPlansTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.WorkoutPlan{})
}

func (CreateWorkoutPlansTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("workout_plans")
}

// CreateMembersTable runs last because members reference both plan tables.
type CreateMembersTable struct{}

func (CreateMembersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Member{})
}

func (CreateMembersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("members")
}
