package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/gymstack/gymcore/app/models"
	"github.com/gymstack/gymcore/app/repositories"
	"github.com/gymstack/gymcore/pkg/storage"
)

// PlanInput builds and patches one kind of plan from a request body.
type PlanInput[T repositories.Plan] interface {
	// Model returns a new plan owned by gymID.
	Model(gymID uint) (*T, error)
	// Changes returns the columns to write on update.
	Changes() (map[string]any, error)
	// Owner is the gymId the body names, nil when absent.
	Owner() *uint
}

// DietPlanInput is the body of POST and PUT /gym/diet-plans.
type DietPlanInput struct {
	Name        string        `json:"name" validate:"required,max=255"`
	Description string        `json:"description"`
	Meals       []models.Meal `json:"meals" validate:"dive"`
	GymID       *uint         `json:"gymId"`
}

func (in DietPlanInput) Model(gymID uint) (*models.DietPlan, error) {
	meals, err := jsonList(in.Meals)
	if err != nil {
		return nil, err
	}
	return &models.DietPlan{GymID: gymID, Name: in.Name, Description: in.Description, Meals: meals}, nil
}

func (in DietPlanInput) Changes() (map[string]any, error) {
	meals, err := jsonList(in.Meals)
	if err != nil {
		return nil, err
	}
	return map[string]any{"name": in.Name, "description": in.Description, "meals": meals}, nil
}

func (in DietPlanInput) Owner() *uint { return in.GymID }

// WorkoutPlanInput is the body of POST and PUT /gym/workout-plans.
type WorkoutPlanInput struct {
	Name        string       `json:"name" validate:"required,max=255"`
	Description string       `json:"description"`
	Days        []models.Day `json:"days" validate:"dive"`
	GymID       *uint        `json:"gymId"`
}

func (in WorkoutPlanInput) Model(gymID uint) (*models.WorkoutPlan, error) {
	days, err := jsonList(in.Days)
	if err != nil {
		return nil, err
	}
	return &models.WorkoutPlan{GymID: gymID, Name: in.Name, Description: in.Description, Days: days}, nil
}

func (in WorkoutPlanInput) Changes() (map[string]any, error) {
	days, err := jsonList(in.Days)
	if err != nil {
		return nil, err
	}
	return map[string]any{"name": in.Name, "description": in.Description, "days": days}, nil
}

func (in WorkoutPlanInput) Owner() *uint { return in.GymID }

// jsonList encodes a list for a JSON column, writing [] for nil.
func jsonList[E any](list []E) (datatypes.JSON, error) {
	if list == nil {
		list = []E{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode plan entries: %w", err)
	}
	return datatypes.JSON(b), nil
}

// ExportResult locates an exported plan snapshot.
type ExportResult struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// PlanService manages one kind of gym-owned plan.
type PlanService[T repositories.Plan, In PlanInput[T]] struct {
	kind  string
	plans *repositories.PlanRepository[T]
	disk  storage.Disk
	now   func() time.Time
}

// NewDietPlanService serves /gym/diet-plans. disk may be nil, which disables
// export.
func NewDietPlanService(plans *repositories.PlanRepository[models.DietPlan], disk storage.Disk) *PlanService[models.DietPlan, DietPlanInput] {
	return &PlanService[models.DietPlan, DietPlanInput]{kind: "diet-plan", plans: plans, disk: disk, now: time.Now}
}

// NewWorkoutPlanService serves /gym/workout-plans.
func NewWorkoutPlanService(plans *repositories.PlanRepository[models.WorkoutPlan], disk storage.Disk) *PlanService[models.WorkoutPlan, WorkoutPlanInput] {
	return &PlanService[models.WorkoutPlan, WorkoutPlanInput]{kind: "workout-plan", plans: plans, disk: disk, now: time.Now}
}

func (s *PlanService[T, In]) List(ctx context.Context, gymID uint) ([]T, error) {
	plans, err := s.plans.ListForGym(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", s.kind, err)
	}
	return plans, nil
}

func (s *PlanService[T, In]) Get(ctx context.Context, gymID, id uint) (T, error) {
	plan, err := s.plans.FindInGym(ctx, gymID, id)
	if err != nil {
		var zero T
		return zero, notFound("get "+s.kind, err)
	}
	return plan, nil
}

// Create stores a plan owned by gymID. A body naming another gym is
// rejected.
func (s *PlanService[T, In]) Create(ctx context.Context, gymID uint, in In) (T, error) {
	var zero T
	if owner := in.Owner(); owner != nil && *owner != gymID {
		return zero, ErrCrossTenant
	}
	plan, err := in.Model(gymID)
	if err != nil {
		return zero, err
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return zero, fmt.Errorf("create %s: %w", s.kind, err)
	}
	return *plan, nil
}

// Update replaces the content of plan id of gymID.
func (s *PlanService[T, In]) Update(ctx context.Context, gymID, id uint, in In) (T, error) {
	var zero T
	if _, err := s.plans.FindInGym(ctx, gymID, id); err != nil {
		return zero, notFound("update "+s.kind, err)
	}
	if owner := in.Owner(); owner != nil && *owner != gymID {
		return zero, ErrCrossTenant
	}
	changes, err := in.Changes()
	if err != nil {
		return zero, err
	}
	if err := s.plans.UpdateInGym(ctx, gymID, id, changes); err != nil {
		return zero, notFound("update "+s.kind, err)
	}
	return s.Get(ctx, gymID, id)
}

// Delete removes the plan and unassigns it from every member.
func (s *PlanService[T, In]) Delete(ctx context.Context, gymID, id uint) error {
	if err := s.plans.DeleteInGym(ctx, gymID, id); err != nil {
		return notFound("delete "+s.kind, err)
	}
	return nil
}

// Export writes a JSON snapshot of the plan to the storage disk under
// exports/gym-<gymID>/.
func (s *PlanService[T, In]) Export(ctx context.Context, gymID, id uint) (ExportResult, error) {
	if s.disk == nil {
		return ExportResult{}, fmt.Errorf("export %s: no storage disk configured", s.kind)
	}
	plan, err := s.Get(ctx, gymID, id)
	if err != nil {
		return ExportResult{}, err
	}

	body, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return ExportResult{}, fmt.Errorf("export %s: %w", s.kind, err)
	}
	path := fmt.Sprintf("exports/gym-%d/%s-%d-%s.json", gymID, s.kind, id, s.now().UTC().Format("20060102T150405Z"))
	if err := s.disk.Put(ctx, path, body); err != nil {
		return ExportResult{}, fmt.Errorf("export %s: %w", s.kind, err)
	}
	return ExportResult{Path: path, URL: s.disk.URL(path)}, nil
}
