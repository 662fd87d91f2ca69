package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gymstack/gymcore/app/models"
	"github.com/gymstack/gymcore/pkg/orm"
)

// Plan is a gym-owned plan model.
type Plan interface {
	models.DietPlan | models.WorkoutPlan
}

// PlanRepository handles one plan table. refColumn is the members column
// that points at plans of this table.
type PlanRepository[T Plan] struct {
	db        *gorm.DB
	refColumn string
	lockRows  bool
}

func NewDietPlanRepository(db *gorm.DB) *PlanRepository[models.DietPlan] {
	return &PlanRepository[models.DietPlan]{db: db, refColumn: "current_diet_plan_id"}
}

func NewWorkoutPlanRepository(db *gorm.DB) *PlanRepository[models.WorkoutPlan] {
	return &PlanRepository[models.WorkoutPlan]{db: db, refColumn: "current_workout_plan_id"}
}

// WithTx returns a repository bound to tx. Ownership reads through it take a
// shared row lock where the dialect has one, so the plan cannot be deleted
// or moved before tx commits.
func (r *PlanRepository[T]) WithTx(tx *gorm.DB) *PlanRepository[T] {
	name := tx.Dialector.Name()
	return &PlanRepository[T]{db: tx, refColumn: r.refColumn, lockRows: name == "postgres" || name == "mysql"}
}

func (r *PlanRepository[T]) Create(ctx context.Context, plan *T) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// FindInGym looks up plan id only among gymID's plans.
func (r *PlanRepository[T]) FindInGym(ctx context.Context, gymID, id uint) (T, error) {
	var plan T
	err := r.db.WithContext(ctx).Scopes(orm.ForGym(gymID)).First(&plan, id).Error
	return plan, err
}

// ListForGym returns every plan of gymID in id order.
func (r *PlanRepository[T]) ListForGym(ctx context.Context, gymID uint) ([]T, error) {
	plans := []T{}
	err := r.db.WithContext(ctx).Scopes(orm.ForGym(gymID)).Order("id").Find(&plans).Error
	return plans, err
}

// OwnerOf returns the gym that owns plan id, whichever gym that is.
func (r *PlanRepository[T]) OwnerOf(ctx context.Context, id uint) (uint, error) {
	var owners []uint
	q := r.db.WithContext(ctx).Model(new(T))
	if r.lockRows {
		q = q.Clauses(clause.Locking{Strength: "SHARE"})
	}
	err := q.Where("id = ?", id).Pluck("gym_id", &owners).Error
	if err != nil {
		return 0, err
	}
	if len(owners) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return owners[0], nil
}

// UpdateInGym writes changes to plan id of gymID. gym_id is never written.
func (r *PlanRepository[T]) UpdateInGym(ctx context.Context, gymID, id uint, changes map[string]any) error {
	delete(changes, "gym_id")
	if len(changes) == 0 {
		_, err := r.FindInGym(ctx, gymID, id)
		return err
	}
	res := r.db.WithContext(ctx).Model(new(T)).
		Scopes(orm.ForGym(gymID)).
		Where("id = ?", id).
		Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteInGym removes plan id of gymID and, in the same transaction, clears
// it from every member following it.
func (r *PlanRepository[T]) DeleteInGym(ctx context.Context, gymID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Scopes(orm.ForGym(gymID)).Delete(new(T), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Member{}).
			Where(r.refColumn+" = ?", id).
			Update(r.refColumn, nil).Error
	})
}
