// Package repositories is the gorm persistence layer. Methods that act for a
// gym take its id and scope every query with orm.ForGym; methods named
// without a gym id are for super-admin use and see every tenant.
package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/gymstack/gymcore/app/models"
	"github.com/gymstack/gymcore/pkg/orm"
)

// GymRepository handles database operations for Gym.
type GymRepository struct {
	db *gorm.DB
}

func NewGymRepository(db *gorm.DB) *GymRepository {
	return &GymRepository{db: db}
}

// Create persists a new gym.
func (r *GymRepository) Create(ctx context.Context, gym *models.Gym) error {
	return r.db.WithContext(ctx).Create(gym).Error
}

// FindByEmail looks up a gym by its normalised email.
func (r *GymRepository) FindByEmail(ctx context.Context, email string) (models.Gym, error) {
	var gym models.Gym
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&gym).Error
	return gym, err
}

func (r *GymRepository) FindByID(ctx context.Context, id uint) (models.Gym, error) {
	var gym models.Gym
	err := r.db.WithContext(ctx).First(&gym, id).Error
	return gym, err
}

// EmailExists reports whether any gym uses email.
func (r *GymRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Gym{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

// Update writes the given columns of gym id.
func (r *GymRepository) Update(ctx context.Context, id uint, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Gym{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns one page of gyms, newest first.
func (r *GymRepository) List(ctx context.Context, page orm.Page) ([]models.Gym, error) {
	gyms := []models.Gym{}
	err := r.db.WithContext(ctx).Scopes(orm.Newest, orm.Paginate(page)).Find(&gyms).Error
	return gyms, err
}

// Delete removes gym id together with its members and plans in one
// transaction.
func (r *GymRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gym models.Gym
		if err := tx.First(&gym, id).Error; err != nil {
			return err
		}
		for _, owned := range []any{&models.Member{}, &models.DietPlan{}, &models.WorkoutPlan{}} {
			if err := tx.Scopes(orm.ForGym(id)).Delete(owned).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&gym).Error
	})
}
