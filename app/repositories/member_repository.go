package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gymstack/gymcore/app/models"
	"github.com/gymstack/gymcore/pkg/auth"
	"github.com/gymstack/gymcore/pkg/orm"
	"github.com/gymstack/gymcore/pkg/rbac"
)

// MemberRepository handles database operations for Member.
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *MemberRepository) WithTx(tx *gorm.DB) *MemberRepository {
	return &MemberRepository{db: tx}
}

// Transaction runs fn in one database transaction, rolling back on error.
func (r *MemberRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *MemberRepository) Create(ctx context.Context, m *models.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindByEmail looks up a member of any gym by normalised email.
func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (models.Member, error) {
	var m models.Member
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	return m, err
}

// EmailExists reports whether a member other than exceptID uses email.
func (r *MemberRepository) EmailExists(ctx context.Context, email string, exceptID uint) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&models.Member{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

// FindByID looks up a member in any gym.
func (r *MemberRepository) FindByID(ctx context.Context, id uint) (models.Member, error) {
	var m models.Member
	err := r.db.WithContext(ctx).First(&m, id).Error
	return m, err
}

// FindInGym looks up member id only among gymID's members.
func (r *MemberRepository) FindInGym(ctx context.Context, gymID, id uint) (models.Member, error) {
	var m models.Member
	err := r.db.WithContext(ctx).Scopes(orm.ForGym(gymID)).First(&m, id).Error
	return m, err
}

// ListForGym returns every member of gymID in id order.
func (r *MemberRepository) ListForGym(ctx context.Context, gymID uint) ([]models.Member, error) {
	members := []models.Member{}
	err := r.db.WithContext(ctx).Scopes(orm.ForGym(gymID)).Order("id").Find(&members).Error
	return members, err
}

// UpdateInGym writes changes to member id of gymID. gym_id is never written.
func (r *MemberRepository) UpdateInGym(ctx context.Context, gymID, id uint, changes map[string]any) error {
	delete(changes, "gym_id")
	if len(changes) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Member{}).
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

// DeleteInGym removes member id of gymID.
func (r *MemberRepository) DeleteInGym(ctx context.Context, gymID, id uint) error {
	res := r.db.WithContext(ctx).Scopes(orm.ForGym(gymID)).Delete(&models.Member{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns one page of members across all gyms.
func (r *MemberRepository) List(ctx context.Context, page orm.Page) ([]models.Member, error) {
	members := []models.Member{}
	err := r.db.WithContext(ctx).Scopes(orm.Newest, orm.Paginate(page)).Find(&members).Error
	return members, err
}

// SetRole changes the stored role of member id in any gym.
func (r *MemberRepository) SetRole(ctx context.Context, id uint, role auth.Role) error {
	res := r.db.WithContext(ctx).Model(&models.Member{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MemberRole reads the stored role of member id. It satisfies
// rbac.RoleLookup.
func (r *MemberRepository) MemberRole(ctx context.Context, id uint) (auth.Role, error) {
	var m models.Member
	err := r.db.WithContext(ctx).Select("id", "role").First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", rbac.ErrUnknownMember
	}
	if err != nil {
		return "", err
	}
	return m.Role, nil
}
