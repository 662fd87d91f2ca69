package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gymstack/gymcore/app/models"
	"github.com/gymstack/gymcore/app/repositories"
	"github.com/gymstack/gymcore/pkg/auth"
	"github.com/gymstack/gymcore/pkg/database"
	"github.com/gymstack/gymcore/pkg/event"
	"github.com/gymstack/gymcore/pkg/orm"
)

// SetRoleInput is the body of PATCH /admin/members/{id}/role.
type SetRoleInput struct {
	Role auth.Role `json:"role" validate:"required,in=user|gym_admin|super_admin"`
}

// VerifyInput is the body of PATCH /admin/gyms/{id}/verify.
type VerifyInput struct {
	Verified bool `json:"verified"`
}

// CreateAdminInput describes the super-admin created by `gymcore admin:create`.
type CreateAdminInput struct {
	GymID    uint
	Name     string
	Email    string
	Password string
}

// AdminService backs the super-admin endpoints. Its reads are not tenant
// scoped.
type AdminService struct {
	gyms    *repositories.GymRepository
	members *repositories.MemberRepository
	bus     *event.Bus
}

func NewAdminService(gyms *repositories.GymRepository, members *repositories.MemberRepository, bus *event.Bus) *AdminService {
	return &AdminService{gyms: gyms, members: members, bus: bus}
}

func (s *AdminService) ListGyms(ctx context.Context, page orm.Page) ([]models.Gym, error) {
	gyms, err := s.gyms.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list gyms: %w", err)
	}
	return gyms, nil
}

// DeleteGym removes a gym with all its members and plans.
func (s *AdminService) DeleteGym(ctx context.Context, actor auth.MemberPrincipal, id uint) error {
	if err := s.gyms.Delete(ctx, id); err != nil {
		return notFound("delete gym", err)
	}
	s.bus.Fire(ctx, event.Event{Name: event.GymDeleted, GymID: id, ActorID: actor.ID})
	return nil
}

func (s *AdminService) VerifyGym(ctx context.Context, id uint, in VerifyInput) (models.Gym, error) {
	if err := s.gyms.Update(ctx, id, map[string]any{"verified": in.Verified}); err != nil {
		return models.Gym{}, notFound("verify gym", err)
	}
	gym, err := s.gyms.FindByID(ctx, id)
	if err != nil {
		return models.Gym{}, notFound("verify gym", err)
	}
	return gym, nil
}

func (s *AdminService) ListMembers(ctx context.Context, page orm.Page) ([]models.Member, error) {
	members, err := s.members.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// SetRole changes any member's stored role. The change applies to that
// member's next request because the super-admin gate reads the store.
func (s *AdminService) SetRole(ctx context.Context, actor auth.MemberPrincipal, id uint, in SetRoleInput) (models.Member, error) {
	if err := s.members.SetRole(ctx, id, in.Role); err != nil {
		return models.Member{}, notFound("set role", err)
	}
	m, err := s.members.FindByID(ctx, id)
	if err != nil {
		return models.Member{}, notFound("set role", err)
	}
	s.bus.Fire(ctx, event.Event{Name: event.MemberRoleChange, GymID: m.GymID, ActorID: actor.ID,
		Attrs: map[string]any{"member_id": id, "role": string(in.Role)}})
	return m, nil
}

// CreateSuperAdmin adds a super-admin member to an existing gym.
func (s *AdminService) CreateSuperAdmin(ctx context.Context, in CreateAdminInput) (models.Member, error) {
	if _, err := s.gyms.FindByID(ctx, in.GymID); err != nil {
		return models.Member{}, notFound("create admin", err)
	}
	email := normaliseEmail(in.Email)
	if err := emailAvailable(ctx, s.gyms, s.members, email, 0); err != nil {
		return models.Member{}, err
	}
	hash, err := hashPassword("create admin", in.Password)
	if err != nil {
		return models.Member{}, err
	}
	m := models.Member{
		GymID: in.GymID, Name: in.Name, Email: email, Password: hash,
		Role: auth.RoleSuperAdmin, JoinedAt: time.Now(),
	}
	if err := s.members.Create(ctx, &m); err != nil {
		if database.IsUniqueViolation(err) {
			return models.Member{}, ErrEmailTaken
		}
		return models.Member{}, fmt.Errorf("create admin: %w", err)
	}
	return m, nil
}
