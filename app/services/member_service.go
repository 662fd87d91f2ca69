package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gymstack/gymcore/app/models"
	"github.com/gymstack/gymcore/app/repositories"
	"github.com/gymstack/gymcore/pkg/auth"
	"github.com/gymstack/gymcore/pkg/database"
	"github.com/gymstack/gymcore/pkg/event"
)

// CreateMemberInput is the body of POST /gym/members. A gym may create
// plain members and gym admins, never super-admins.
type CreateMemberInput struct {
	Name     string     `json:"name" validate:"required,max=255"`
	Email    string     `json:"email" validate:"required,email,max=255"`
	Password string     `json:"password" validate:"required,min=6,max=72,maxbytes=72"`
	Phone    string     `json:"phone" validate:"max=50"`
	Role     auth.Role  `json:"role" validate:"nullable,in=user|gym_admin"`
	JoinedAt *time.Time `json:"joinedAt"`
}

// UpdateMemberInput is the body of PUT /gym/members/{id}. Absent fields are
// left unchanged. GymID, when sent, must name the member's own gym.
type UpdateMemberInput struct {
	Name     *string    `json:"name" validate:"nullable,min=1,max=255"`
	Email    *string    `json:"email" validate:"nullable,email,max=255"`
	Password *string    `json:"password" validate:"nullable,min=6,max=72,maxbytes=72"`
	Phone    *string    `json:"phone" validate:"nullable,max=50"`
	Role     *auth.Role `json:"role" validate:"nullable,in=user|gym_admin"`
	GymID    *uint      `json:"gymId"`
}

// NullableID is a JSON field that distinguishes absent, null and a value.
type NullableID struct {
	Set bool
	ID  *uint
}

func (n *NullableID) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.ID = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(b, &id); err != nil {
		return fmt.Errorf("plan reference must be an id or null: %w", err)
	}
	n.ID = &id
	return nil
}

// PlanAssignment is the body of PUT /gym/members/{id}/plans.
type PlanAssignment struct {
	DietPlan    NullableID `json:"currentDietPlan"`
	WorkoutPlan NullableID `json:"currentWorkoutPlan"`
}

// MemberProfile is what GET /user/me returns.
type MemberProfile struct {
	models.Member
	GymName string `json:"gymName"`
}

// MemberPlans is what GET /user/plans returns.
type MemberPlans struct {
	DietPlan    *models.DietPlan    `json:"dietPlan"`
	WorkoutPlan *models.WorkoutPlan `json:"workoutPlan"`
}

// MemberService manages a gym's members.
type MemberService struct {
	gyms     *repositories.GymRepository
	members  *repositories.MemberRepository
	diets    *repositories.PlanRepository[models.DietPlan]
	workouts *repositories.PlanRepository[models.WorkoutPlan]
	bus      *event.Bus
}

func NewMemberService(gyms *repositories.GymRepository, members *repositories.MemberRepository,
	diets *repositories.PlanRepository[models.DietPlan], workouts *repositories.PlanRepository[models.WorkoutPlan],
	bus *event.Bus) *MemberService {
	return &MemberService{gyms: gyms, members: members, diets: diets, workouts: workouts, bus: bus}
}

// List returns gymID's members; an empty gym yields an empty slice.
func (s *MemberService) List(ctx context.Context, gymID uint) ([]models.Member, error) {
	members, err := s.members.ListForGym(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *MemberService) Get(ctx context.Context, gymID, id uint) (models.Member, error) {
	m, err := s.members.FindInGym(ctx, gymID, id)
	if err != nil {
		return models.Member{}, notFound("get member", err)
	}
	return m, nil
}

// Create adds a member to gymID. The owning gym comes from the caller's
// principal, never from the body.
func (s *MemberService) Create(ctx context.Context, gymID uint, in CreateMemberInput) (models.Member, error) {
	email := normaliseEmail(in.Email)
	if err := emailAvailable(ctx, s.gyms, s.members, email, 0); err != nil {
		return models.Member{}, err
	}

	hash, err := hashPassword("create member", in.Password)
	if err != nil {
		return models.Member{}, err
	}

	role := in.Role
	if role == "" {
		role = auth.RoleUser
	}
	joined := time.Now()
	if in.JoinedAt != nil {
		joined = *in.JoinedAt
	}

	m := models.Member{
		GymID:    gymID,
		Name:     in.Name,
		Email:    email,
		Password: hash,
		Role:     role,
		Phone:    in.Phone,
		JoinedAt: joined,
	}
	if err := s.members.Create(ctx, &m); err != nil {
		if database.IsUniqueViolation(err) {
			return models.Member{}, ErrEmailTaken
		}
		return models.Member{}, fmt.Errorf("create member: %w", err)
	}
	return m, nil
}

// Update changes member id of gymID.
func (s *MemberService) Update(ctx context.Context, gymID, id uint, in UpdateMemberInput) (models.Member, error) {
	current, err := s.members.FindInGym(ctx, gymID, id)
	if err != nil {
		return models.Member{}, notFound("update member", err)
	}
	if err := guardSuperAdmin("update member", current); err != nil {
		return models.Member{}, err
	}
	if in.GymID != nil && *in.GymID != gymID {
		return models.Member{}, ErrCrossTenant
	}

	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Phone != nil {
		changes["phone"] = *in.Phone
	}
	if in.Role != nil {
		changes["role"] = *in.Role
	}
	if in.Email != nil {
		email := normaliseEmail(*in.Email)
		if err := emailAvailable(ctx, s.gyms, s.members, email, id); err != nil {
			return models.Member{}, err
		}
		changes["email"] = email
	}
	if in.Password != nil {
		hash, err := hashPassword("update member", *in.Password)
		if err != nil {
			return models.Member{}, err
		}
		changes["password"] = hash
	}

	if err := s.members.UpdateInGym(ctx, gymID, id, changes); err != nil {
		if database.IsUniqueViolation(err) {
			return models.Member{}, ErrEmailTaken
		}
		return models.Member{}, notFound("update member", err)
	}
	return s.Get(ctx, gymID, id)
}

func (s *MemberService) Delete(ctx context.Context, gymID, id uint) error {
	current, err := s.members.FindInGym(ctx, gymID, id)
	if err != nil {
		return notFound("delete member", err)
	}
	if err := guardSuperAdmin("delete member", current); err != nil {
		return err
	}
	if err := s.members.DeleteInGym(ctx, gymID, id); err != nil {
		return notFound("delete member", err)
	}
	return nil
}

// guardSuperAdmin refuses gym-scoped writes to a super-admin record. A
// super-admin belongs to a gym but is not that gym's to manage; only the
// admin role endpoint may change it.
func guardSuperAdmin(op string, m models.Member) error {
	if m.Role == auth.RoleSuperAdmin {
		return fmt.Errorf("%s: member %d is a super-admin: %w", op, m.ID, ErrCrossTenant)
	}
	return nil
}

// AssignPlans sets or clears a member's current plans. Each referenced plan
// must exist and belong to the member's gym. Checks and write share one
// transaction; nothing is written unless both references pass.
func (s *MemberService) AssignPlans(ctx context.Context, gymID, memberID uint, in PlanAssignment) (models.Member, error) {
	err := s.members.Transaction(ctx, func(tx *gorm.DB) error {
		members, diets, workouts := s.members.WithTx(tx), s.diets.WithTx(tx), s.workouts.WithTx(tx)

		member, err := members.FindInGym(ctx, gymID, memberID)
		if err != nil {
			return notFound("assign plans", err)
		}

		changes := map[string]any{}
		if in.DietPlan.Set {
			if err := checkOwner(ctx, diets.OwnerOf, in.DietPlan.ID, member.GymID, "currentDietPlan", "diet plan not found"); err != nil {
				return err
			}
			changes["current_diet_plan_id"] = in.DietPlan.ID
		}
		if in.WorkoutPlan.Set {
			if err := checkOwner(ctx, workouts.OwnerOf, in.WorkoutPlan.ID, member.GymID, "currentWorkoutPlan", "workout plan not found"); err != nil {
				return err
			}
			changes["current_workout_plan_id"] = in.WorkoutPlan.ID
		}

		if err := members.UpdateInGym(ctx, gymID, memberID, changes); err != nil {
			return notFound("assign plans", err)
		}
		return nil
	})
	if err != nil {
		return models.Member{}, err
	}

	updated, err := s.Get(ctx, gymID, memberID)
	if err != nil {
		return models.Member{}, err
	}
	s.bus.Fire(ctx, event.Event{
		Name:    event.PlansAssigned,
		GymID:   gymID,
		ActorID: gymID,
		Attrs: map[string]any{
			"member_id":       memberID,
			"diet_plan_id":    updated.CurrentDietPlanID,
			"workout_plan_id": updated.CurrentWorkoutPlanID,
		},
	})
	return updated, nil
}

func checkOwner(ctx context.Context, ownerOf func(context.Context, uint) (uint, error),
	id *uint, gymID uint, field, missing string) error {
	if id == nil {
		return nil
	}
	owner, err := ownerOf(ctx, *id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalid(field, missing)
	}
	if err != nil {
		return fmt.Errorf("assign plans: %w", err)
	}
	if owner != gymID {
		return fmt.Errorf("assign plans: plan %d belongs to gym %d, member to gym %d: %w", *id, owner, gymID, ErrCrossTenant)
	}
	return nil
}

// Profile returns the member behind a member principal with its gym name.
func (s *MemberService) Profile(ctx context.Context, p auth.MemberPrincipal) (MemberProfile, error) {
	m, err := s.members.FindInGym(ctx, p.GymID, p.ID)
	if err != nil {
		return MemberProfile{}, notFound("profile", err)
	}
	gym, err := s.gyms.FindByID(ctx, m.GymID)
	if err != nil {
		return MemberProfile{}, notFound("profile gym", err)
	}
	return MemberProfile{Member: m, GymName: gym.Name}, nil
}

// Plans returns the member's current plans, nil where none is assigned.
func (s *MemberService) Plans(ctx context.Context, p auth.MemberPrincipal) (MemberPlans, error) {
	m, err := s.members.FindInGym(ctx, p.GymID, p.ID)
	if err != nil {
		return MemberPlans{}, notFound("member plans", err)
	}

	var out MemberPlans
	if m.CurrentDietPlanID != nil {
		plan, err := s.diets.FindInGym(ctx, m.GymID, *m.CurrentDietPlanID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return MemberPlans{}, fmt.Errorf("member plans: %w", err)
		}
		if err == nil {
			out.DietPlan = &plan
		}
	}
	if m.CurrentWorkoutPlanID != nil {
		plan, err := s.workouts.FindInGym(ctx, m.GymID, *m.CurrentWorkoutPlanID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return MemberPlans{}, fmt.Errorf("member plans: %w", err)
		}
		if err == nil {
			out.WorkoutPlan = &plan
		}
	}
	return out, nil
}
