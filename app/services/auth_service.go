package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gymstack/gymcore/app/models"
	"github.com/gymstack/gymcore/app/repositories"
	"github.com/gymstack/gymcore/pkg/auth"
	"github.com/gymstack/gymcore/pkg/database"
	"github.com/gymstack/gymcore/pkg/event"
	"github.com/gymstack/gymcore/pkg/logger"
	"github.com/gymstack/gymcore/pkg/metrics"
	"github.com/gymstack/gymcore/pkg/throttle"
)

// TokenIssuer is satisfied by *auth.Issuer.
type TokenIssuer interface {
	Issue(p auth.Principal) (string, time.Time, error)
}

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	Name      string `json:"name" validate:"required,max=255"`
	OwnerName string `json:"ownerName" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72,maxbytes=72"`
	Phone     string `json:"phone" validate:"max=50"`
	Address   string `json:"address" validate:"max=500"`
}

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccountSummary is the "user" object returned with a token.
type AccountSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResult is returned by Register and Login. Role is the principal kind,
// "gym" or "user".
type AuthResult struct {
	Token string         `json:"token"`
	Role  string         `json:"role"`
	User  AccountSummary `json:"user"`
}

// AuthService registers gyms and logs principals in.
type AuthService struct {
	gyms    *repositories.GymRepository
	members *repositories.MemberRepository
	issuer  TokenIssuer
	limiter *throttle.Limiter
	bus     *event.Bus
}

// NewAuthService wires the service. limiter and bus may be nil.
func NewAuthService(gyms *repositories.GymRepository, members *repositories.MemberRepository,
	issuer TokenIssuer, limiter *throttle.Limiter, bus *event.Bus) *AuthService {
	return &AuthService{gyms: gyms, members: members, issuer: issuer, limiter: limiter, bus: bus}
}

// Register creates a gym account and returns a token for it. The email must
// be unused by every gym and member.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := normaliseEmail(in.Email)
	if err := emailAvailable(ctx, s.gyms, s.members, email, 0); err != nil {
		return AuthResult{}, err
	}

	hash, err := hashPassword("register", in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	gym := models.Gym{
		Name:      in.Name,
		OwnerName: in.OwnerName,
		Email:     email,
		Password:  hash,
		Phone:     in.Phone,
		Address:   in.Address,
	}
	if err := s.gyms.Create(ctx, &gym); err != nil {
		if database.IsUniqueViolation(err) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, fmt.Errorf("register: create gym: %w", err)
	}

	return s.result(auth.GymPrincipal{ID: gym.ID}, gym.Name, gym.Email)
}

// Login checks the gym table first, then the member table. A gym email with
// a wrong password fails without consulting members.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	email := normaliseEmail(in.Email)

	if s.limiter != nil {
		locked, err := s.limiter.Locked(ctx, email)
		if err != nil {
			logger.WithCtx(ctx).Warn("login throttle unavailable", "error", err)
		} else if locked {
			metrics.AuthFailures.WithLabelValues("throttled").Inc()
			return AuthResult{}, ErrTooManyAttempts
		}
	}

	res, err := s.authenticate(ctx, email, in.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		metrics.AuthFailures.WithLabelValues("bad_credentials").Inc()
		s.bus.Fire(ctx, event.Event{Name: event.LoginFailed, Attrs: map[string]any{"email": email}})
		if s.limiter != nil {
			if ferr := s.limiter.Fail(ctx, email); ferr != nil {
				logger.WithCtx(ctx).Warn("login throttle record failed", "error", ferr)
			}
		}
		return AuthResult{}, err
	}
	if err != nil {
		return AuthResult{}, err
	}

	if s.limiter != nil {
		if cerr := s.limiter.Clear(ctx, email); cerr != nil {
			logger.WithCtx(ctx).Warn("login throttle reset failed", "error", cerr)
		}
	}
	return res, nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (AuthResult, error) {
	gym, err := s.gyms.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if !auth.CheckPassword(gym.Password, password) {
			return AuthResult{}, ErrInvalidCredentials
		}
		s.bus.Fire(ctx, event.Event{Name: event.LoginSucceeded, GymID: gym.ID, ActorID: gym.ID,
			Attrs: map[string]any{"kind": "gym"}})
		return s.result(auth.GymPrincipal{ID: gym.ID}, gym.Name, gym.Email)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return AuthResult{}, fmt.Errorf("login: find gym: %w", err)
	}

	member, err := s.members.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		auth.BurnPasswordCheck(password)
		return AuthResult{}, ErrInvalidCredentials
	case err != nil:
		return AuthResult{}, fmt.Errorf("login: find member: %w", err)
	}
	if !auth.CheckPassword(member.Password, password) {
		return AuthResult{}, ErrInvalidCredentials
	}

	s.bus.Fire(ctx, event.Event{Name: event.LoginSucceeded, GymID: member.GymID, ActorID: member.ID,
		Attrs: map[string]any{"kind": "user"}})
	return s.result(auth.MemberPrincipal{ID: member.ID, GymID: member.GymID}, member.Name, member.Email)
}

func (s *AuthService) result(p auth.Principal, name, email string) (AuthResult, error) {
	token, _, err := s.issuer.Issue(p)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{Token: token, Role: p.Kind(), User: AccountSummary{Name: name, Email: email}}, nil
}

// emailAvailable returns ErrEmailTaken when a gym, or a member other than
// exceptMember, already uses email.
func emailAvailable(ctx context.Context, gyms *repositories.GymRepository,
	members *repositories.MemberRepository, email string, exceptMember uint) error {
	taken, err := gyms.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("check gym email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}
	taken, err = members.EmailExists(ctx, email, exceptMember)
	if err != nil {
		return fmt.Errorf("check member email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}
