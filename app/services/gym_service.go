package services

import (
	"context"

	"github.com/gymstack/gymcore/app/models"
	"github.com/gymstack/gymcore/app/repositories"
)

// UpdateGymInput is the body of PUT /gym/profile. Email and verification are
// not editable here.
type UpdateGymInput struct {
	Name      *string `json:"name" validate:"nullable,min=1,max=255"`
	OwnerName *string `json:"ownerName" validate:"nullable,max=255"`
	Phone     *string `json:"phone" validate:"nullable,max=50"`
	Address   *string `json:"address" validate:"nullable,max=500"`
	Password  *string `json:"password" validate:"nullable,min=6,max=72,maxbytes=72"`
}

// GymService serves a gym's own profile.
type GymService struct {
	gyms *repositories.GymRepository
}

func NewGymService(gyms *repositories.GymRepository) *GymService {
	return &GymService{gyms: gyms}
}

func (s *GymService) Profile(ctx context.Context, gymID uint) (models.Gym, error) {
	gym, err := s.gyms.FindByID(ctx, gymID)
	if err != nil {
		return models.Gym{}, notFound("gym profile", err)
	}
	return gym, nil
}

func (s *GymService) UpdateProfile(ctx context.Context, gymID uint, in UpdateGymInput) (models.Gym, error) {
	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.OwnerName != nil {
		changes["owner_name"] = *in.OwnerName
	}
	if in.Phone != nil {
		changes["phone"] = *in.Phone
	}
	if in.Address != nil {
		changes["address"] = *in.Address
	}
	if in.Password != nil {
		hash, err := hashPassword("update gym", *in.Password)
		if err != nil {
			return models.Gym{}, err
		}
		changes["password"] = hash
	}

	if err := s.gyms.Update(ctx, gymID, changes); err != nil {
		return models.Gym{}, notFound("update gym", err)
	}
	return s.Profile(ctx, gymID)
}
