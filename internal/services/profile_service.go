package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/repository"
)

var (
	ErrRoleSwitchDenied = errors.New("role switch denied")
	ErrInvalidRole      = errors.New("invalid role")
	ErrNameRequired     = errors.New("name is required")
)

// ProfileService manages the single local profile.
type ProfileService struct {
	repo   repository.ProfileRepository
	policy RolePolicy
}

// NewProfileService creates a ProfileService. A nil policy allows every switch.
func NewProfileService(repo repository.ProfileRepository, policy RolePolicy) *ProfileService {
	if policy == nil {
		policy = AllowAll
	}
	return &ProfileService{
		repo:   repo,
		policy: policy,
	}
}

func (s *ProfileService) Get() (models.User, error) {
	return s.repo.GetProfile()
}

// Set replaces the stored profile.
func (s *ProfileService) Set(user models.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return ErrNameRequired
	}
	if !user.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, user.Role)
	}
	if err := s.repo.SetProfile(user); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Update changes the profile name and avatar, leaving the role as is.
func (s *ProfileService) Update(name, avatar string) (models.User, error) {
	user, err := s.repo.GetProfile()
	if err != nil {
		return models.User{}, err
	}

	user.Name = strings.TrimSpace(name)
	user.Avatar = avatar
	if err := s.Set(user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SwitchRole changes the profile role if the policy allows it.
func (s *ProfileService) SwitchRole(target models.Role, credential string) (models.User, error) {
	if !target.Valid() {
		return models.User{}, fmt.Errorf("%w: %q", ErrInvalidRole, target)
	}

	user, err := s.repo.GetProfile()
	if err != nil {
		return models.User{}, err
	}
	if user.Role == target {
		return user, nil
	}

	if !s.policy(target, credential) {
		return models.User{}, ErrRoleSwitchDenied
	}

	user.Role = target
	if err := s.Set(user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
