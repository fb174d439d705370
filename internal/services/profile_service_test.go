package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/printflow/internal/kvstore"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/repository"
)

func newTestProfileService(t *testing.T, policy RolePolicy) *ProfileService {
	t.Helper()
	return NewProfileService(repository.NewLocalBackend(kvstore.NewMemoryStore()), policy)
}

func TestProfileService_DefaultProfile(t *testing.T) {
	user, err := newTestProfileService(t, nil).Get()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUser, user)
}

func TestProfileService_Update(t *testing.T) {
	s := newTestProfileService(t, nil)

	user, err := s.Update(" Maria Kozlova ", "avatar-1")
	require.NoError(t, err)
	assert.Equal(t, "Maria Kozlova", user.Name)
	assert.Equal(t, "avatar-1", user.Avatar)
	assert.Equal(t, models.RoleManager, user.Role)

	stored, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, user, stored)

	_, err = s.Update("  ", "")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestProfileService_SetValidatesRole(t *testing.T) {
	err := newTestProfileService(t, nil).Set(models.User{ID: "me", Name: "Alex", Role: "INTERN"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestProfileService_SwitchRoleWithPIN(t *testing.T) {
	hash, err := HashPIN("2580")
	require.NoError(t, err)
	s := newTestProfileService(t, PINPolicy(hash))

	_, err = s.SwitchRole(models.RoleDirector, "")
	assert.ErrorIs(t, err, ErrRoleSwitchDenied)
	_, err = s.SwitchRole(models.RoleDirector, "0000")
	assert.ErrorIs(t, err, ErrRoleSwitchDenied)

	user, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, user.Role)

	user, err = s.SwitchRole(models.RoleDirector, "2580")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDirector, user.Role)

	user, err = s.SwitchRole(models.RolePrinter, "")
	require.NoError(t, err)
	assert.Equal(t, models.RolePrinter, user.Role)

	_, err = s.SwitchRole("INTERN", "")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRolePolicies(t *testing.T) {
	hash, err := HashPIN("1234")
	require.NoError(t, err)

	tests := []struct {
		name       string
		policy     RolePolicy
		target     models.Role
		credential string
		want       bool
	}{
		{name: "allow all", policy: AllowAll, target: models.RoleDirector, want: true},
		{name: "unguarded role", policy: PINPolicy(hash), target: models.RoleDesigner, want: true},
		{name: "guarded without pin", policy: PINPolicy(hash), target: models.RoleDirector, want: false},
		{name: "guarded with wrong pin", policy: PINPolicy(hash), target: models.RoleDirector, credential: "4321", want: false},
		{name: "guarded with pin", policy: PINPolicy(hash), target: models.RoleDirector, credential: "1234", want: true},
		{name: "custom guarded roles", policy: PINPolicy(hash, models.RoleManager), target: models.RoleManager, credential: "x", want: false},
		{name: "custom guard frees default", policy: PINPolicy(hash, models.RoleManager), target: models.RoleDirector, want: true},
		{name: "no hash locks guarded", policy: PINPolicy(""), target: models.RoleDirector, credential: "1234", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy(tt.target, tt.credential))
		})
	}
}
