package services

import (
	"slices"

	"github.com/yukikurage/printflow/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// RolePolicy decides whether the profile may switch to target given credential.
type RolePolicy func(target models.Role, credential string) bool

// AllowAll permits every role switch.
func AllowAll(models.Role, string) bool {
	return true
}

// PINPolicy requires a PIN matching pinHash for the guarded roles, DIRECTOR by default.
// Other roles are always allowed. An empty hash locks the guarded roles.
func PINPolicy(pinHash string, guarded ...models.Role) RolePolicy {
	if len(guarded) == 0 {
		guarded = []models.Role{models.RoleDirector}
	}

	return func(target models.Role, credential string) bool {
		if !slices.Contains(guarded, target) {
			return true
		}
		if pinHash == "" || credential == "" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(credential)) == nil
	}
}

// HashPIN returns the bcrypt hash to configure PINPolicy with.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
