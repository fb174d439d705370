package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/printflow/internal/errors"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/repository"
	"github.com/yukikurage/printflow/internal/services"
)

var missingFieldErrors = []error{
	models.ErrTitleRequired,
	models.ErrClientNameRequired,
	services.ErrNameRequired,
	services.ErrEmptyMessage,
}

var validationErrors = []error{
	services.ErrInvalidOrder,
	services.ErrInvalidRole,
	models.ErrInvalidStatus,
}

// respondError maps service errors to API errors. fallback is the message for unexpected failures.
func respondError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		apierrors.NotFound(c, "Order not found")
	case errors.Is(err, services.ErrRoleSwitchDenied):
		apierrors.Forbidden(c, apierrors.ErrCodeRoleSwitchDenied, "A valid PIN is required for this role")
	case errors.Is(err, repository.ErrCorruptSnapshot):
		apierrors.StorageCorrupt(c)
	case errors.Is(err, repository.ErrBackendClosed):
		apierrors.ServiceUnavailable(c, "Storage is shutting down")
	case isAny(err, missingFieldErrors):
		apierrors.InvalidField(c, apierrors.ErrCodeMissingField, err.Error())
	case errors.Is(err, models.ErrInvalidDeadline):
		apierrors.InvalidField(c, apierrors.ErrCodeInvalidFormat, err.Error())
	case isAny(err, validationErrors):
		apierrors.BadRequestWithDetails(c, "Validation failed", err.Error())
	default:
		apierrors.InternalError(c, fallback)
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
