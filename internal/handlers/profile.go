package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printflow/internal/dto"
	apierrors "github.com/yukikurage/printflow/internal/errors"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/services"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile returns the profile of this instance
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.profiles.Get()
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile changes name and avatar
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.profiles.Update(req.Name, req.Avatar)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

// SwitchRole changes the profile role, subject to the role policy
func (h *ProfileHandler) SwitchRole(c *gin.Context) {
	var req dto.SwitchRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.profiles.SwitchRole(req.Role, req.PIN)
	if err != nil {
		respondError(c, err, "Failed to switch role")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListTeam returns the static roster together with the current profile
func (h *ProfileHandler) ListTeam(c *gin.Context) {
	user, err := h.profiles.Get()
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, dto.TeamResponse{
		Members: models.TeamMembers,
		Me:      user,
	})
}
