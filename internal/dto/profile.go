package dto

import "github.com/yukikurage/printflow/internal/models"

// UpdateProfileRequest edits the profile; the role is changed through SwitchRoleRequest.
type UpdateProfileRequest struct {
	Name   string `json:"name" binding:"required"`
	Avatar string `json:"avatar"`
}

// SwitchRoleRequest asks to change the profile role. PIN is required for guarded roles.
type SwitchRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
	PIN  string      `json:"pin"`
}

// TeamResponse lists the roster and the current profile.
type TeamResponse struct {
	Members []models.TeamMember `json:"members"`
	Me      models.User         `json:"me"`
}

// OptionsResponse exposes every enumeration the order form needs.
type OptionsResponse struct {
	Statuses    models.Catalog `json:"statuses"`
	Priorities  models.Catalog `json:"priorities"`
	Roles       models.Catalog `json:"roles"`
	PaperWeight models.Catalog `json:"paperWeight"`
	PaperType   models.Catalog `json:"paperType"`
	Format      models.Catalog `json:"format"`
	ColorMode   models.Catalog `json:"colorMode"`
}

// NewOptionsResponse builds the catalogs from the model definitions.
func NewOptionsResponse() OptionsResponse {
	resp := OptionsResponse{
		PaperWeight: models.PaperWeightOptions,
		PaperType:   models.PaperTypeOptions,
		Format:      models.FormatOptions,
		ColorMode:   models.ColorModeOptions,
	}
	for _, s := range models.OrderStatuses {
		resp.Statuses = append(resp.Statuses, models.Option{Value: string(s), Label: s.Label()})
	}
	for _, p := range models.Priorities {
		resp.Priorities = append(resp.Priorities, models.Option{Value: string(p), Label: p.Label()})
	}
	for _, r := range models.Roles {
		resp.Roles = append(resp.Roles, models.Option{Value: string(r), Label: r.Label()})
	}
	return resp
}
