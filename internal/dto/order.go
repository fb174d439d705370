package dto

import (
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/services"
	"github.com/yukikurage/printflow/internal/utils"
)

// AttachmentRequest is an uploaded file, inline as a data URL.
type AttachmentRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data" binding:"required"`
}

// OrderRequest carries every editable field of an order. It is used for both
// create and full replace.
type OrderRequest struct {
	Title       string              `json:"title" binding:"required"`
	ClientName  string              `json:"clientName" binding:"required"`
	Description string              `json:"description"`
	Status      models.OrderStatus  `json:"status"`
	Priority    models.Priority     `json:"priority"`
	Deadline    string              `json:"deadline"`
	PaperWeight string              `json:"paperWeight"`
	PaperType   string              `json:"paperType"`
	Format      string              `json:"format"`
	ColorMode   string              `json:"colorMode"`
	Attachments []AttachmentRequest `json:"attachments"`
}

// MoveOrderRequest moves an order to another stage.
type MoveOrderRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// OrderListResponse is the order list with the active storage mode.
// Total counts every matching order, not just the returned page.
type OrderListResponse struct {
	Orders     []models.Order            `json:"orders"`
	Total      int                       `json:"total"`
	Mode       string                    `json:"mode"`
	Pagination *utils.PaginationResponse `json:"pagination,omitempty"`
}

// BoardResponse is the board grouped by stage.
type BoardResponse struct {
	Columns []services.BoardColumn `json:"columns"`
	Mode    string                 `json:"mode"`
}

// Conversion functions

// ToCreateOrderInput converts the request into service input
func (r OrderRequest) ToCreateOrderInput() services.CreateOrderInput {
	return services.CreateOrderInput{
		Title:       r.Title,
		ClientName:  r.ClientName,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		Deadline:    r.Deadline,
		PaperWeight: r.PaperWeight,
		PaperType:   r.PaperType,
		Format:      r.Format,
		ColorMode:   r.ColorMode,
		Attachments: toAttachments(r.Attachments),
	}
}

// ApplyTo replaces every editable field of order with the request values.
// Identity, order number and creation time are kept.
func (r OrderRequest) ApplyTo(order models.Order) models.Order {
	order.Title = r.Title
	order.ClientName = r.ClientName
	order.Description = r.Description
	if r.Status != "" {
		order.Status = r.Status
	}
	if r.Priority != "" {
		order.Priority = r.Priority
	}
	order.Deadline = r.Deadline
	order.PaperWeight = r.PaperWeight
	order.PaperType = r.PaperType
	order.Format = r.Format
	order.ColorMode = r.ColorMode
	order.Attachments = toAttachments(r.Attachments)
	return order
}

func toAttachments(in []AttachmentRequest) []models.Attachment {
	if len(in) == 0 {
		return nil
	}

	out := make([]models.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, models.Attachment{
			ID:   a.ID,
			Name: a.Name,
			Type: a.Type,
			Size: a.Size,
			Data: a.Data,
		})
	}
	return out
}
