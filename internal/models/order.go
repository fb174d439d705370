package models

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusPrepress  OrderStatus = "PREPRESS"
	OrderStatusPrinting  OrderStatus = "PRINTING"
	OrderStatusPostpress OrderStatus = "POSTPRESS"
	OrderStatusDone      OrderStatus = "DONE"
)

// OrderStatuses lists the workflow stages in board order.
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusPrepress,
	OrderStatusPrinting,
	OrderStatusPostpress,
	OrderStatusDone,
}

var statusLabels = map[OrderStatus]string{
	OrderStatusNew:       "New order",
	OrderStatusPrepress:  "Prepress",
	OrderStatusPrinting:  "Printing",
	OrderStatusPostpress: "Postpress / Assembly",
	OrderStatusDone:      "Ready for pickup",
}

func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the column title, or the raw value for unknown statuses.
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

var priorityLabels = map[Priority]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
	PriorityUrgent: "Urgent",
}

func (p Priority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

// DeadlineLayout is the calendar-date layout used for Order.Deadline.
const DeadlineLayout = "2006-01-02"

// MaxAttachmentSize is the upper bound for a single attachment in bytes.
const MaxAttachmentSize = 1024 * 1024

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrClientNameRequired = errors.New("client name is required")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidPriority    = errors.New("invalid order priority")
	ErrInvalidDeadline    = errors.New("deadline must be a YYYY-MM-DD date")
	ErrAttachmentTooLarge = errors.New("attachment exceeds 1MB")
)

// Attachment is a file stored inline as a data URL.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data"`
}

// Order is a print-shop job tracked through the workflow stages.
// OrderNumber is assigned once on first save and must not change afterwards.
type Order struct {
	ID          string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	OrderNumber int          `gorm:"index;not null" json:"orderNumber"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	ClientName  string       `gorm:"type:varchar(255);not null" json:"clientName"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	Status      OrderStatus  `gorm:"type:varchar(20);not null" json:"status"`
	Priority    Priority     `gorm:"type:varchar(20);not null" json:"priority"`
	CreatedAt   int64        `gorm:"autoCreateTime:milli" json:"createdAt"`
	Deadline    string       `gorm:"type:varchar(10)" json:"deadline,omitempty"`
	PaperWeight string       `gorm:"type:varchar(32)" json:"paperWeight,omitempty"`
	PaperType   string       `gorm:"type:varchar(32)" json:"paperType,omitempty"`
	Format      string       `gorm:"type:varchar(32)" json:"format,omitempty"`
	ColorMode   string       `gorm:"type:varchar(16)" json:"colorMode,omitempty"`
	Attachments []Attachment `gorm:"type:text;serializer:json" json:"attachments,omitempty"`
}

// Validate checks the fields a caller must supply before the order is saved.
func (o Order) Validate() error {
	if strings.TrimSpace(o.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(o.ClientName) == "" {
		return ErrClientNameRequired
	}
	if !o.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, o.Status)
	}
	if !o.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, o.Priority)
	}
	if o.Deadline != "" {
		if _, err := o.DeadlineDate(time.UTC); err != nil {
			return ErrInvalidDeadline
		}
	}
	for _, a := range o.Attachments {
		if a.Size > MaxAttachmentSize {
			return fmt.Errorf("%w: %s", ErrAttachmentTooLarge, a.Name)
		}
	}
	return nil
}

// DeadlineDate parses Deadline as midnight in loc.
func (o Order) DeadlineDate(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DeadlineLayout, o.Deadline, loc)
}

// HasTechSpecs reports whether any of the technical fields is set.
func (o Order) HasTechSpecs() bool {
	return o.PaperWeight != "" || o.PaperType != "" || o.Format != "" || o.ColorMode != ""
}

// SortOrders sorts by order number, newest first. Orders without a number sort
// last; the sort is stable.
func SortOrders(orders []Order) {
	slices.SortStableFunc(orders, func(a, b Order) int {
		return cmp.Compare(b.OrderNumber, a.OrderNumber)
	})
}
