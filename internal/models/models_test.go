package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Label(t *testing.T) {
	assert.Equal(t, "Designer", PaperTypeOptions.Label("DESIGN"))
	assert.Equal(t, "UNKNOWN_X", PaperTypeOptions.Label("UNKNOWN_X"))
	assert.Equal(t, "300 g/m²", PaperWeightOptions.ShortLabel("300"))
	assert.Equal(t, "A4", FormatOptions.ShortLabel("A4"))
	assert.True(t, ColorModeOptions.Contains("4+4"))
	assert.False(t, ColorModeOptions.Contains("5+5"))
}

func TestEnumLabels(t *testing.T) {
	assert.Equal(t, "Prepress", OrderStatusPrepress.Label())
	assert.Equal(t, "ARCHIVED", OrderStatus("ARCHIVED").Label())
	assert.Equal(t, "Urgent", PriorityUrgent.Label())
	assert.Equal(t, "Director", RoleDirector.Label())
	assert.False(t, Role("INTERN").Valid())
	assert.Len(t, OrderStatuses, 5)
}

func validOrder() Order {
	return Order{
		ID:         "1",
		Title:      "Flyers",
		ClientName: "Alpha LLC",
		Status:     OrderStatusNew,
		Priority:   PriorityMedium,
	}
}

func TestOrder_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Order)
		want   error
	}{
		{name: "valid", mutate: func(*Order) {}},
		{name: "blank title", mutate: func(o *Order) { o.Title = "  " }, want: ErrTitleRequired},
		{name: "blank client", mutate: func(o *Order) { o.ClientName = "" }, want: ErrClientNameRequired},
		{name: "unknown status", mutate: func(o *Order) { o.Status = "SHIPPED" }, want: ErrInvalidStatus},
		{name: "unknown priority", mutate: func(o *Order) { o.Priority = "" }, want: ErrInvalidPriority},
		{name: "bad deadline", mutate: func(o *Order) { o.Deadline = "12/01/2024" }, want: ErrInvalidDeadline},
		{name: "large attachment", mutate: func(o *Order) {
			o.Attachments = []Attachment{{Name: "scan.tiff", Size: MaxAttachmentSize + 1}}
		}, want: ErrAttachmentTooLarge},
		{name: "free-form tech specs", mutate: func(o *Order) { o.PaperType = "UNKNOWN_X" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.mutate(&o)
			err := o.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOrder_JSONOmitsEmptyOptionalFields(t *testing.T) {
	data, err := json.Marshal(validOrder())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"clientName":"Alpha LLC"`)
	assert.Contains(t, out, `"orderNumber":0`)
	for _, field := range []string{"deadline", "paperWeight", "paperType", "format", "colorMode", "attachments", "description"} {
		assert.False(t, strings.Contains(out, `"`+field+`"`), field)
	}
}

func TestChatMessage_JSONHidesSeq(t *testing.T) {
	data, err := json.Marshal(ChatMessage{Seq: 9, ID: "m1", Timestamp: 100})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "9")
	assert.Contains(t, string(data), `"timestamp":100`)
}

func TestDemoOrders(t *testing.T) {
	now := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	orders := DemoOrders(now)

	require.Len(t, orders, 1)
	assert.NoError(t, orders[0].Validate())
	assert.Equal(t, 1001, orders[0].OrderNumber)
	assert.Equal(t, "2024-01-12", orders[0].Deadline)
	assert.True(t, orders[0].HasTechSpecs())
}

func TestSortOrders(t *testing.T) {
	orders := []Order{
		{ID: "a", OrderNumber: 1001},
		{ID: "draft"},
		{ID: "b", OrderNumber: 1003},
		{ID: "c", OrderNumber: 1002},
		{ID: "draft2"},
	}

	SortOrders(orders)

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"b", "c", "a", "draft", "draft2"}, ids)
}
