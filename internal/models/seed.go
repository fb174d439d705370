package models

import "time"

// DemoOrders returns the sample board shown on a fresh install.
func DemoOrders(now time.Time) []Order {
	return []Order{
		{
			ID:          "1",
			OrderNumber: 1001,
			Title:       `Business cards "Alpha"`,
			ClientName:  "Alpha LLC",
			Description: "1000 pcs, gold foil stamping. Artwork outlined and checked.",
			Status:      OrderStatusPrepress,
			Priority:    PriorityHigh,
			CreatedAt:   now.UnixMilli(),
			Deadline:    now.AddDate(0, 0, 2).Format(DeadlineLayout),
			PaperWeight: "300",
			PaperType:   "DESIGN",
			Format:      "VISIT",
			ColorMode:   "4+0",
		},
	}
}
