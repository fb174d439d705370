// Package workorder renders the printable work sheet handed to the shop floor.
package workorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/yukikurage/printflow/internal/models"
)

const (
	brand      = "PRINTFLOW"
	emptyValue = "—"
	briefWidth = 72
)

// Number formats an order number the way it is printed on the sheet, e.g. #1001.
func Number(n int) string {
	if n <= 0 {
		return "#NEW"
	}
	return fmt.Sprintf("#%04d", n)
}

// Render returns the plain-text work order for order, dated now.
func Render(order models.Order, now time.Time) string {
	var b strings.Builder

	header := newTable()
	header.SetTitle("%s  Order work sheet", brand)
	header.AppendRows([]table.Row{
		{"Order", Number(order.OrderNumber)},
		{"Date", now.Format(models.DeadlineLayout)},
		{"Client", order.ClientName},
		{"Job", order.Title},
	})
	b.WriteString(header.Render())
	b.WriteString("\n\n")

	params := newTable()
	params.AppendHeader(table.Row{"Section", "Parameter", "Value"})
	params.AppendRows([]table.Row{
		{"Paper", "Weight", paperWeight(order.PaperWeight)},
		{"Paper", "Material", label(models.PaperTypeOptions, order.PaperType)},
		{"Print", "Format", label(models.FormatOptions, order.Format)},
		{"Print", "Color", label(models.ColorModeOptions, order.ColorMode)},
	})
	params.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true, VAlign: text.VAlignMiddle},
	})
	b.WriteString(params.Render())
	b.WriteString("\n\n")

	description := strings.TrimSpace(order.Description)
	if description == "" {
		description = "No description"
	}
	brief := newTable()
	brief.AppendHeader(table.Row{"Brief / Description"})
	brief.AppendRow(table.Row{description})
	brief.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: briefWidth},
	})
	b.WriteString(brief.Render())
	b.WriteString("\n\n")

	deadline := order.Deadline
	if deadline == "" {
		deadline = "Not set"
	}
	schedule := newTable()
	schedule.AppendRows([]table.Row{
		{"Deadline", deadline},
		{"Priority", order.Priority.Label()},
		{"Manager signature", strings.Repeat("_", 24)},
	})
	b.WriteString(schedule.Render())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Generated by %s    ||| || ||| | |||| ||| %d\n", strings.ToLower(brand), order.OrderNumber)

	return b.String()
}

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	return tw
}

func paperWeight(value string) string {
	if value == "" {
		return emptyValue
	}
	if models.PaperWeightOptions.Contains(value) {
		return models.PaperWeightOptions.ShortLabel(value)
	}
	return value + " g/m²"
}

func label(catalog models.Catalog, value string) string {
	if value == "" {
		return emptyValue
	}
	return catalog.Label(value)
}
