package models

import "strings"

// Option is a (machine value, human label) pair.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Catalog is a fixed, ordered list of options.
type Catalog []Option

// Label returns the label for value. Values outside the catalog are returned unchanged.
func (c Catalog) Label(value string) string {
	for _, o := range c {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// ShortLabel is Label without the trailing parenthesised qualifier, e.g. "300 g/m²".
func (c Catalog) ShortLabel(value string) string {
	label := c.Label(value)
	if i := strings.Index(label, " ("); i > 0 {
		return label[:i]
	}
	return label
}

func (c Catalog) Contains(value string) bool {
	for _, o := range c {
		if o.Value == value {
			return true
		}
	}
	return false
}

var PaperWeightOptions = Catalog{
	{Value: "80", Label: "80 g/m² (Office)"},
	{Value: "115", Label: "115 g/m² (Flyers)"},
	{Value: "130", Label: "130 g/m² (Booklets)"},
	{Value: "150", Label: "150 g/m² (Heavy)"},
	{Value: "170", Label: "170 g/m² (Calendars)"},
	{Value: "200", Label: "200 g/m²"},
	{Value: "250", Label: "250 g/m²"},
	{Value: "300", Label: "300 g/m² (Business cards)"},
	{Value: "350", Label: "350 g/m² (Premium)"},
}

var PaperTypeOptions = Catalog{
	{Value: "MATTE", Label: "Matte (coated)"},
	{Value: "GLOSSY", Label: "Glossy (coated)"},
	{Value: "OFFSET", Label: "Offset"},
	{Value: "DESIGN", Label: "Designer"},
	{Value: "KRAFT", Label: "Kraft"},
	{Value: "CARTON", Label: "Carton"},
	{Value: "SELF_ADHESIVE", Label: "Self-adhesive"},
}

var FormatOptions = Catalog{
	{Value: "VISIT", Label: "Business card (90x50)"},
	{Value: "EURO", Label: "Euro flyer"},
	{Value: "A6", Label: "A6"},
	{Value: "A5", Label: "A5"},
	{Value: "A4", Label: "A4"},
	{Value: "A3", Label: "A3"},
	{Value: "A2", Label: "A2"},
	{Value: "A1", Label: "A1"},
	{Value: "CUSTOM", Label: "Custom"},
}

var ColorModeOptions = Catalog{
	{Value: "4+0", Label: "4+0 (Color, one side)"},
	{Value: "4+4", Label: "4+4 (Color, both sides)"},
	{Value: "1+0", Label: "1+0 (B/W, one side)"},
	{Value: "1+1", Label: "1+1 (B/W, both sides)"},
}
