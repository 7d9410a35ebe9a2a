// Package table draws grid tables on a drawing surface.
//
// It supports fixed and auto-width columns, colspan, cell text wrapping,
// header rows repeated after page breaks, alternating row colors and
// row or cell level style overrides.
package table

import (
	"github.com/diegolsarmond/custom-proposal-maker/markup"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
)

// RGB is shorthand for optional style colors.
func RGB(r, g, b int) *surface.Color {
	return &surface.Color{R: r, G: g, B: b}
}

// FontSpec selects the cell font. A zero Size keeps the inherited size.
type FontSpec struct {
	Style markup.Style
	Size  float64
}

// Padding is the inner spacing of a cell in millimetres.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding pads every side by v.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// BorderStyle draws grid lines around every cell.
type BorderStyle struct {
	Width float64
	Color surface.Color
}

// CellStyle overrides parts of the inherited style. Nil and empty fields
// inherit.
type CellStyle struct {
	FillColor *surface.Color
	TextColor *surface.Color
	Font      *FontSpec
	Align     string // surface.AlignLeft, AlignCenter or AlignRight
	Padding   *Padding
}

// AlternateStyle stripes body rows. Odd applies to the second, fourth...
// body row.
type AlternateStyle struct {
	Even CellStyle
	Odd  CellStyle
}

// TableStyle is the base style of a table.
type TableStyle struct {
	Border        *BorderStyle
	AlternateRows *AlternateStyle
	HeaderStyle   *CellStyle
	CellPadding   Padding
	CellFont      *FontSpec
	TextColor     *surface.Color
	// LineHeightFactor scales the font size to the distance between wrapped
	// lines. Defaults to 1.15.
	LineHeightFactor float64
}
