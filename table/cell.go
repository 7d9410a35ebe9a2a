package table

import (
	"github.com/diegolsarmond/custom-proposal-maker/markup"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
)

// CellContent is what a cell draws: TextContent or ImageContent.
type CellContent interface {
	cellContent()
}

// TextContent is wrapped, aligned text.
type TextContent struct {
	Text string
}

func (TextContent) cellContent() {}

// ImageContent draws an image registered on the surface under Name.
type ImageContent struct {
	Name   string
	Height float64 // 0 means DefaultImageHeight
}

func (ImageContent) cellContent() {}

// DefaultImageHeight is the height of image cells that do not set one.
const DefaultImageHeight = 10.0

// Cell is one entry of a Row. Styles set on a cell win over the row and
// table styles.
type Cell struct {
	content CellContent
	colspan int
	style   *CellStyle
}

// SetColspan makes the cell cover n columns. Values below 1 are ignored.
func (c *Cell) SetColspan(n int) *Cell {
	if n > 0 {
		c.colspan = n
	}
	return c
}

// SetStyle replaces the cell style.
func (c *Cell) SetStyle(s CellStyle) *Cell {
	c.style = &s
	return c
}

// SetAlign takes one of surface.AlignLeft, AlignCenter or AlignRight.
func (c *Cell) SetAlign(align string) *Cell {
	c.ensureStyle().Align = align
	return c
}

func (c *Cell) SetFillColor(col surface.Color) *Cell {
	c.ensureStyle().FillColor = &col
	return c
}

// SetBold switches the cell font to bold, keeping the inherited size.
func (c *Cell) SetBold() *Cell {
	c.ensureStyle().Font = &FontSpec{Style: markup.Bold}
	return c
}

func (c *Cell) ensureStyle() *CellStyle {
	if c.style == nil {
		c.style = &CellStyle{}
	}
	return c.style
}

// Row is a header or body row. Rows are created by Table.AddRow and
// Table.AddHeaderRow.
type Row struct {
	cells    []*Cell
	style    *CellStyle
	isHeader bool
	minH     float64
}

// AddCell appends a text cell and returns it so it can be styled.
func (r *Row) AddCell(text string) *Cell {
	c := &Cell{content: TextContent{Text: text}, colspan: 1}
	r.cells = append(r.cells, c)
	return c
}

// AddCells appends one text cell per value.
func (r *Row) AddCells(texts ...string) *Row {
	for _, t := range texts {
		r.AddCell(t)
	}
	return r
}

// AddImageCell adds a cell showing the image registered as name.
func (r *Row) AddImageCell(name string, height float64) *Cell {
	c := &Cell{content: ImageContent{Name: name, Height: height}, colspan: 1}
	r.cells = append(r.cells, c)
	return c
}

// SetStyle applies s to every cell of the row.
func (r *Row) SetStyle(s CellStyle) *Row {
	r.style = &s
	return r
}

// SetFillColor paints the row background.
func (r *Row) SetFillColor(c surface.Color) *Row {
	if r.style == nil {
		r.style = &CellStyle{}
	}
	r.style.FillColor = &c
	return r
}

// SetMinHeight keeps the row at least h tall.
func (r *Row) SetMinHeight(h float64) *Row {
	r.minH = h
	return r
}
