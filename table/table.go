package table

import (
	"errors"

	"github.com/diegolsarmond/custom-proposal-maker/markup"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
)

// ErrNoColumns is returned by Render when neither columns nor rows define
// the table shape.
var ErrNoColumns = errors.New("table: no columns")

const (
	ptToMM                  = 25.4 / 72
	defaultFontSize         = 10.0
	defaultLineHeightFactor = 1.15
	// baselineRatio places the baseline inside a wrapped line.
	baselineRatio = 0.75
	minRowHeight  = 5.0
)

// Pager makes room for content of height h starting at y and returns the y
// to draw at, opening a new page on the surface when needed.
type Pager interface {
	Reserve(y, h float64) float64
}

// ColumnDef defines the properties of a table column.
type ColumnDef struct {
	Width    float64 // Fixed width. 0 means auto/fill.
	MinWidth float64 // Minimum width for auto columns.
	MaxWidth float64 // Maximum width for auto columns. 0 means unlimited.
	Align    string  // Default alignment for this column.
}

// Table is a high-level table builder drawing on a surface.
type Table struct {
	s          surface.Surface
	pager      Pager
	columns    []ColumnDef
	rows       []*Row
	style      TableStyle
	x, y       float64
	tableWidth float64 // 0 means page width minus 2*x
}

// New creates a new Table drawing on s.
func New(s surface.Surface) *Table {
	return &Table{
		s: s,
		style: TableStyle{
			CellPadding: UniformPadding(1),
		},
	}
}

// SetColumns sets column definitions for the table.
func (t *Table) SetColumns(cols ...ColumnDef) *Table {
	t.columns = cols
	return t
}

// SetColumnWidths is a convenience method to set column widths directly.
// A width of 0 means the column will auto-fill remaining space.
func (t *Table) SetColumnWidths(widths ...float64) *Table {
	t.columns = make([]ColumnDef, len(widths))
	for i, w := range widths {
		t.columns[i] = ColumnDef{Width: w}
	}
	return t
}

// SetStyle sets the table-wide style.
func (t *Table) SetStyle(s TableStyle) *Table {
	t.style = s
	return t
}

// SetPosition sets the top-left corner of the table.
func (t *Table) SetPosition(x, y float64) *Table {
	t.x = x
	t.y = y
	return t
}

// SetWidth sets the total table width. If not called, the table spans the
// page leaving x on both sides.
func (t *Table) SetWidth(w float64) *Table {
	t.tableWidth = w
	return t
}

// SetPager routes page breaks through p. Without a pager the table never
// breaks.
func (t *Table) SetPager(p Pager) *Table {
	t.pager = p
	return t
}

// AddRow adds a new data row to the table and returns it for chaining.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.rows = append(t.rows, r)
	return r
}

// AddHeaderRow adds a new header row and returns it for chaining.
// Header rows are repeated at the top of each new page.
func (t *Table) AddHeaderRow() *Row {
	r := &Row{isHeader: true}
	insertIdx := 0
	for i, existing := range t.rows {
		if !existing.isHeader {
			insertIdx = i
			break
		}
		insertIdx = i + 1
	}
	t.rows = append(t.rows, nil)
	copy(t.rows[insertIdx+1:], t.rows[insertIdx:])
	t.rows[insertIdx] = r
	return r
}

// Render draws the table and returns the y just below its last row.
func (t *Table) Render() (float64, error) {
	widths := t.calculateWidths()
	if len(widths) == 0 {
		return t.y, ErrNoColumns
	}

	var headerRows, bodyRows []*Row
	for _, r := range t.rows {
		if r.isHeader {
			headerRows = append(headerRows, r)
		} else {
			bodyRows = append(bodyRows, r)
		}
	}

	y := t.y
	headerH := 0.0
	for _, r := range headerRows {
		headerH += t.calculateRowHeight(r, widths, -1)
	}

	// Keep the header together with the first body row.
	need := headerH
	if len(bodyRows) > 0 {
		need += t.calculateRowHeight(bodyRows[0], widths, 0)
	}
	y = t.reserve(y, need)
	for _, r := range headerRows {
		y = t.renderRow(r, widths, y, -1)
	}

	for i, r := range bodyRows {
		rowH := t.calculateRowHeight(r, widths, i)
		page := t.s.PageNo()
		y = t.reserve(y, rowH)
		if t.s.PageNo() != page {
			for _, hr := range headerRows {
				y = t.renderRow(hr, widths, y, -1)
			}
		}
		y = t.renderRow(r, widths, y, i)
	}

	t.s.SetTextColor(surface.Color{})
	t.s.SetFont(markup.Normal, t.baseFont().Size)
	return y, nil
}

func (t *Table) reserve(y, h float64) float64 {
	if t.pager == nil {
		return y
	}
	return t.pager.Reserve(y, h)
}

// calculateWidths computes final column widths based on definitions and available space.
func (t *Table) calculateWidths() []float64 {
	totalWidth := t.tableWidth
	if totalWidth == 0 {
		pageW, _ := t.s.PageSize()
		totalWidth = pageW - 2*t.x
	}

	numCols := len(t.columns)
	if numCols == 0 {
		if len(t.rows) > 0 {
			numCols = len(t.rows[0].cells)
		}
		if numCols == 0 {
			return nil
		}
		t.columns = make([]ColumnDef, numCols)
	}

	widths := make([]float64, numCols)
	fixedTotal := 0.0
	autoCount := 0

	for i, col := range t.columns {
		if col.Width > 0 {
			widths[i] = col.Width
			fixedTotal += col.Width
		} else {
			autoCount++
		}
	}

	if autoCount > 0 {
		remaining := totalWidth - fixedTotal
		if remaining < 0 {
			remaining = 0
		}
		autoWidth := remaining / float64(autoCount)
		for i, col := range t.columns {
			if col.Width == 0 {
				w := autoWidth
				if col.MinWidth > 0 && w < col.MinWidth {
					w = col.MinWidth
				}
				if col.MaxWidth > 0 && w > col.MaxWidth {
					w = col.MaxWidth
				}
				widths[i] = w
			}
		}
	}

	return widths
}

func (t *Table) baseFont() FontSpec {
	f := FontSpec{Size: defaultFontSize}
	if t.style.CellFont != nil {
		f = *t.style.CellFont
		if f.Size == 0 {
			f.Size = defaultFontSize
		}
	}
	return f
}

func (t *Table) lineHeight(size float64) float64 {
	factor := t.style.LineHeightFactor
	if factor <= 0 {
		factor = defaultLineHeightFactor
	}
	return size * ptToMM * factor
}

func (t *Table) padding(style CellStyle) Padding {
	if style.Padding != nil {
		return *style.Padding
	}
	return t.style.CellPadding
}

// cellWidth returns the width of the cell starting at column i, including
// the columns it spans.
func cellWidth(cell *Cell, widths []float64, i int) float64 {
	w := widths[i]
	for j := 1; j < cell.colspan && i+j < len(widths); j++ {
		w += widths[i+j]
	}
	return w
}

// cellLines wraps the text of a cell in its resolved font.
func (t *Table) cellLines(text string, style CellStyle, contentW float64) []string {
	t.s.SetFont(style.Font.Style, style.Font.Size)
	lines := t.s.SplitText(text, contentW)
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// calculateRowHeight computes the height needed for a row based on cell content.
func (t *Table) calculateRowHeight(r *Row, widths []float64, bodyIdx int) float64 {
	maxH := minRowHeight
	if r.minH > maxH {
		maxH = r.minH
	}

	col := 0
	for _, cell := range r.cells {
		if col >= len(widths) {
			break
		}
		style := t.resolveCellStyle(cell, r, bodyIdx)
		padding := t.padding(style)
		cellW := cellWidth(cell, widths, col)
		col += cell.colspan

		contentW := cellW - padding.Left - padding.Right
		if contentW < 1 {
			contentW = 1
		}

		var cellH float64
		switch c := cell.content.(type) {
		case TextContent:
			lines := t.cellLines(c.Text, style, contentW)
			cellH = float64(len(lines))*t.lineHeight(style.Font.Size) + padding.Top + padding.Bottom
		case ImageContent:
			h := c.Height
			if h <= 0 {
				h = DefaultImageHeight
			}
			cellH = h + padding.Top + padding.Bottom
		}
		if cellH > maxH {
			maxH = cellH
		}
	}

	return maxH
}

// renderRow draws a single row at y and returns the y below it.
func (t *Table) renderRow(r *Row, widths []float64, y float64, bodyIdx int) float64 {
	rowH := t.calculateRowHeight(r, widths, bodyIdx)
	x := t.x

	col := 0
	for _, cell := range r.cells {
		if col >= len(widths) {
			break
		}
		cellW := cellWidth(cell, widths, col)
		style := t.resolveCellStyle(cell, r, bodyIdx)
		padding := t.padding(style)

		if style.FillColor != nil {
			t.s.SetFillColor(*style.FillColor)
			t.s.FillRect(x, y, cellW, rowH)
		}
		if b := t.style.Border; b != nil {
			t.s.SetDrawColor(b.Color)
			if b.Width > 0 {
				t.s.SetLineWidth(b.Width)
			}
			t.s.Line(x, y, x+cellW, y)
			t.s.Line(x+cellW, y, x+cellW, y+rowH)
			t.s.Line(x, y+rowH, x+cellW, y+rowH)
			t.s.Line(x, y, x, y+rowH)
		}

		align := surface.AlignLeft
		if style.Align != "" {
			align = style.Align
		} else if col < len(t.columns) && t.columns[col].Align != "" {
			align = t.columns[col].Align
		}
		col += cell.colspan

		contentW := cellW - padding.Left - padding.Right
		if contentW < 1 {
			contentW = 1
		}
		contentY := y + padding.Top

		switch c := cell.content.(type) {
		case TextContent:
			if style.TextColor != nil {
				t.s.SetTextColor(*style.TextColor)
			} else {
				t.s.SetTextColor(surface.Color{})
			}
			lines := t.cellLines(c.Text, style, contentW)
			lh := t.lineHeight(style.Font.Size)
			tx := x + padding.Left
			switch align {
			case surface.AlignCenter:
				tx = x + cellW/2
			case surface.AlignRight:
				tx = x + cellW - padding.Right
			}
			for i, line := range lines {
				t.s.Text(line, tx, contentY+float64(i)*lh+lh*baselineRatio, surface.TextOptions{Align: align})
			}
		case ImageContent:
			h := rowH - padding.Top - padding.Bottom
			t.s.Image(c.Name, x+padding.Left, contentY, h, h)
		}

		x += cellW
	}

	return y + rowH
}

// resolveCellStyle determines the effective style for a cell by merging
// table, alternate row, header, row, and cell-level styles. The result
// always carries a font.
func (t *Table) resolveCellStyle(cell *Cell, row *Row, bodyIdx int) CellStyle {
	base := t.baseFont()
	result := CellStyle{Font: &base, TextColor: t.style.TextColor}

	if row.isHeader && t.style.HeaderStyle != nil {
		mergeStyle(&result, t.style.HeaderStyle)
	}

	if !row.isHeader && t.style.AlternateRows != nil && bodyIdx >= 0 {
		if bodyIdx%2 == 0 {
			mergeStyle(&result, &t.style.AlternateRows.Even)
		} else {
			mergeStyle(&result, &t.style.AlternateRows.Odd)
		}
	}

	if row.style != nil {
		mergeStyle(&result, row.style)
	}

	if cell.style != nil {
		mergeStyle(&result, cell.style)
	}

	return result
}

// mergeStyle copies non-nil fields from src to dst. A font without a size
// keeps the size already in dst.
func mergeStyle(dst, src *CellStyle) {
	if src.FillColor != nil {
		dst.FillColor = src.FillColor
	}
	if src.TextColor != nil {
		dst.TextColor = src.TextColor
	}
	if src.Font != nil {
		f := *src.Font
		if f.Size == 0 && dst.Font != nil {
			f.Size = dst.Font.Size
		}
		dst.Font = &f
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
	if src.Padding != nil {
		dst.Padding = src.Padding
	}
}
