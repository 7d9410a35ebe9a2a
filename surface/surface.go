// Package surface defines the drawing primitives the layout engine needs and
// provides an implementation backed by gofpdf.
//
// All coordinates are millimetres on an A4 portrait page with the origin at
// the top-left corner. Text is positioned by its baseline.
package surface

import (
	"io"

	"github.com/diegolsarmond/custom-proposal-maker/markup"
)

// Text alignment relative to the x coordinate passed to Text.
const (
	AlignLeft   = "L"
	AlignCenter = "C"
	AlignRight  = "R"
)

// Color is an RGB color with 0-255 components.
type Color struct {
	R, G, B int
}

// TextOptions controls how a string is placed.
type TextOptions struct {
	Align string  // AlignLeft (default), AlignCenter or AlignRight
	Angle float64 // counter-clockwise rotation in degrees around (x, y)
}

// Surface is the set of drawing operations used to lay out a document.
type Surface interface {
	PageSize() (w, h float64)
	AddPage()
	PageNo() int

	SetFillColor(c Color)
	SetTextColor(c Color)
	SetDrawColor(c Color)
	SetLineWidth(w float64)
	// SetAlpha sets the opacity for subsequent fills and text (0..1).
	SetAlpha(a float64)

	SetFont(style markup.Style, size float64)
	FontSize() float64

	FillRect(x, y, w, h float64)
	Line(x1, y1, x2, y2 float64)
	FillCircle(x, y, r float64)
	FillTriangle(x1, y1, x2, y2, x3, y3 float64)
	// Image draws a previously registered image. Unknown names are ignored.
	Image(name string, x, y, w, h float64)

	Text(s string, x, y float64, opts TextOptions)
	// TextWidth measures s in the current font.
	TextWidth(s string) float64
	// SplitText wraps s into lines no wider than w in the current font.
	SplitText(s string, w float64) []string
}

// Document is a Surface that owns its output.
type Document interface {
	Surface
	RegisterImage(name string, png []byte) error
	Output(w io.Writer) error
}

// Metadata is the document information dictionary.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
}

// MetadataSetter is implemented by surfaces that carry document metadata.
type MetadataSetter interface {
	SetMetadata(m Metadata)
}

// TemplateImporter is implemented by surfaces that can import a page from an
// existing PDF and stamp it as a background.
type TemplateImporter interface {
	ImportTemplate(path string) (id int, err error)
	UseTemplate(id int, x, y, w, h float64)
}

// Symbology selects a two-dimensional barcode type.
type Symbology string

const (
	SymbologyQR     Symbology = "qr"
	SymbologyPDF417 Symbology = "pdf417"
)

// Barcoder is implemented by surfaces that can render barcodes.
type Barcoder interface {
	Barcode(code string, sym Symbology, x, y, w, h float64) error
}

// Measure returns a width function for the given style and size. The current
// font of s is restored afterwards.
func Measure(s Surface) func(text string, style markup.Style, size float64) float64 {
	return func(text string, style markup.Style, size float64) float64 {
		restore := s.FontSize()
		s.SetFont(style, size)
		w := s.TextWidth(text)
		s.SetFont(markup.Normal, restore)
		return w
	}
}
