// Package surfacetest provides a recording surface with deterministic text
// metrics for layout tests.
package surfacetest

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/diegolsarmond/custom-proposal-maker/layout"
	"github.com/diegolsarmond/custom-proposal-maker/markup"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
)

// Op kinds recorded by Recorder.
const (
	OpAddPage  = "addpage"
	OpText     = "text"
	OpRect     = "rect"
	OpLine     = "line"
	OpCircle   = "circle"
	OpTriangle = "triangle"
	OpImage    = "image"
	OpTemplate = "template"
	OpBarcode  = "barcode"
)

// Op is one recorded drawing call.
type Op struct {
	Kind  string
	Page  int
	Text  string
	Name  string
	X, Y  float64
	W, H  float64
	Style markup.Style
	Size  float64
	Align string
	Angle float64
	Fill  surface.Color
	Color surface.Color
	Alpha float64
}

// Recorder implements surface.Document and records every drawing call. Text
// width is RuneWidth * font size per rune, regardless of style, unless
// BoldFactor is set.
type Recorder struct {
	Ops []Op

	// Width in mm of one rune per point of font size.
	RuneWidth float64
	// Multiplier applied to bold text widths. Zero means 1.
	BoldFactor float64

	Images   map[string][]byte
	Meta     surface.Metadata
	Template string
	// FailTemplate makes ImportTemplate return an error.
	FailTemplate bool

	w, h      float64
	page      int
	style     markup.Style
	size      float64
	fill      surface.Color
	text      surface.Color
	alpha     float64
	lineWidth float64
}

var (
	_ surface.Document         = (*Recorder)(nil)
	_ surface.MetadataSetter   = (*Recorder)(nil)
	_ surface.TemplateImporter = (*Recorder)(nil)
	_ surface.Barcoder         = (*Recorder)(nil)
)

// New returns an A4 recorder where a 10pt rune is 2mm wide.
func New() *Recorder {
	return &Recorder{
		RuneWidth: 0.2,
		Images:    make(map[string][]byte),
		w:         210,
		h:         297,
		size:      11,
		alpha:     1,
	}
}

func (r *Recorder) record(op Op) {
	op.Page = r.page
	op.Style = r.style
	op.Size = r.size
	op.Fill = r.fill
	op.Color = r.text
	op.Alpha = r.alpha
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) PageSize() (float64, float64) { return r.w, r.h }

func (r *Recorder) AddPage() {
	r.page++
	r.record(Op{Kind: OpAddPage})
}

func (r *Recorder) PageNo() int { return r.page }

func (r *Recorder) SetFillColor(c surface.Color) { r.fill = c }
func (r *Recorder) SetTextColor(c surface.Color) { r.text = c }
func (r *Recorder) SetDrawColor(surface.Color)   {}
func (r *Recorder) SetLineWidth(w float64)       { r.lineWidth = w }
func (r *Recorder) SetAlpha(a float64)           { r.alpha = a }

func (r *Recorder) SetFont(style markup.Style, size float64) {
	r.style = style
	r.size = size
}

func (r *Recorder) FontSize() float64 { return r.size }

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.record(Op{Kind: OpRect, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.record(Op{Kind: OpLine, X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (r *Recorder) FillCircle(x, y, rad float64) {
	r.record(Op{Kind: OpCircle, X: x, Y: y, W: rad})
}

func (r *Recorder) FillTriangle(x1, y1, x2, y2, x3, y3 float64) {
	r.record(Op{Kind: OpTriangle, X: x1, Y: y1})
}

func (r *Recorder) Image(name string, x, y, w, h float64) {
	if _, ok := r.Images[name]; !ok {
		return
	}
	r.record(Op{Kind: OpImage, Name: name, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) Text(s string, x, y float64, opts surface.TextOptions) {
	if s == "" {
		return
	}
	r.record(Op{Kind: OpText, Text: s, X: x, Y: y, Align: opts.Align, Angle: opts.Angle})
}

func (r *Recorder) TextWidth(s string) float64 {
	w := float64(utf8.RuneCountInString(s)) * r.size * r.RuneWidth
	if r.style.IsBold() && r.BoldFactor > 0 {
		w *= r.BoldFactor
	}
	return w
}

func (r *Recorder) SplitText(s string, w float64) []string {
	return layout.Wrap(s, w, r.TextWidth)
}

func (r *Recorder) RegisterImage(name string, png []byte) error {
	r.Images[name] = png
	return nil
}

func (r *Recorder) Output(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%%PDF-recorded pages=%d ops=%d\n", r.page, len(r.Ops))
	return err
}

func (r *Recorder) SetMetadata(m surface.Metadata) { r.Meta = m }

func (r *Recorder) ImportTemplate(path string) (int, error) {
	if r.FailTemplate {
		return 0, fmt.Errorf("surfacetest: cannot import %s", path)
	}
	r.Template = path
	return 1, nil
}

func (r *Recorder) UseTemplate(id int, x, y, w, h float64) {
	r.record(Op{Kind: OpTemplate, Name: r.Template, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) Barcode(code string, sym surface.Symbology, x, y, w, h float64) error {
	r.record(Op{Kind: OpBarcode, Text: code, Name: string(sym), X: x, Y: y, W: w, H: h})
	return nil
}

// Texts returns the recorded text ops, optionally restricted to one page
// (page <= 0 means all pages).
func (r *Recorder) Texts(page int) []Op {
	return r.filter(OpText, page)
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind string) int {
	return len(r.filter(kind, 0))
}

func (r *Recorder) filter(kind string, page int) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind && (page <= 0 || op.Page == page) {
			out = append(out, op)
		}
	}
	return out
}

// AllText concatenates every recorded string separated by newlines.
func (r *Recorder) AllText() string {
	var b strings.Builder
	for _, op := range r.Texts(0) {
		b.WriteString(op.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Find returns the first text op whose text equals s.
func (r *Recorder) Find(s string) (Op, bool) {
	for _, op := range r.Texts(0) {
		if op.Text == s {
			return op, true
		}
	}
	return Op{}, false
}

// Contains reports whether any recorded string contains sub.
func (r *Recorder) Contains(sub string) bool {
	return strings.Contains(r.AllText(), sub)
}
