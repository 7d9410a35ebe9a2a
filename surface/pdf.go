package surface

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/barcode"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
	"golang.org/x/text/encoding/charmap"

	"github.com/diegolsarmond/custom-proposal-maker/markup"
)

const (
	fontFamily = "Helvetica"

	// PDF417 layout for short verification codes.
	pdf417Columns  = 10
	pdf417Security = 2
)

// PDF is a Document backed by an A4 portrait gofpdf document.
type PDF struct {
	pdf      *gofpdf.Fpdf
	importer *gofpdi.Importer
	images   map[string]bool
	size     float64
}

var (
	_ Document         = (*PDF)(nil)
	_ MetadataSetter   = (*PDF)(nil)
	_ TemplateImporter = (*PDF)(nil)
	_ Barcoder         = (*PDF)(nil)
)

// NewPDF creates an empty A4 document measured in millimetres. Automatic page
// breaks are disabled: pagination is driven by the caller.
func NewPDF() *PDF {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreationDate(time.Now())
	p := &PDF{
		pdf:    pdf,
		images: make(map[string]bool),
		size:   11,
	}
	pdf.SetFont(fontFamily, "", p.size)
	return p
}

// Fpdf exposes the underlying document for callers that need gofpdf
// features not covered by Surface.
func (p *PDF) Fpdf() *gofpdf.Fpdf { return p.pdf }

func (p *PDF) PageSize() (float64, float64) { return p.pdf.GetPageSize() }

func (p *PDF) AddPage() { p.pdf.AddPage() }

func (p *PDF) PageNo() int { return p.pdf.PageNo() }

func (p *PDF) SetFillColor(c Color) { p.pdf.SetFillColor(c.R, c.G, c.B) }
func (p *PDF) SetTextColor(c Color) { p.pdf.SetTextColor(c.R, c.G, c.B) }
func (p *PDF) SetDrawColor(c Color) { p.pdf.SetDrawColor(c.R, c.G, c.B) }
func (p *PDF) SetLineWidth(w float64) { p.pdf.SetLineWidth(w) }

func (p *PDF) SetAlpha(a float64) {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	p.pdf.SetAlpha(a, "Normal")
}

func (p *PDF) SetFont(style markup.Style, size float64) {
	p.size = size
	p.pdf.SetFont(fontFamily, style.FontStyle(), size)
}

func (p *PDF) FontSize() float64 { return p.size }

func (p *PDF) FillRect(x, y, w, h float64) { p.pdf.Rect(x, y, w, h, "F") }

func (p *PDF) Line(x1, y1, x2, y2 float64) { p.pdf.Line(x1, y1, x2, y2) }

func (p *PDF) FillCircle(x, y, r float64) { p.pdf.Circle(x, y, r, "F") }

func (p *PDF) FillTriangle(x1, y1, x2, y2, x3, y3 float64) {
	p.pdf.Polygon([]gofpdf.PointType{
		{X: x1, Y: y1},
		{X: x2, Y: y2},
		{X: x3, Y: y3},
	}, "F")
}

func (p *PDF) Image(name string, x, y, w, h float64) {
	if !p.images[name] {
		return
	}
	p.pdf.ImageOptions(name, x, y, w, h, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

func (p *PDF) Text(s string, x, y float64, opts TextOptions) {
	if s == "" {
		return
	}
	enc := encode(s)
	switch opts.Align {
	case AlignCenter:
		x -= p.pdf.GetStringWidth(enc) / 2
	case AlignRight:
		x -= p.pdf.GetStringWidth(enc)
	}
	if opts.Angle == 0 {
		p.pdf.Text(x, y, enc)
		return
	}
	p.pdf.TransformBegin()
	p.pdf.TransformRotate(opts.Angle, x, y)
	p.pdf.Text(x, y, enc)
	p.pdf.TransformEnd()
}

func (p *PDF) TextWidth(s string) float64 { return p.pdf.GetStringWidth(encode(s)) }

func (p *PDF) SplitText(s string, w float64) []string {
	var out []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(para) == "" {
			out = append(out, "")
			continue
		}
		for _, line := range p.pdf.SplitLines([]byte(encode(para)), w) {
			out = append(out, decode(line))
		}
	}
	return out
}

// RegisterImage makes a PNG available to Image under name.
func (p *PDF) RegisterImage(name string, png []byte) error {
	p.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	if p.pdf.Err() {
		return fmt.Errorf("surface: register image %q: %w", name, p.pdf.Error())
	}
	p.images[name] = true
	return nil
}

func (p *PDF) SetMetadata(m Metadata) {
	if m.Title != "" {
		p.pdf.SetTitle(m.Title, true)
	}
	if m.Author != "" {
		p.pdf.SetAuthor(m.Author, true)
	}
	if m.Subject != "" {
		p.pdf.SetSubject(m.Subject, true)
	}
	if m.Keywords != "" {
		p.pdf.SetKeywords(m.Keywords, true)
	}
	if m.Creator != "" {
		p.pdf.SetCreator(m.Creator, true)
	}
}

// ImportTemplate imports the first page of the PDF at path so it can be
// stamped with UseTemplate. The gofpdi reader panics on unreadable input;
// that is reported as an error.
func (p *PDF) ImportTemplate(path string) (id int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("surface: import template %s: %v", path, r)
		}
	}()
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("surface: import template: %w", err)
	}
	if p.importer == nil {
		p.importer = gofpdi.NewImporter()
	}
	id = p.importer.ImportPage(p.pdf, path, 1, "/MediaBox")
	if p.pdf.Err() {
		return 0, fmt.Errorf("surface: import template %s: %w", path, p.pdf.Error())
	}
	return id, nil
}

func (p *PDF) UseTemplate(id int, x, y, w, h float64) {
	if p.importer == nil {
		return
	}
	p.importer.UseImportedTemplate(p.pdf, id, x, y, w, h)
}

// Barcode registers code in the requested symbology and draws it in the
// given box.
func (p *PDF) Barcode(code string, sym Symbology, x, y, w, h float64) error {
	var key string
	switch sym {
	case SymbologyQR, "":
		key = barcode.RegisterQR(p.pdf, code, qr.M, qr.Unicode)
	case SymbologyPDF417:
		key = barcode.RegisterPdf417(p.pdf, code, pdf417Columns, pdf417Security)
	default:
		return fmt.Errorf("surface: unknown symbology %q", sym)
	}
	if p.pdf.Err() {
		return fmt.Errorf("surface: barcode: %w", p.pdf.Error())
	}
	barcode.Barcode(p.pdf, key, x, y, w, h, false)
	return nil
}

// Output writes the finished document to w.
func (p *PDF) Output(w io.Writer) error {
	if p.pdf.Err() {
		return p.pdf.Error()
	}
	return p.pdf.Output(w)
}

// encode converts UTF-8 text to the Windows-1252 bytes expected by the core
// fonts. Runes outside the code page become '?'.
func encode(s string) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x80 {
			b = append(b, byte(r))
			continue
		}
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b = append(b, c)
			continue
		}
		b = append(b, '?')
	}
	return string(b)
}

func decode(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		sb.WriteRune(charmap.Windows1252.DecodeByte(c))
	}
	return sb.String()
}
