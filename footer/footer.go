// Package footer lays out the three-column contact footer (phone, address,
// website) drawn at the bottom of every content page.
//
// Compute produces a placement plan without drawing anything; Draw paints a
// plan onto a surface.
package footer

import (
	"strings"
	"unicode/utf8"

	"github.com/diegolsarmond/custom-proposal-maker/markup"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
)

// Image names the footer expects to be registered on the surface.
const (
	IconPhone   = "icon-phone"
	IconAddress = "icon-location"
	IconWebsite = "icon-globe"
)

// Config holds the footer geometry. The website font steps are cosmetic
// tuning and can be changed freely.
type Config struct {
	Margin     float64 // left and right page margin
	ColumnGap  float64
	IconSize   float64
	IconGap    float64 // space between an icon and its text
	FontSize   float64
	LineHeight float64

	// Offset is the distance from the page bottom to the footer rule.
	Offset float64
	// Baseline is the distance from the rule to the first text baseline.
	Baseline  float64
	RuleWidth float64

	WebsiteStartSize float64
	WebsiteMinSize   float64
	WebsiteStep      float64

	// Horizontal room reserved next to the text of each column.
	PhoneReserve   float64
	AddressReserve float64
	WebsiteReserve float64
	// WebsiteInset is the gap between the right column edge and the text.
	WebsiteInset float64
	// PhoneInset is the gap between the left column edge and the icon.
	PhoneInset float64

	MaxLines int
	Ellipsis string

	RuleColor surface.Color
	TextColor surface.Color
}

// DefaultConfig returns the footer used on proposal and contract pages.
func DefaultConfig() Config {
	return Config{
		Margin:           10,
		ColumnGap:        6,
		IconSize:         5,
		IconGap:          2,
		FontSize:         10,
		LineHeight:       5,
		Offset:           20,
		Baseline:         9,
		RuleWidth:        0.4,
		WebsiteStartSize: 9,
		WebsiteMinSize:   7,
		WebsiteStep:      0.5,
		PhoneReserve:     6,
		AddressReserve:   8,
		WebsiteReserve:   8,
		WebsiteInset:     2,
		PhoneInset:       2,
		MaxLines:         2,
		Ellipsis:         "...",
		RuleColor:        surface.Color{R: 0, G: 173, B: 239},
		TextColor:        surface.Color{R: 33, G: 37, B: 41},
	}
}

// Metrics measures and wraps normal-weight text at a given font size.
type Metrics interface {
	TextWidth(text string, size float64) float64
	SplitText(text string, width, size float64) []string
}

// SurfaceMetrics adapts a surface to Metrics. It changes the surface font.
func SurfaceMetrics(s surface.Surface) Metrics {
	return surfaceMetrics{s}
}

type surfaceMetrics struct{ s surface.Surface }

func (m surfaceMetrics) TextWidth(text string, size float64) float64 {
	m.s.SetFont(markup.Normal, size)
	return m.s.TextWidth(text)
}

func (m surfaceMetrics) SplitText(text string, width, size float64) []string {
	m.s.SetFont(markup.Normal, size)
	return m.s.SplitText(text, width)
}

// Geometry is the page the footer is placed on.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
}

// Info is the contact data shown in the footer. Empty fields leave their
// column blank.
type Info struct {
	Phone   string
	Address string
	Website string
}

// Line is one positioned line of footer text.
type Line struct {
	Text  string
	X, Y  float64
	Align string
}

// Icon is a positioned square image.
type Icon struct {
	Name string
	X, Y float64
	Size float64
}

// Column is the plan for one footer column.
type Column struct {
	Lines    []Line
	Icon     *Icon
	FontSize float64
}

// Empty reports whether the column draws nothing.
func (c Column) Empty() bool { return len(c.Lines) == 0 }

// Layout is a complete footer placement plan.
type Layout struct {
	RuleY          float64
	RuleX1, RuleX2 float64
	ColumnWidth    float64

	Phone   Column
	Address Column
	Website Column
}

// Compute places the footer for info on a page of the given geometry.
func Compute(m Metrics, g Geometry, info Info, cfg Config) Layout {
	ruleY := g.PageHeight - cfg.Offset
	colW := (g.PageWidth - 2*cfg.Margin - 2*cfg.ColumnGap) / 3
	leftX := cfg.Margin
	centerX := cfg.Margin + colW + cfg.ColumnGap
	rightX := cfg.Margin + 2*(colW+cfg.ColumnGap)
	baseline := ruleY + cfg.Baseline

	l := Layout{
		RuleY:       ruleY,
		RuleX1:      cfg.Margin,
		RuleX2:      g.PageWidth - cfg.Margin,
		ColumnWidth: colW,
	}

	if phone := strings.TrimSpace(info.Phone); phone != "" {
		iconX := leftX + cfg.PhoneInset
		maxW := colW - (cfg.IconSize + cfg.PhoneReserve)
		text := Truncate(m, phone, maxW, cfg.FontSize, cfg.Ellipsis)
		l.Phone = Column{
			FontSize: cfg.FontSize,
			Icon:     &Icon{Name: IconPhone, X: iconX, Y: iconTop(baseline, 1, cfg), Size: cfg.IconSize},
			Lines:    []Line{{Text: text, X: iconX + cfg.IconSize + cfg.IconGap, Y: baseline, Align: surface.AlignLeft}},
		}
	}

	if addr := strings.TrimSpace(info.Address); addr != "" {
		maxW := colW - (cfg.IconSize + cfg.AddressReserve)
		lines := Collapse(m, m.SplitText(addr, maxW, cfg.FontSize), maxW, cfg.FontSize, cfg)
		blockW := cfg.IconSize + cfg.IconGap + widest(m, lines, cfg.FontSize)
		startX := centerX + (colW-blockW)/2
		col := Column{
			FontSize: cfg.FontSize,
			Icon:     &Icon{Name: IconAddress, X: startX, Y: iconTop(baseline, len(lines), cfg), Size: cfg.IconSize},
		}
		for i, text := range lines {
			col.Lines = append(col.Lines, Line{
				Text:  text,
				X:     startX + cfg.IconSize + cfg.IconGap,
				Y:     baseline + float64(i)*cfg.LineHeight,
				Align: surface.AlignLeft,
			})
		}
		l.Address = col
	}

	if site := strings.TrimSpace(info.Website); site != "" {
		maxW := colW - (cfg.IconSize + cfg.WebsiteReserve)
		size, lines := FitWebsite(m, site, maxW, cfg)
		textX := rightX + colW - cfg.WebsiteInset
		col := Column{
			FontSize: size,
			Icon: &Icon{
				Name: IconWebsite,
				X:    textX - widest(m, lines, size) - cfg.IconGap - cfg.IconSize,
				Y:    iconTop(baseline, len(lines), cfg),
				Size: cfg.IconSize,
			},
		}
		for i, text := range lines {
			col.Lines = append(col.Lines, Line{
				Text:  text,
				X:     textX,
				Y:     baseline + float64(i)*cfg.LineHeight,
				Align: surface.AlignRight,
			})
		}
		l.Website = col
	}

	return l
}

// FitWebsite shrinks the font from WebsiteStartSize by WebsiteStep until the
// text wraps to at most MaxLines lines or WebsiteMinSize is reached. Text
// still too long at the floor keeps its first line and has the remainder
// truncated into the last line.
func FitWebsite(m Metrics, text string, maxW float64, cfg Config) (float64, []string) {
	size := cfg.WebsiteStartSize
	lines := m.SplitText(text, maxW, size)
	for len(lines) > cfg.MaxLines && size-cfg.WebsiteStep >= cfg.WebsiteMinSize && cfg.WebsiteStep > 0 {
		size -= cfg.WebsiteStep
		lines = m.SplitText(text, maxW, size)
	}
	return size, Collapse(m, lines, maxW, size, cfg)
}

// Collapse limits lines to cfg.MaxLines. The leading lines are kept intact and
// everything after them is joined and ellipsis-truncated into the last line.
func Collapse(m Metrics, lines []string, maxW, size float64, cfg Config) []string {
	limit := cfg.MaxLines
	if limit < 1 {
		limit = 1
	}
	if len(lines) <= limit {
		return lines
	}
	out := append([]string(nil), lines[:limit-1]...)
	rest := strings.Join(lines[limit-1:], " ")
	return append(out, Truncate(m, rest, maxW, size, cfg.Ellipsis))
}

// Truncate shortens text rune by rune until text plus ellipsis fits in maxW.
// Text that already fits is returned unchanged; if nothing fits the result
// is empty.
func Truncate(m Metrics, text string, maxW, size float64, ellipsis string) string {
	if m.TextWidth(text, size) <= maxW {
		return text
	}
	t := text
	for t != "" && m.TextWidth(t+ellipsis, size) > maxW {
		_, n := utf8.DecodeLastRuneInString(t)
		t = t[:len(t)-n]
	}
	if t == "" {
		return ""
	}
	return t + ellipsis
}

// iconTop centers an icon on a block of n baselines starting at baseline.
func iconTop(baseline float64, n int, cfg Config) float64 {
	if n < 1 {
		n = 1
	}
	center := baseline + float64(n-1)*cfg.LineHeight/2
	return center - cfg.IconSize/2
}

func widest(m Metrics, lines []string, size float64) float64 {
	w := 0.0
	for _, l := range lines {
		if lw := m.TextWidth(l, size); lw > w {
			w = lw
		}
	}
	return w
}

// Draw paints l onto s.
func Draw(s surface.Surface, l Layout, cfg Config) {
	s.SetDrawColor(cfg.RuleColor)
	s.SetLineWidth(cfg.RuleWidth)
	s.Line(l.RuleX1, l.RuleY, l.RuleX2, l.RuleY)

	s.SetTextColor(cfg.TextColor)
	for _, col := range []Column{l.Phone, l.Address, l.Website} {
		if col.Empty() {
			continue
		}
		if col.Icon != nil {
			s.Image(col.Icon.Name, col.Icon.X, col.Icon.Y, col.Icon.Size, col.Icon.Size)
		}
		s.SetFont(markup.Normal, col.FontSize)
		for _, line := range col.Lines {
			s.Text(line.Text, line.X, line.Y, surface.TextOptions{Align: line.Align})
		}
	}
	s.SetFont(markup.Normal, cfg.FontSize)
}

// Render computes and draws the footer for the current page of s.
func Render(s surface.Surface, info Info, cfg Config) Layout {
	w, h := s.PageSize()
	l := Compute(SurfaceMetrics(s), Geometry{PageWidth: w, PageHeight: h}, info, cfg)
	Draw(s, l, cfg)
	return l
}
