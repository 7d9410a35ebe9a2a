// Package richtext renders multi-paragraph text with inline markup, bullets
// and numbered prefixes onto a surface.
package richtext

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/diegolsarmond/custom-proposal-maker/layout"
	"github.com/diegolsarmond/custom-proposal-maker/markup"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
)

const (
	DefaultMaxWidth   = 180.0
	DefaultLineHeight = 5.5

	// Bullet is drawn at the block's x position on a bullet's first line.
	Bullet       = "•"
	BulletIndent = 6.0
	// PrefixGap separates a prefix from the text that follows it.
	PrefixGap = 1.5
	// MinTextWidth bounds the available width from below.
	MinTextWidth = 20.0
)

var bulletRe = regexp.MustCompile(`^\s*[-*]\s+`)

// Pager reserves vertical space before a line is drawn. Reserve returns the
// cursor to draw at, which differs from y when a page break occurred.
type Pager interface {
	Reserve(y, h float64) float64
}

// Options controls Render. Zero values select the defaults.
type Options struct {
	MaxWidth   float64
	LineHeight float64
	// FontSize used for every run. Zero means the surface's current size.
	FontSize float64
	// Prefix is drawn bold on the first line of the first paragraph, for
	// example "1. ". A paragraph with a prefix is never treated as a bullet.
	Prefix string
	Pager  Pager
}

func (o Options) withDefaults(s surface.Surface) Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.LineHeight <= 0 {
		o.LineHeight = DefaultLineHeight
	}
	if o.FontSize <= 0 {
		o.FontSize = s.FontSize()
	}
	return o
}

// Render draws text starting at baseline y and returns the cursor after the
// last line. Paragraphs are separated by line breaks; blank paragraphs
// advance the cursor by one line height.
func Render(s surface.Surface, text string, x, y float64, opts Options) float64 {
	opts = opts.withDefaults(s)
	measure := surface.Measure(s)
	size := opts.FontSize

	s.SetFont(markup.Normal, size)

	for i, raw := range paragraphs(text) {
		prefix := ""
		if i == 0 {
			prefix = opts.Prefix
		}

		content := raw
		bullet := false
		if prefix == "" && isBullet(raw) {
			bullet = true
			content = bulletRe.ReplaceAllString(raw, "")
		}

		content = strings.TrimLeftFunc(content, unicode.IsSpace)
		if content == "" {
			y = reserve(opts.Pager, y, opts.LineHeight)
			y += opts.LineHeight
			continue
		}

		indent := 0.0
		switch {
		case bullet:
			indent = BulletIndent
		case prefix != "":
			indent = measure(prefix, markup.Bold, size) + PrefixGap
		}
		avail := opts.MaxWidth - indent
		if avail < MinTextWidth {
			avail = MinTextWidth
		}

		runs := markup.Parse(content, markup.Normal)
		for n, line := range layout.Lines(runs, avail, size, measure) {
			y = reserve(opts.Pager, y, opts.LineHeight)
			if n == 0 {
				switch {
				case bullet:
					s.SetFont(markup.Bold, size)
					s.Text(Bullet, x, y, surface.TextOptions{})
				case prefix != "":
					s.SetFont(markup.Bold, size)
					s.Text(prefix, x, y, surface.TextOptions{})
				}
			}
			cx := x + indent
			for _, run := range line {
				s.SetFont(run.Style, size)
				s.Text(run.Text, cx, y, surface.TextOptions{})
				cx += measure(run.Text, run.Style, size)
			}
			y += opts.LineHeight
		}
	}

	s.SetFont(markup.Normal, size)
	return y
}

func reserve(p Pager, y, h float64) float64 {
	if p == nil {
		return y
	}
	return p.Reserve(y, h)
}

func paragraphs(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func isBullet(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "- ") || strings.HasPrefix(t, "* ")
}
