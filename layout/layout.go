// Package layout packs styled runs into lines that fit a maximum width.
package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/diegolsarmond/custom-proposal-maker/markup"
)

// MeasureFunc returns the rendered width of text in the given style and font
// size, in the same unit as the maximum line width.
type MeasureFunc func(text string, style markup.Style, fontSize float64) float64

type token struct {
	run   markup.Run
	width float64
	space bool
}

// Lines greedily packs runs into lines no wider than maxWidth.
//
// Every run is split at whitespace boundaries and whitespace is kept as its
// own token, so concatenating all returned runs reproduces the input text
// exactly. Whitespace that would open a wrapped line is appended to the end
// of the previous line instead, which keeps it out of the visible line start
// without losing it. A token wider than maxWidth is placed alone on a line.
// A non-positive maxWidth degenerates to one token per line.
//
// At least one line is returned; for empty input that line has no runs.
func Lines(runs []markup.Run, maxWidth, fontSize float64, measure MeasureFunc) [][]markup.Run {
	var (
		lines   [][]markup.Run
		current []markup.Run
		width   float64
		visible bool
	)

	flush := func() {
		lines = append(lines, coalesce(current))
		current = nil
		width = 0
		visible = false
	}

	for _, tok := range tokenize(runs, fontSize, measure) {
		if tok.space && !visible && len(lines) > 0 {
			last := len(lines) - 1
			lines[last] = coalesce(append(lines[last], tok.run))
			continue
		}
		if visible && (maxWidth <= 0 || width+tok.width > maxWidth) {
			flush()
			if tok.space {
				last := len(lines) - 1
				lines[last] = coalesce(append(lines[last], tok.run))
				continue
			}
		}
		current = append(current, tok.run)
		width += tok.width
		if !tok.space {
			visible = true
		}
	}

	if len(current) > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

// tokenize splits runs into alternating word and whitespace tokens.
func tokenize(runs []markup.Run, fontSize float64, measure MeasureFunc) []token {
	var toks []token
	for _, r := range runs {
		for _, part := range splitKeepSpace(r.Text) {
			toks = append(toks, token{
				run:   markup.Run{Text: part, Style: r.Style},
				width: measure(part, r.Style, fontSize),
				space: strings.TrimSpace(part) == "",
			})
		}
	}
	return toks
}

// splitKeepSpace splits s into maximal runs of whitespace and non-whitespace.
func splitKeepSpace(s string) []string {
	var parts []string
	start := 0
	inSpace := false
	for i, r := range s {
		sp := unicode.IsSpace(r)
		if i > start && sp != inSpace {
			parts = append(parts, s[start:i])
			start = i
		}
		inSpace = sp
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// coalesce merges adjacent runs of the same style.
func coalesce(runs []markup.Run) []markup.Run {
	if len(runs) < 2 {
		return runs
	}
	out := make([]markup.Run, 0, len(runs))
	for _, r := range runs {
		if n := len(out); n > 0 && out[n-1].Style == r.Style {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

// LineText returns the concatenated text of one laid-out line.
func LineText(line []markup.Run) string {
	return markup.Plain(line)
}

// Wrap breaks plain text into lines no wider than width, splitting at spaces
// and honouring explicit line breaks. Words wider than width stay whole.
func Wrap(text string, width float64, measure func(string) float64) []string {
	var out []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if measure(candidate) > width {
				out = append(out, line)
				line = w
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out
}

// RuneWidth is a MeasureFunc that charges a fixed fraction of the font size
// per rune. It is useful where no font metrics are available.
func RuneWidth(factor float64) MeasureFunc {
	return func(text string, _ markup.Style, fontSize float64) float64 {
		return float64(utf8.RuneCountInString(text)) * fontSize * factor
	}
}
