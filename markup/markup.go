// Package markup parses the lightweight inline markup used in proposal texts.
//
// Two delimiters are recognised: **bold** and _italic_. They can be nested in
// any order, in which case the enclosed text is rendered bold and italic.
//
//	markup.Parse("Plano **_Premium_** mensal", markup.Normal)
//	// [{"Plano " normal} {"Premium" bolditalic} {" mensal" normal}]
package markup

import "strings"

// Style is the typographic style of a run. Styles are bit flags, so
// Bold|Italic == BoldItalic.
type Style uint8

const (
	Normal     Style = 0
	Bold       Style = 1 << 0
	Italic     Style = 1 << 1
	BoldItalic Style = Bold | Italic
)

const (
	boldMarker   = "**"
	italicMarker = "_"
)

// Merge combines two styles: bold if either is bold, italic if either is italic.
func (s Style) Merge(o Style) Style {
	return (s | o) & BoldItalic
}

// IsBold reports whether the style carries the bold flag.
func (s Style) IsBold() bool { return s&Bold != 0 }

// IsItalic reports whether the style carries the italic flag.
func (s Style) IsItalic() bool { return s&Italic != 0 }

// FontStyle returns the core-font style string ("", "B", "I", "BI").
func (s Style) FontStyle() string {
	switch s.Merge(Normal) {
	case Bold:
		return "B"
	case Italic:
		return "I"
	case BoldItalic:
		return "BI"
	}
	return ""
}

func (s Style) String() string {
	switch s.Merge(Normal) {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bolditalic"
	}
	return "normal"
}

// Run is a contiguous span of text sharing one style.
type Run struct {
	Text  string
	Style Style
}

// Parse splits text into styled runs. Delimiters are consumed and never
// appear in the output. An opening delimiter without a matching close turns
// the remainder of the text, delimiter included, into a single literal run
// carrying the current style.
//
// When the input produces no runs and base is not Normal (for example the
// content between "****"), a single empty run with that style is returned so
// the caller still sees the style change.
func Parse(text string, base Style) []Run {
	var runs []Run
	i := 0
	for i < len(text) {
		rest := text[i:]

		if strings.HasPrefix(rest, boldMarker) {
			if end := strings.Index(rest[len(boldMarker):], boldMarker); end >= 0 {
				inner := rest[len(boldMarker) : len(boldMarker)+end]
				runs = append(runs, Parse(inner, base.Merge(Bold))...)
				i += len(boldMarker)*2 + end
				continue
			}
		}

		if strings.HasPrefix(rest, italicMarker) {
			if end := strings.Index(rest[len(italicMarker):], italicMarker); end >= 0 {
				inner := rest[len(italicMarker) : len(italicMarker)+end]
				runs = append(runs, Parse(inner, base.Merge(Italic))...)
				i += len(italicMarker)*2 + end
				continue
			}
		}

		next := nextMarker(text, i)
		if next == i {
			// Unterminated delimiter at i.
			runs = append(runs, Run{Text: rest, Style: base})
			break
		}
		runs = append(runs, Run{Text: text[i:next], Style: base})
		i = next
	}

	if len(runs) == 0 && base != Normal {
		runs = append(runs, Run{Style: base})
	}
	return runs
}

// nextMarker returns the index of the first delimiter at or after from, or
// len(text) when there is none.
func nextMarker(text string, from int) int {
	next := len(text)
	if j := strings.Index(text[from:], boldMarker); j >= 0 && from+j < next {
		next = from + j
	}
	if j := strings.Index(text[from:], italicMarker); j >= 0 && from+j < next {
		next = from + j
	}
	return next
}

// Plain concatenates the text of all runs.
func Plain(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Strip removes markup delimiters from text, returning what a reader sees.
func Strip(text string) string {
	return Plain(Parse(text, Normal))
}
