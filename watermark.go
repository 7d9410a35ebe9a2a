package proposalpdf

import (
	"github.com/diegolsarmond/custom-proposal-maker/markup"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
)

// Watermark is text stamped diagonally across the middle of a page.
type Watermark struct {
	Text     string
	FontSize float64        // points, default 60
	Color    *surface.Color // default light grey
	Opacity  float64        // 0..1, default 0.3
	Angle    float64        // degrees, default 45
}

func (wm Watermark) withDefaults() Watermark {
	if wm.FontSize == 0 {
		wm.FontSize = 60
	}
	if wm.Color == nil {
		c := colorGrid
		wm.Color = &c
	}
	if wm.Opacity == 0 {
		wm.Opacity = 0.3
	}
	if wm.Angle == 0 {
		wm.Angle = 45
	}
	return wm
}

// Draw stamps the watermark centered on the current page of s and restores
// full opacity and the body font.
func (wm Watermark) Draw(s surface.Surface) {
	if wm.Text == "" {
		return
	}
	wm = wm.withDefaults()
	w, h := s.PageSize()

	s.SetFont(markup.Bold, wm.FontSize)
	s.SetTextColor(*wm.Color)
	s.SetAlpha(wm.Opacity)
	s.Text(wm.Text, w/2, h/2, surface.TextOptions{Align: surface.AlignCenter, Angle: wm.Angle})
	s.SetAlpha(1)
	resetText(s)
}
