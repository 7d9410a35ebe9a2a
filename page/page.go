// Package page drives pagination: an optional cover page followed by content
// pages that carry a repeating header and footer.
package page

import (
	"errors"
	"fmt"

	"github.com/diegolsarmond/custom-proposal-maker/surface"
)

// State is the lifecycle position of a Controller.
type State int

const (
	StateEmpty State = iota
	StateCover
	StateContent
	StateDone
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateCover:
		return "cover"
	case StateContent:
		return "content"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrState is returned for a transition the lifecycle does not allow.
var ErrState = errors.New("page: invalid state transition")

// Default content margins for proposals, measured from the top of the page.
const (
	DefaultTop    = 50.0
	DefaultBottom = 260.0
)

// Template holds the artwork and margins of content pages. Any hook may be
// nil.
type Template struct {
	// Top is where the cursor is placed on a fresh content page.
	Top float64
	// Bottom is the lowest cursor position content may reach.
	Bottom float64

	// Background is drawn first on every content page.
	Background func(s surface.Surface)
	// Header is drawn on every content page after the background.
	Header func(s surface.Surface)
	// Footer is drawn on a content page just before it is left, and on the
	// last page by Finish.
	Footer func(s surface.Surface)
}

// Controller owns the page sequence of one document.
type Controller struct {
	s     surface.Surface
	tpl   Template
	state State

	headers int
	footers int
}

// New returns a controller for s. Zero margins select DefaultTop and
// DefaultBottom.
func New(s surface.Surface, tpl Template) *Controller {
	if tpl.Top == 0 {
		tpl.Top = DefaultTop
	}
	if tpl.Bottom == 0 {
		tpl.Bottom = DefaultBottom
	}
	return &Controller{s: s, tpl: tpl}
}

// Surface returns the surface being paginated.
func (c *Controller) Surface() surface.Surface { return c.s }

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Top returns the cursor position of a fresh content page.
func (c *Controller) Top() float64 { return c.tpl.Top }

// Bottom returns the bottom content margin.
func (c *Controller) Bottom() float64 { return c.tpl.Bottom }

// Headers returns how many content headers have been drawn.
func (c *Controller) Headers() int { return c.headers }

// Footers returns how many footers have been drawn.
func (c *Controller) Footers() int { return c.footers }

// Cover adds the cover page and runs draw on it. It is only valid as the
// first page of the document.
func (c *Controller) Cover(draw func(s surface.Surface)) error {
	if c.state != StateEmpty {
		return fmt.Errorf("%w: cover from %s", ErrState, c.state)
	}
	c.s.AddPage()
	if draw != nil {
		draw(c.s)
	}
	c.state = StateCover
	return nil
}

// NewPage closes the current content page, if any, and opens a new one. It
// returns the cursor for the new page.
func (c *Controller) NewPage() float64 {
	if c.state == StateDone {
		return c.tpl.Top
	}
	if c.state == StateContent {
		c.footer()
	}
	c.s.AddPage()
	if c.tpl.Background != nil {
		c.tpl.Background(c.s)
	}
	if c.tpl.Header != nil {
		c.tpl.Header(c.s)
		c.headers++
	}
	c.state = StateContent
	return c.tpl.Top
}

// Reserve makes room for a block of height h at cursor y. When the block
// would cross the bottom margin a new page is opened and its top cursor is
// returned; otherwise y is returned unchanged. Outside content pages no break
// happens.
func (c *Controller) Reserve(y, h float64) float64 {
	if c.state != StateContent {
		return y
	}
	if y+h > c.tpl.Bottom {
		return c.NewPage()
	}
	return y
}

// Remaining returns the space left between y and the bottom margin.
func (c *Controller) Remaining(y float64) float64 {
	return c.tpl.Bottom - y
}

// Finish draws the footer of the last content page and closes the document.
func (c *Controller) Finish() error {
	switch c.state {
	case StateDone:
		return fmt.Errorf("%w: finish twice", ErrState)
	case StateContent:
		c.footer()
	}
	c.state = StateDone
	return nil
}

func (c *Controller) footer() {
	if c.tpl.Footer == nil {
		return
	}
	c.tpl.Footer(c.s)
	c.footers++
}
