package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegolsarmond/custom-proposal-maker/surface"
	"github.com/diegolsarmond/custom-proposal-maker/surface/surfacetest"
)

func newController(rec *surfacetest.Recorder) *Controller {
	return New(rec, Template{
		Header: func(s surface.Surface) {
			s.Text("HEADER", 0, 10, surface.TextOptions{})
		},
		Footer: func(s surface.Surface) {
			s.Text("FOOTER", 0, 290, surface.TextOptions{})
		},
	})
}

func TestReserveOverflowOpensExactlyOnePage(t *testing.T) {
	rec := surfacetest.New()
	c := newController(rec)
	require.NoError(t, c.Cover(nil))

	y := c.NewPage()
	require.Equal(t, DefaultTop, y)
	pages, headers, footers := rec.PageNo(), c.Headers(), c.Footers()

	y = c.Reserve(255, 20)

	assert.Equal(t, DefaultTop, y)
	assert.Equal(t, pages+1, rec.PageNo())
	assert.Equal(t, headers+1, c.Headers())
	assert.Equal(t, footers+1, c.Footers())

	footer, ok := rec.Find("FOOTER")
	require.True(t, ok)
	assert.Equal(t, pages, footer.Page)
}

func TestReserveWithinMargin(t *testing.T) {
	rec := surfacetest.New()
	c := newController(rec)
	c.NewPage()

	assert.Equal(t, 240.0, c.Reserve(240, 20))
	assert.Equal(t, 1, rec.PageNo())
	assert.Equal(t, 20.0, c.Remaining(240))
}

func TestReserveOutsideContent(t *testing.T) {
	rec := surfacetest.New()
	c := newController(rec)
	require.NoError(t, c.Cover(nil))

	assert.Equal(t, 290.0, c.Reserve(290, 20))
	assert.Equal(t, 1, rec.PageNo())
}

func TestLifecycle(t *testing.T) {
	rec := surfacetest.New()
	c := newController(rec)
	assert.Equal(t, StateEmpty, c.State())

	var drawn bool
	require.NoError(t, c.Cover(func(surface.Surface) { drawn = true }))
	assert.True(t, drawn)
	assert.Equal(t, StateCover, c.State())
	assert.ErrorIs(t, c.Cover(nil), ErrState)

	c.NewPage()
	c.NewPage()
	assert.Equal(t, StateContent, c.State())
	assert.Equal(t, 1, c.Footers())

	require.NoError(t, c.Finish())
	assert.Equal(t, StateDone, c.State())
	assert.Equal(t, 2, c.Footers())
	assert.Equal(t, 2, c.Headers())
	assert.ErrorIs(t, c.Finish(), ErrState)

	// cover page carries neither header nor footer
	for _, op := range rec.Texts(1) {
		assert.NotEqual(t, "HEADER", op.Text)
		assert.NotEqual(t, "FOOTER", op.Text)
	}
}

func TestBackgroundDrawnBeforeHeader(t *testing.T) {
	rec := surfacetest.New()
	var order []string
	c := New(rec, Template{
		Top:        42,
		Background: func(surface.Surface) { order = append(order, "bg") },
		Header:     func(surface.Surface) { order = append(order, "header") },
	})
	assert.Equal(t, 42.0, c.NewPage())
	assert.Equal(t, []string{"bg", "header"}, order)
	assert.Equal(t, DefaultBottom, c.Bottom())
}

func TestFinishWithoutContent(t *testing.T) {
	rec := surfacetest.New()
	c := newController(rec)
	require.NoError(t, c.Cover(nil))
	require.NoError(t, c.Finish())
	assert.Zero(t, c.Footers())
}
