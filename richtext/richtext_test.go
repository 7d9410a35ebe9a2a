package richtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegolsarmond/custom-proposal-maker/markup"
	"github.com/diegolsarmond/custom-proposal-maker/surface/surfacetest"
)

type stubPager struct {
	bottom, top float64
	breaks      int
}

func (p *stubPager) Reserve(y, h float64) float64 {
	if y+h > p.bottom {
		p.breaks++
		return p.top
	}
	return y
}

func TestRenderPlainParagraph(t *testing.T) {
	rec := surfacetest.New()
	rec.SetFont(markup.Normal, 10)

	y := Render(rec, "Olá mundo", 20, 50, Options{})

	assert.InDelta(t, 55.5, y, 1e-9)
	op, ok := rec.Find("Olá mundo")
	require.True(t, ok)
	assert.Equal(t, 20.0, op.X)
	assert.Equal(t, 50.0, op.Y)
}

func TestRenderStylesAdvanceCursor(t *testing.T) {
	rec := surfacetest.New()
	rec.SetFont(markup.Normal, 10)

	Render(rec, "ab **cd** ef", 0, 10, Options{})

	texts := rec.Texts(0)
	require.Len(t, texts, 3)
	assert.Equal(t, "ab ", texts[0].Text)
	assert.Equal(t, "cd", texts[1].Text)
	assert.Equal(t, markup.Bold, texts[1].Style)
	// 3 runes * 10pt * 0.2
	assert.InDelta(t, 6.0, texts[1].X, 1e-9)
	assert.InDelta(t, 10.0, texts[2].X, 1e-9)
	for _, op := range texts {
		assert.NotContains(t, op.Text, "**")
	}
}

func TestRenderBullets(t *testing.T) {
	rec := surfacetest.New()
	rec.SetFont(markup.Normal, 10)

	y := Render(rec, "- primeiro\n* segundo\nfim", 15, 40, Options{})

	assert.InDelta(t, 40+3*5.5, y, 1e-9)
	var bullets []float64
	for _, op := range rec.Texts(0) {
		if op.Text == Bullet {
			bullets = append(bullets, op.Y)
			assert.Equal(t, 15.0, op.X)
			assert.Equal(t, markup.Bold, op.Style)
		}
	}
	assert.Equal(t, []float64{40, 45.5}, bullets)

	op, ok := rec.Find("primeiro")
	require.True(t, ok)
	assert.Equal(t, 15+BulletIndent, op.X)

	op, ok = rec.Find("fim")
	require.True(t, ok)
	assert.Equal(t, 15.0, op.X)
}

func TestRenderPrefix(t *testing.T) {
	rec := surfacetest.New()
	rec.SetFont(markup.Normal, 10)

	Render(rec, "- não é bullet\nsegunda linha", 10, 20, Options{Prefix: "1. "})

	prefix, ok := rec.Find("1. ")
	require.True(t, ok)
	assert.Equal(t, markup.Bold, prefix.Style)
	assert.Equal(t, 10.0, prefix.X)

	assert.False(t, rec.Contains(Bullet))
	first, ok := rec.Find("- não é bullet")
	require.True(t, ok)
	// "1. " is 3 runes = 6mm, plus the gap
	assert.InDelta(t, 10+6+PrefixGap, first.X, 1e-9)

	second, ok := rec.Find("segunda linha")
	require.True(t, ok)
	assert.Equal(t, 10.0, second.X)
}

func TestRenderBlankLines(t *testing.T) {
	rec := surfacetest.New()
	rec.SetFont(markup.Normal, 10)

	y := Render(rec, "a\n\n   \nb", 0, 0, Options{LineHeight: 5})
	assert.InDelta(t, 20, y, 1e-9)
	assert.Len(t, rec.Texts(0), 2)
}

func TestRenderWrapsAndPaginates(t *testing.T) {
	rec := surfacetest.New()
	rec.SetFont(markup.Normal, 10)
	pager := &stubPager{bottom: 60, top: 50}

	text := strings.Repeat("palavra ", 40)
	y := Render(rec, text, 0, 50, Options{MaxWidth: 40, Pager: pager})

	assert.Positive(t, pager.breaks)
	for _, op := range rec.Texts(0) {
		assert.LessOrEqual(t, op.Y+DefaultLineHeight, 60.0+1e-9)
	}
	assert.LessOrEqual(t, y, 60.0+DefaultLineHeight)
}

func TestRenderMinimumWidth(t *testing.T) {
	rec := surfacetest.New()
	rec.SetFont(markup.Normal, 10)

	// Available width is clamped to MinTextWidth: two 4-rune words (8mm each)
	// plus a space fit in 20mm.
	Render(rec, "abcd efgh", 0, 0, Options{MaxWidth: 5})
	assert.Len(t, rec.Texts(0), 1)
}

func TestRenderDropsLeadingWhitespace(t *testing.T) {
	rec := surfacetest.New()
	rec.SetFont(markup.Normal, 10)

	y := Render(rec, "   texto\n\t**negrito** final", 20, 50, Options{})

	assert.InDelta(t, 61.0, y, 1e-9)
	op, ok := rec.Find("texto")
	require.True(t, ok)
	assert.Equal(t, 20.0, op.X)

	bold, ok := rec.Find("negrito")
	require.True(t, ok)
	assert.Equal(t, 20.0, bold.X)
	assert.Equal(t, markup.Bold, bold.Style)
	for _, o := range rec.Texts(0) {
		assert.NotEqual(t, "", strings.TrimSpace(o.Text), "whitespace-only run drawn at x=%v", o.X)
	}
}
