package proposalpdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diegolsarmond/custom-proposal-maker/assets"
	"github.com/diegolsarmond/custom-proposal-maker/doctpl"
	"github.com/diegolsarmond/custom-proposal-maker/footer"
	"github.com/diegolsarmond/custom-proposal-maker/markup"
	"github.com/diegolsarmond/custom-proposal-maker/page"
	"github.com/diegolsarmond/custom-proposal-maker/pricing"
	"github.com/diegolsarmond/custom-proposal-maker/richtext"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
	"github.com/diegolsarmond/custom-proposal-maker/table"
)

const (
	coverBands      = 60
	sectionGap      = 10.0
	lastSectionGap  = 4.0
	tableGap        = 12.0
	observationsGap = 2.0
)

var coverTop = surface.Color{R: 12, G: 25, B: 50}

// proposalLayout draws one proposal. The company and date are already
// resolved.
type proposalLayout struct {
	s       surface.Surface
	pages   *page.Controller
	doc     *doctpl.ProposalDocument
	company doctpl.CompanyConfig
	date    doctpl.Date
	y       float64
}

func renderProposal(s surface.Surface, doc *doctpl.ProposalDocument, company doctpl.CompanyConfig, date doctpl.Date, background func(surface.Surface)) (*page.Controller, error) {
	info := footer.Info{Phone: company.Phone, Address: company.Address, Website: company.Website}
	fcfg := footer.DefaultConfig()

	l := &proposalLayout{s: s, doc: doc, company: company, date: date}
	l.pages = page.New(s, page.Template{
		Top:        page.DefaultTop,
		Bottom:     page.DefaultBottom,
		Background: background,
		Header:     drawProposalHeader,
		Footer: func(s surface.Surface) {
			footer.Render(s, info, fcfg)
			resetText(s)
		},
	})

	if err := l.pages.Cover(l.cover); err != nil {
		return nil, err
	}

	l.y = l.pages.NewPage()
	l.section(1, "Proposta")
	l.content(doc.Texts.Introduction, sectionGap)
	l.section(2, "Objetivo")
	l.content(doc.Texts.Objective, sectionGap)

	l.y = l.pages.NewPage()
	l.section(3, "Planos e Investimento")
	if err := l.pricingTable(); err != nil {
		return nil, err
	}

	l.y = l.pages.NewPage()
	l.section(4, "Serviços Atribuídos")
	l.content(doc.Texts.Services, sectionGap)
	l.section(5, "Por que contratar?")
	l.content(doc.Texts.Why, lastSectionGap)
	l.observations()

	return l.pages, l.pages.Finish()
}

func (l *proposalLayout) cover(s surface.Surface) {
	w, h := s.PageSize()
	band := h / coverBands
	for i := 0; i < coverBands; i++ {
		s.SetFillColor(blend(coverTop, colorPrimary, float64(i)/(coverBands-1)))
		s.FillRect(0, band*float64(i), w, band)
	}

	s.SetFillColor(colorWhite)
	stripe := func(x, y, sw, sh, alpha float64) {
		s.SetAlpha(alpha)
		s.FillTriangle(x, y, x+sw, y-sh, x+sw, y+sh)
	}
	stripe(-40, 40, 220, 90, 0.06)
	stripe(40, 170, 220, 110, 0.08)
	stripe(-10, 260, 220, 120, 0.04)
	s.SetAlpha(1)

	s.SetFont(markup.Normal, 10)
	s.SetTextColor(colorMuted)
	s.Text(l.company.Name, 15, 15, surface.TextOptions{})

	s.SetTextColor(colorWhite)
	s.SetFont(markup.Bold, 40)
	s.Text(strconv.Itoa(l.date.Year()), 66, 128, surface.TextOptions{Align: surface.AlignCenter, Angle: 90})

	s.SetDrawColor(colorWhite)
	s.SetLineWidth(0.8)
	s.Line(70, 95, 70, 165)

	s.SetFont(markup.Bold, 36)
	s.Text("PROPOSTA", 90, 140, surface.TextOptions{})
	s.SetFont(markup.Normal, 15)
	s.SetTextColor(colorSubtle)
	s.Text("C O M E R C I A L", 90, 150, surface.TextOptions{})

	s.SetTextColor(colorWhite)
	s.SetFont(markup.Normal, 18)
	s.Text("A/C: "+attention(l.doc.Client), 90, 166, surface.TextOptions{})
	if l.doc.ProposalNumber != "" {
		s.SetFont(markup.Bold, 12)
		s.Text("PROPOSTA Nº "+l.doc.ProposalNumber, 90, 176, surface.TextOptions{})
	}
	s.SetFont(markup.Normal, 12)
	s.Text(l.date.Display(), 90, 184, surface.TextOptions{})

	s.Image(assets.Logo, 92, 82, 46, 46)

	presenter := l.doc.Responsible
	if presenter == "" {
		presenter = l.company.Responsible
	}
	if presenter == "" {
		presenter = l.company.Name
	}
	s.SetFont(markup.Normal, 11)
	s.SetTextColor(colorMuted)
	s.Text("Apresentado por:", 150, 275, surface.TextOptions{})
	s.SetFont(markup.Bold, 14)
	s.SetTextColor(colorWhite)
	s.Text(presenter, 150, 283, surface.TextOptions{})

	s.SetLineWidth(0.2)
	resetText(s)
}

// attention joins the client and company names for the cover's "A/C" line.
func attention(c doctpl.Client) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{strings.TrimSpace(c.Name), strings.TrimSpace(c.CompanyName)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " - ")
}

func blend(from, to surface.Color, t float64) surface.Color {
	mix := func(a, b int) int {
		return int(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return surface.Color{R: mix(from.R, to.R), G: mix(from.G, to.G), B: mix(from.B, to.B)}
}

// section draws the numbered badge and title and leaves the cursor on the
// first content line.
func (l *proposalLayout) section(n int, title string) {
	l.y = l.pages.Reserve(l.y, 8+richtext.DefaultLineHeight)
	s := l.s

	s.SetFillColor(colorAccent)
	s.FillCircle(10, l.y-3, 3)
	s.SetFont(markup.Bold, 11)
	s.SetTextColor(colorWhite)
	s.Text(strconv.Itoa(n), 8.3, l.y-1, surface.TextOptions{})

	s.SetFont(markup.Bold, 13)
	s.SetTextColor(colorPrimary)
	s.Text(title, contentX, l.y, surface.TextOptions{})
	l.y += 8

	resetText(s)
}

func (l *proposalLayout) content(text string, gap float64) {
	if strings.TrimSpace(text) != "" {
		l.y = richtext.Render(l.s, text, contentX, l.y, richtext.Options{
			MaxWidth: contentWidth,
			FontSize: bodyFontSize,
			Pager:    l.pages,
		})
	}
	l.y += gap
}

func (l *proposalLayout) pricingTable() error {
	sum := pricing.BuildRows(l.doc.LineItems, l.doc.PricingLabels)
	if sum.Empty() {
		l.y += tableGap
		return nil
	}

	tb := table.New(l.s).
		SetColumnWidths(0, 45, 45).
		SetPosition(10, l.y+2).
		SetStyle(gridStyle()).
		SetPager(l.pages)
	tb.AddHeaderRow().AddCells(sum.Header[:]...)
	for _, row := range sum.Rows {
		r := tb.AddRow()
		r.AddCell(row.Name)
		r.AddCell(row.Implantation).SetAlign(surface.AlignRight)
		r.AddCell(row.Recurrence).SetAlign(surface.AlignRight)
	}
	total := tb.AddRow().SetFillColor(colorLight)
	total.AddCell(sum.Total.Name).SetBold()
	total.AddCell(sum.Total.Implantation).SetBold().SetAlign(surface.AlignRight)
	total.AddCell(sum.Total.Recurrence).SetBold().SetAlign(surface.AlignRight)

	y, err := tb.Render()
	if err != nil {
		return err
	}
	l.y = y + tableGap
	resetText(l.s)
	return nil
}

// observationItems splits the observations into trimmed, non-empty lines.
func observationItems(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}

func (l *proposalLayout) observations() {
	items := observationItems(l.doc.Observations)
	if len(items) == 0 {
		return
	}
	s := l.s
	l.y = l.pages.Reserve(l.y, 6+richtext.DefaultLineHeight)
	s.SetFont(markup.Bold, 12)
	s.SetTextColor(colorPrimary)
	s.Text("Observações", contentX, l.y, surface.TextOptions{})
	l.y += 6
	resetText(s)

	for i, item := range items {
		l.y = richtext.Render(s, item, contentX, l.y, richtext.Options{
			MaxWidth: contentWidth,
			FontSize: bodyFontSize,
			Prefix:   fmt.Sprintf("%d. ", i+1),
			Pager:    l.pages,
		})
		l.y += observationsGap
	}
}
