package proposalpdf

import (
	"github.com/diegolsarmond/custom-proposal-maker/assets"
	"github.com/diegolsarmond/custom-proposal-maker/markup"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
	"github.com/diegolsarmond/custom-proposal-maker/table"
)

var (
	colorPrimary = surface.Color{R: 10, G: 45, B: 90}
	colorAccent  = surface.Color{R: 0, G: 173, B: 239}
	colorText    = surface.Color{R: 33, G: 37, B: 41}
	colorLight   = surface.Color{R: 243, G: 244, B: 246}
	colorStripe  = surface.Color{R: 245, G: 247, B: 250}
	colorWhite   = surface.Color{R: 255, G: 255, B: 255}
	colorMuted   = surface.Color{R: 230, G: 235, B: 245}
	colorSubtle  = surface.Color{R: 210, G: 220, B: 235}
	colorGrid    = surface.Color{R: 200, G: 200, B: 200}
)

const (
	bodyFontSize   = 11.0
	contentX       = 20.0
	contentWidth   = 180.0
	proposalBandH  = 35.0
	contractBandH  = 30.0
	contractTop    = 42.0
	contractMargin = 15.0
)

// resetText restores the body font and color after artwork changed them.
func resetText(s surface.Surface) {
	s.SetTextColor(colorText)
	s.SetFont(markup.Normal, bodyFontSize)
}

func drawProposalHeader(s surface.Surface) {
	w, _ := s.PageSize()
	s.SetFillColor(colorPrimary)
	s.FillRect(0, 0, w, proposalBandH)
	s.Image(assets.Logo, 177, 7, 20, 20)
	s.SetTextColor(colorWhite)
	s.SetFont(markup.Bold, 17)
	s.Text("PROPOSTA", 15, 16, surface.TextOptions{})
	s.SetFont(markup.Normal, 12)
	s.Text("Prestação de Serviço de Tecnologia", 15, 25, surface.TextOptions{})
	resetText(s)
}

func drawContractHeader(s surface.Surface) {
	w, _ := s.PageSize()
	s.SetFillColor(colorPrimary)
	s.FillRect(0, 0, w, contractBandH)
	s.Image(assets.Logo, 175, 6, 22, 18)
	s.SetTextColor(colorWhite)
	s.SetFont(markup.Bold, 17)
	s.Text("CONTRATO", 15, 16, surface.TextOptions{})
	s.SetFont(markup.Normal, 11)
	s.Text("Prestação de Serviços", 15, 24, surface.TextOptions{})
	resetText(s)
}

// gridStyle is the look of the pricing and scope tables: primary header,
// thin grey grid, 10pt text.
func gridStyle() table.TableStyle {
	return table.TableStyle{
		CellPadding: table.UniformPadding(3.5),
		CellFont:    &table.FontSpec{Size: 10},
		TextColor:   &colorText,
		Border:      &table.BorderStyle{Width: 0.1, Color: colorGrid},
		HeaderStyle: &table.CellStyle{
			FillColor: &colorPrimary,
			TextColor: &colorWhite,
			Font:      &table.FontSpec{Style: markup.Bold},
		},
	}
}
