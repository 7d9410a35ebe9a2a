package proposalpdf

import (
	"fmt"
	"strings"

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
	contractLine        = 6.0
	contractWidth       = 180.0
	headingGap          = 8.0
	clauseReserve       = 20.0
	partiesReserve      = 40.0
	scopeReserve        = 30.0
	signaturesReserve   = 50.0
	verificationGap     = 10.0
	verificationCaption = 9.0
)

// Scope table headers.
var scopeHeader = []string{"Serviço", "Implantação", "Recorrência"}

type contractLayout struct {
	s       surface.Surface
	pages   *page.Controller
	doc     *doctpl.ContractDocument
	company doctpl.CompanyConfig
	date    doctpl.Date
	y       float64
}

func renderContract(s surface.Surface, doc *doctpl.ContractDocument, company doctpl.CompanyConfig, date doctpl.Date, background func(surface.Surface)) (*page.Controller, error) {
	info := footer.Info{Phone: company.Phone, Address: company.Address, Website: company.Website}
	fcfg := footer.DefaultConfig()
	wm := Watermark{Text: strings.TrimSpace(doc.Watermark)}

	l := &contractLayout{s: s, doc: doc, company: company, date: date}
	l.pages = page.New(s, page.Template{
		Top:    contractTop,
		Bottom: page.DefaultBottom,
		Background: func(s surface.Surface) {
			if background != nil {
				background(s)
			}
			wm.Draw(s)
		},
		Header: drawContractHeader,
		Footer: func(s surface.Surface) {
			footer.Render(s, info, fcfg)
			resetText(s)
		},
	})

	l.y = l.pages.NewPage()
	l.details()
	l.parties()
	for _, c := range doc.EffectiveClauses() {
		l.clause(c)
	}
	if err := l.scope(); err != nil {
		return nil, err
	}
	if err := l.signatures(); err != nil {
		return nil, err
	}
	return l.pages, l.pages.Finish()
}

func (l *contractLayout) heading(title string, gap float64) {
	l.s.SetFont(markup.Bold, 12)
	l.s.SetTextColor(colorPrimary)
	l.s.Text(title, contractMargin, l.y, surface.TextOptions{})
	l.y += gap
	resetText(l.s)
}

func (l *contractLayout) lines(lines ...string) {
	for _, line := range lines {
		l.y = l.pages.Reserve(l.y, contractLine)
		l.s.Text(line, contractMargin, l.y, surface.TextOptions{})
		l.y += contractLine
	}
}

func (l *contractLayout) details() {
	l.heading("Dados do Contrato", headingGap)
	number := l.doc.Number
	if number == "" {
		number = "-"
	}
	rows := []string{
		"Número: " + number,
		"Data: " + l.date.Display(),
		"Status: " + l.doc.EffectiveStatus(),
	}
	if p := l.doc.Proposal; p != nil && p.Number != "" {
		rows = append(rows, "Proposta: "+p.Number)
	}
	l.lines(rows...)
}

// contractingParty is "Company (Name)", or whichever of the two is set.
func contractingParty(c doctpl.Client) string {
	switch {
	case c.CompanyName != "" && c.Name != "":
		return fmt.Sprintf("%s (%s)", c.CompanyName, c.Name)
	case c.CompanyName != "":
		return c.CompanyName
	}
	return c.Name
}

func (l *contractLayout) parties() {
	l.y = l.pages.Reserve(l.y, partiesReserve)
	l.heading("Partes", headingGap)

	c := l.doc.Client
	rows := []string{"Contratante: " + contractingParty(c)}
	optional := func(label, v string) {
		if v != "" {
			rows = append(rows, label+v)
		}
	}
	optional("Documento: ", c.Document)
	optional("Email: ", c.Email)
	optional("Telefone: ", c.Phone)
	rows = append(rows, "Contratada: "+l.company.Name)
	optional("Endereço: ", l.company.Address)
	optional("Contato: ", l.company.Phone)
	optional("Suporte: ", l.company.Email)
	l.lines(rows...)
}

func (l *contractLayout) clause(c doctpl.Clause) {
	l.y = l.pages.Reserve(l.y, clauseReserve)
	l.heading(c.Title, contractLine)
	l.y = richtext.Render(l.s, c.Content, contractMargin, l.y, richtext.Options{
		MaxWidth:   contractWidth,
		LineHeight: contractLine,
		FontSize:   bodyFontSize,
		Pager:      l.pages,
	})
	l.y += contractLine
}

func (l *contractLayout) scope() error {
	rows := pricing.ContractRows(l.doc.ScopeItems())
	if len(rows) == 0 {
		return nil
	}
	l.y = l.pages.Reserve(l.y, scopeReserve)
	l.heading("Escopo Detalhado", contractLine)

	style := gridStyle()
	style.AlternateRows = &table.AlternateStyle{Odd: table.CellStyle{FillColor: &colorStripe}}
	tb := table.New(l.s).
		SetColumnWidths(0, 40, 40).
		SetPosition(contractMargin, l.y).
		SetStyle(style).
		SetPager(l.pages)
	tb.AddHeaderRow().AddCells(scopeHeader...)
	for _, row := range rows {
		r := tb.AddRow()
		r.AddCell(row.Name)
		r.AddCell(row.Implantation).SetAlign(surface.AlignRight)
		r.AddCell(row.Recurrence).SetAlign(surface.AlignRight)
	}
	y, err := tb.Render()
	if err != nil {
		return err
	}
	l.y = y + 10
	resetText(l.s)
	return nil
}

func (l *contractLayout) signatures() error {
	l.y = l.pages.Reserve(l.y, signaturesReserve)
	l.heading("Assinaturas", 0)
	sig := l.doc.EffectiveSignatures()
	s := l.s

	y := l.y + 12
	s.SetDrawColor(colorText)
	s.SetLineWidth(0.2)
	s.Text(sig.CompanySigner, 20, y, surface.TextOptions{})
	s.Line(15, y+2, 95, y+2)
	s.Text(sig.CompanyRole, 20, y+8, surface.TextOptions{})

	s.Text(sig.ClientSigner, 120, y, surface.TextOptions{})
	s.Line(115, y+2, 195, y+2)
	s.Text(sig.ClientRole, 120, y+8, surface.TextOptions{})
	l.y = y + 8

	return l.verification()
}

// verification prints the document's verification code as a barcode below
// the signatures. Surfaces without barcode support get the caption only.
func (l *contractLayout) verification() error {
	v := l.doc.Verification
	if v == nil || strings.TrimSpace(v.Code) == "" {
		return nil
	}
	sym := surface.Symbology(strings.ToLower(v.Symbology))
	if sym == "" {
		sym = surface.SymbologyQR
	}
	w, h := 25.0, 25.0
	if sym == surface.SymbologyPDF417 {
		w, h = 60, 20
	}

	top := l.pages.Reserve(l.y+verificationGap, h)
	if b, ok := l.s.(surface.Barcoder); ok {
		if err := b.Barcode(v.Code, sym, contractMargin, top, w, h); err != nil {
			return err
		}
	}
	l.s.SetFont(markup.Normal, verificationCaption)
	l.s.Text("Código de verificação: "+v.Code, contractMargin+w+4, top+h/2, surface.TextOptions{})
	resetText(l.s)
	l.y = top + h
	return nil
}
