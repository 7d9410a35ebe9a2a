package table_test

import (
	"bytes"
	"fmt"

	"github.com/diegolsarmond/custom-proposal-maker/markup"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
	"github.com/diegolsarmond/custom-proposal-maker/table"
)

// ExampleTable demonstrates a styled pricing grid with a header row,
// alternating row colors and a bold total row.
func ExampleTable() {
	pdf := surface.NewPDF()
	pdf.AddPage()

	tbl := table.New(pdf)
	tbl.SetColumnWidths(90, 50, 50).SetPosition(10, 40)
	tbl.SetStyle(table.TableStyle{
		CellPadding: table.UniformPadding(3.5),
		Border:      &table.BorderStyle{Width: 0.1, Color: surface.Color{R: 200, G: 200, B: 200}},
		TextColor:   table.RGB(33, 37, 41),
		HeaderStyle: &table.CellStyle{
			FillColor: table.RGB(10, 45, 90),
			TextColor: table.RGB(255, 255, 255),
			Font:      &table.FontSpec{Style: markup.Bold},
		},
		AlternateRows: &table.AlternateStyle{
			Odd: table.CellStyle{FillColor: table.RGB(245, 247, 250)},
		},
	})

	tbl.AddHeaderRow().AddCells("Automação", "Implantação (R$)", "Recorrência")
	tbl.AddRow().AddCells("Chatbot - WhatsApp", "R$ 1.500,00", "R$ 250,00/mês")
	tbl.AddRow().AddCells("Integração CRM", "R$ 800,00", "-")
	total := tbl.AddRow().SetFillColor(surface.Color{R: 243, G: 244, B: 246})
	total.AddCell("TOTAL").SetBold()
	total.AddCell("R$ 2.300,00").SetBold().SetAlign(surface.AlignRight)
	total.AddCell("R$ 250,00/mês").SetBold().SetAlign(surface.AlignRight)

	y, err := tbl.Render()
	if err != nil {
		fmt.Println(err)
		return
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(y > 40, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	// Output: true true
}
