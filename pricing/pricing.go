// Package pricing turns proposal line items into the rows of the
// "Planos e Investimento" table and formats amounts as Brazilian reais.
package pricing

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/diegolsarmond/custom-proposal-maker/doctpl"
)

// Labels and markers used in the pricing table.
const (
	ItemHeader                = "Automação"
	DefaultImplantationHeader = "Implantação (R$)"
	DefaultRecurrenceHeader   = "Recorrência"
	// MonthlyMaintenance is the recurrence label that already implies a
	// monthly charge, so amounts under it carry no suffix.
	MonthlyMaintenance = "Manutenção Mensal"
	MonthlySuffix      = "/mês"
	TotalLabel         = "TOTAL"
	// Zero is printed in place of zero amounts.
	Zero = "-"
)

// Row is one formatted table row.
type Row struct {
	Name         string
	Implantation string
	Recurrence   string
}

// Cells returns the row as a slice in column order.
func (r Row) Cells() []string {
	return []string{r.Name, r.Implantation, r.Recurrence}
}

// Summary is the pricing table for a proposal.
type Summary struct {
	Header [3]string
	Rows   []Row
	// Total is the formatted TOTAL row. It is meaningful only when Rows is
	// not empty.
	Total             Row
	TotalImplantation float64
	TotalRecurrence   float64
}

// Empty reports whether no item was selected, in which case no table is
// drawn.
func (s Summary) Empty() bool { return len(s.Rows) == 0 }

// RecurrenceSuffix returns the suffix appended to recurrence amounts.
func RecurrenceSuffix(labels doctpl.PricingLabels) string {
	if labels.SuppressRecurrenceSuffix || labels.Recurrence == MonthlyMaintenance {
		return ""
	}
	return MonthlySuffix
}

// BuildRows formats the selected items in order and sums their raw amounts.
func BuildRows(items doctpl.LineItems, labels doctpl.PricingLabels) Summary {
	s := Summary{
		Header: [3]string{ItemHeader, DefaultImplantationHeader, DefaultRecurrenceHeader},
	}
	if labels.Implantation != "" {
		s.Header[1] = labels.Implantation
	}
	if labels.Recurrence != "" {
		s.Header[2] = labels.Recurrence
	}
	suffix := RecurrenceSuffix(labels)

	for _, it := range items.Selected() {
		s.Rows = append(s.Rows, Row{
			Name:         DisplayName(it.Name, it.Description),
			Implantation: FormatCurrency(it.Implantation.Float(), ""),
			Recurrence:   FormatCurrency(it.Recurrence.Float(), suffix),
		})
		s.TotalImplantation += it.Implantation.Float()
		s.TotalRecurrence += it.Recurrence.Float()
	}
	s.Total = Row{
		Name:         TotalLabel,
		Implantation: FormatCurrency(s.TotalImplantation, ""),
		Recurrence:   FormatCurrency(s.TotalRecurrence, suffix),
	}
	return s
}

// ContractRows formats contract scope items. No suffix and no total.
func ContractRows(items []doctpl.ContractItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			Name:         DisplayName(it.Name, it.Description),
			Implantation: FormatCurrency(it.Implantation.Float(), ""),
			Recurrence:   FormatCurrency(it.Recurrence.Float(), ""),
		})
	}
	return rows
}

// DisplayName joins the non-empty name and description with " - ".
func DisplayName(name, description string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{name, description} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " - ")
}

// FormatCurrency formats v as "R$ 1.234,50" followed by suffix. Amounts
// that round to zero cents are printed as "-" without suffix.
func FormatCurrency(v float64, suffix string) string {
	if math.Round(v*100) == 0 {
		return Zero
	}
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("R$ %v", number.Decimal(v, number.Scale(2))) + suffix
}
