package proposalpdf

import (
	"regexp"
	"strings"

	"github.com/diegolsarmond/custom-proposal-maker/doctpl"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ProposalFileName returns "Proposta_<client>_<DD-MM-YYYY>.pdf" with every
// whitespace run in the client name replaced by an underscore.
func ProposalFileName(clientName string, date doctpl.Date) string {
	return "Proposta_" + whitespaceRun.ReplaceAllString(clientName, "_") + "_" + date.FileStamp() + ".pdf"
}

// ContractFileName returns "Contrato_[<number>_]<client>_<DD-MM-YYYY>.pdf".
func ContractFileName(number, clientName string, date doctpl.Date) string {
	var b strings.Builder
	b.WriteString("Contrato_")
	if number = strings.TrimSpace(number); number != "" {
		b.WriteString(whitespaceRun.ReplaceAllString(number, "_"))
		b.WriteString("_")
	}
	b.WriteString(whitespaceRun.ReplaceAllString(clientName, "_"))
	b.WriteString("_")
	b.WriteString(date.FileStamp())
	b.WriteString(".pdf")
	return b.String()
}
