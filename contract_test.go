package proposalpdf

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegolsarmond/custom-proposal-maker/doctpl"
	"github.com/diegolsarmond/custom-proposal-maker/markup"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
	"github.com/diegolsarmond/custom-proposal-maker/surface/surfacetest"
)

func renderContractSample(t *testing.T, doc *doctpl.ContractDocument) (*surfacetest.Recorder, *Result) {
	t.Helper()
	rec := surfacetest.New()
	res, err := newRecorded(t, rec).GenerateContract(context.Background(), doc, ModeBlob)
	require.NoError(t, err)
	return rec, res
}

func TestContractDetailsAndParties(t *testing.T) {
	rec, res := renderContractSample(t, doctpl.SampleContract())

	assert.Equal(t, "Contrato_CT-2024-001_João_da_Silva_15-03-2024.pdf", res.FileName)

	heading := findOn(t, rec, "Dados do Contrato")
	assert.Equal(t, contractTop, heading.Y)
	assert.Equal(t, markup.Bold, heading.Style)

	number := findOn(t, rec, "Número: CT-2024-001")
	assert.Equal(t, contractTop+headingGap, number.Y)
	assert.Equal(t, number.Y+contractLine, findOn(t, rec, "Data: 15/03/2024").Y)
	findOn(t, rec, "Status: Em aberto")
	findOn(t, rec, "Proposta: #0016/2024")

	for _, line := range []string{
		"Contratante: Silva Comércio ME (João da Silva)",
		"Email: joao@silva.com.br",
		"Contratada: Quantum Tecnologia",
		"Contato: (31) 99305-4200",
		"Suporte: contato@quantumtecnologia.com.br",
	} {
		findOn(t, rec, line)
	}
	assert.False(t, rec.Contains("Documento:"), "blank client fields are skipped")
	assert.False(t, rec.Contains("Telefone:"))
}

func TestContractDefaults(t *testing.T) {
	doc := doctpl.SampleContract()
	doc.Number = ""
	doc.Proposal = nil
	doc.Company.Responsible = ""
	rec, res := renderContractSample(t, doc)

	assert.Equal(t, "Contrato_João_da_Silva_15-03-2024.pdf", res.FileName)
	findOn(t, rec, "Número: -")
	assert.False(t, rec.Contains("Proposta:"))

	for _, c := range doctpl.DefaultClauses("", "") {
		title := findOn(t, rec, c.Title)
		assert.Equal(t, 12.0, title.Size)
	}
	assert.False(t, rec.Contains("Escopo Detalhado"), "no scope table without items")

	findOn(t, rec, doctpl.DefaultCompanySigner)
	findOn(t, rec, doctpl.DefaultCompanyRole)
	findOn(t, rec, doctpl.DefaultClientRole)
	client := findOn(t, rec, "João da Silva")
	assert.Equal(t, 120.0, client.X)
}

func TestContractClausesFromProposal(t *testing.T) {
	rec, _ := renderContractSample(t, doctpl.SampleContract())

	objeto := findOn(t, rec, "Objeto")
	item := findOn(t, rec, "Chatbot no WhatsApp")
	assert.Greater(t, item.Y, objeto.Y, "services text fills the object clause")
	assert.Equal(t, objeto.Page, item.Page)
	assert.True(t, rec.Contains("padronizar"), "objective text fills the commercial clause")
}

func TestContractCustomClauses(t *testing.T) {
	doc := doctpl.SampleContract()
	doc.Clauses = []doctpl.Clause{{Title: "Cláusula Única", Content: "Tudo **combinado**."}}
	rec, _ := renderContractSample(t, doc)

	findOn(t, rec, "Cláusula Única")
	assert.Equal(t, markup.Bold, findOn(t, rec, "combinado").Style)
	assert.False(t, rec.Contains("Rescisão"))
}

func TestContractScopeTable(t *testing.T) {
	rec, _ := renderContractSample(t, doctpl.SampleContract())

	for _, text := range []string{"Escopo Detalhado", "Serviço", "Implantação", "Chatbot - WhatsApp", "R$ 1.500,00", "R$ 250,00"} {
		findOn(t, rec, text)
	}
	assert.False(t, rec.Contains("/mês"), "contract amounts carry no suffix")
	assert.False(t, rec.Contains("TOTAL"))

	second := findOn(t, rec, "Integração CRM")
	assert.Equal(t, colorStripe, second.Fill, "odd body rows are striped")
}

func TestContractSignatures(t *testing.T) {
	doc := doctpl.SampleContract()
	doc.Signatures = doctpl.Signatures{CompanySigner: "Maria Souza", CompanyRole: "Diretora"}
	rec, _ := renderContractSample(t, doc)

	heading := findOn(t, rec, "Assinaturas")
	company := findOn(t, rec, "Maria Souza")
	assert.Equal(t, 20.0, company.X)
	assert.Equal(t, heading.Y+12, company.Y)
	role := findOn(t, rec, "Diretora")
	assert.Equal(t, company.Y+8, role.Y)

	var lines int
	for _, op := range rec.Ops {
		if op.Kind == surfacetest.OpLine && op.Y == company.Y+2 {
			lines++
		}
	}
	assert.Equal(t, 2, lines, "one signature line per party")
}

func TestContractHeaderAndFooterOnEveryPage(t *testing.T) {
	doc := doctpl.SampleContract()
	doc.Clauses = []doctpl.Clause{{
		Title:   "Anexo",
		Content: strings.Repeat("Cláusula extensa de prestação de serviços.\n", 90),
	}}
	rec, res := renderContractSample(t, doc)
	require.Greater(t, res.Pages, 2)

	for p := 1; p <= res.Pages; p++ {
		var header, phone bool
		for _, op := range rec.Texts(p) {
			header = header || (op.Text == "CONTRATO" && op.Y < contractBandH)
			phone = phone || op.Text == "(31) 99305-4200"
			if op.Text == "Cláusula extensa de prestação de serviços." {
				assert.GreaterOrEqual(t, op.Y, contractTop)
				assert.LessOrEqual(t, op.Y, 260.0)
			}
		}
		assert.True(t, header, "header on page %d", p)
		assert.True(t, phone, "footer on page %d", p)
	}
}

func TestContractWatermark(t *testing.T) {
	doc := doctpl.SampleContract()
	doc.Watermark = "RASCUNHO"
	rec, res := renderContractSample(t, doc)

	var pages []int
	for i, op := range rec.Ops {
		if op.Kind != surfacetest.OpText || op.Text != "RASCUNHO" {
			continue
		}
		pages = append(pages, op.Page)
		assert.Equal(t, 45.0, op.Angle)
		assert.Equal(t, 0.3, op.Alpha)
		assert.Equal(t, surface.AlignCenter, op.Align)
		assert.Equal(t, 105.0, op.X)
		assert.Equal(t, 148.5, op.Y)
		require.Less(t, i+1, len(rec.Ops))
		assert.Equal(t, 1.0, rec.Ops[i+1].Alpha, "opacity is restored")
	}
	assert.Len(t, pages, res.Pages)
}

func TestContractVerificationBarcode(t *testing.T) {
	for _, tc := range []struct {
		symbology string
		want      surface.Symbology
		w         float64
	}{
		{"", surface.SymbologyQR, 25},
		{"pdf417", surface.SymbologyPDF417, 60},
	} {
		doc := doctpl.SampleContract()
		doc.Verification = &doctpl.Verification{Code: "CT-2024-001-XYZ", Symbology: tc.symbology}
		rec, _ := renderContractSample(t, doc)

		require.Equal(t, 1, rec.Count(surfacetest.OpBarcode))
		var bc surfacetest.Op
		for _, op := range rec.Ops {
			if op.Kind == surfacetest.OpBarcode {
				bc = op
			}
		}
		assert.Equal(t, string(tc.want), bc.Name)
		assert.Equal(t, tc.w, bc.W)
		assert.Equal(t, "CT-2024-001-XYZ", bc.Text)

		sig := findOn(t, rec, doctpl.DefaultClientRole)
		if bc.Page == sig.Page {
			assert.Greater(t, bc.Y, sig.Y)
		}
		findOn(t, rec, "Código de verificação: CT-2024-001-XYZ")
	}
}

func TestContractRealPDFWithBarcode(t *testing.T) {
	doc := doctpl.SampleContract()
	doc.Watermark = "RASCUNHO"
	doc.Verification = &doctpl.Verification{Code: "https://exemplo.com.br/v/CT-2024-001"}
	g := newRecorded(t, nil, WithSurfaceFactory(func() surface.Document { return surface.NewPDF() }))

	res, err := g.GenerateContract(context.Background(), doc, ModeBlob)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(res.Bytes), "%PDF-"))
	assert.GreaterOrEqual(t, res.Pages, 1)
}
