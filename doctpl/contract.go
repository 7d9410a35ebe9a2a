package doctpl

import (
	"fmt"
	"strings"
)

// Contract defaults.
const (
	DefaultContractStatus = "Em aberto"
	DefaultCompanySigner  = "Responsável Contratada"
	DefaultCompanyRole    = "Representante"
	DefaultClientRole     = "Contratante"
)

const (
	defaultObject = "Prestação de serviços especializados conforme escopo aprovado na proposta comercial, " +
		"incluindo setup inicial, integrações e acompanhamento das automações contratadas."
	defaultResponsibilities = "A contratada deverá executar as atividades com diligência, mantendo comunicação clara " +
		"e registrando entregas. A contratante deve fornecer as informações necessárias e garantir acesso aos " +
		"sistemas envolvidos."
	defaultTerm = "O contrato inicia na data de assinatura e permanece vigente durante a implementação e manutenção " +
		"recorrente enquanto houver contraprestação financeira acordada pelas partes."
	defaultCommercial = "Valores de implantação e recorrência seguem os termos aprovados na proposta. A inadimplência " +
		"poderá suspender o atendimento e gerar atualização monetária das parcelas em aberto."
	defaultConfidentiality = "As partes comprometem-se a manter sigilo sobre dados técnicos, estratégicos ou pessoais " +
		"acessados durante a execução do contrato, observando a legislação vigente de privacidade."
	defaultTermination = "O contrato poderá ser rescindido por descumprimento material ou notificação prévia, " +
		"preservando-se o pagamento proporcional pelos serviços já prestados e eventuais multas previstas entre as partes."
)

// DefaultClauses returns the six standard contract clauses. The "Objeto"
// clause uses servicesText and "Condições Comerciais" uses objectiveText when
// they are not blank.
func DefaultClauses(servicesText, objectiveText string) []Clause {
	or := func(v, def string) string {
		if strings.TrimSpace(v) != "" {
			return v
		}
		return def
	}
	return []Clause{
		{Title: "Objeto", Content: or(servicesText, defaultObject)},
		{Title: "Responsabilidades", Content: defaultResponsibilities},
		{Title: "Prazos e Vigência", Content: defaultTerm},
		{Title: "Condições Comerciais", Content: or(objectiveText, defaultCommercial)},
		{Title: "Confidencialidade", Content: defaultConfidentiality},
		{Title: "Rescisão", Content: defaultTermination},
	}
}

// EffectiveClauses returns the document clauses, or the default clauses
// filled from the originating proposal when none are set.
func (d *ContractDocument) EffectiveClauses() []Clause {
	if len(d.Clauses) > 0 {
		return d.Clauses
	}
	var services, objective string
	if d.Proposal != nil {
		services = d.Proposal.Texts.Services
		objective = d.Proposal.Texts.Objective
	}
	return DefaultClauses(services, objective)
}

// EffectiveStatus returns the status or DefaultContractStatus.
func (d *ContractDocument) EffectiveStatus() string {
	if d.Status != "" {
		return d.Status
	}
	return DefaultContractStatus
}

// EffectiveSignatures fills blank signers and roles with their defaults.
func (d *ContractDocument) EffectiveSignatures() Signatures {
	s := d.Signatures
	if s.CompanySigner == "" {
		s.CompanySigner = d.Company.Responsible
	}
	if s.CompanySigner == "" {
		s.CompanySigner = DefaultCompanySigner
	}
	if s.ClientSigner == "" {
		s.ClientSigner = d.Client.Name
	}
	if s.CompanyRole == "" {
		s.CompanyRole = DefaultCompanyRole
	}
	if s.ClientRole == "" {
		s.ClientRole = DefaultClientRole
	}
	return s
}

// FormatProposalNumber formats a proposal sequence id as "#NNNN/YYYY".
func FormatProposalNumber(id int, date Date) string {
	return fmt.Sprintf("#%04d/%d", id, date.Year())
}

// ResolveProposalNumber prefers an explicit number, then one formatted from
// a positive sequence id. It returns "" when neither is available.
func ResolveProposalNumber(explicit string, sequenceID int, date Date) string {
	if explicit != "" {
		return explicit
	}
	if sequenceID <= 0 {
		return ""
	}
	return FormatProposalNumber(sequenceID, date)
}
