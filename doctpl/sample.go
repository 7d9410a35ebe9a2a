package doctpl

import "time"

// SampleProposal returns a filled-in proposal used by the CLI and the MCP
// server as a starting point.
func SampleProposal() *ProposalDocument {
	date := NewDate(2024, time.March, 10)
	return &ProposalDocument{
		Client: Client{
			Name:        "João da Silva",
			CompanyName: "Silva Comércio ME",
			Email:       "joao@silva.com.br",
			Segment:     "Varejo",
		},
		Date:           date,
		ProposalNumber: FormatProposalNumber(16, date),
		Responsible:    "Maria Souza",
		Company: CompanyConfig{
			Name:    "Quantum Tecnologia",
			Address: "Rua Antônio de Albuquerque, 330 - Sala 901, Funcionários, Belo Horizonte - MG",
			Phone:   "(31) 99305-4200",
			Email:   "contato@quantumtecnologia.com.br",
			Website: "www.quantumtecnologia.com.br",
		},
		Texts: ProposalTexts{
			Introduction: "Apresentamos nossa proposta de **automação** para o atendimento da sua empresa.",
			Objective:    "Reduzir o tempo de resposta e _padronizar_ o atendimento.",
			Services:     "- Chatbot no WhatsApp\n- Integração com o CRM\n- Relatórios mensais",
			Why:          "Equipe especializada com **mais de 10 anos** de experiência.",
		},
		LineItems: LineItems{
			{Key: "chatbot", Selected: true, Name: "Chatbot", Description: "WhatsApp", Implantation: 1500, Recurrence: 250},
			{Key: "crm", Selected: true, Name: "Integração CRM", Implantation: 800},
			{Key: "bi", Selected: false, Name: "Painel BI", Implantation: 1200, Recurrence: 150},
		},
		Observations: "Valores válidos por 15 dias.\nPagamento da implantação em até 2 parcelas.",
	}
}

// SampleContract returns a contract generated from SampleProposal.
func SampleContract() *ContractDocument {
	p := SampleProposal()
	var items []ContractItem
	for _, it := range p.LineItems.Selected() {
		items = append(items, ContractItem{
			Name:         it.Name,
			Description:  it.Description,
			Implantation: it.Implantation,
			Recurrence:   it.Recurrence,
		})
	}
	return &ContractDocument{
		Number:  "CT-2024-001",
		Date:    NewDate(2024, time.March, 15),
		Client:  p.Client,
		Company: p.Company,
		Proposal: &ContractProposal{
			ID:          "16",
			Number:      p.ProposalNumber,
			Date:        p.Date,
			Responsible: p.Responsible,
			Texts:       p.Texts,
			Items:       items,
		},
	}
}
