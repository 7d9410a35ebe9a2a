// Package doctpl defines the documents the generator renders: commercial
// proposals and service contracts. Documents are plain values and decode
// from JSON as produced by the proposal editor.
//
// Example JSON:
//
//	{
//	  "client": {"name": "João da Silva", "companyName": "Silva ME"},
//	  "date": "2024-03-10",
//	  "proposalNumber": "#0016/2024",
//	  "company": {"name": "Quantum Tecnologia", "phone": "(31) 99305-4200"},
//	  "texts": {"introduction": "Apresentamos **nossa** proposta."},
//	  "lineItems": {
//	    "crm": {"selected": true, "name": "CRM", "implantation": 1500, "recurrence": "250,00"}
//	  }
//	}
package doctpl

// Client identifies the customer a document is addressed to.
type Client struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	Document    string `json:"document,omitempty"` // CPF/CNPJ
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Segment     string `json:"segment,omitempty"`
}

// DisplayName is the client name, falling back to the company name.
func (c Client) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.CompanyName
}

// CompanyConfig is the issuing company shown in headers and footers.
type CompanyConfig struct {
	Name        string `json:"name,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Website     string `json:"website,omitempty"`
	Responsible string `json:"responsible,omitempty"`
}

// Fill copies every field of def into the blank fields of c.
func (c CompanyConfig) Fill(def CompanyConfig) CompanyConfig {
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&c.Name, def.Name)
	fill(&c.Address, def.Address)
	fill(&c.Phone, def.Phone)
	fill(&c.Email, def.Email)
	fill(&c.Website, def.Website)
	fill(&c.Responsible, def.Responsible)
	return c
}

// ProposalTexts are the free-text sections of a proposal. They may contain
// inline markup (**bold**, _italic_) and "- " bullets.
type ProposalTexts struct {
	Introduction string `json:"introduction,omitempty"`
	Objective    string `json:"objective,omitempty"`
	Services     string `json:"services,omitempty"`
	Why          string `json:"why,omitempty"`
}

// PricingLabels override the pricing table column headers.
type PricingLabels struct {
	Implantation string `json:"implantation,omitempty"`
	Recurrence   string `json:"recurrence,omitempty"`
	// SuppressRecurrenceSuffix drops the "/mês" suffix from recurrence
	// values regardless of the label.
	SuppressRecurrenceSuffix bool `json:"suppressRecurrenceSuffix,omitempty"`
}

// LineItem is one automation or service offered in a proposal.
type LineItem struct {
	Key          string `json:"-"`
	Selected     bool   `json:"selected"`
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	Implantation Amount `json:"implantation,omitempty"`
	Recurrence   Amount `json:"recurrence,omitempty"`
}

// ProposalDocument is everything needed to render a proposal.
type ProposalDocument struct {
	Client Client `json:"client"`
	Date   Date   `json:"date"`
	// ProposalNumber is already resolved, for example "#0016/2025".
	ProposalNumber string        `json:"proposalNumber,omitempty"`
	Responsible    string        `json:"responsible,omitempty"`
	Company        CompanyConfig `json:"company"`
	Texts          ProposalTexts `json:"texts"`
	PricingLabels  PricingLabels `json:"pricingLabels"`
	// LineItems keep the order in which keys appear in the JSON object.
	LineItems    LineItems `json:"lineItems"`
	Observations string    `json:"observations,omitempty"`
}

// Clause is one titled section of a contract.
type Clause struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Signatures names the signers shown at the end of a contract.
type Signatures struct {
	CompanySigner string `json:"companySigner,omitempty"`
	ClientSigner  string `json:"clientSigner,omitempty"`
	CompanyRole   string `json:"companyRole,omitempty"`
	ClientRole    string `json:"clientRole,omitempty"`
}

// ContractItem is one line of the contract scope table.
type ContractItem struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Implantation Amount `json:"implantation,omitempty"`
	Recurrence   Amount `json:"recurrence,omitempty"`
}

// ContractProposal is the proposal a contract originated from.
type ContractProposal struct {
	ID          string         `json:"id,omitempty"`
	Number      string         `json:"number,omitempty"`
	Date        Date           `json:"date,omitempty"`
	Responsible string         `json:"responsible,omitempty"`
	Texts       ProposalTexts  `json:"texts,omitempty"`
	Items       []ContractItem `json:"items,omitempty"`
}

// Verification is a code printed as a barcode beside the signatures.
type Verification struct {
	Code string `json:"code"`
	// Symbology is "qr" (default) or "pdf417".
	Symbology string `json:"symbology,omitempty"`
}

// ContractDocument is everything needed to render a contract.
type ContractDocument struct {
	Number string `json:"number,omitempty"`
	Date   Date   `json:"date"`
	// Status defaults to "Em aberto".
	Status     string            `json:"status,omitempty"`
	Client     Client            `json:"client"`
	Company    CompanyConfig     `json:"company"`
	Proposal   *ContractProposal `json:"proposal,omitempty"`
	Clauses    []Clause          `json:"clauses,omitempty"`
	Signatures Signatures        `json:"signatures"`
	Items      []ContractItem    `json:"items,omitempty"`

	Verification *Verification `json:"verification,omitempty"`
	// Watermark is stamped diagonally across every page, for example
	// "RASCUNHO" on drafts.
	Watermark string `json:"watermark,omitempty"`
}

// ScopeItems returns the contract items, falling back to the items of the
// originating proposal.
func (d *ContractDocument) ScopeItems() []ContractItem {
	if len(d.Items) > 0 {
		return d.Items
	}
	if d.Proposal != nil {
		return d.Proposal.Items
	}
	return nil
}
