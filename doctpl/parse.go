package doctpl

import (
	"encoding/json"
	"fmt"
	"io"
)

// ParseProposal decodes a proposal document from JSON.
func ParseProposal(data []byte) (*ProposalDocument, error) {
	var doc ProposalDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("doctpl: parsing proposal: %w", err)
	}
	return &doc, nil
}

// ParseContract decodes a contract document from JSON.
func ParseContract(data []byte) (*ContractDocument, error) {
	var doc ContractDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("doctpl: parsing contract: %w", err)
	}
	return &doc, nil
}

// ReadProposal reads and decodes a proposal document from r.
func ReadProposal(r io.Reader) (*ProposalDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("doctpl: reading proposal: %w", err)
	}
	return ParseProposal(data)
}

// ReadContract reads and decodes a contract document from r.
func ReadContract(r io.Reader) (*ContractDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("doctpl: reading contract: %w", err)
	}
	return ParseContract(data)
}
