package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/diegolsarmond/custom-proposal-maker/doctpl"
)

// RegisterDefaultResources adds the reference documents to the server.
// Resources use the proposal:// scheme.
func RegisterDefaultResources(s *Server) {
	s.AddResource(Resource{
		URI:         "proposal://default-clauses",
		Name:        "Default Contract Clauses",
		Description: "The six clauses used when a contract defines none. Objeto and Condições Comerciais are replaced by the proposal's services and objective texts when present.",
		MIMEType:    "application/json",
		Handler: func(_ context.Context, uri string) ([]ResourceContent, error) {
			return jsonResource(uri, doctpl.DefaultClauses("", ""))
		},
	})

	s.AddResource(Resource{
		URI:         "proposal://sample-proposal",
		Name:        "Sample Proposal",
		Description: "A complete proposal document accepted by generate_proposal.",
		MIMEType:    "application/json",
		Handler: func(_ context.Context, uri string) ([]ResourceContent, error) {
			return jsonResource(uri, doctpl.SampleProposal())
		},
	})

	s.AddResource(Resource{
		URI:         "proposal://sample-contract",
		Name:        "Sample Contract",
		Description: "A contract document created from the sample proposal, accepted by generate_contract.",
		MIMEType:    "application/json",
		Handler: func(_ context.Context, uri string) ([]ResourceContent, error) {
			return jsonResource(uri, doctpl.SampleContract())
		},
	})
}

func jsonResource(uri string, v any) ([]ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", uri, err)
	}
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(data),
	}}, nil
}
