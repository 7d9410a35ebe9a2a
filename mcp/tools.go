package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	proposalpdf "github.com/diegolsarmond/custom-proposal-maker"
	"github.com/diegolsarmond/custom-proposal-maker/doctpl"
)

// Generator renders documents. *proposalpdf.Generator satisfies it.
type Generator interface {
	GenerateProposal(ctx context.Context, doc *doctpl.ProposalDocument, mode proposalpdf.Mode) (*proposalpdf.Result, error)
	GenerateContract(ctx context.Context, doc *doctpl.ContractDocument, mode proposalpdf.Mode) (*proposalpdf.Result, error)
}

// RegisterDefaultTools adds the document tools backed by gen to the server.
func RegisterDefaultTools(s *Server, gen Generator) {
	s.AddTool(generateProposalTool(gen))
	s.AddTool(generateContractTool(gen))
	s.AddTool(fileNameTool())
	s.AddTool(proposalNumberTool())
}

var modeSchema = map[string]any{
	"type":        "string",
	"enum":        []string{"blob", "datauristring", "save", "open"},
	"description": "How to deliver the PDF. blob (default) returns base64 data, datauristring a data URI, save writes to the configured output directory.",
}

func generateProposalTool(gen Generator) Tool {
	return Tool{
		Name:        "generate_proposal",
		Description: "Render a commercial proposal (cover, introduction, objective, pricing table, services, observations) as an A4 PDF. The document uses the same JSON shape as the proposal://sample-proposal resource.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"document": map[string]any{
					"type":        "object",
					"description": "Proposal document: client, date, proposalNumber, company, texts, pricingLabels, lineItems, observations",
				},
				"mode": modeSchema,
			},
			"required": []string{"document"},
		},
		Handler: func(ctx context.Context, args map[string]any) (ToolResult, error) {
			data, mode, err := documentArgs(args)
			if err != nil {
				return ToolResult{}, err
			}
			doc, err := doctpl.ParseProposal(data)
			if err != nil {
				return ToolResult{}, err
			}
			res, err := gen.GenerateProposal(ctx, doc, mode)
			if err != nil {
				return ToolResult{}, err
			}
			return resultContent("Proposal", res), nil
		},
	}
}

func generateContractTool(gen Generator) Tool {
	return Tool{
		Name:        "generate_contract",
		Description: "Render a service contract (details, parties, clauses, scope table, signatures) as an A4 PDF. Missing clauses are filled with the defaults from proposal://default-clauses.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"document": map[string]any{
					"type":        "object",
					"description": "Contract document: number, date, status, client, company, proposal, clauses, signatures, items, verification, watermark",
				},
				"mode": modeSchema,
				"watermark": map[string]any{
					"type":        "string",
					"description": "Optional text stamped diagonally on every page, for example RASCUNHO",
				},
			},
			"required": []string{"document"},
		},
		Handler: func(ctx context.Context, args map[string]any) (ToolResult, error) {
			data, mode, err := documentArgs(args)
			if err != nil {
				return ToolResult{}, err
			}
			doc, err := doctpl.ParseContract(data)
			if err != nil {
				return ToolResult{}, err
			}
			if wm, ok := args["watermark"].(string); ok && wm != "" {
				doc.Watermark = wm
			}
			res, err := gen.GenerateContract(ctx, doc, mode)
			if err != nil {
				return ToolResult{}, err
			}
			return resultContent("Contract", res), nil
		},
	}
}

func fileNameTool() Tool {
	return Tool{
		Name:        "proposal_filename",
		Description: "Return the file name a proposal or contract would be saved under.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"kind": map[string]any{
					"type": "string",
					"enum": []string{"proposal", "contract"},
				},
				"clientName": map[string]any{"type": "string"},
				"date": map[string]any{
					"type":        "string",
					"description": "Document date, YYYY-MM-DD",
				},
				"number": map[string]any{
					"type":        "string",
					"description": "Contract number (contracts only)",
				},
			},
			"required": []string{"clientName", "date"},
		},
		Handler: handleFileName,
	}
}

func handleFileName(_ context.Context, args map[string]any) (ToolResult, error) {
	client, ok := args["clientName"].(string)
	if !ok {
		return ToolResult{}, fmt.Errorf("missing 'clientName' argument")
	}
	date, err := dateArg(args)
	if err != nil {
		return ToolResult{}, err
	}

	var name string
	switch kind, _ := args["kind"].(string); kind {
	case "", proposalpdf.KindProposal:
		name = proposalpdf.ProposalFileName(client, date)
	case proposalpdf.KindContract:
		number, _ := args["number"].(string)
		name = proposalpdf.ContractFileName(number, client, date)
	default:
		return ToolResult{}, fmt.Errorf("unknown kind %q", kind)
	}
	return textResult(name), nil
}

func proposalNumberTool() Tool {
	return Tool{
		Name:        "proposal_number",
		Description: "Format a proposal number as #NNNN/YYYY from its sequence id and date. An explicit number is returned unchanged.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"sequenceId": map[string]any{"type": "integer"},
				"date":       map[string]any{"type": "string", "description": "YYYY-MM-DD"},
				"explicit":   map[string]any{"type": "string"},
			},
			"required": []string{"date"},
		},
		Handler: handleProposalNumber,
	}
}

func handleProposalNumber(_ context.Context, args map[string]any) (ToolResult, error) {
	date, err := dateArg(args)
	if err != nil {
		return ToolResult{}, err
	}
	explicit, _ := args["explicit"].(string)
	id := 0
	if v, ok := args["sequenceId"].(float64); ok {
		id = int(v)
	}
	number := doctpl.ResolveProposalNumber(explicit, id, date)
	if number == "" {
		return ToolResult{}, fmt.Errorf("no explicit number and no positive 'sequenceId'")
	}
	return textResult(number), nil
}

// documentArgs re-encodes the "document" argument so it can be decoded with
// the document types' own JSON rules.
func documentArgs(args map[string]any) ([]byte, proposalpdf.Mode, error) {
	raw, ok := args["document"]
	if !ok {
		return nil, "", fmt.Errorf("missing 'document' argument")
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, "", fmt.Errorf("encoding document: %w", err)
	}

	modeName, _ := args["mode"].(string)
	if strings.TrimSpace(modeName) == "" {
		modeName = string(proposalpdf.ModeBlob)
	}
	mode, err := proposalpdf.ParseMode(modeName)
	if err != nil {
		return nil, "", err
	}
	return data, mode, nil
}

func dateArg(args map[string]any) (doctpl.Date, error) {
	s, ok := args["date"].(string)
	if !ok {
		return doctpl.Date{}, fmt.Errorf("missing 'date' argument")
	}
	d, err := doctpl.ParseDate(s)
	if err != nil {
		return doctpl.Date{}, err
	}
	if d.IsZero() {
		return doctpl.Date{}, fmt.Errorf("empty 'date' argument")
	}
	return d, nil
}

func resultContent(label string, res *proposalpdf.Result) ToolResult {
	summary := fmt.Sprintf("%s generated: %s (%d pages, render %s)", label, res.FileName, res.Pages, res.RenderID)
	switch res.Mode {
	case proposalpdf.ModeBlob:
		return ToolResult{Content: []ContentBlock{
			{Type: "text", Text: fmt.Sprintf("%s, %d bytes", summary, len(res.Bytes))},
			{Type: "resource", MIMEType: "application/pdf", Data: base64.StdEncoding.EncodeToString(res.Bytes)},
		}}
	case proposalpdf.ModeDataURI:
		return ToolResult{Content: []ContentBlock{
			{Type: "text", Text: summary},
			{Type: "text", Text: res.DataURI},
		}}
	}
	return textResult(fmt.Sprintf("%s saved to %s", summary, res.Path))
}

func textResult(text string) ToolResult {
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: text}}}
}
