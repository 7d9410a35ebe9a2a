// Command proposal-mcp is an MCP (Model Context Protocol) server that exposes
// proposal and contract PDF generation to AI assistants.
//
// # Installation
//
//	go install github.com/diegolsarmond/custom-proposal-maker/cmd/proposal-mcp@latest
//
// # Available Tools
//
//   - generate_proposal: Render a commercial proposal
//   - generate_contract: Render a service contract
//   - proposal_filename: Compute the file name a document is saved under
//   - proposal_number: Format a proposal number as #NNNN/YYYY
//
// # Available Resources
//
//   - proposal://default-clauses
//   - proposal://sample-proposal
//   - proposal://sample-contract
//
// Configuration is read from PROPOSAL_* environment variables and an
// optional .env file. Logs go to stderr; stdout carries the protocol.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/diegolsarmond/custom-proposal-maker/internal/app"
	"github.com/diegolsarmond/custom-proposal-maker/mcp"
)

func main() {
	cmd := &cli.Command{
		Name:  "proposal-mcp",
		Usage: "Serve proposal and contract generation over MCP stdio",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (default: PROPOSAL_LOG_LEVEL)",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "Directory for documents generated in save mode",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this address, e.g. :9102",
			},
		},
		Action: serve,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "proposal-mcp: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	a, err := app.New("proposal-mcp", cmd.String("env-file"), app.Overrides{
		LogLevel:    cmd.String("log-level"),
		OutputDir:   cmd.String("output-dir"),
		MetricsAddr: cmd.String("metrics-addr"),
	})
	if err != nil {
		return err
	}
	defer a.Close()

	a.ServeMetrics(ctx)

	server := mcp.NewServer(a.Logger)
	mcp.RegisterDefaultTools(server, a.Generator)
	mcp.RegisterDefaultResources(server)

	a.Logger.Info("mcp server started", zap.String("output_dir", a.Config.OutputDir))
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	a.Logger.Info("mcp server stopped")
	return nil
}
