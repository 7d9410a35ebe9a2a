// Command proposalpdf renders proposals and contracts from JSON documents.
//
//	proposalpdf proposal --input proposta.json
//	proposalpdf contract --input contrato.json --watermark RASCUNHO --mode open
//	proposalpdf proposal --input - --mode blob > proposta.pdf
//	proposalpdf filename --kind contract --client "João da Silva" --number CT-7 --date 2024-03-15
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	proposalpdf "github.com/diegolsarmond/custom-proposal-maker"
	"github.com/diegolsarmond/custom-proposal-maker/doctpl"
	"github.com/diegolsarmond/custom-proposal-maker/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "proposalpdf: %v\n", err)
		os.Exit(1)
	}
}

func documentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "JSON document path, or - for stdin",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   "save, open, blob (PDF on stdout) or datauristring",
			Value:   string(proposalpdf.ModeSave),
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Usage:   "Directory for saved documents (default: PROPOSAL_OUTPUT_DIR or .)",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Path to a .env file",
			Value: ".env",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
		},
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "proposalpdf",
		Usage: "Render commercial proposals and service contracts as PDF",
		Commands: []*cli.Command{
			{
				Name:   "proposal",
				Usage:  "Render a proposal document",
				Flags:  documentFlags(),
				Action: renderProposal,
			},
			{
				Name:  "contract",
				Usage: "Render a contract document",
				Flags: append(documentFlags(), &cli.StringFlag{
					Name:  "watermark",
					Usage: "Text stamped diagonally on every page",
				}),
				Action: renderContract,
			},
			{
				Name:  "filename",
				Usage: "Print the file name a document would be saved under",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Value: proposalpdf.KindProposal, Usage: "proposal or contract"},
					&cli.StringFlag{Name: "client", Required: true, Usage: "Client name"},
					&cli.StringFlag{Name: "date", Required: true, Usage: "Document date, YYYY-MM-DD"},
					&cli.StringFlag{Name: "number", Usage: "Contract number"},
				},
				Action: printFileName,
			},
		},
	}
}

func setup(cmd *cli.Command) (*app.App, proposalpdf.Mode, error) {
	mode, err := proposalpdf.ParseMode(cmd.String("mode"))
	if err != nil {
		return nil, "", err
	}
	a, err := app.New("proposalpdf", cmd.String("env-file"), app.Overrides{
		LogLevel:  cmd.String("log-level"),
		OutputDir: cmd.String("output-dir"),
	})
	if err != nil {
		return nil, "", err
	}
	return a, mode, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func renderProposal(ctx context.Context, cmd *cli.Command) error {
	a, mode, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	in, err := openInput(cmd.String("input"))
	if err != nil {
		return err
	}
	defer in.Close()

	doc, err := doctpl.ReadProposal(in)
	if err != nil {
		return err
	}
	res, err := a.Generator.GenerateProposal(ctx, doc, mode)
	if err != nil {
		return err
	}
	return report(stdout(cmd), res)
}

func renderContract(ctx context.Context, cmd *cli.Command) error {
	a, mode, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	in, err := openInput(cmd.String("input"))
	if err != nil {
		return err
	}
	defer in.Close()

	doc, err := doctpl.ReadContract(in)
	if err != nil {
		return err
	}
	if wm := cmd.String("watermark"); wm != "" {
		doc.Watermark = wm
	}
	res, err := a.Generator.GenerateContract(ctx, doc, mode)
	if err != nil {
		return err
	}
	return report(stdout(cmd), res)
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func report(w io.Writer, res *proposalpdf.Result) error {
	switch res.Mode {
	case proposalpdf.ModeBlob:
		_, err := w.Write(res.Bytes)
		return err
	case proposalpdf.ModeDataURI:
		_, err := fmt.Fprintln(w, res.DataURI)
		return err
	}
	_, err := fmt.Fprintln(w, res.Path)
	return err
}

func printFileName(_ context.Context, cmd *cli.Command) error {
	date, err := doctpl.ParseDate(cmd.String("date"))
	if err != nil {
		return err
	}
	var name string
	switch kind := cmd.String("kind"); kind {
	case proposalpdf.KindProposal:
		name = proposalpdf.ProposalFileName(cmd.String("client"), date)
	case proposalpdf.KindContract:
		name = proposalpdf.ContractFileName(cmd.String("number"), cmd.String("client"), date)
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	_, err = fmt.Fprintln(stdout(cmd), name)
	return err
}
