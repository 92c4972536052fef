package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/flowdev/seqparse/infoset"
	"github.com/flowdev/seqparse/internal/cliconfig"
	"github.com/flowdev/seqparse/internal/clog"
	"github.com/flowdev/seqparse/internal/report"
	"github.com/flowdev/seqparse/internal/schema"
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/seqdriver"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	parseSchemaFile string
	parseInputFiles []string
	parseFormat     string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse one or more inputs against a sequence schema",
	Long: `parse compiles a YAML sequence schema into a child parser list and
runs it against each --input file, printing the resulting infoset.

Examples:
  seqparse parse --schema record.yaml --input data.bin
  seqparse parse --schema record.yaml --input a.bin --input b.bin --format json`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseSchemaFile, "schema", "", "sequence schema YAML file (required)")
	parseCmd.Flags().StringSliceVar(&parseInputFiles, "input", nil, "input file to parse; repeatable")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "table", "output format (table|json)")
	_ = parseCmd.MarkFlagRequired("schema")
	_ = parseCmd.MarkFlagRequired("input")
}

// parseResult pairs one --input's outcome with the file it came from, so
// results can be reported in flag order once every goroutine has finished.
type parseResult struct {
	path  string
	state *pstate.State
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := cliconfig.Load(GetConfigFile())
	if err != nil {
		return err
	}

	logger, err := clog.New(clog.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: cfg.Logging.Output})
	if err != nil {
		return err
	}

	schemaBytes, err := os.ReadFile(parseSchemaFile)
	if err != nil {
		return fmt.Errorf("reading schema %s: %w", parseSchemaFile, err)
	}
	doc, err := schema.Parse(schemaBytes)
	if err != nil {
		return err
	}

	concurrency := cfg.Parse.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]*parseResult, len(parseInputFiles))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)

	for i, path := range parseInputFiles {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			input, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading input %s: %w", path, err)
			}
			children, err := schema.Compile(doc, input)
			if err != nil {
				return fmt.Errorf("compiling schema for %s: %w", path, err)
			}

			state := pstate.New(infoset.NewComplex(doc.Name), pstate.Tunables{MaxOccursBounds: cfg.Parse.MaxOccursBounds})
			out := seqdriver.Parse(state, children, doc.Ordered)
			results[i] = &parseResult{path: path, state: out}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	anyFailed := false
	for _, r := range results {
		if r.state.IsFailure() {
			anyFailed = true
			logger.Error("parse failed", "file", r.path, "cause", r.state.Cause())
			continue
		}
		logger.Info("parse succeeded", "file", r.path, "bytes", r.state.BitPos0b()/8)

		fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", r.path)
		switch parseFormat {
		case "json":
			if err := report.PrintJSON(cmd.OutOrStdout(), r.state.Infoset()); err != nil {
				return err
			}
		default:
			if err := report.PrintTable(cmd.OutOrStdout(), r.state.Infoset()); err != nil {
				return err
			}
		}
	}

	if anyFailed {
		return fmt.Errorf("one or more inputs failed to parse")
	}
	return nil
}
