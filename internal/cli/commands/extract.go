package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplineage/internal/cli/config"
	"github.com/leapstack-labs/leaplineage/pkg/catalog"
	"github.com/leapstack-labs/leaplineage/pkg/lineage"
	"github.com/leapstack-labs/leaplineage/pkg/parser"
)

// ExtractOptions holds options for the extract command.
type ExtractOptions struct {
	Catalog      string
	OutputFormat string
	Concurrency  int
	QueryIDs     bool
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract column lineage from SQL",
		Long: `Read SQL from a file (or stdin), split it into statements, and report
the column-level lineage of each statement.

With a catalog, table and column references are verified and unqualified
columns resolve precisely; without one, every reference is reported as
unverified with reduced confidence. Malformed statements report their
errors in place and never stop the rest of the input.`,
		Example: `  # Extract lineage from a file, verified against a catalog
  leaplineage extract queries.sql --catalog warehouse.yaml

  # Pipe SQL on stdin, emit JSON
  cat queries.sql | leaplineage extract -o json

  # Tag each statement with a query id for downstream provenance
  leaplineage extract queries.sql --query-ids -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Path to YAML table catalog")
	cmd.Flags().StringVarP(&opts.OutputFormat, "output", "o", "", "Output format (table|json)")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "Max parallel statement extractions")
	cmd.Flags().BoolVar(&opts.QueryIDs, "query-ids", false, "Attach a generated query id to each statement")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, opts *ExtractOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	catalogPath := opts.Catalog
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath
	}
	format := opts.OutputFormat
	if format == "" {
		format = cfg.OutputFormat
	}
	concurrency := opts.Concurrency
	if concurrency == 0 {
		concurrency = cfg.Concurrency
	}

	sqlText, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	statements := parser.SplitStatements(sqlText)
	if len(statements) == 0 {
		return fmt.Errorf("no SQL statements in input")
	}
	logger.Debug("split input", "statements", len(statements))

	symbols := catalog.NewSymbolTable()
	if catalogPath != "" {
		symbols, err = catalog.LoadYAMLFile(catalogPath)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		logger.Debug("loaded catalog", "path", catalogPath, "tables", symbols.Len())
	}

	var lopts lineage.Options
	if opts.QueryIDs {
		lopts.Timestamp = time.Now().UTC()
	}

	results, err := lineage.ParseBatch(cmd.Context(), statements, symbols, concurrency, lopts)
	if err != nil {
		return fmt.Errorf("extraction canceled: %w", err)
	}

	if opts.QueryIDs {
		for i := range results {
			results[i].QueryID = uuid.NewString()
		}
	}

	for i, r := range results {
		for _, msg := range r.Errors {
			logger.Warn("statement issue", "statement", i+1, "error", msg)
		}
	}

	switch format {
	case "json":
		return renderExtractJSON(cmd.OutOrStdout(), results)
	default:
		return renderExtractTable(cmd.OutOrStdout(), results)
	}
}

// readInput reads SQL text from the file argument, or stdin when absent.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
