package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"diabex/internal"
	"diabex/internal/analysis"
	"diabex/internal/cleaning"
	"diabex/internal/config"
	"diabex/internal/dataset"
	"diabex/internal/profiling"
	"diabex/internal/report"
	"diabex/internal/session"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// options are the flags shared by every subcommand
type options struct {
	file     string
	raw      bool
	asJSON   bool
	impute   string
	logLevel string
}

func main() {
	loadDotEnv(os.Stderr, ".env")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDotEnv reads optional .env files; a missing file is normal, any other
// failure is reported on w without aborting.
func loadDotEnv(w io.Writer, filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(w, "warning: failed to load .env: %v\n", err)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "diabex",
		Short:         "Explore the Pima Indians diabetes dataset from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.file, "file", "", "Dataset file, CSV or XLSX (default DATA_FILE or "+config.DefaultDataFile+")")
	flags.BoolVar(&opts.raw, "raw", false, "Use the raw table instead of the cleaned one")
	flags.BoolVar(&opts.asJSON, "json", false, "Print JSON instead of a table")
	flags.StringVar(&opts.impute, "impute", "", "Comma-separated columns whose zeros are imputed, or \"none\" (default IMPUTE_COLUMNS)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (default LOG_LEVEL or WARN)")

	rootCmd.AddCommand(
		newSummaryCmd(opts),
		newMissingCmd(opts),
		newZerosCmd(opts),
		newOutcomeCmd(opts),
		newCorrCmd(opts),
		newBoxplotCmd(opts),
		newSampleCmd(opts),
		newReportCmd(opts),
	)
	return rootCmd
}

// openSession loads the dataset named by the flags, falling back to the environment.
func openSession(ctx context.Context, opts *options) (*session.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := "WARN"
	if os.Getenv("LOG_LEVEL") != "" {
		level = cfg.Logging.Level
	}
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger := internal.NewLogger(internal.ParseLogLevel(level))

	file := cfg.Data.File
	if opts.file != "" {
		file = opts.file
	}
	columns := config.ParseColumnList(opts.impute, cfg.Data.ImputeColumns)

	return session.New(ctx, dataset.NewLoader(logger), cleaning.NewPolicy(cfg.Data.Sentinel, columns...), file, logger)
}

func (o *options) view() session.View {
	if o.raw {
		return session.ViewRaw
	}
	return session.ViewClean
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Descriptive statistics for every column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			summary, err := profiling.NewStatsEngine().Summary(s.Table(opts.view()))
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			return renderSummary(cmd.OutOrStdout(), summary)
		},
	}
}

func newMissingCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "missing",
		Short: "Null value count per column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			table := s.Table(opts.view())
			counts := profiling.NewStatsEngine().MissingData(table)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), counts)
			}
			return renderCounts(cmd.OutOrStdout(), "Missing", table.ColumnNames(), counts)
		},
	}
}

func newZerosCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "zeros",
		Short: "Count of values equal to zero per column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			table := s.Table(opts.view())
			counts := profiling.NewStatsEngine().NumberOfZeros(table)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), counts)
			}
			return renderCounts(cmd.OutOrStdout(), "Zeros", table.ColumnNames(), counts)
		},
	}
}

func newOutcomeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "outcome",
		Short: "Class distribution of the Outcome column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			counts, err := analysis.OutcomeDistribution(s.Table(opts.view()))
			if err != nil {
				return err
			}
			sorted := analysis.SortedOutcomeCounts(counts)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), sorted)
			}
			return renderOutcome(cmd.OutOrStdout(), sorted)
		},
	}
}

func newCorrCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "corr [columns...]",
		Short: "Pearson correlation matrix",
		Long: `Print the Pearson correlation matrix of all columns, or of the given columns.

Example: diabex corr Glucose BMI Age Outcome`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			table := s.Table(opts.view())

			var m *analysis.CorrelationMatrix
			if len(args) == 0 {
				m, err = analysis.FullCorrelationMatrix(table)
			} else {
				m, err = analysis.CorrelationMatrixFor(table, args)
			}
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), m)
			}
			return renderCorrelation(cmd.OutOrStdout(), m)
		},
	}
}

func newBoxplotCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "boxplot columns...",
		Short: "Quartiles, whiskers and outliers of the given columns",
		Long: `Print boxplot statistics with 1.5 IQR whiskers for each column.

Example: diabex boxplot Insulin SkinThickness --raw`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			boxes, err := analysis.Boxplots(s.Table(opts.view()), args)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), boxes)
			}
			return renderBoxplots(cmd.OutOrStdout(), boxes)
		},
	}
}

func newSampleCmd(opts *options) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "First rows of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows < 1 {
				return fmt.Errorf("--rows must be positive, got %d", rows)
			}
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			head := s.Table(opts.view()).Head(rows)
			if opts.asJSON {
				out := make([]map[string]*float64, head.RowCount())
				for i := range out {
					out[i] = head.Row(i)
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return renderSample(cmd.OutOrStdout(), head)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 5, "Number of rows to print")
	return cmd
}

func newReportCmd(opts *options) *cobra.Command {
	var asHTML bool
	var output string
	var rows int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render every view as one Markdown or HTML document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}

			reportOpts := report.DefaultOptions()
			reportOpts.View = opts.view()
			reportOpts.SampleRows = rows

			var body []byte
			if asHTML {
				body = report.HTML(s, reportOpts)
			} else {
				body = []byte(report.Markdown(s, reportOpts))
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if err := os.WriteFile(output, body, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "Render HTML instead of Markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file")
	cmd.Flags().IntVar(&rows, "rows", 5, "Sample rows in the report")
	return cmd
}
