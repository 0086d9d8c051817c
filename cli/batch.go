package cli

import (
	"fmt"
	"os"
	"time"

	"due-date-calculator/calculator"
	"due-date-calculator/config"
	"due-date-calculator/formatter"
	"due-date-calculator/metrics"
	"due-date-calculator/parser"

	"github.com/spf13/cobra"
)

type batchOptions struct {
	input string
}

func newBatchCommand(a *app) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Calculate resolution times for every line of a CSV file",
		Long: "Calculate resolution times for every line of a CSV file.\n\n" +
			"Each line holds \"submission, turnaround\"; lines starting with # are comments.\n" +
			"Rejected lines are reported in the output and do not stop the batch.",
		Example: `  duedate batch --input requests.csv --format json`,
		Args:    cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			return a.batch(cmd, opts)
		}),
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Input CSV file (required)")
	cmd.Flags().StringVarP(&a.flags.Format, "format", "f", config.FormatText, "Output format: text|json|csv")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (a *app) batch(cmd *cobra.Command, opts *batchOptions) error {
	file, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	requests, err := parser.Parse(file)
	if err != nil {
		metrics.ObserveParseError(err)
		return fmt.Errorf("error parsing file: %w", err)
	}
	metrics.ParserRecordsTotal.Add(float64(len(requests)))
	metrics.BatchSize.Observe(float64(len(requests)))

	start := time.Now()
	resolutions := calculator.CalculateAll(requests)
	metrics.BatchDurationSeconds.Observe(time.Since(start).Seconds())

	failed := 0
	for _, res := range resolutions {
		metrics.ObserveCalculation(res.Turnaround, res.Err)
		if res.Failed() {
			failed++
			a.logger.Debug("request rejected", "line", res.Line, "error", res.Err)
		}
	}
	a.logger.Info("batch calculated", "input", opts.input, "requests", len(resolutions), "failed", failed)

	out := cmd.OutOrStdout()
	switch a.cfg.Format {
	case config.FormatJSON:
		fmt.Fprintln(out, formatter.FormatJSON(resolutions))
	case config.FormatCSV:
		fmt.Fprint(out, formatter.FormatCSV(resolutions))
	default:
		fmt.Fprint(out, formatter.FormatText(resolutions))
	}
	return nil
}
