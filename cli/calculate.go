package cli

import (
	"fmt"
	"time"

	"due-date-calculator/calculator"
	customerrors "due-date-calculator/errors"
	"due-date-calculator/formatter"
	"due-date-calculator/metrics"
	"due-date-calculator/parser"

	"github.com/spf13/cobra"
)

const (
	submissionPrompt = "Enter submission time (YYYY-MM-DD HH:mm:ss): "
	turnaroundPrompt = "Enter turnaround time hours or days (1H, 2D): "
)

func newCalculateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "calculate [SUBMISSION TURNAROUND]",
		Short: "Calculate the resolution time of a single problem",
		Long: "Calculate the resolution time of a single problem.\n\n" +
			"SUBMISSION uses the YYYY-MM-DD HH:mm:ss layout and TURNAROUND is a whole number\n" +
			"followed by H (hours) or D (days). Without arguments both values are prompted for.",
		Example: `  duedate calculate "2018-07-24 14:12:00" 2D`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: a.run(a.calculate),
	}
}

func (a *app) calculate(cmd *cobra.Command, args []string) error {
	submissionText, turnaroundText, err := readCalculationInput(cmd, args)
	if err != nil {
		return err
	}

	submission, err := parser.ParseSubmission(submissionText)
	if err != nil {
		metrics.ObserveParseError(err)
		return fmt.Errorf("could not read submission time: %w", err)
	}
	turnaround, err := parser.ParseTurnaround(turnaroundText)
	if err != nil {
		metrics.ObserveParseError(err)
		return fmt.Errorf("could not read turnaround time: %w", err)
	}

	start := time.Now()
	due, err := calculator.Calculate(submission, turnaround)
	metrics.CalculationDurationSeconds.Observe(time.Since(start).Seconds())
	metrics.ObserveCalculation(turnaround, err)
	if err != nil {
		a.logger.Warn("calculation rejected",
			"submission", formatter.FormatTimestamp(submission),
			"turnaround", formatter.FormatTurnaround(turnaround),
			"kind", customerrors.Label(err))
		return fmt.Errorf("could not calculate resolution time: %w", err)
	}

	a.logger.Debug("calculated resolution time",
		"submission", formatter.FormatTimestamp(submission),
		"turnaround", formatter.FormatTurnaround(turnaround),
		"due", formatter.FormatTimestamp(due))

	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatResolution(due))
	return nil
}

// readCalculationInput takes both values from args, or asks for them on the
// command's own input stream when none were given.
func readCalculationInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}

	prompter := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	submission, err := prompter.Ask(submissionPrompt)
	if err != nil {
		return "", "", fmt.Errorf("reading submission time: %w", err)
	}
	turnaround, err := prompter.Ask(turnaroundPrompt)
	if err != nil {
		return "", "", fmt.Errorf("reading turnaround time: %w", err)
	}
	return submission, turnaround, nil
}
