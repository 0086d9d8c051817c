// Package cli wires the due-date calculator to the command line.
package cli

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"due-date-calculator/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var version = "dev"

// app carries the state shared by the commands of one invocation.
type app struct {
	configPath string
	flags      config.Config
	cfg        config.Config
	logger     *slog.Logger
	server     *http.Server
}

// NewRootCommand builds the command tree. Each call returns independent state.
func NewRootCommand() *cobra.Command {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	root := &cobra.Command{
		Use:   "duedate",
		Short: "Calculate resolution times within working hours",
		Long: "duedate computes when a problem is due, given its submission time and turnaround.\n" +
			"Only Monday to Friday, 9AM to 5PM counts as working time.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (.toml, .yaml or .yml)")
	flags.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&a.flags.MetricsAddr, "metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	flags.StringVar(&a.flags.PushURL, "push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	flags.BoolVar(&a.flags.Wait, "wait", false, "Keep process running after completion to allow for metric scraping")

	root.AddCommand(
		newCalculateCommand(a),
		newBatchCommand(a),
		newVersionCommand(),
	)

	return root
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	// Explicit flags win over the config file.
	changed := cmd.Flags().Changed
	if changed("verbose") {
		cfg.Verbose = a.flags.Verbose
	}
	if changed("metrics-addr") {
		cfg.MetricsAddr = a.flags.MetricsAddr
	}
	if changed("push-url") {
		cfg.PushURL = a.flags.PushURL
	}
	if changed("wait") {
		cfg.Wait = a.flags.Wait
	}
	if changed("format") {
		cfg.Format = a.flags.Format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
		With("run_id", uuid.NewString(), "command", cmd.Name())

	if cfg.MetricsAddr != "" {
		a.server = startMetricsServer(cfg.MetricsAddr, a.logger)
	}
	return nil
}

// run wraps a command body so metrics are pushed and served even when it fails.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		a.finish(cmd.Context())
		return err
	}
}
