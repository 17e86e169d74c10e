package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yamaru/pokesearch/internal/config"
	"github.com/yamaru/pokesearch/internal/reader"
	"github.com/yamaru/pokesearch/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootOptions holds the global flags and what PersistentPreRunE builds from them
type rootOptions struct {
	configPath string
	source     string
	maxEntries int
	logFile    string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pokesearch",
		Short: "Search and browse a Pokemon dataset",
		Long: `pokesearch loads pokemon.json from a directory, file or base URL and
shows it as a searchable table with a base stats panel.

Run without arguments to start the interactive interface.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&opts.source, "source", "", "dataset location: directory, file or http(s) base URL")
	flags.IntVar(&opts.maxEntries, "max", -1, "number of dataset entries considered before filtering (-1 for all)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup loads the config file, applies flag overrides and builds the logger
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = o.source
	}
	if flags.Changed("max") {
		cfg.MaxEntries = o.maxEntries
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = o.logFile
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	o.cfg = cfg
	o.logger = logger
	return nil
}

// newLogger builds a production zap logger writing to the log file. Without
// a log file nothing is logged, since the terminal belongs to the UI.
func newLogger(l config.LoggingConfig) (*zap.Logger, error) {
	if l.File == "" {
		return zap.NewNop(), nil
	}

	level, err := l.ZapLevel()
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{l.File}
	zc.ErrorOutputPaths = []string{l.File}
	return zc.Build()
}

func runInteractive(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := reader.NewReader(opts.cfg.Source, opts.logger)
	if err != nil {
		return err
	}
	timeout, _ := opts.cfg.TimeoutDuration()

	opts.logger.Info("starting interface",
		zap.String("location", r.Location()),
		zap.Int("max_entries", opts.cfg.MaxEntries))

	app := ui.NewApp(ui.Options{
		Reader:   r,
		MaxCount: opts.cfg.MaxEntries,
		Timeout:  timeout,
		Logger:   opts.logger,
	})

	go func() {
		<-ctx.Done()
		app.Stop()
	}()

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("error running application: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pokesearch\n")
			fmt.Fprintf(out, "Version: %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}
