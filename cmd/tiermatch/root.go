package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tiermatch"
	"github.com/kailas-cloud/tiermatch/internal/config"
	logpkg "github.com/kailas-cloud/tiermatch/internal/logger"
)

// app carries state shared by subcommands for one invocation.
type app struct {
	cfgFile  string
	env      string
	logLevel string
	noColor  bool

	cfg      config.Config
	registry *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tiermatch",
		Short: "Tiered fuzzy search over organizations, workers and transactions",
		Long: `tiermatch ranks records from a YAML dataset against a short query.

Each record is classified into a match tier, from an exact match of the whole
text down to a partial word overlap, and results are listed strongest first.

Example usage:
  tiermatch search orgs "pt maju" --data testdata/fixtures.yaml
  tiermatch search workers siti --json
  tiermatch search txns inv-2025 --limit 5`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = logpkg.FromContext(cmd.Context()).Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is config/<env>.yaml)")
	flags.StringVar(&a.env, "env", config.GetEnv(), "config environment: local, dev, prod")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override: debug, info, warn, error")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newSearchCmd(a), newVersionCmd())
	return root
}

// init loads configuration and installs the logger into the command context.
func (a *app) init(cmd *cobra.Command) error {
	if a.noColor {
		color.NoColor = true
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := a.logLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logpkg.NewLogger("cli", level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	cmd.SetContext(logpkg.ContextWithLogger(cmd.Context(), logger))

	logger.Debug("Config loaded",
		zap.String("env", a.env),
		zap.String("config", a.cfgFile),
		zap.String("normalizer", cfg.Normalizer.Mode),
		zap.Bool("metrics", cfg.Metrics.Enabled),
	)
	return nil
}

// loadConfig reads --config when given. Otherwise it reads the environment
// file and falls back to defaults when that file does not exist.
func (a *app) loadConfig() (config.Config, error) {
	if a.cfgFile != "" {
		cfg, err := config.LoadFile(a.cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(a.env)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newEngine builds an engine from the loaded configuration. When metrics are
// enabled the engine reports into a registry private to this invocation.
func (a *app) newEngine(logger *zap.Logger, limit int) (*tiermatch.Engine, error) {
	m := a.cfg.Match
	opts := []tiermatch.Option{
		tiermatch.WithLogger(logger),
		tiermatch.WithThresholds(m.MaxEditDistance, m.MinCoverage),
		tiermatch.WithMinQueryLength(m.MinQueryLength),
		tiermatch.WithDependentRankOffset(m.DependentRankOffset),
		tiermatch.WithLimit(limit),
		tiermatch.WithNormalizerMode(tiermatch.NormalizerMode(a.cfg.Normalizer.Mode)),
	}
	if a.cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		opts = append(opts, tiermatch.WithPrometheus(a.registry))
	}

	engine, err := tiermatch.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	return engine, nil
}
