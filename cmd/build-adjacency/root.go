// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/loopcons/config"
	"github.com/katalvlaran/loopcons/consistency"
	"github.com/katalvlaran/loopcons/internal/logging"
	"github.com/katalvlaran/loopcons/loopclosure"
	"github.com/katalvlaran/loopcons/mtx"
)

// flags are the persistent command-line overrides shared by every subcommand.
type flags struct {
	configPath string
	gamma      float64
	workers    int
	logLevel   string
}

// resolve loads the config file (if any) and applies explicitly set flags on top.
func (f *flags) resolve(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return config.Config{}, nil, err
		}
	}
	fs := cmd.Flags()
	if fs.Changed("gamma") {
		cfg.Gamma = f.gamma
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, logger, nil
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "build-adjacency <closures.yaml> [adjacency.mtx]",
		Short: "Build the pairwise-consistency adjacency matrix of inter-robot loop closures",
		Long: `Build the pairwise-consistency adjacency matrix of inter-robot loop closures.

Two loop closures are adjacent when each one's measurement, composed with the
inverse of the other, is within gamma Mahalanobis distance of the identity.
The matrix is written in Matrix Market coordinate pattern symmetric format;
an output ending in .gz, .zst or .lz4 is compressed accordingly.

Example:
  build-adjacency closures.yaml adjacency.mtx.gz --gamma 1 --workers 0`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if len(args) == 2 {
				cfg.Output = args[1]
			}

			return runBuild(cmd, cfg, logger, args[0])
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML run configuration")
	pf.Float64Var(&f.gamma, "gamma", consistency.DefaultGamma, "consistency threshold on both directional scores")
	pf.IntVar(&f.workers, "workers", consistency.DefaultWorkers, "row-shard goroutines (0 = one per CPU)")
	pf.StringVar(&f.logLevel, "log-level", "info", "debug, info, warn or error")

	root.AddCommand(newSimulateCmd(f))

	return root
}

func runBuild(cmd *cobra.Command, cfg config.Config, logger *zap.Logger, input string) error {
	set, err := loopclosure.Load(input)
	if err != nil {
		return err
	}
	logger.Info("loop closures loaded", zap.String("path", input), zap.Int("count", set.Len()))

	b, err := consistency.NewBuilder(set, cfg.BuilderOptions(logger)...)
	if err != nil {
		return err
	}
	adj, stats, err := b.BuildMatrix(cmd.Context())
	if err != nil {
		return err
	}

	comment := cfg.Comment
	if comment == "" {
		comment = fmt.Sprintf("%s gamma=%g", mtx.DefaultComment, b.Gamma())
	}
	if err := mtx.WriteFile(cfg.Output, adj, comment); err != nil {
		return err
	}
	logger.Info("adjacency matrix written",
		zap.String("path", cfg.Output),
		zap.Stringer("compression", mtx.CompressionFromPath(cfg.Output)),
		zap.Int("stored_entries", adj.StoredNNZ()),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "%d loop closures, %d of %d pairs consistent -> %s\n",
		adj.N(), stats.Consistent, stats.PairsEvaluated, cfg.Output)

	return nil
}
