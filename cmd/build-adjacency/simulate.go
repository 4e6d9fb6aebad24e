// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/loopcons/loopclosure"
)

func newSimulateCmd(f *flags) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "simulate <closures.yaml>",
		Short: "Write a synthetic two-robot loop-closure set",
		Long: `Write a synthetic two-robot loop-closure set.

Inliers agree on one inter-robot transform; outliers are random. The
"generate" section of --config controls counts, noise and seed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if cmd.Flags().Changed("seed") {
				cfg.Generate.Seed = seed
			}

			g, err := loopclosure.Generate(cfg.Generate)
			if err != nil {
				return err
			}
			if err := loopclosure.Save(args[0], g.Set); err != nil {
				return err
			}
			logger.Info("synthetic loop closures written",
				zap.String("path", args[0]),
				zap.Int("count", g.Set.Len()),
				zap.Ints("outliers", g.Outliers),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "%d loop closures (%d outliers) -> %s\n",
				g.Set.Len(), len(g.Outliers), args[0])

			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (overrides generate.seed)")

	return cmd
}
