// Package main provides the pinn CLI: it draws collocation samples and
// evaluation grids for the 1-D viscous Burgers' equation and reports the
// PDE residual of a field on them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/pinn/internal/config"
)

const version = "v0.1.0"

var (
	configFile string
	preset     string
	seed       int64
	batch      int
	timeSteps  int
	cells      int
	points     int
	interior   int
	nu         float64
	field      string
	onGrid     bool
	check      bool
	outPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "pinn",
		Short:         "collocation sampling and Burgers residuals for PINNs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed (negative = random)")
	rootCmd.PersistentFlags().IntVar(&batch, "batch", config.DefaultBatch, "batch size N")
	rootCmd.PersistentFlags().IntVar(&timeSteps, "steps", config.DefaultTimeSteps, "grid time steps T")
	rootCmd.PersistentFlags().IntVar(&cells, "cells", config.DefaultCells, "spatial grid cells s")
	rootCmd.PersistentFlags().IntVar(&points, "points", config.DefaultPoints, "initial and boundary points p (even)")
	rootCmd.PersistentFlags().IntVar(&interior, "interior", config.DefaultInterior, "interior points q")

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "draw a collocation batch and check its invariants",
		RunE:  runSample,
	}

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "build the evaluation grid",
		RunE:  runGrid,
	}

	residualCmd := &cobra.Command{
		Use:   "residual",
		Short: "evaluate the Burgers residual of a field",
		RunE:  runResidual,
	}
	residualCmd.Flags().Float64Var(&nu, "nu", config.DefaultNu, "viscosity")
	residualCmd.Flags().StringVar(&field, "field", "mlp", "field to evaluate (mlp, quadratic)")
	residualCmd.Flags().BoolVar(&onGrid, "grid", false, "evaluate on the grid instead of a sample")
	residualCmd.Flags().BoolVar(&check, "check", false, "compare derivatives against finite differences")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "count the parameters of the configured MLP",
		RunE:  runParams,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "write the resolved configuration as yaml",
		RunE:  runConfig,
	}
	configCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pinn %s\n", version)
		},
	}

	rootCmd.AddCommand(sampleCmd, gridCmd, residualCmd, paramsCmd, configCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("batch") {
		cfg.Sampler.Batch = batch
	}
	if flags.Changed("steps") {
		cfg.Sampler.TimeSteps = timeSteps
	}
	if flags.Changed("cells") {
		cfg.Sampler.Cells = cells
	}
	if flags.Changed("points") {
		cfg.Sampler.Points = points
	}
	if flags.Changed("interior") {
		cfg.Sampler.Interior = interior
	}
	if flags.Lookup("nu") != nil && flags.Changed("nu") {
		cfg.Nu = nu
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
