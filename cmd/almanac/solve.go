package main

import (
	"fmt"
	"os"

	"github.com/go-ricrob/almanac/internal/almanac"
	"github.com/go-ricrob/almanac/internal/config"
	"github.com/go-ricrob/almanac/internal/log"
	"github.com/go-ricrob/almanac/solver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type solveFlags struct {
	part       int
	workers    int
	maxPasses  int
	configFile string
	envFile    string
	verbose    bool
}

func solveCmd() *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve <input>",
		Short: "Solve an almanac input file",
		Long: `Reads an almanac ("seeds:" line followed by "<label> map:" sections) and
prints the lowest location for the seed list (part 1) and for the seed
ranges (part 2).

Examples:
  almanac solve input.txt
  almanac solve --part 2 --max-passes 500 input.txt
  ALMANAC_WORKERS=4 almanac solve -v input.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args[0], f)
		},
	}

	cmd.Flags().IntVarP(&f.part, "part", "p", 0, "Part to solve (1 or 2, 0 for both)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Seed evaluation workers (overrides config)")
	cmd.Flags().IntVar(&f.maxPasses, "max-passes", 0, "Refinement pass limit (overrides config)")
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "YAML config file")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Environment file (default .env)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runSolve(cmd *cobra.Command, path string, f solveFlags) error {
	cfg, err := config.Load(f.configFile, f.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = f.workers
	}
	if cmd.Flags().Changed("max-passes") {
		cfg.MaxRefinePasses = f.maxPasses
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := &solver.Options{
		Workers:         cfg.Workers,
		MaxRefinePasses: cfg.MaxRefinePasses,
	}
	switch f.part {
	case 0:
	case 1, 2:
		opts.Parts = []solver.Part{solver.Part(f.part)}
	default:
		return fmt.Errorf("invalid part %d", f.part)
	}

	logger, err := log.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	opts.Logger = logger

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	chain, err := almanac.Parse(file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	logger.Debug("input parsed",
		zap.String("file", path),
		zap.Int("seeds", len(chain.Seeds)),
		zap.Int("stages", len(chain.Stages)))

	res, err := solver.New(chain, opts).Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range []solver.Part{solver.Part1, solver.Part2} {
		if v, ok := res.Answer(p); ok {
			fmt.Fprintf(out, "Part %d: %d (%s)\n", p, v, res.Elapsed(p))
		}
	}
	return nil
}
