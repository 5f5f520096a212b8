package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adrianowead/wead/pkg/bench"
)

// benchReport is the JSON shape of a bench run
type benchReport struct {
	Sequential *bench.Result `json:"sequential,omitempty"`
	Parallel   *bench.Result `json:"parallel,omitempty"`
	Speedup    float64       `json:"speedup,omitempty"`
}

func newBenchCmd(opts *rootOptions) *cobra.Command {
	var (
		iterations int64
		parallel   bool
		workers    int
		compare    bool
	)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the order pricing benchmark",
		Long: `Price a synthetic batch of orders (value, taxes, freight and discount)
and report the totals and the throughput.

Examples:
  wead bench --iterations 1000000
  wead bench --parallel --workers 8
  wead bench --compare`,
		Args: cobra.NoArgs,
		// the benchmark does not touch the data file
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config.Benchmark

			if !cmd.Flags().Changed("iterations") {
				iterations = cfg.Iterations
			}
			if iterations < 0 {
				return fmt.Errorf("iterations cannot be negative")
			}
			if iterations > cfg.MaxIterations {
				return fmt.Errorf("iterations cannot exceed %d (benchmark.max_iterations)", cfg.MaxIterations)
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Workers
			}

			var report benchReport
			if compare || !parallel {
				r := bench.RunSequential(iterations)
				report.Sequential = &r
			}
			if compare || parallel {
				r, err := bench.RunParallel(cmd.Context(), iterations, workers)
				if err != nil {
					return err
				}
				report.Parallel = &r
			}
			if report.Sequential != nil && report.Parallel != nil && report.Parallel.ExecutionTime > 0 {
				report.Speedup = report.Sequential.ExecutionTime / report.Parallel.ExecutionTime
			}

			opts.logger.Debug("benchmark finished",
				zap.Int64("iterations", iterations),
				zap.Bool("parallel", parallel),
				zap.Bool("compare", compare))

			out := cmd.OutOrStdout()
			if opts.output == "json" {
				return outputJSON(out, report)
			}
			if report.Sequential != nil {
				outputBenchResult(out, "Sequential", *report.Sequential)
			}
			if report.Parallel != nil {
				outputBenchResult(out, "Parallel", *report.Parallel)
			}
			if report.Speedup > 0 {
				fmt.Fprintf(out, "Speedup: %.2fx\n", report.Speedup)
			}
			return nil
		},
	}

	benchCmd.Flags().Int64VarP(&iterations, "iterations", "n", 0, "Number of orders to price (default from config)")
	benchCmd.Flags().BoolVar(&parallel, "parallel", false, "Split the work across workers")
	benchCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel workers, 0 = one per CPU (default from config)")
	benchCmd.Flags().BoolVar(&compare, "compare", false, "Run sequential and parallel and report the speedup")

	return benchCmd
}
