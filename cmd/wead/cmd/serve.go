/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adrianowead/wead/pkg/api"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		port int
		bind string
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the REST API server on top of the configured data file.

Routes live under /api/v1 and Prometheus metrics under /metrics.
The server stops gracefully on SIGINT or SIGTERM.

Examples:
  wead serve
  wead serve --port 9090 --bind 0.0.0.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repositoryFrom(cmd)
			if err != nil {
				return err
			}

			cfg := opts.config
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("bind") {
				cfg.Bind = bind
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			starter := container.GetServerFactory().CreateServerStarter()
			return starter.StartServer(ctx, repo, api.ServerConfig{
				Port:                   cfg.Port,
				Bind:                   cfg.Bind,
				BenchmarkIterations:    cfg.Benchmark.Iterations,
				BenchmarkWorkers:       cfg.Benchmark.Workers,
				BenchmarkMaxIterations: cfg.Benchmark.MaxIterations,
			}, container.GetLogger())
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on (default from config)")
	serveCmd.Flags().StringVar(&bind, "bind", "127.0.0.1", "Address to bind (default from config)")

	return serveCmd
}
