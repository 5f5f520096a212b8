/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adrianowead/wead/pkg/config"
	"github.com/adrianowead/wead/pkg/di"
	"github.com/adrianowead/wead/pkg/logging"
	"github.com/adrianowead/wead/pkg/store"
)

type contextKey string

const repositoryKey contextKey = "repository"

var container *di.Container

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

// rootOptions holds the persistent flags and what setup derives from them
type rootOptions struct {
	configPath string
	dataFile   string
	logLevel   string
	output     string

	config *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the wead command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "wead",
		Short: "wead - embedded person record store",
		Long: `wead keeps person records (name, email, phone) in a single
delimited text file and exposes them through this command line and a
REST API. It also ships a synthetic order pricing benchmark.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.loadConfig(); err != nil {
				return err
			}
			return opts.openRepository(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/wead/config.yaml)")
	flags.StringVarP(&opts.dataFile, "file", "f", "", "Data file, overrides data_file from the config")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVarP(&opts.output, "output", "o", "table", "Output format (table, json)")

	rootCmd.AddCommand(
		newCreateCmd(opts),
		newGetCmd(opts),
		newListCmd(opts),
		newSearchCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newCountCmd(opts),
		newClearCmd(opts),
		newStatsCmd(opts),
		newBenchCmd(opts),
		newServeCmd(opts),
		newInitCmd(opts),
	)

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, applies flag overrides and builds the logger
func (o *rootOptions) loadConfig() error {
	if o.output != "table" && o.output != "json" {
		return fmt.Errorf("invalid output format %q, expected table or json", o.output)
	}

	path := o.configPath
	if path == "" {
		path = config.GetDefaultConfigPath()
	}

	var cfg *config.Config
	switch {
	case config.ConfigExists(path):
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	case o.configPath != "":
		return fmt.Errorf("config file does not exist: %s", o.configPath)
	default:
		cfg = config.DefaultConfig()
	}

	if o.dataFile != "" {
		cfg.DataFile = o.dataFile
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}

	if container == nil {
		container = di.NewContainer()
	}
	container.SetLogger(logger)

	o.config = cfg
	o.logger = logger
	return nil
}

// openRepository opens the data file and stores the repository in the command context
func (o *rootOptions) openRepository(cmd *cobra.Command) error {
	repo, err := container.GetRepositoryFactory().OpenRepository(store.RepositoryConfig{
		FilePath:      o.config.DataFile,
		Sync:          o.config.Storage.Sync,
		MaxRecordSize: o.config.Storage.MaxRecordSize,
		Logger:        o.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), repositoryKey, repo))
	return nil
}

// repositoryFrom returns the repository opened by the root command
func repositoryFrom(cmd *cobra.Command) (*store.Repository, error) {
	repo, ok := cmd.Context().Value(repositoryKey).(*store.Repository)
	if !ok {
		return nil, fmt.Errorf("repository not found in context")
	}
	return repo, nil
}
