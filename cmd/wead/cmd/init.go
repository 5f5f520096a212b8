/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrianowead/wead/pkg/config"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a configuration file with default settings.

The file goes to --config, or ~/.config/wead/config.yaml when not given.
--file sets data_file in the new configuration.

Examples:
  wead init
  wead init --config ./wead.yaml --file ./data/persons.csv --force`,
		Args: cobra.NoArgs,
		// nothing to load yet
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.GetDefaultConfigPath()
			}

			out := cmd.OutOrStdout()
			if config.ConfigExists(path) && !force {
				fmt.Fprintf(out, "Config already exists at %s. Use --force to overwrite.\n", path)
				return nil
			}

			cfg, err := config.BootstrapConfig(path, opts.dataFile)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Config written to %s\n", path)
			fmt.Fprintf(out, "Data file: %s\n", cfg.DataFile)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return initCmd
}
