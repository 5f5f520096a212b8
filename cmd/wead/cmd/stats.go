package cmd

import (
	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show data file statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repositoryFrom(cmd)
			if err != nil {
				return err
			}

			stats, err := repo.Stats()
			if err != nil {
				return err
			}
			return outputStats(cmd.OutOrStdout(), opts.output, stats)
		},
	}
}
