package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCountCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of person records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repositoryFrom(cmd)
			if err != nil {
				return err
			}

			count, err := repo.Count()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.output == "json" {
				return outputJSON(out, map[string]int{"count": count})
			}
			fmt.Fprintf(out, "%d\n", count)
			return nil
		},
	}
}
