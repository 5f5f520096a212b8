package cmd

import (
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all person records",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repositoryFrom(cmd)
			if err != nil {
				return err
			}

			people, err := repo.ListAll()
			if err != nil {
				return err
			}
			return outputPersons(cmd.OutOrStdout(), opts.output, people)
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Find persons whose name contains text",
		Long: `Find persons whose name contains text, ignoring case.

Example:
  wead search silva`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repositoryFrom(cmd)
			if err != nil {
				return err
			}

			people, err := repo.SearchByName(args[0])
			if err != nil {
				return err
			}
			return outputPersons(cmd.OutOrStdout(), opts.output, people)
		},
	}
}
