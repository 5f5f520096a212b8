package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every person record",
		Long: `Remove every person record, keeping only the header line.
Ids already handed out are not reused afterwards.

Example:
  wead clear --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}

			repo, err := repositoryFrom(cmd)
			if err != nil {
				return err
			}

			if err := repo.ClearAll(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed all records from %s\n", repo.Path())
			return nil
		},
	}

	clearCmd.Flags().BoolVar(&yes, "yes", false, "Confirm removal of every record")
	return clearCmd
}
