package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a person record",
		Long: `Delete the person record with the given id. The id is never reused.

Example:
  wead delete 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			repo, err := repositoryFrom(cmd)
			if err != nil {
				return err
			}

			if err := repo.Delete(id); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.output == "json" {
				return outputJSON(out, map[string]int64{"deleted": id})
			}
			fmt.Fprintf(out, "Deleted person %d\n", id)
			return nil
		},
	}
}
