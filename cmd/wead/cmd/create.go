package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrianowead/wead/pkg/person"
)

func newCreateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> <email> <phone>",
		Short: "Create a person record",
		Long: `Create a person record and print the id assigned to it.

Example:
  wead create "Ana Silva" ana@example.com "(11) 98765-4321"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repositoryFrom(cmd)
			if err != nil {
				return err
			}

			p := person.New(args[0], args[1], args[2])
			id, err := repo.Create(p)
			if err != nil {
				return fmt.Errorf("failed to create person: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.output == "json" {
				return outputJSON(out, p)
			}
			fmt.Fprintf(out, "Created person with ID %d\n", id)
			return nil
		},
	}
}
