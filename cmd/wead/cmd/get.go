package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/adrianowead/wead/pkg/store"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a person record",
		Long: `Show the person record with the given id.

Example:
  wead get 1
  wead get 1 -o json`,
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

			p, found, err := repo.FindByID(id)
			if err != nil {
				return err
			}
			if !found {
				return &store.NotFoundError{ID: id}
			}

			return outputPerson(cmd.OutOrStdout(), opts.output, p)
		},
	}
}

// parseIDArg parses a positive record id
func parseIDArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", arg)
	}
	return id, nil
}
