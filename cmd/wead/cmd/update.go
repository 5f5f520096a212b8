package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrianowead/wead/pkg/store"
)

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var name, email, phone string

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a person record",
		Long: `Change the name, email or phone of a person record. Fields whose flag
is not given keep their stored value.

Example:
  wead update 1 --email ana.silva@example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("email") && !flags.Changed("phone") {
				return errors.New("nothing to update: pass --name, --email or --phone")
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

			if flags.Changed("name") {
				p.SetName(name)
			}
			if flags.Changed("email") {
				if err := p.SetEmail(email); err != nil {
					return err
				}
			}
			if flags.Changed("phone") {
				p.SetPhone(phone)
			}

			if err := repo.Update(p); err != nil {
				return fmt.Errorf("failed to update person: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.output == "json" {
				return outputJSON(out, p)
			}
			fmt.Fprintf(out, "Updated person %d\n", id)
			return outputPerson(out, opts.output, p)
		},
	}

	updateCmd.Flags().StringVar(&name, "name", "", "New name")
	updateCmd.Flags().StringVar(&email, "email", "", "New email")
	updateCmd.Flags().StringVar(&phone, "phone", "", "New phone")

	return updateCmd
}
