package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	accountStore "treetroopers/internal/adapters/storage/account"
	"treetroopers/internal/application/orchestrators"
)

func newDevAccountCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev-account",
		Short: "Manage the developer login",
	}

	var email string
	set := &cobra.Command{
		Use:   "set",
		Short: "Create the developer account or reset its password and lockout",
		Long:  "The password is read from CLUB_DEV_PASSWORD so it stays out of shell history.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password := os.Getenv("CLUB_DEV_PASSWORD")
			if email == "" || password == "" {
				return errors.New("--email and CLUB_DEV_PASSWORD are required")
			}
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			deps := orchestrators.DeveloperDeps{DeveloperStore: accountStore.NewSQLiteStore(s.db)}
			dev, err := orchestrators.ExecuteSetDeveloperPassword(cmd.Context(), deps, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "developer %s ready\n", dev.Email)
			return nil
		},
	}
	set.Flags().StringVar(&email, "email", "", "developer email")

	cmd.AddCommand(set)
	return cmd
}
