package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"treetroopers/internal/adapters/storage/kv"
	"treetroopers/internal/application/orchestrators"
)

func contentDeps(s *site) orchestrators.ContentDeps {
	return orchestrators.ContentDeps{Store: kv.NewSQLiteStore(s.db)}
}

func newContentCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect or reset the committed site content",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the committed content as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			c := orchestrators.ExecuteLoadContent(cmd.Context(), contentDeps(s))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		},
	}

	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete saved content and theme so the site starts from defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			if err := orchestrators.ExecuteResetSite(cmd.Context(), contentDeps(s)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "site content reset to defaults")
			return nil
		},
	}
	reset.Flags().BoolVar(&yes, "yes", false, "confirm the reset")

	cmd.AddCommand(show, reset)
	return cmd
}

func newThemeCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect or change the site colours",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			t := orchestrators.ExecuteLoadTheme(cmd.Context(), contentDeps(s))
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
				"p1": t.P1,
				"p2": t.P2,
				"p3": t.P3,
			})
		},
	}

	var p1, p2, p3 string
	set := &cobra.Command{
		Use:   "set",
		Short: "Replace the colours given as flags; others are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			deps := contentDeps(s)
			t := orchestrators.ExecuteLoadTheme(cmd.Context(), deps).WithOverrides(p1, p2, p3)
			if err := orchestrators.ExecuteSaveTheme(cmd.Context(), t, deps); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.CSSVars())
			return nil
		},
	}
	set.Flags().StringVar(&p1, "p1", "", "primary colour")
	set.Flags().StringVar(&p2, "p2", "", "secondary colour")
	set.Flags().StringVar(&p3, "p3", "", "accent colour")

	cmd.AddCommand(show, set)
	return cmd
}
