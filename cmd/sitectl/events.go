package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"treetroopers/internal/application/orchestrators"
	"treetroopers/internal/application/projections"
)

func newEventsCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List or add shared club events",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List events, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			events, err := projections.QueryListEvents(cmd.Context(), projections.ListEventsDeps{EventStore: s.events})
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTITLE\tLOCATION")
			for _, e := range events {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.EventDate, e.Title, e.Location)
			}
			return w.Flush()
		},
	}

	var in orchestrators.CreateEventInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an event without sending an announcement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			ev, err := orchestrators.ExecuteCreateEvent(cmd.Context(), in, orchestrators.CreateEventDeps{
				EventStore: s.events,
				Location:   s.cfg.Location(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created event %d\n", ev.ID)
			return nil
		},
	}
	add.Flags().StringVar(&in.Title, "title", "", "event title")
	add.Flags().StringVar(&in.EventDate, "date", "", "event date, YYYY-MM-DD")
	add.Flags().StringVar(&in.Location, "location", "", "where it happens")
	add.Flags().StringVar(&in.Description, "description", "", "free text")

	cmd.AddCommand(list, add)
	return cmd
}
