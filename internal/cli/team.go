package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show task totals per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := a.service.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if summary.Total == 0 {
				fmt.Fprintln(w, "No tasks yet.")
				return nil
			}
			fmt.Fprintf(w, "Total: %d\nNew: %d\nIn Progress: %d\nDone: %d\n",
				summary.Total, summary.New, summary.InProgress, summary.Done)
			return nil
		},
	}
}

func newTeamCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "team",
		Short: "Show the team and each member's task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := a.service.TeamStats(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tROLE\tEMAIL\tTOTAL\tIN PROGRESS\tDONE")
			for _, m := range members {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
					m.Name, m.Role, m.Email, m.Total, m.InProgress, m.Done)
			}
			return tw.Flush()
		},
	}
}
