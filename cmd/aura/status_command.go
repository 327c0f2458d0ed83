package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newStatusCommand(cmdCtx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show backend health and job statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cmdCtx.ensureClient()
			if err != nil {
				return err
			}

			status, err := client.FetchStatus(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), status)
			}

			out := cmd.OutOrStdout()
			running := "stopped"
			if status.Running {
				running = "running"
			}
			fmt.Fprintf(out, "Backend:  %s (%s)\n", status.Version, running)
			fmt.Fprintf(out, "Uptime:   %s\n", formatSeconds(float64(status.UptimeSeconds)))
			if status.LastError != "" {
				fmt.Fprintf(out, "Error:    %s\n", status.LastError)
			}

			if len(status.JobStats) == 0 {
				fmt.Fprintln(out, "Jobs:     none")
				return nil
			}

			statuses := make([]string, 0, len(status.JobStats))
			for s := range status.JobStats {
				statuses = append(statuses, s)
			}
			sort.Strings(statuses)

			fmt.Fprintln(out, "Jobs:")
			for _, s := range statuses {
				fmt.Fprintf(out, "  %-10s %d\n", s, status.JobStats[s])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
