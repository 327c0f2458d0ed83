package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aurastudio/aura/internal/logtail"
)

func newLogsCommand(cmdCtx *commandContext) *cobra.Command {
	var lines int
	var level string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of the Aura log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			var entries []string
			if level != "" {
				entries, err = logtail.ReadMatching(cfg.LogPath(), lines, logtail.LevelMatcher(level))
			} else {
				entries, err = logtail.Read(cfg.LogPath(), lines)
			}
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No log entries.")
				return nil
			}

			for _, entry := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), entry)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().StringVar(&level, "level", "", "Only show entries at this level (e.g. WARN)")
	return cmd
}
