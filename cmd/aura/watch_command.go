package main

import (
	"github.com/spf13/cobra"

	"github.com/aurastudio/aura/internal/app"
)

func newWatchCommand(cmdCtx *commandContext) *cobra.Command {
	var interval int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the backend and print a status line per refresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: *cmdCtx.configFlag,
				PrefsPath:  *cmdCtx.prefsFlag,
				PollEvery:  interval,
				Colored:    stdoutIsTerminal(),
				Out:        cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().IntVarP(&interval, "interval", "n", 0, "Poll interval in seconds (default 2)")
	return cmd
}
