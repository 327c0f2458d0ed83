package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aurastudio/aura/internal/timeline"
)

func newTimelineCommand(cmdCtx *commandContext) *cobra.Command {
	var asJSON bool
	var zoom float64
	var snapAt float64

	cmd := &cobra.Command{
		Use:   "timeline <project-id>",
		Short: "Inspect a project timeline and its snap points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cmdCtx.ensureClient()
			if err != nil {
				return err
			}

			tl, err := client.FetchTimeline(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), tl)
			}

			userPrefs := cmdCtx.userPrefs()
			if zoom <= 0 {
				zoom = userPrefs.DefaultZoom
			}

			gridInterval := timeline.GridInterval(zoom)
			points := timeline.GenerateSnapPoints(
				tl.Playhead, tl.SceneStarts(), tl.SceneEnds(),
				gridInterval, tl.Duration, tl.MarkerPositions())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project:   %s\n", tl.ProjectID)
			fmt.Fprintf(out, "Duration:  %s\n", formatSeconds(tl.Duration))
			fmt.Fprintf(out, "Playhead:  %.2fs\n", tl.Playhead)
			fmt.Fprintf(out, "Grid:      every %.0fs at %.0f px/s\n", gridInterval, zoom)
			fmt.Fprintf(out, "Snap pts:  %d\n", len(points))

			if len(tl.Scenes) > 0 {
				rows := make([][]string, 0, len(tl.Scenes))
				for _, scene := range tl.Scenes {
					rows = append(rows, []string{
						scene.Name,
						strconv.FormatFloat(scene.Start, 'f', 2, 64),
						strconv.FormatFloat(scene.End, 'f', 2, 64),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Scene", "Start", "End"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight},
				))
			}
			for _, marker := range tl.Markers {
				fmt.Fprintf(out, "Marker %-20s %.2fs\n", marker.Label, marker.Position)
			}

			if cmd.Flags().Changed("snap") {
				snapper := userPrefs.Snapper()
				result := snapper.Resolve(snapAt, points, zoom)
				if result.Snapped {
					fmt.Fprintf(out, "Snap %.2fs -> %.2fs (%s)\n", snapAt, result.Position, result.Point.Type)
				} else {
					fmt.Fprintf(out, "Snap %.2fs -> no snap point within threshold\n", snapAt)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().Float64Var(&zoom, "zoom", 0, "Zoom level in pixels per second (default from prefs)")
	cmd.Flags().Float64Var(&snapAt, "snap", 0, "Resolve a snap for this position in seconds")
	return cmd
}
