package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newCacheCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local asset cache",
	}

	cmd.AddCommand(newCacheUsageCommand(cmdCtx))
	cmd.AddCommand(newCachePruneCommand(cmdCtx))
	cmd.AddCommand(newCacheClearCommand(cmdCtx))
	return cmd
}

func newCacheUsageCommand(cmdCtx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show cached assets and total size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assets, err := cmdCtx.ensureCache()
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), struct {
					Entries any `json:"entries"`
					Usage   any `json:"usage"`
				}{assets.List(), assets.Usage()})
			}

			usage := assets.Usage()
			out := cmd.OutOrStdout()
			if usage.Entries == 0 {
				fmt.Fprintln(out, "Asset cache is empty.")
				return nil
			}

			rows := make([][]string, 0, usage.Entries)
			for _, entry := range assets.List() {
				rows = append(rows, []string{
					entry.AssetID,
					entry.ProjectID,
					entry.Label,
					formatBytes(entry.Size),
					formatTimestamp(entry.CachedAt),
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Asset", "Project", "Label", "Size", "Cached"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d assets, %s total\n", usage.Entries, formatBytes(usage.TotalBytes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newCachePruneCommand(cmdCtx *commandContext) *cobra.Command {
	var maxAgeDays int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached assets older than the age limit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assets, err := cmdCtx.ensureCache()
			if err != nil {
				return err
			}

			removed, err := assets.Prune(time.Duration(maxAgeDays) * 24 * time.Hour)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d cached assets.\n", removed)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxAgeDays, "max-age", 30, "Remove assets older than this many days")
	return cmd
}

func newCacheClearCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assets, err := cmdCtx.ensureCache()
			if err != nil {
				return err
			}

			if err := assets.Clear(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Asset cache cleared.")
			return nil
		},
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
