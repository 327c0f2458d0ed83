package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}

	cmd.AddCommand(newConfigShowCommand(cmdCtx))
	return cmd
}

func newConfigShowCommand(cmdCtx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), struct {
					APIBind   string `json:"api_bind"`
					CacheDir  string `json:"cache_dir"`
					LogDir    string `json:"log_dir"`
					LogLevel  string `json:"log_level"`
					LogFormat string `json:"log_format"`
				}{cfg.APIBind, cfg.CacheDir, cfg.LogDir, cfg.LogLevel, cfg.LogFormat})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "api_bind   = %s\n", cfg.APIBind)
			fmt.Fprintf(out, "cache_dir  = %s\n", cfg.CacheDir)
			fmt.Fprintf(out, "log_dir    = %s\n", cfg.LogDir)
			fmt.Fprintf(out, "log_level  = %s\n", cfg.LogLevel)
			fmt.Fprintf(out, "log_format = %s\n", cfg.LogFormat)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
