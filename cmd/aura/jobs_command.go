package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aurastudio/aura/internal/render"
)

func newJobsCommand(cmdCtx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List render jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cmdCtx.ensureClient()
			if err != nil {
				return err
			}

			jobs, err := client.FetchJobs(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), jobs)
			}

			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No render jobs.")
				return nil
			}

			// Failed and active jobs first, then by recency within a status.
			sort.SliceStable(jobs, func(i, j int) bool {
				ri, rj := render.StatusRank(jobs[i].Status), render.StatusRank(jobs[j].Status)
				if ri != rj {
					return ri < rj
				}
				return jobs[i].ParsedUpdatedAt().After(jobs[j].ParsedUpdatedAt())
			})

			renderer := cmdCtx.renderer()
			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				progress := "-"
				if job.Status == "rendering" {
					progress = render.ProgressBar(job.Progress.Percent, 10)
					if job.Progress.Stage != "" {
						progress += " " + job.Progress.Stage
					}
				}
				detail := job.ErrorMessage
				if detail == "" {
					detail = job.OutputFile
				}
				rows = append(rows, []string{
					strconv.FormatInt(job.ID, 10),
					job.ProjectName,
					job.Preset,
					renderer.JobStatus(job.Status),
					progress,
					detail,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Project", "Preset", "Status", "Progress", "Detail"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.AddCommand(newJobsCancelCommand(cmdCtx))
	return cmd
}

func newJobsCancelCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <job-id>",
		Short: "Cancel a queued or rendering job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job ID %q", args[0])
			}

			client, err := cmdCtx.ensureClient()
			if err != nil {
				return err
			}

			if err := client.CancelJob(cmd.Context(), jobID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled job %d.\n", jobID)
			return nil
		},
	}
}
