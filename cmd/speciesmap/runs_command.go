package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"speciesmap/internal/mapper"
	"speciesmap/internal/session"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent load, generate, and export runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *mapper.Service) error {
				runs, err := svc.Runs(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return emit(cmd, ctx, runs, func() error {
					if len(runs) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
						return nil
					}
					fmt.Fprintln(cmd.OutOrStdout(), renderTable("",
						[]string{"ID", "Kind", "Status", "Started", "Selection", "Species", "Pages", "Detail"},
						runRows(runs, time.Now()),
						[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
					))
					return nil
				})
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

func runRows(runs []*session.Run, now time.Time) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		id := run.ID
		if len(id) > 8 {
			id = id[:8]
		}
		selection := strings.TrimSpace(strings.Join([]string{run.Family, run.Genus}, " "))
		detail := run.Output
		if run.Error != "" {
			detail = run.Error
		}
		rows = append(rows, []string{
			id,
			string(run.Kind),
			string(run.Status),
			humanize.RelTime(run.StartedAt, now, "ago", "from now"),
			selection,
			strconv.Itoa(run.Species),
			strconv.Itoa(run.Pages),
			detail,
		})
	}
	return rows
}
