package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"speciesmap/internal/mapper"
	"speciesmap/internal/preflight"
	"speciesmap/internal/session"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the loaded dataset, the gallery, and environment checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *mapper.Service) error {
				status, err := svc.Status(cmd.Context())
				if err != nil {
					return err
				}
				return emit(cmd, ctx, status, func() error {
					out := cmd.OutOrStdout()
					printLines(out, statusLines(status, shouldColorize(out))...)
					return nil
				})
			})
		},
	}
}

func statusLines(status *mapper.Status, colorize bool) []string {
	var lines []string

	lines = append(lines, renderSectionHeader("Session", colorize)...)
	if status.Dataset == nil {
		lines = append(lines, renderStatusLine("Dataset", statusWarn, "Nothing loaded", colorize))
	} else {
		ds := status.Dataset
		lines = append(lines, renderStatusLine("Dataset", statusOK, ds.Source, colorize))
		lines = append(lines, renderStatusLine("Records", statusInfo,
			fmt.Sprintf("%d kept, %d species, loaded %s", ds.Summary.Matched, ds.Summary.Species, humanize.Time(ds.LoadedAt)), colorize))
		if n := len(ds.Summary.Unmatched); n > 0 {
			lines = append(lines, renderStatusLine("Unmatched", statusWarn,
				fmt.Sprintf("%d county value(s) skipped", n), colorize))
		}
	}
	if status.Gallery == nil {
		lines = append(lines, renderStatusLine("Gallery", statusInfo, "Not generated", colorize))
	} else {
		g := status.Gallery
		lines = append(lines, renderStatusLine("Gallery", statusOK,
			fmt.Sprintf("%s %s, %d species", g.Family, g.Genus, g.Species), colorize))
		lines = append(lines, renderStatusLine("Page", statusInfo,
			fmt.Sprintf("%d of %d", g.Page, g.PageCount), colorize))
		if g.Legend != "" {
			lines = append(lines, renderStatusLine("Legend", statusInfo, g.Legend, colorize))
		}
	}
	if status.Busy {
		lines = append(lines, renderStatusLine("Lock", statusWarn, "Another run is in progress", colorize))
	} else {
		lines = append(lines, renderStatusLine("Lock", statusOK, "Idle", colorize))
	}
	if status.LastRun != nil {
		lines = append(lines, renderStatusLine("Last run", runStatusKind(status.LastRun), lastRunMessage(status.LastRun), colorize))
	}

	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Checks", colorize)...)
	lines = append(lines, checkLines(status.Checks, colorize)...)
	return lines
}

func checkLines(checks []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(checks))
	for _, check := range checks {
		kind := statusOK
		if !check.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(check.Name, kind, check.Detail, colorize))
	}
	return lines
}

func runStatusKind(run *session.Run) statusKind {
	switch run.Status {
	case session.RunSucceeded:
		return statusOK
	case session.RunFailed:
		return statusError
	default:
		return statusInfo
	}
}

func lastRunMessage(run *session.Run) string {
	parts := []string{string(run.Kind), string(run.Status)}
	if !run.StartedAt.IsZero() {
		parts = append(parts, humanize.Time(run.StartedAt))
	}
	msg := strings.Join(parts, ", ")
	if run.Error != "" {
		msg += ": " + run.Error
	}
	return msg
}
