package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"speciesmap/internal/mapper"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write gallery pages as TIFF images",
	}
	exportCmd.AddCommand(newExportPageCommand(ctx))
	exportCmd.AddCommand(newExportAllCommand(ctx))
	return exportCmd
}

func newExportPageCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "page [page]",
		Short: "Export the current page, or the given page number, as a TIFF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := pageArg(args)
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *mapper.Service) error {
				result, err := svc.ExportPage(cmd.Context(), n)
				if err != nil {
					return err
				}
				return emit(cmd, ctx, result, func() error {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote page %d to %s (%s)\n",
						result.Pages[0], result.Path, humanize.Bytes(uint64(result.Bytes)))
					return nil
				})
			})
		},
	}
}

func newExportAllCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Export every page into a single ZIP archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *mapper.Service) error {
				progress := newProgressReporter(cmd, ctx, "Rendering pages")
				result, err := svc.ExportAll(cmd.Context(), progress.update)
				progress.finish()
				if err != nil {
					return err
				}
				return emit(cmd, ctx, result, func() error {
					out := cmd.OutOrStdout()
					fmt.Fprintf(out, "Wrote %d page(s) to %s (%s)\n",
						len(result.Pages), result.Path, humanize.Bytes(uint64(result.Bytes)))
					if len(result.Members) > 0 {
						fmt.Fprintf(out, "Members: %s\n", strings.Join(result.Members, ", "))
					}
					return nil
				})
			})
		},
	}
}
