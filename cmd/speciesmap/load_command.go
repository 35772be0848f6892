package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"speciesmap/internal/mapper"
)

func newLoadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Load a specimen table (.xlsx or .csv) into the session",
		Long: "Load reads the first sheet of an .xlsx workbook or a .csv file with County, Family,\n" +
			"Genus and Species columns (Subgenus and Year are optional). Rows whose county\n" +
			"matches no reference area are skipped. Loading discards any generated gallery.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *mapper.Service) error {
				result, err := svc.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return emit(cmd, ctx, result, func() error {
					printLoadSummary(cmd, result)
					return nil
				})
			})
		},
	}
}

func printLoadSummary(cmd *cobra.Command, result *mapper.LoadResult) {
	out := cmd.OutOrStdout()
	s := result.Summary
	fmt.Fprintf(out, "Loaded %s\n", result.Source)

	rows := [][]string{
		{"Rows read", strconv.Itoa(s.TotalRows)},
		{"Records kept", strconv.Itoa(s.Matched)},
		{"Families", strconv.Itoa(s.Families)},
		{"Genera", strconv.Itoa(s.Genera)},
		{"Species", strconv.Itoa(s.Species)},
		{"Counties", strconv.Itoa(s.Counties)},
		{"Blank county rows", strconv.Itoa(s.BlankCounty)},
	}
	if len(s.OptionalCols) > 0 {
		rows = append(rows, []string{"Optional columns", strings.Join(s.OptionalCols, ", ")})
	}
	fmt.Fprintln(out, renderTable("", []string{"Item", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

	if len(s.Unmatched) == 0 {
		return
	}
	unmatched := make([][]string, 0, len(s.Unmatched))
	for _, u := range s.Unmatched {
		unmatched = append(unmatched, []string{u.Value, strconv.Itoa(u.Rows)})
	}
	fmt.Fprintln(out, renderTable("Counties without a reference area", []string{"County", "Rows"}, unmatched, []columnAlignment{alignLeft, alignRight}))
}
