package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"speciesmap/internal/fileutil"
	"speciesmap/internal/mapper"
)

// pageOutput is the JSON form of a page view.
type pageOutput struct {
	Page      int          `json:"page"`
	PageCount int          `json:"page_count"`
	Title     string       `json:"title"`
	Legend    string       `json:"legend"`
	HasPrev   bool         `json:"has_prev"`
	HasNext   bool         `json:"has_next"`
	Maps      []pageMapRow `json:"maps"`
	Preview   string       `json:"preview,omitempty"`
}

type pageMapRow struct {
	Figure  string `json:"figure"`
	Species string `json:"species"`
	Detail  string `json:"detail"`
}

func newPageOutput(view *mapper.PageView) pageOutput {
	out := pageOutput{
		Page:      view.Page.Number(),
		PageCount: view.PageCount,
		Title:     view.Page.Title,
		Legend:    view.Page.Legend,
		HasPrev:   view.HasPrev,
		HasNext:   view.HasNext,
	}
	for _, cell := range view.Page.Filled() {
		out.Maps = append(out.Maps, pageMapRow{
			Figure:  cell.Caption.Label,
			Species: cell.Caption.ScientificName(),
			Detail:  cell.Detail,
		})
	}
	return out
}

func newPageCommand(ctx *commandContext) *cobra.Command {
	pageCmd := &cobra.Command{
		Use:   "page",
		Short: "Browse the generated gallery",
	}
	pageCmd.AddCommand(newPageShowCommand(ctx))
	pageCmd.AddCommand(newPageStepCommand(ctx, "next", "Move to the next page", (*mapper.Service).NextPage))
	pageCmd.AddCommand(newPageStepCommand(ctx, "prev", "Move to the previous page", (*mapper.Service).PrevPage))
	pageCmd.AddCommand(newPagePreviewCommand(ctx))
	return pageCmd
}

func newPageShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show [page]",
		Short: "Show the current page, or jump to a page number",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := pageArg(args)
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *mapper.Service) error {
				view, err := svc.ShowPage(cmd.Context(), n)
				if err != nil {
					return err
				}
				return printPage(cmd, ctx, view)
			})
		},
	}
}

type pageStep func(*mapper.Service, context.Context) (*mapper.PageView, error)

func newPageStepCommand(ctx *commandContext, use, short string, step pageStep) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *mapper.Service) error {
				view, err := step(svc, cmd.Context())
				if err != nil {
					return err
				}
				return printPage(cmd, ctx, view)
			})
		},
	}
}

func newPagePreviewCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "preview [page]",
		Short: "Render a page to PNG without moving the cursor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := pageArg(args)
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *mapper.Service) error {
				var buf bytes.Buffer
				view, err := svc.Preview(cmd.Context(), n, &buf)
				if err != nil {
					return err
				}
				path := outPath
				if path == "" {
					path = fmt.Sprintf("page%d.png", view.Page.Number())
				}
				if _, err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
					_, err := w.Write(buf.Bytes())
					return err
				}); err != nil {
					return fmt.Errorf("write preview: %w", err)
				}
				out := newPageOutput(view)
				out.Preview = path
				return emit(cmd, ctx, out, func() error {
					if err := printPageText(cmd, out); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", path)
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "PNG destination (default page<N>.png)")
	return cmd
}

func pageArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid page number %q", args[0])
	}
	return n, nil
}

func printPage(cmd *cobra.Command, ctx *commandContext, view *mapper.PageView) error {
	out := newPageOutput(view)
	return emit(cmd, ctx, out, func() error {
		return printPageText(cmd, out)
	})
}

func printPageText(cmd *cobra.Command, page pageOutput) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n", page.Title)
	fmt.Fprintf(w, "Page %d of %d\n", page.Page, page.PageCount)
	rows := make([][]string, 0, len(page.Maps))
	for _, m := range page.Maps {
		rows = append(rows, []string{m.Figure, m.Species, m.Detail})
	}
	fmt.Fprintln(w, renderTable("", []string{"Figure", "Species", "Detail"}, rows, nil))
	fmt.Fprintf(w, "Legend: %s\n", page.Legend)
	return nil
}
