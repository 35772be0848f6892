package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"speciesmap/internal/config"
	"speciesmap/internal/mapper"
	"speciesmap/internal/palette"
)

type generateFlags struct {
	family        string
	genus         string
	color         string
	splitYear     string
	preColor      string
	postColor     string
	fallbackColor string
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build one map per species for a family/genus selection",
		Long: "Generate filters the loaded dataset by family and genus and builds one county map\n" +
			"per species, sorted by scientific name. Occupied counties are drawn with --color,\n" +
			"or split by collection year with --split-year. Common colors: " +
			strings.Join(palette.CommonChoices, ", ") + ".\n" +
			"Any CSS color name or #rrggbb value is accepted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			spec, err := flags.policy(cmd, cfg.Colors)
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *mapper.Service) error {
				progress := newProgressReporter(cmd, ctx, "Building maps")
				result, err := svc.Generate(cmd.Context(), mapper.GenerateRequest{
					Family: flags.family,
					Genus:  flags.genus,
					Policy: spec,
				}, progress.update)
				progress.finish()
				if err != nil {
					return err
				}
				return emit(cmd, ctx, result, func() error {
					printGenerateResult(cmd, result)
					return nil
				})
			})
		},
	}

	cmd.Flags().StringVar(&flags.family, "family", "", "Family to map (\"All\" or \"Not Specified\" accepted)")
	cmd.Flags().StringVar(&flags.genus, "genus", "", "Genus to map (\"All\" or \"Not Specified\" accepted)")
	cmd.Flags().StringVar(&flags.color, "color", "", "Color for occupied counties (defaults to colors.default)")
	cmd.Flags().StringVar(&flags.splitYear, "split-year", "", "Color counties by whether records fall before or after this year")
	cmd.Flags().StringVar(&flags.preColor, "pre-color", "", "Color for records before --split-year")
	cmd.Flags().StringVar(&flags.postColor, "post-color", "", "Color for records in or after --split-year")
	cmd.Flags().StringVar(&flags.fallbackColor, "fallback-color", "", "Color for counties whose records carry no year")
	cmd.MarkFlagsMutuallyExclusive("color", "split-year")
	_ = cmd.MarkFlagRequired("family")
	_ = cmd.MarkFlagRequired("genus")
	return cmd
}

// policy resolves the color flags. Zero-valued flags fall back to the
// configured colors. An empty Spec lets the service apply its own default.
func (f generateFlags) policy(cmd *cobra.Command, colors config.Colors) (palette.Spec, error) {
	if f.splitYear == "" {
		for _, name := range []string{"pre-color", "post-color", "fallback-color"} {
			if cmd.Flags().Changed(name) {
				return palette.Spec{}, fmt.Errorf("--%s requires --split-year", name)
			}
		}
		if f.color == "" {
			return palette.Spec{}, nil
		}
		return palette.Spec{Kind: palette.KindSingle, Color: f.color}, nil
	}

	spec := palette.Spec{
		Kind:     palette.KindYearSplit,
		Split:    f.splitYear,
		Pre:      f.preColor,
		Post:     f.postColor,
		Fallback: f.fallbackColor,
	}
	if spec.Pre == "" {
		spec.Pre = colors.PreColor
	}
	if spec.Post == "" {
		spec.Post = colors.PostColor
	}
	if spec.Fallback == "" {
		spec.Fallback = colors.Default
	}
	if spec.Pre == "" || spec.Post == "" {
		return palette.Spec{}, errors.New("--split-year requires --pre-color and --post-color (or colors.pre_color and colors.post_color)")
	}
	return spec, nil
}

func printGenerateResult(cmd *cobra.Command, result *mapper.GenerateResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d species on %d page(s)\n", result.Title, len(result.Species), result.Pages)
	fmt.Fprintf(out, "Legend: %s\n", result.Legend)

	report := result.Unmatched
	if len(report.Counties) == 0 {
		return
	}
	rows := make([][]string, 0, len(report.Counties))
	for _, county := range report.Counties {
		rows = append(rows, []string{county, report.Suggestions[county]})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable("Counties not drawn", []string{"County", "Did you mean"}, rows, nil))
	if len(report.ValidNames) > 0 {
		fmt.Fprintf(out, "Valid county names: %s\n", strings.Join(report.ValidNames, ", "))
	}
}

// progressReporter creates its bar on the first update so quiet runs and
// JSON output never draw one.
type progressReporter struct {
	cmd         *cobra.Command
	description string
	enabled     bool
	bar         *progressbar.ProgressBar
}

func newProgressReporter(cmd *cobra.Command, ctx *commandContext, description string) *progressReporter {
	return &progressReporter{
		cmd:         cmd,
		description: description,
		enabled:     !ctx.jsonOutput(),
	}
}

func (p *progressReporter) update(current, total int) {
	if !p.enabled || total <= 0 {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.cmd.ErrOrStderr()),
			progressbar.OptionSetDescription(p.description),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(current)
}

func (p *progressReporter) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
