package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"speciesmap/internal/mapper"
)

func newTaxaCommand(ctx *commandContext) *cobra.Command {
	taxaCmd := &cobra.Command{
		Use:   "taxa",
		Short: "List the families and genera in the loaded dataset",
	}
	taxaCmd.AddCommand(newTaxaFamiliesCommand(ctx))
	taxaCmd.AddCommand(newTaxaGeneraCommand(ctx))
	return taxaCmd
}

func newTaxaFamiliesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *mapper.Service) error {
				families, err := svc.Families(cmd.Context())
				if err != nil {
					return err
				}
				return emit(cmd, ctx, families, func() error {
					printChoices(cmd, families)
					return nil
				})
			})
		},
	}
}

func newTaxaGeneraCommand(ctx *commandContext) *cobra.Command {
	var family string
	cmd := &cobra.Command{
		Use:   "genera",
		Short: "List genera, optionally within one family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *mapper.Service) error {
				genera, err := svc.Genera(cmd.Context(), family)
				if err != nil {
					return err
				}
				return emit(cmd, ctx, genera, func() error {
					printChoices(cmd, genera)
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "Family to list genera for (\"All\" or \"Not Specified\" accepted)")
	return cmd
}

// printChoices lists values with the two selector keywords that generate
// always accepts.
func printChoices(cmd *cobra.Command, values []string) {
	out := cmd.OutOrStdout()
	for _, v := range values {
		fmt.Fprintln(out, v)
	}
	fmt.Fprintln(out, "All")
	fmt.Fprintln(out, "Not Specified")
}
