package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mepworks/workplan-generator/internal/export"
	"github.com/mepworks/workplan-generator/internal/logging"
	"github.com/mepworks/workplan-generator/pkg/config"
)

func newGenerateCommand(v *viper.Viper) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a workplan from a snapshot document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(v)
			if err != nil {
				return err
			}

			snap, err := config.Load(settings.SnapshotPath)
			if err != nil {
				return err
			}

			asm, err := newAssembler(settings)
			if err != nil {
				return err
			}

			ctx := logging.IntoContext(cmd.Context(), logging.Log)
			plan, breakdown, err := asm.Assemble(ctx, snap)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating output file %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			switch format {
			case "csv":
				return export.WriteCSV(out, plan)
			case "json":
				return export.WriteJSON(out, plan, breakdown)
			case "table":
				return export.WriteTable(out, plan, breakdown)
			default:
				return fmt.Errorf("unsupported format %q (want table, csv or json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
