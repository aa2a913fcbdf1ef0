package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mepworks/workplan-generator/pkg/config"
)

func newInitCommand(v *viper.Viper) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default snapshot document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(v)
			if err != nil {
				return err
			}

			if !force {
				if _, err := config.LoadDocument(settings.SnapshotPath); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", settings.SnapshotPath)
				}
			}

			if err := config.SaveDocument(settings.SnapshotPath, config.DefaultDocument()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default snapshot to %s\n", settings.SnapshotPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing snapshot")
	return cmd
}
