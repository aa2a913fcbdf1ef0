// The workplan command generates MEP fee workplans from configuration
// snapshots and serves the allocation pipeline over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mepworks/workplan-generator/internal/collector"
	"github.com/mepworks/workplan-generator/internal/engines/allocator"
	"github.com/mepworks/workplan-generator/internal/logging"
	"github.com/mepworks/workplan-generator/pkg/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "workplan",
		Short:         "MEP fee cascade and weighted workplan allocation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			settings, err := config.LoadSettings(v)
			if err != nil {
				return err
			}
			logging.Setup(settings.LogLevel, settings.Development)
			return nil
		},
	}

	root.PersistentFlags().String("snapshot", "workplan.json", "snapshot document path")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().Bool("development", false, "console log output")
	root.PersistentFlags().String("ratebook", "", "YAML $/SF ratebook overlay file")

	root.AddCommand(newGenerateCommand(v))
	root.AddCommand(newServeCommand(v))
	root.AddCommand(newInitCommand(v))
	return root
}

// newRateSource builds the rate source from settings: the built-in ratebook,
// optionally overlaid by a YAML file.
func newRateSource(settings *config.Settings) (collector.RateSource, error) {
	base := collector.NewRatebookSource(nil)
	if settings.RatebookPath == "" {
		return base, nil
	}
	return collector.NewFileSource(settings.RatebookPath, base)
}

func newAssembler(settings *config.Settings) (*allocator.Assembler, error) {
	source, err := newRateSource(settings)
	if err != nil {
		return nil, err
	}
	costs, err := collector.NewCostCollector(source)
	if err != nil {
		return nil, err
	}
	return allocator.NewAssembler(costs)
}

func loadSettings(v *viper.Viper) (*config.Settings, error) {
	return config.LoadSettings(v)
}
