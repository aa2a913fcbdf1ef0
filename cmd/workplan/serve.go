package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mepworks/workplan-generator/internal/logging"
	"github.com/mepworks/workplan-generator/internal/server"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the allocation pipeline over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(v)
			if err != nil {
				return err
			}

			asm, err := newAssembler(settings)
			if err != nil {
				return err
			}
			srv, err := server.NewServer(asm, nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx = logging.IntoContext(ctx, logging.Log)

			return srv.Start(ctx, settings.Listen)
		},
	}

	cmd.Flags().String("listen", ":8080", "bind address")
	return cmd
}
