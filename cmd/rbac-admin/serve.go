package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/paulvitic/rbac-admin/application"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the users dashboard until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return application.NewDashboard(cfg, logger).Run(ctx)
		},
	}
	cmd.Flags().String("host", "", "interface to listen on")
	cmd.Flags().Int("port", 0, "port to listen on")
	_ = opts.flags.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	_ = opts.flags.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}
