package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"healthdata/internal/server"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the provider lookup HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.Server.ListenAddr
			}
			var metricsHandler http.Handler
			if a.prom != nil {
				metricsHandler = a.prom.Handler()
			}

			srv := server.New(server.Config{
				Service:         a.service,
				MetricsHandler:  metricsHandler,
				ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
			})
			return srv.Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
