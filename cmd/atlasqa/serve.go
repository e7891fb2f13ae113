package main

import (
	"github.com/spf13/cobra"

	"atlasqa/internal/platform/httpserver"
	httptransport "atlasqa/internal/transport/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve metrics, stored reports and on-demand suite runs over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, loadConfig(cmd))
		if err != nil {
			return err
		}
		defer a.Close()

		opts := append([]httptransport.Option{
			httptransport.WithLogger(a.logger),
			httptransport.WithMetrics(a.metrics),
		}, a.probes()...)
		h := httptransport.New(a.runner, a.reportStore(), opts...)

		a.logger.InfoContext(ctx, "starting atlasqa",
			"addr", a.cfg.Server.Addr,
			"base_url", a.cfg.API.BaseURL,
			"strict", a.cfg.Strict,
		)
		return httpserver.Run(ctx, httpserver.New(a.cfg.Server.Addr, h.Router()), a.logger)
	},
}
