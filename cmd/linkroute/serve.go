package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vango-dev/linkroute/pkg/httpbridge"
)

func serveCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the router over HTTP",
		Long: `Start the HTTP bridge.

Endpoints:
  GET  /resolve?url=...   match a URL
  POST /open              dispatch {"url": "..."}
  GET  /routes            list routes
  GET  /healthz           liveness
  GET  /metrics           Prometheus metrics (when metrics.enabled)

Examples:
  linkroute serve
  linkroute serve --addr=127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, opts, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from linkroute.json)")
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, opts *globalOptions, addr string) error {
	a, err := newApp(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if addr == "" {
		addr = a.cfg.HTTP.Addr
	}

	srvOpts := []httpbridge.Option{httpbridge.WithLogger(a.logger)}
	if a.registry != nil {
		srvOpts = append(srvOpts,
			httpbridge.WithGatherer(a.registry),
			httpbridge.WithMetrics(a.metrics),
		)
	}

	out := cmd.OutOrStdout()
	success(out, "serving %d routes on %s", len(a.router.Routes()), addr)
	return httpbridge.New(a.router, srvOpts...).ListenAndServe(ctx, addr)
}
