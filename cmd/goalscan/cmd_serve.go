package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/solarreach/goalscan/internal/projectconfig"
	"github.com/solarreach/goalscan/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var (
		paths       pathFlags
		port        int
		corsOrigins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the goal API over HTTP",
		Long: `Serve the goal API over HTTP on 127.0.0.1.

Endpoints:
  GET  /api/goals       stored goal definitions
  POST /api/goals       replace the stored goals ({"goals": [...]})
  GET  /api/goals/scan  run every detector and return the report
  GET  /api/health      liveness probe

Every scan request re-reads the goals document and the source tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := paths.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if len(corsOrigins) > 0 {
				cfg.Server.CORSOrigins = corsOrigins
			}

			scanner, store, err := newScanner(cfg)
			if err != nil {
				return err
			}

			srv, err := webserver.New(webserver.Config{
				Port:        cfg.Server.Port,
				Store:       store,
				Scanner:     scanner,
				CORSOrigins: cfg.Server.CORSOrigins,
				Logger:      slog.Default(),
				Out:         cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	paths.register(cmd)
	cmd.Flags().IntVarP(&port, "port", "p", projectconfig.DefaultServerPort, "Port to listen on")
	cmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable)")

	return cmd
}
