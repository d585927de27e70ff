package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "svw.info/cheryl/internal/adapters/http"
	mcpadapter "svw.info/cheryl/internal/adapters/mcp"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			uc, err := a.service(true)
			if err != nil {
				return err
			}
			mux := http.NewServeMux()
			httpadapter.New(uc).Register(mux)

			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           httpadapter.RequestLogger(a.logger.Named("http"), mux),
				ReadHeaderTimeout: a.cfg.Server.ReadHeaderTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			a.logger.Info("listening",
				zap.String("addr", srv.Addr),
				zap.String("storage", a.cfg.Storage.Backend),
				zap.String("path", a.cfg.Storage.Path))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: config server.addr)")
	return cmd
}

func (a *app) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the solver as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := a.service(false)
			if err != nil {
				return err
			}
			a.logger.Info("mcp server starting", zap.String("version", mcpadapter.Version))
			return mcpadapter.Serve(mcpadapter.New(uc, a.logger.Named("mcp")))
		},
	}
}
