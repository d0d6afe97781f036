package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fnoldesk/internal/bootstrap"
	"fnoldesk/internal/bootstrap/logging"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/usecase/fnol"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the FNOL REST API",
	PreRun: func(cmd *cobra.Command, _ []string) {
		debug, _ := cmd.Flags().GetBool("gin-debug")
		if !debug {
			gin.SetMode(gin.ReleaseMode)
		}
	},
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *fnol.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = app.Config.HTTP.Addr
		}
		skipSeed, _ := cmd.Flags().GetBool("skip-seed")

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}
		if !skipSeed {
			if err := svc.EnsureSeeded(ctx); err != nil {
				return errs.Wrap(err, "seed mock data")
			}
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		httpServer := app.Server.HTTPServer(addr)
		baseCtx := context.WithoutCancel(ctx)
		httpServer.BaseContext = func(net.Listener) context.Context { return baseCtx }

		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			logging.Info(ctx, "http server listening", slog.String("addr", addr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errs.Wrap(err, "listen and serve")
			}
			return nil
		})
		group.Go(func() error {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(baseCtx, app.Config.HTTP.ShutdownTimeout)
			defer cancel()

			logging.Info(ctx, "http server shutting down", slog.Duration("timeout", app.Config.HTTP.ShutdownTimeout))
			return errs.Wrap(httpServer.Shutdown(shutdownCtx), "shutdown http server")
		})

		if err := group.Wait(); err != nil {
			logging.Error(ctx, "http server stopped with error", slog.Any("err", errs.Loggable(err)))
			return err
		}
		logging.Info(ctx, "http server stopped")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default: http.addr from config)")
	serveCmd.Flags().Bool("skip-seed", false, "Do not seed mock data on startup")
	serveCmd.Flags().Bool("gin-debug", false, "Run gin in debug mode")
}
