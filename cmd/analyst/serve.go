package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"solana_analyst/internal/infrastructure/restapi"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the dashboard HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address, overrides server.port",
			},
		},
		Action: func(c *cli.Context) error {
			app, err := buildApplication(c)
			if err != nil {
				return err
			}
			defer func() { _ = app.zapLogger.Sync() }()
			return runServer(c.Context, app, c.String("addr"))
		},
	}
}

func runServer(ctx context.Context, app *application, addr string) error {
	cfg := app.cfg
	if addr == "" {
		addr = cfg.Server.Port
	}
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := restapi.NewHandler(app.snapshots, app.prices, app.supply, app.chat, app.zapLogger)
	router := restapi.SetupRouter(handler, app.zapLogger, restapi.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Gatherer:       app.registry,
		Metrics:        app.metrics,
		SwaggerEnabled: cfg.Swagger.Enabled,
		SwaggerPath:    cfg.Swagger.Path,
		EnablePprof:    cfg.Server.EnablePprof,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.zapLogger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-serveErr:
		if ok {
			return err
		}
		return nil
	case <-sigCtx.Done():
	}

	app.zapLogger.Info("Shutdown signal received, stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.zapLogger.Error("Graceful shutdown failed", zap.Error(err))
		return err
	}
	app.zapLogger.Info("HTTP server stopped")
	return nil
}
