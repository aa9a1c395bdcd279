package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/intraportal/internal/handler"
	"github.com/intraportal/internal/router"
	"github.com/intraportal/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the HTTP server",
	RunE:    runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, gdb, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	seedOpts := service.SeedOptions{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword}
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		_, created, err := service.NewUserService(gdb).EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			logger.Info("bootstrap admin created", zap.String("email", cfg.AdminEmail))
		}
	}

	api, err := handler.NewAPI(gdb, handler.Options{
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
		UploadDir:    cfg.UploadDir,
		UploadURL:    cfg.UploadURLPath,
		EmbedTimeout: cfg.EmbedTimeout,
		SiteBaseURL:  cfg.SiteBaseURL,
		Seed:         seedOpts,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	r, err := router.SetupRouter(api, router.Options{
		SessionSecret: cfg.SessionSecret,
		UploadDir:     cfg.UploadDir,
		UploadURLPath: cfg.UploadURLPath,
		StaticDir:     cfg.StaticDir,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("portal listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
