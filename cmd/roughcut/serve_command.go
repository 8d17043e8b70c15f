package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/AndrewOch/ClapperRoughCutBackend/api"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/analytics"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/engine"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var (
		port    string
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the matching HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.Server.DataDir = dataDir
			}

			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			eng, err := engine.New(engine.Options{
				DataDir:  cfg.Server.DataDir,
				Matching: cfg.Matching,
				Taxonomy: cfg.Taxonomy,
				Logger:   logger,
			})
			if err != nil {
				return fmt.Errorf("init engine: %w", err)
			}
			defer eng.Close()

			var analyticsPath string
			if cfg.Server.DataDir != "" {
				analyticsPath = filepath.Join(cfg.Server.DataDir, analytics.DataFileName)
			}
			analyticsService := analytics.NewService(eng, analyticsPath, logger)
			defer func() {
				if err := analyticsService.Save(); err != nil {
					logger.Warn("failed to save analytics data", "error", err)
				}
			}()

			gin.SetMode(gin.ReleaseMode)
			router := api.NewRouter(api.NewAPI(eng, analyticsService, logger), api.RouterOptions{
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
			})

			server := &http.Server{
				Addr:              net.JoinHostPort("", cfg.Server.Port),
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      120 * time.Second,
				IdleTimeout:       60 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return signalCtx },
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("api server listening",
					"address", server.Addr,
					"data_dir", cfg.Server.DataDir,
					"strategy", eng.Settings().Strategy,
					"workers", eng.Settings().Workers,
				)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err, ok := <-errCh:
				if ok {
					return fmt.Errorf("api server: %w", err)
				}
				return nil
			case <-signalCtx.Done():
			}

			logger.Info("shutting down api server")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown api server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "8080", "Port to run the server on")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory to persist scripts in (empty keeps them in memory)")
	return cmd
}
