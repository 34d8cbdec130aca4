package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httphandler "cryptotracker.io/internal/infrastructure/http"

	"github.com/spf13/cobra"
)

var apiServerCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:   "server",
	Short: "Run API Server.",
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := newApp(os.Stdout)
		if err != nil {
			return err
		}
		cfg := a.cfg

		a.logger.LogInfo(context.TODO(), "Configuration loaded",
			"port", cfg.Server.Port,
			"explorer_base_url", cfg.Explorer.BaseURL,
			"explorer_timeout", cfg.Explorer.Timeout.String())

		handler := httphandler.NewHandler(
			a.getBalance,
			a.listTransactions,
			cfg.Explorer.DefaultPageLimit,
			a.logger,
		)

		addr := ":" + cfg.Server.Port
		server := &http.Server{
			Addr:         addr,
			Handler:      handler.SetupRoutes(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  60 * time.Second,
		}

		// Channel to capture termination signals
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

		// Error channel to capture errors from server
		errChan := make(chan error, 1)

		go func() {
			a.logger.LogInfo(context.TODO(), "Starting server", "address", addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- err
			}
		}()

		// Graceful shutdown
		select {
		case <-signalChan:
			a.logger.LogInfo(context.TODO(), "Received termination signal. Initiating graceful shutdown...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				a.logger.LogError(context.TODO(), "Server forced to shutdown", err)
				return err
			}

			a.logger.LogInfo(context.TODO(), "Server stopped gracefully")
		case err := <-errChan:
			a.logger.LogError(context.TODO(), "Server error", err)
			return err
		}

		return nil
	},
}

func init() { //nolint:gochecknoinits
	rootCmd.AddCommand(apiServerCmd)
}
