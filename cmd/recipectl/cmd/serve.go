package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/app"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/config"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/output"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/server"
)

var decodeBearer bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API locally against the configured AWS resources",
	Long: `Run the same router the Lambda serves on a local HTTP port.
Without an API Gateway authorizer in front, the owner of recipe requests is read from the
bearer ID token unless --decode-bearer=false.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return err
	}
	log := logger.Initialize(constants.Development, cfg.GetLogLevel())

	// The root timeout bounds AWS commands, not a long running server.
	ctx, stop := signal.NotifyContext(context.WithoutCancel(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := app.Initialize(ctx, cfg, log)
	if err != nil {
		output.Errorf("failed to initialize service: %v", err)
		return err
	}

	router := server.NewRouter(svc, server.Options{
		RequestTimeout:     cfg.RequestTimeout,
		AllowedOrigin:      cfg.AllowedOrigin,
		DecodeBearerClaims: decodeBearer,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.Handler(),
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
		IdleTimeout:  constants.ServerIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting local server",
			"port", cfg.Port,
			"version", *constants.GetVersion(),
			"log_level", cfg.LogLevel,
			"decode_bearer", decodeBearer,
		)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
		close(errCh)
	}()

	select {
	case serveErr := <-errCh:
		if serveErr != nil {
			log.Error("failed to start server", "error", serveErr)
			return serveErr
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down local server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", "error", err)
		return err
	}

	log.Info("local server shutdown complete")
	return nil
}

func init() {
	serveCmd.Flags().BoolVar(&decodeBearer, "decode-bearer", true,
		"Take the recipe owner from the bearer ID token")
	rootCmd.AddCommand(serveCmd)
}
