package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"lockstats/pkg/x"
	repository "lockstats/server/repository"
	"lockstats/server/route"
)

// newCORS initializes CORS settings for the server
// It allows all origins and read methods, and exposes the headers connect clients need
func newCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowOriginFunc: func(origin string) bool {
			return true // Allow all origins
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			"Accept",
			"Accept-Encoding",
			"Accept-Post",
			"Connect-Accept-Encoding",
			"Connect-Content-Encoding",
			"Content-Disposition",
			"Content-Encoding",
			"Grpc-Accept-Encoding",
			"Grpc-Encoding",
			"Grpc-Message",
			"Grpc-Status",
			"Grpc-Status-Details-Bin",
		},
	})
}

// main is the entry point of the application.
// It sets up logging and runs the main application logic.
func main() {
	// Initialize structured logging with JSON format
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic
// It loads configuration, sets up the server, and handles graceful shutdown
func run(logger *slog.Logger) error {
	// Load environment variables
	if err := x.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	env, err := x.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.Info("Application started",
		"port", env.ServerPort,
		"driver", env.Database.Driver,
		"timezone", env.LockStats.Timezone,
		"retentionDays", env.LockStats.RetentionDays,
		"auth", env.Admin.AuthEnabled(),
	)

	// Set up a context cancelled by exit signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create the repository with DB configuration
	repo, err := repository.GetRepository(ctx, repository.Options{
		Database:      env.Database,
		WorkerCount:   env.WorkerCount,
		RetentionDays: env.LockStats.RetentionDays,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database repository: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.Close(closeCtx); err != nil {
			slog.Error("Failed to close repository", "error", err)
		}
	}()

	slog.Info("Database repository initialized", "workerCount", env.WorkerCount)

	handler, err := route.NewRouter(repo, env, logger)
	if err != nil {
		return fmt.Errorf("failed to set up handlers: %w", err)
	}

	// Initialize HTTP server
	srv := &http.Server{
		Addr: fmt.Sprintf("0.0.0.0:%v", env.ServerPort),
		Handler: h2c.NewHandler(
			newCORS().Handler(handler),
			&http2.Server{},
		),
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		MaxHeaderBytes:    8 * 1024, // 8KiB
	}

	// Start the server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	// Wait for exit signal or server error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received, shutting down server...")
	case err := <-serverErrChan:
		return err
	}

	// Graceful shutdown
	if err := shutdownServer(srv); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}
	slog.Info("HTTP server shut down gracefully")
	return nil
}

// shutdownServer gracefully shuts down the HTTP server
// It waits for ongoing requests to complete before shutting down
func shutdownServer(srv *http.Server) error {
	slog.Info("Initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}
	slog.Info("Server shutdown completed")
	return nil
}
