package route

import (
	"fmt"
	"log/slog"
	"net/http"

	connect "connectrpc.com/connect"
	"connectrpc.com/grpchealth"
	"connectrpc.com/otelconnect"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.akshayshah.org/connectauth"

	"lockstats/pkg/config"
	"lockstats/pkg/gen/lockstats/v1/lockstatsv1connect"
	interfaces "lockstats/server/repository/interface"
)

// CompressMinByte is the smallest response, in bytes, that the connect
// handler compresses.
const CompressMinByte = 1024

const authRealm = "lockstats"

// NewRouter mounts the console, the connect API, health checks and metrics.
func NewRouter(repo interfaces.LockStatsInterface, cfg config.Config, logger *slog.Logger) (http.Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	otelInterceptor, err := otelconnect.NewInterceptor()
	if err != nil {
		return nil, fmt.Errorf("failed to create interceptor: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	console := NewConsole(repo, cfg.LockStats, logger)
	r.Group(func(r chi.Router) {
		if cfg.Admin.AuthEnabled() {
			r.Use(middleware.BasicAuth(authRealm, map[string]string{cfg.Admin.Username: cfg.Admin.Password}))
		}
		r.Mount(ConsolePath, console.Routes())
	})

	// Set up connect middleware
	auth := connectauth.NewMiddleware(Authenticate(cfg.Admin))
	pattern, handler := lockstatsv1connect.NewLockStatsServiceHandler(
		NewLockStatsServer(repo, cfg.LockStats, logger),
		connect.WithInterceptors(otelInterceptor),
		connect.WithCompressMinBytes(CompressMinByte),
	)
	r.Mount(pattern, auth.Wrap(handler))

	// Health check handler
	r.Mount(grpchealth.NewHandler(
		grpchealth.NewStaticChecker(lockstatsv1connect.LockStatsServiceName),
	))

	// Add Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	logger.Info("Handlers set up successfully", "serviceName", lockstatsv1connect.LockStatsServiceName, "console", ConsolePath)
	return r, nil
}
