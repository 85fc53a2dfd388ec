package x

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"connectrpc.com/otelconnect"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"lockstats/pkg/config"
	"lockstats/pkg/export"
	"lockstats/pkg/export/text"
	"lockstats/pkg/gen/lockstats/v1/lockstatsv1connect"
	"lockstats/pkg/table"
)

// OutputTable prints a page as a plain terminal table.
const OutputTable = "table"

// LoadEnv loads environment variables from .env file
func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		// Instead of returning an error, we'll just log a message
		slog.Debug("No .env file found, proceeding with default values")
	}
	return nil
}

// LoadConfig processes environment variables into a Config struct
func LoadConfig() (config.Config, error) {
	var env config.Config
	if err := envconfig.Process("", &env); err != nil {
		return env, fmt.Errorf("error loading environment variables: %w", err)
	}
	return env, nil
}

// CreateClient creates a new LockStatsServiceClient with an OpenTelemetry
// interceptor. A non-empty username sends basic auth credentials.
func CreateClient(address, username, password string) (lockstatsv1connect.LockStatsServiceClient, error) {
	interceptor, err := otelconnect.NewInterceptor()
	if err != nil {
		return nil, fmt.Errorf("error creating interceptor: %w", err)
	}
	interceptors := []connect.Interceptor{interceptor}
	if username != "" {
		interceptors = append(interceptors, basicAuthInterceptor(username, password))
	}

	slog.Info("Creating LockStatsServiceClient", "serverURL", address)
	return lockstatsv1connect.NewLockStatsServiceClient(
		http.DefaultClient,
		address,
		connect.WithInterceptors(interceptors...),
	), nil
}

func basicAuthInterceptor(username, password string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				req.Header().Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(username+":"+password)))
			}
			return next(ctx, req)
		}
	}
}

// OutputFormats lists the values accepted by PrintPage.
func OutputFormats() []string {
	return append([]string{OutputTable}, export.Formats()...)
}

// PrintPage writes a page in the requested output format.
func PrintPage(w io.Writer, page *table.Page, output string) error {
	if output == OutputTable {
		output = text.Name
	}
	exporter, err := export.New(output)
	if err != nil {
		return fmt.Errorf("unsupported output format %q: %w", output, err)
	}
	return exporter.Write(w, page)
}

// PrintSummary writes the paging position of a page.
func PrintSummary(w io.Writer, page *table.Page) {
	if page.PageSize == 0 {
		fmt.Fprintf(w, "\n%d rows\n", page.Total)
		return
	}
	fmt.Fprintf(w, "\nPage %d of %d, %d rows\n", page.Page+1, page.Pages(), page.Total)
}
