package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lockstats/pkg/gen/lockstats/v1/lockstatsv1connect"
	"lockstats/pkg/x"
)

var (
	address  string
	username string
	password string
	level    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lockstats",
	Short: "Inspect lock acquisition statistics",
	Long: `lockstats queries a lockstats server for the locks it has seen and
the acquisition history recorded for each of them.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		InitLogger(level)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&address, "address", "a", envOr("LOCKSTATS_ADDRESS", "http://localhost:8080"), "Address of the lockstats server")
	rootCmd.PersistentFlags().StringVarP(&username, "username", "u", os.Getenv("ADMIN_USERNAME"), "Username for basic authentication")
	rootCmd.PersistentFlags().StringVar(&password, "password", os.Getenv("ADMIN_PASSWORD"), "Password for basic authentication")
	rootCmd.PersistentFlags().StringVar(&level, "log-level", "warn", "Log level (debug, info, warn, error)")
}

var logLevel slog.Level

// InitLogger initializes the global logger with the specified log level
func InitLogger(level string) {
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "Invalid log level: %s. Using 'info' as default.\n", level)
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}

// createClient creates a new LockStatsServiceClient for the configured address
func createClient(address string) (lockstatsv1connect.LockStatsServiceClient, error) {
	if address == "" {
		return nil, fmt.Errorf("server address is empty")
	}

	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = "http://" + address
	}

	return x.CreateClient(address, username, password)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
