package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/glebarez/sqlite"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lockstats/pkg/config"
	"lockstats/pkg/worker"
	interfaces "lockstats/server/repository/interface"
	models "lockstats/server/repository/model/lockstats"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	retentionInterval = time.Hour
)

// Options configures GetRepository.
type Options struct {
	Database      config.DatabaseConfig
	WorkerCount   int
	RetentionDays int
	Logger        *slog.Logger
}

// GetRepository opens the configured database, migrates the lockstats
// tables and, on postgres, starts the job queue running history retention.
func GetRepository(ctx context.Context, opts Options) (interfaces.LockStatsInterface, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		db    *gorm.DB
		sqlDB *sql.DB
		err   error
	)
	switch opts.Database.Driver {
	case DriverPostgres:
		sqlDB, err = sql.Open("pgx", opts.Database.ToDbConnectionUri())
		if err != nil {
			return nil, err
		}
		// Set the maximum number of open connections
		sqlDB.SetMaxOpenConns(opts.Database.PoolMaxConns)
		// Set the maximum number of idle connections
		sqlDB.SetMaxIdleConns(max(opts.Database.PoolMaxConns/2, 1))
		// Set the maximum lifetime of a connection
		sqlDB.SetConnMaxLifetime(time.Hour)

		db, err = gorm.Open(postgres.New(postgres.Config{
			Conn: sqlDB,
		}), &gorm.Config{})
		if err != nil {
			return nil, err
		}
	case DriverSQLite:
		db, err = gorm.Open(sqlite.Open(opts.Database.ToDbConnectionUri()), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		if sqlDB, err = db.DB(); err != nil {
			return nil, err
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", opts.Database.Driver)
	}

	err = retry.Do(
		func() error {
			return sqlDB.PingContext(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("Database not reachable, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if err := migrate(db, logger); err != nil {
		return nil, err
	}

	var riverClient *river.Client[*sql.Tx]
	if opts.Database.Driver == DriverPostgres && opts.RetentionDays > 0 {
		riverClient, err = startRetention(ctx, sqlDB, db, opts, logger)
		if err != nil {
			return nil, err
		}
	} else if opts.RetentionDays > 0 {
		logger.Warn("Lock history retention needs the postgres job queue, not pruning", "driver", opts.Database.Driver)
	}

	return NewGormRepo(db, riverClient), nil
}

func migrate(db *gorm.DB, logger *slog.Logger) error {
	// Perform database migrations
	if err := db.AutoMigrate(&models.Lock{}, &models.LockHistory{}); err != nil {
		return fmt.Errorf("failed to run auto migrations: %w", err)
	}

	// Create necessary indexes
	indexes := []struct {
		name string
		sql  string
	}{
		{"idx_lockstats_history_task_released", "CREATE INDEX IF NOT EXISTS idx_lockstats_history_task_released ON lockstats_history (task_id, released DESC)"},
		{"idx_lockstats_history_released", "CREATE INDEX IF NOT EXISTS idx_lockstats_history_released ON lockstats_history (released)"},
		{"idx_lockstats_locks_gained", "CREATE INDEX IF NOT EXISTS idx_lockstats_locks_gained ON lockstats_locks (gained)"},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		logger.Info("Created index", "name", idx.name)
	}
	return nil
}

func startRetention(ctx context.Context, sqlDB *sql.DB, db *gorm.DB, opts Options, logger *slog.Logger) (*river.Client[*sql.Tx], error) {
	migrator, err := rivermigrate.New(riverdatabasesql.New(sqlDB), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create river migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return nil, fmt.Errorf("failed to migrate river schema: %w", err)
	}

	// Set up River workers and client
	workers := river.NewWorkers()
	if err := river.AddWorkerSafely(workers, &worker.PruneLockHistoryWorker{
		Repo:   NewGormRepo(db, nil).LockHistoryRepo(),
		Logger: logger,
	}); err != nil {
		return nil, fmt.Errorf("failed to add PruneLockHistoryWorker: %w", err)
	}

	riverClient, err := river.NewClient(riverdatabasesql.New(sqlDB), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: max(opts.WorkerCount, 1)},
		},
		Workers:      workers,
		PeriodicJobs: []*river.PeriodicJob{worker.RetentionJob(retentionInterval, opts.RetentionDays)},
		ErrorHandler: &worker.CustomErrorHandler{},
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	// Start River client
	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start River client: %w", err)
	}
	logger.Info("Lock history retention scheduled", "retention_days", opts.RetentionDays, "interval", retentionInterval)
	return riverClient, nil
}
