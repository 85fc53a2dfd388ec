package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/riverqueue/river"

	interfaces "lockstats/server/repository/interface"
)

// PruneLockHistoryArgs contains the arguments for the PruneLockHistoryWorker.
type PruneLockHistoryArgs struct {
	RetentionDays int `json:"retention_days"`
}

// Kind returns the kind of the job argument.
func (PruneLockHistoryArgs) Kind() string { return "prune_lock_history" }

// InsertOpts returns the insertion options for the job.
func (PruneLockHistoryArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: 1}
}

// PruneLockHistoryWorker deletes lock history released longer ago than the
// retention period.
type PruneLockHistoryWorker struct {
	river.WorkerDefaults[PruneLockHistoryArgs]
	Repo   interfaces.LockHistoryRepo
	Logger *slog.Logger
	Now    func() time.Time
}

// Work runs a single retention pass.
func (w *PruneLockHistoryWorker) Work(ctx context.Context, job *river.Job[PruneLockHistoryArgs]) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("worker", "PruneLockHistoryWorker", "retention_days", job.Args.RetentionDays)

	if job.Args.RetentionDays <= 0 {
		logger.Info("Lock history retention disabled, nothing to prune")
		return nil
	}

	cutoff := w.now().AddDate(0, 0, -job.Args.RetentionDays).Unix()
	removed, err := w.Repo.PruneLockHistory(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune lock history released before %d: %w", cutoff, err)
	}

	logger.Info("Pruned lock history", "cutoff", cutoff, "removed", removed)
	return nil
}

// Timeout bounds a single retention pass.
func (w *PruneLockHistoryWorker) Timeout(job *river.Job[PruneLockHistoryArgs]) time.Duration {
	return 5 * time.Minute
}

func (w *PruneLockHistoryWorker) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// RetentionJob returns the periodic job that prunes history every interval.
func RetentionJob(interval time.Duration, retentionDays int) *river.PeriodicJob {
	return river.NewPeriodicJob(
		river.PeriodicInterval(interval),
		func() (river.JobArgs, *river.InsertOpts) {
			return PruneLockHistoryArgs{RetentionDays: retentionDays}, nil
		},
		&river.PeriodicJobOpts{RunOnStart: true},
	)
}
