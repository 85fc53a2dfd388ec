package interfaces

import (
	"context"

	model "lockstats/server/repository/model/lockstats"
)

// LockHistoryRepo defines the interface for the lock history repository.
// History rows are read filtered by task; only retention deletes them.
//
//go:generate mockery --output=../mocks --case=underscore --all
type LockHistoryRepo interface {
	// CountLockHistory returns the number of history rows of a task.
	// An unknown task counts zero rows.
	CountLockHistory(ctx context.Context, taskID uint) (int64, error)

	// ListLockHistory lists the history rows of a task in the requested order.
	// A zero Limit returns every row.
	ListLockHistory(ctx context.Context, taskID uint, opts ListOptions) ([]model.LockHistory, error)

	// PruneLockHistory deletes rows released before the given epoch second
	// and returns how many were removed.
	PruneLockHistory(ctx context.Context, releasedBefore int64) (int64, error)
}
