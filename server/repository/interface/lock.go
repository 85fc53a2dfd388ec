package interfaces

import (
	"context"
	"errors"

	model "lockstats/server/repository/model/lockstats"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ListOptions controls ordering and slicing of list queries.
type ListOptions struct {
	Sort   string
	Desc   bool
	Offset int
	Limit  int
}

// LockRepo defines the interface for the lock repository.
//
//go:generate mockery --output=../mocks --case=underscore --all
type LockRepo interface {
	// GetLockByID retrieves a lock by its ID.
	GetLockByID(ctx context.Context, id uint) (*model.Lock, error)

	// CountLocks returns the number of known locks.
	CountLocks(ctx context.Context) (int64, error)

	// ListLocks lists locks in the requested order.
	ListLocks(ctx context.Context, opts ListOptions) ([]model.Lock, error)
}
