package interfaces

import "context"

//go:generate mockery --output=../mocks --case=underscore --all
type LockStatsInterface interface {
	LockRepo() LockRepo
	LockHistoryRepo() LockHistoryRepo
	Close(ctx context.Context) error
}
