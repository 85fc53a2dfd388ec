package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"
	"gorm.io/gorm"

	gormimpl "lockstats/server/repository/gormimpl"
	interfaces "lockstats/server/repository/interface"
)

// GormRepo bundles the gorm repositories and the optional job queue.
type GormRepo struct {
	lock        interfaces.LockRepo
	history     interfaces.LockHistoryRepo
	db          *gorm.DB
	riverClient *river.Client[*sql.Tx]
}

func (r *GormRepo) LockRepo() interfaces.LockRepo {
	return r.lock
}

func (r *GormRepo) LockHistoryRepo() interfaces.LockHistoryRepo {
	return r.history
}

// Close stops the job queue, if any, and closes the database.
func (r *GormRepo) Close(ctx context.Context) error {
	if r.riverClient != nil {
		if err := r.riverClient.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop river client: %w", err)
		}
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func NewGormRepo(db *gorm.DB, riverClient *river.Client[*sql.Tx]) *GormRepo {
	return &GormRepo{
		lock:        gormimpl.NewLockRepo(db),
		history:     gormimpl.NewLockHistoryRepo(db),
		db:          db,
		riverClient: riverClient,
	}
}
