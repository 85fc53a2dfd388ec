package gormimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"

	interfaces "lockstats/server/repository/interface"
	models "lockstats/server/repository/model/lockstats"
)

var (
	lockOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lock_repository_operations_total",
			Help: "The total number of lock repository operations",
		},
		[]string{"operation", "status"},
	)
	lockLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lock_repository_operation_duration_seconds",
			Help:    "Duration of lock repository operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

var lockSortColumns = map[string]string{
	"id":        "id",
	"resource":  "resource",
	"duration":  "duration",
	"lockcount": "lock_count",
	"host":      "host",
	"gained":    "gained",
	"released":  "released",
	"pid":       "pid",
}

// LockRepo implements the LockRepo interface using GORM.
type LockRepo struct {
	db *gorm.DB
}

// GetLockByID retrieves a lock by its ID.
// It returns interfaces.ErrNotFound (wrapped) when the lock does not exist.
func (s *LockRepo) GetLockByID(ctx context.Context, id uint) (*models.Lock, error) {
	timer := prometheus.NewTimer(lockLatency.WithLabelValues("get"))
	defer timer.ObserveDuration()

	var lock models.Lock
	if err := s.db.WithContext(ctx).First(&lock, id).Error; err != nil {
		lockOperations.WithLabelValues("get", "error").Inc()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lock with ID %d: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve lock by ID: %w", err)
	}

	lockOperations.WithLabelValues("get", "success").Inc()
	return &lock, nil
}

// CountLocks returns the number of locks.
func (s *LockRepo) CountLocks(ctx context.Context) (int64, error) {
	timer := prometheus.NewTimer(lockLatency.WithLabelValues("count"))
	defer timer.ObserveDuration()

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Lock{}).Count(&total).Error; err != nil {
		lockOperations.WithLabelValues("count", "error").Inc()
		return 0, fmt.Errorf("failed to count locks: %w", err)
	}
	lockOperations.WithLabelValues("count", "success").Inc()
	return total, nil
}

// ListLocks retrieves locks in the requested order.
func (s *LockRepo) ListLocks(ctx context.Context, opts interfaces.ListOptions) ([]models.Lock, error) {
	timer := prometheus.NewTimer(lockLatency.WithLabelValues("list"))
	defer timer.ObserveDuration()

	var locks []models.Lock
	if err := applyListOptions(s.db.WithContext(ctx), opts, lockSortColumns).Find(&locks).Error; err != nil {
		lockOperations.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("failed to list locks: %w", err)
	}

	lockOperations.WithLabelValues("list", "success").Inc()
	return locks, nil
}

// NewLockRepo creates and returns a new instance of LockRepo.
func NewLockRepo(db *gorm.DB) interfaces.LockRepo {
	return &LockRepo{
		db: db,
	}
}
