package gormimpl

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"

	interfaces "lockstats/server/repository/interface"
	models "lockstats/server/repository/model/lockstats"
)

var (
	lockHistoryOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lock_history_repository_operations_total",
			Help: "The total number of lock history repository operations",
		},
		[]string{"operation", "status"},
	)
	lockHistoryLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lock_history_repository_operation_duration_seconds",
			Help:    "Duration of lock history repository operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// historySortColumns maps table column names to database columns.
var historySortColumns = map[string]string{
	"resource":  "resource",
	"duration":  "duration",
	"lockcount": "lock_count",
	"host":      "host",
	"gained":    "gained",
	"released":  "released",
	"pid":       "pid",
}

// LockHistoryRepo handles database operations for lock history entries.
type LockHistoryRepo struct {
	db *gorm.DB
}

// CountLockHistory counts the history entries of a task.
func (s *LockHistoryRepo) CountLockHistory(ctx context.Context, taskID uint) (int64, error) {
	timer := prometheus.NewTimer(lockHistoryLatency.WithLabelValues("count"))
	defer timer.ObserveDuration()

	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.LockHistory{}).
		Where("task_id = ?", taskID).
		Count(&total).Error
	if err != nil {
		lockHistoryOperations.WithLabelValues("count", "error").Inc()
		return 0, fmt.Errorf("failed to count lock history of task %d: %w", taskID, err)
	}
	lockHistoryOperations.WithLabelValues("count", "success").Inc()
	return total, nil
}

// ListLockHistory retrieves the history entries of a task.
// Unknown sort columns leave the rows in id order.
func (s *LockHistoryRepo) ListLockHistory(ctx context.Context, taskID uint, opts interfaces.ListOptions) ([]models.LockHistory, error) {
	timer := prometheus.NewTimer(lockHistoryLatency.WithLabelValues("list"))
	defer timer.ObserveDuration()

	var histories []models.LockHistory
	query := s.db.WithContext(ctx).Where("task_id = ?", taskID)
	if err := applyListOptions(query, opts, historySortColumns).Find(&histories).Error; err != nil {
		lockHistoryOperations.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("failed to retrieve lock history of task %d: %w", taskID, err)
	}

	lockHistoryOperations.WithLabelValues("list", "success").Inc()
	return histories, nil
}

// PruneLockHistory deletes entries released before the given epoch second.
func (s *LockHistoryRepo) PruneLockHistory(ctx context.Context, releasedBefore int64) (int64, error) {
	timer := prometheus.NewTimer(lockHistoryLatency.WithLabelValues("prune"))
	defer timer.ObserveDuration()

	result := s.db.WithContext(ctx).
		Where("released < ?", releasedBefore).
		Delete(&models.LockHistory{})
	if result.Error != nil {
		lockHistoryOperations.WithLabelValues("prune", "error").Inc()
		return 0, fmt.Errorf("failed to prune lock history: %w", result.Error)
	}

	lockHistoryOperations.WithLabelValues("prune", "success").Inc()
	return result.RowsAffected, nil
}

// NewLockHistoryRepo creates and returns a new instance of LockHistoryRepo.
func NewLockHistoryRepo(db *gorm.DB) interfaces.LockHistoryRepo {
	return &LockHistoryRepo{
		db: db,
	}
}
