package lockstats

// LockHistory is one stored observation of a lock being held for a task.
// Rows are written by the lock instrumentation and only read here.
type LockHistory struct {
	ID        uint    `json:"id" gorm:"column:id;primaryKey"`
	TaskID    uint    `json:"task_id" gorm:"column:task_id;not null"` // Foreign key for Lock
	Resource  string  `json:"resource" gorm:"column:resource;type:text;not null"`
	Gained    int64   `json:"gained" gorm:"column:gained;not null"`
	Released  int64   `json:"released" gorm:"column:released;not null"`
	LockCount int64   `json:"lockcount" gorm:"column:lock_count;not null;default:0"`
	Duration  float64 `json:"duration" gorm:"column:duration;not null;default:0"` // Seconds, summed over LockCount acquisitions
	Host      string  `json:"host" gorm:"column:host;type:text"`
	PID       int     `json:"pid" gorm:"column:pid"`
}

// TableName returns the custom table name for the LockHistory model.
func (*LockHistory) TableName() string {
	return "lockstats_history"
}

// AverageDuration returns the mean hold time per acquisition. Rows without
// a lock count report their duration unchanged.
func (h LockHistory) AverageDuration() float64 {
	return AverageDuration(h.Duration, h.LockCount)
}

// AverageDuration divides a cumulative duration by its lock count when the
// count is positive.
func AverageDuration(duration float64, lockCount int64) float64 {
	if lockCount > 0 {
		return duration / float64(lockCount)
	}
	return duration
}
