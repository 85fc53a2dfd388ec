package lockstats

// Lock is the running state of one lock resource. Its ID is the task
// identifier referenced by LockHistory rows.
type Lock struct {
	ID        uint    `json:"id" gorm:"column:id;primaryKey"`
	Resource  string  `json:"resource" gorm:"column:resource;type:text;not null;uniqueIndex"`
	Gained    int64   `json:"gained" gorm:"column:gained"`
	Released  int64   `json:"released" gorm:"column:released"`
	LockCount int64   `json:"lockcount" gorm:"column:lock_count;not null;default:0"`
	Duration  float64 `json:"duration" gorm:"column:duration;not null;default:0"`
	Host      string  `json:"host" gorm:"column:host;type:text"`
	PID       int     `json:"pid" gorm:"column:pid"`
}

// TableName returns the custom table name for the Lock model.
func (*Lock) TableName() string {
	return "lockstats_locks"
}

// AverageDuration returns the mean hold time per acquisition.
func (l Lock) AverageDuration() float64 {
	return AverageDuration(l.Duration, l.LockCount)
}
