package engine

import (
	"time"
)

// TimeManager tracks the wall-clock deadline of one search.
type TimeManager struct {
	startTime time.Time // When search started
	deadline  time.Time
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init starts the clock for a search that may run for limit.
func (tm *TimeManager) Init(limit time.Duration) {
	tm.startTime = time.Now()
	tm.deadline = tm.startTime.Add(limit)
}

// Elapsed returns the time elapsed since search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// ShouldStop returns true once the deadline has passed.
func (tm *TimeManager) ShouldStop() bool {
	return !time.Now().Before(tm.deadline)
}
