package domain

import "time"

// DebugInfo records how long a single coordinator step took, in milliseconds.
type DebugInfo struct {
	Event  string `json:"event"`
	Timing int64  `json:"timing"`

	startTime time.Time
}

func StartTiming(event string) *DebugInfo {
	return &DebugInfo{Event: event, startTime: time.Now()}
}

func (d *DebugInfo) Elapse() {
	d.Timing = time.Since(d.startTime).Milliseconds()
}
