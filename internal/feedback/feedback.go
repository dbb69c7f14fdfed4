// Package feedback defines user feedback on recommendation results.
// Persistence lives in internal/storage; this package only knows what a
// valid feedback record looks like.
package feedback

import (
	"fmt"
	"time"
)

// Satisfaction bounds for the 1-5 scale.
const (
	MinSatisfaction = 1
	MaxSatisfaction = 5
)

// Record is one piece of feedback on a ranked result set.
type Record struct {
	ID           int64
	SessionID    string
	Strategy     string // strategy active when feedback was given
	Satisfaction int    // 1 (poor) to 5 (great)
	Relevant     bool
	Comment      string
	TSMs         int64
}

// Validate checks the record before it is stored.
func (r *Record) Validate() error {
	if r == nil {
		return fmt.Errorf("feedback record is nil")
	}
	if r.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if r.Satisfaction < MinSatisfaction || r.Satisfaction > MaxSatisfaction {
		return fmt.Errorf("satisfaction must be in [%d,%d], got %d",
			MinSatisfaction, MaxSatisfaction, r.Satisfaction)
	}
	return nil
}

// Stamp fills in the timestamp if the caller left it zero.
func (r *Record) Stamp() {
	if r.TSMs == 0 {
		r.TSMs = time.Now().UnixMilli()
	}
}

// StrategySummary aggregates feedback for one strategy.
type StrategySummary struct {
	Strategy        string
	Count           int
	AvgSatisfaction float64
	RelevantCount   int
}
