package billing

import (
	"fmt"
	"time"

	"github.com/fubble/backend/internal/domain/shared"
)

// Period is a date window over which usage is aggregated. Both ends are
// inclusive when matching event times.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod creates a period, rejecting an end before the start
func NewPeriod(start, end time.Time) (Period, error) {
	if end.Before(start) {
		return Period{}, shared.NewDomainError("INVALID_PERIOD", "Period end cannot be before period start")
	}
	return Period{Start: start, End: end}, nil
}

// Covers returns true if t falls within [start, end]
func (p Period) Covers(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// String formats the period for invoice notes and logs
func (p Period) String() string {
	return fmt.Sprintf("%s to %s", p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
}
