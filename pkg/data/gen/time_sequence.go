package gen

import (
	"time"
)

// TimeSequenceSpec describes the timestamps assigned to a sequence of values.
type TimeSequenceSpec struct {
	// Start specifies the starting time for the values.
	Start time.Time

	// Delta specifies the interval between time stamps.
	Delta time.Duration
}

// Timestamp returns the time of the i'th value.
func (ts TimeSequenceSpec) Timestamp(i int) time.Time {
	return ts.Start.Add(time.Duration(i) * ts.Delta)
}

// TimeRange returns the span covered by n values.
func (ts TimeSequenceSpec) TimeRange(n int) TimeRange {
	if n == 0 {
		return TimeRange{Start: ts.Start, End: ts.Start}
	}
	return TimeRange{Start: ts.Start, End: ts.Timestamp(n - 1)}
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}

func (t TimeRange) Truncate(d time.Duration) TimeRange {
	return TimeRange{
		Start: t.Start.Truncate(d),
		End:   t.End.Truncate(d),
	}
}
