package processor

import (
	"fmt"
	"time"

	"github.com/rickb777/date/v2/timespan"
)

type TimeSpan = timespan.TimeSpan

// Summary tallies one ProcessAll call.
type Summary struct {
	Items   int
	Applied int
	Failed  int
	Skipped int // requests not reached because the context ended
	Span    TimeSpan
}

func (s Summary) Total() int {
	return s.Applied + s.Failed + s.Skipped
}

func (s Summary) String() string {
	return fmt.Sprintf("items=%d applied=%d failed=%d skipped=%d took=%s",
		s.Items, s.Applied, s.Failed, s.Skipped, s.Span.Duration())
}

func spanSince(start time.Time) TimeSpan {
	return timespan.BetweenTimes(start, time.Now())
}
