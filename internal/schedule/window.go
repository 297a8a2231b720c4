package schedule

import "time"

// Window is a time-of-day range with both bounds inclusive, stored as
// offsets from midnight. A window whose Start is after its End wraps past
// midnight; Start == End means the whole day.
type Window struct {
	Start time.Duration
	End   time.Duration
}

// Contains reports whether the wall-clock time of t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	tod := timeOfDay(t)
	switch {
	case w.Start == w.End:
		return true
	case w.Start < w.End:
		return w.Start <= tod && tod <= w.End
	default:
		return tod >= w.Start || tod <= w.End
	}
}

func (w Window) String() string {
	return formatTimeOfDay(w.Start) + "-" + formatTimeOfDay(w.End)
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func formatTimeOfDay(d time.Duration) string {
	return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format("15:04")
}
