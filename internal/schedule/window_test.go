package schedule

import (
	"testing"
	"time"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2024, 3, 10, hour, min, sec, 0, time.UTC)
}

func TestWindowOvernight(t *testing.T) {
	w := Window{Start: 6 * time.Hour, End: 2 * time.Hour}

	tests := []struct {
		name     string
		t        time.Time
		expected bool
	}{
		{name: "late evening", t: at(23, 0, 0), expected: true},
		{name: "after midnight", t: at(1, 0, 0), expected: true},
		{name: "midnight", t: at(0, 0, 0), expected: true},
		{name: "end bound", t: at(2, 0, 0), expected: true},
		{name: "just after end", t: at(2, 0, 1), expected: false},
		{name: "early morning", t: at(3, 0, 0), expected: false},
		{name: "just before start", t: at(5, 59, 59), expected: false},
		{name: "start bound", t: at(6, 0, 0), expected: true},
		{name: "noon", t: at(12, 0, 0), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.t); got != tt.expected {
				t.Errorf("Contains(%s) = %v, want %v", tt.t.Format("15:04:05"), got, tt.expected)
			}
		})
	}
}

func TestWindowSameDay(t *testing.T) {
	w := Window{Start: 9 * time.Hour, End: 17*time.Hour + 30*time.Minute}

	tests := []struct {
		t        time.Time
		expected bool
	}{
		{t: at(8, 59, 59), expected: false},
		{t: at(9, 0, 0), expected: true},
		{t: at(17, 30, 0), expected: true},
		{t: at(17, 30, 1), expected: false},
		{t: at(23, 0, 0), expected: false},
	}

	for _, tt := range tests {
		if got := w.Contains(tt.t); got != tt.expected {
			t.Errorf("Contains(%s) = %v, want %v", tt.t.Format("15:04:05"), got, tt.expected)
		}
	}
}

func TestWindowFullDay(t *testing.T) {
	w := Window{Start: 4 * time.Hour, End: 4 * time.Hour}
	for hour := 0; hour < 24; hour++ {
		if !w.Contains(at(hour, 30, 0)) {
			t.Errorf("expected %02d:30 to be inside a full-day window", hour)
		}
	}
}

func TestWindowString(t *testing.T) {
	w := Window{Start: 6 * time.Hour, End: 2*time.Hour + 5*time.Minute}
	if got := w.String(); got != "06:00-02:05" {
		t.Errorf("unexpected string %q", got)
	}
}
