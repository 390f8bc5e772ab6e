package ubs

import "time"

// chartIntervals is the ascending set of look-back windows, in days, the
// chart endpoint accepts. Arbitrary windows are not supported upstream.
var chartIntervals = []int{7, 30, 90, 180, 365, 1095}

// SelectInterval returns the smallest supported interval that covers the
// inclusive span from start to end. When the span exceeds every supported
// window it returns the largest one; the earliest dates may then be missing
// from the response and the caller detects that through an empty range
// result. Callers must pass start <= end.
func SelectInterval(start, end time.Time) int {
	span := daysBetween(start, end) + 1
	for _, interval := range chartIntervals {
		if interval >= span {
			return interval
		}
	}
	return chartIntervals[len(chartIntervals)-1]
}

// daysBetween counts whole calendar days from start to end, ignoring the
// time-of-day and zone of both arguments.
func daysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s) / (24 * time.Hour))
}
