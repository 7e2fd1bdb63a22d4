package domain

import (
	"math"
	"time"
)

// Point is a single NAV observation: the per-unit net asset value of a
// product on a given calendar date.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is an ordered sequence of NAV observations, strictly ascending by
// date, with positive values. Dates carry day-level precision (UTC midnight).
// The analytics engines never mutate a Series; it is owned by the caller.
type Series []Point

// First returns the earliest observation. Panics on an empty series.
func (s Series) First() Point {
	return s[0]
}

// Last returns the latest observation. Panics on an empty series.
func (s Series) Last() Point {
	return s[len(s)-1]
}

// Values returns the NAV values in date order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Clip returns the sub-series whose dates fall in the inclusive [start, end]
// range. A zero start or end leaves that side unbounded. The result shares
// no backing storage with the input.
func (s Series) Clip(start, end time.Time) Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if !start.IsZero() && p.Date.Before(start) {
			continue
		}
		if !end.IsZero() && p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// NearestIndex returns the index of the observation whose date minimizes the
// absolute time distance to target. The first match wins on ties. Returns -1
// for an empty series.
func (s Series) NearestIndex(target time.Time) int {
	best := -1
	var bestDiff time.Duration
	for i, p := range s {
		diff := p.Date.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if best == -1 || diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	return best
}

// DateKey is the calendar-date key used for cross-series alignment.
const DateKey = "2006-01-02"

// NormalizeDate truncates a timestamp to UTC midnight, discarding any
// sub-day precision so that date-key matching is calendar-date based.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of days from a to b, rounded to the
// nearest whole day. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
