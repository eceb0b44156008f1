// Package timeslot provides the canonical time representation used by the
// booking engine: everything is compared in UTC and aligned to a fixed
// minute grid before any validation or conflict check runs.
package timeslot

import "time"

// DefaultStepMinutes is the grid all booking windows are aligned to.
const DefaultStepMinutes = 15

// ToUTC converts an instant to UTC. Go timestamps always carry a location,
// so this is a plain conversion; it never fails.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// RoundToStep truncates an instant down to the largest multiple of
// stepMinutes (counted in seconds since the Unix epoch) not exceeding it.
// Sub-second precision is discarded.
func RoundToStep(t time.Time, stepMinutes int) time.Time {
	if stepMinutes <= 0 {
		stepMinutes = DefaultStepMinutes
	}
	step := int64(stepMinutes) * 60
	sec := t.Unix()
	return time.Unix(sec-mod(sec, step), 0).UTC()
}

// MinutesBetween returns floor((end - start) in seconds / 60). The result is
// negative when end precedes start; ordering is the caller's concern.
func MinutesBetween(start, end time.Time) int {
	secs := end.Unix() - start.Unix()
	m := secs / 60
	if secs%60 != 0 && secs < 0 {
		m--
	}
	return int(m)
}

// NowUTC returns the current instant in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// mod is a non-negative modulus; Go's % follows the sign of the dividend,
// which would round pre-epoch instants the wrong way.
func mod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
