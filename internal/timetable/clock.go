package timetable

import "fmt"

const minutesPerDay = 24 * 60

// ClockMinutes converts an "HH:MM" clock string to minutes since midnight.
func ClockMinutes(clock string) (int, bool) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, false
	}
	h, ok := twoDigits(clock[0], clock[1])
	if !ok || h > 23 {
		return 0, false
	}
	m, ok := twoDigits(clock[3], clock[4])
	if !ok || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// AddMinutes advances an "HH:MM" clock by delta minutes, wrapping within a
// 24 hour day. Cross-midnight windows are not modeled; the wrap only keeps
// the result a valid clock string.
func AddMinutes(clock string, delta int) (string, bool) {
	start, ok := ClockMinutes(clock)
	if !ok {
		return "", false
	}
	total := (start + delta) % minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60), true
}

// Overlaps applies the half-open interval rule to two clock ranges: entries
// that merely touch (one ending exactly when the other starts) do not
// overlap. Zero padded "HH:MM" strings order correctly lexicographically,
// so the comparison stays in string space throughout.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}
