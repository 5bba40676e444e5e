package timetable

import "time"

// Weekday is an academic day of the week. Values carry the Indonesian day
// names used throughout the stored schedule data.
type Weekday string

const (
	Senin  Weekday = "Senin"
	Selasa Weekday = "Selasa"
	Rabu   Weekday = "Rabu"
	Kamis  Weekday = "Kamis"
	Jumat  Weekday = "Jumat"
)

// Weekdays lists the academic days in calendar order, Monday first.
var Weekdays = []Weekday{Senin, Selasa, Rabu, Kamis, Jumat}

// IsValid reports whether d is one of the five academic weekdays.
func (d Weekday) IsValid() bool {
	switch d {
	case Senin, Selasa, Rabu, Kamis, Jumat:
		return true
	}
	return false
}

var goWeekdays = map[time.Weekday]Weekday{
	time.Monday:    Senin,
	time.Tuesday:   Selasa,
	time.Wednesday: Rabu,
	time.Thursday:  Kamis,
	time.Friday:    Jumat,
}

// ResolveWeekday maps a "YYYY-MM-DD" calendar date to its academic weekday.
// Saturdays, Sundays, and unparseable input yield ok=false; callers must
// treat that as "no recurring activity applies", never as an error.
//
// The date is evaluated on its calendar fields alone. Parsing is pinned to
// UTC so the host timezone can never shift the computed day.
func ResolveWeekday(date string) (Weekday, bool) {
	t, ok := parseDate(date)
	if !ok {
		return "", false
	}
	day, ok := goWeekdays[t.Weekday()]
	return day, ok
}

// parseDate parses a strict "YYYY-MM-DD" date in UTC. Inputs that the
// calendar would normalize away (2024-02-31 and the like) are rejected.
func parseDate(date string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// mondayOf returns the Monday of the week containing date.
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// weekWindow computes the Monday..Friday date range containing date, in
// "YYYY-MM-DD" form, for rendering a full-week grid.
func weekWindow(date string) (monday, friday string, ok bool) {
	t, ok := parseDate(date)
	if !ok {
		return "", "", false
	}
	start := mondayOf(t)
	return start.Format("2006-01-02"), start.AddDate(0, 0, 4).Format("2006-01-02"), true
}
