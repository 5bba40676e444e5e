package timetable

// TermConfig anchors week-of-term arithmetic to the semester start date.
// The zero value (no start date configured) pins every query to week 1,
// matching deployments that never configured a semester calendar.
type TermConfig struct {
	// StartDate is the "YYYY-MM-DD" date the term begins. Week 1 is the
	// Monday-aligned week containing this date.
	StartDate string
}

// WeekOf derives the 1-indexed term week containing date. Dates before the
// term start, unparseable dates, and an unconfigured term all resolve to
// week 1 so callers degrade to the most permissive week rather than hiding
// the whole timetable.
func (c TermConfig) WeekOf(date string) int {
	start, ok := parseDate(c.StartDate)
	if !ok {
		return 1
	}
	target, ok := parseDate(date)
	if !ok {
		return 1
	}

	startMonday := mondayOf(start)
	targetMonday := mondayOf(target)

	days := int(targetMonday.Sub(startMonday).Hours() / 24)
	week := days/7 + 1
	if week < 1 {
		return 1
	}
	return week
}
