package timetable

import "sort"

// ActiveOn returns the entries active on the target date in daily view. An
// entry qualifies when it is pinned to exactly that date (a one-off override
// always wins), or when it recurs on the date's weekday and its week mask
// admits the given week-of-term. Weekends and unparseable dates admit only
// date-pinned entries, which can never match there either, so the result is
// empty rather than an error.
//
// The result is ordered ascending by start time, ties broken by entry ID.
func ActiveOn(entries []Entry, date string, week int) []Entry {
	day, _ := ResolveWeekday(date)

	out := make([]Entry, 0)
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
			continue
		}
		if e.Date != "" {
			continue
		}
		if e.Day == day && weekActive(e.Weeks, week) {
			out = append(out, e)
		}
	}

	sortEntries(out)
	return out
}

// ActiveInWeek returns the entries visible in the Monday-aligned week
// containing date: every recurring entry active in that week-of-term plus
// every date-pinned entry whose date falls within Monday..Friday, regardless
// of weekday match against any single day.
func ActiveInWeek(entries []Entry, date string, week int) []Entry {
	monday, friday, ok := weekWindow(date)
	if !ok {
		return []Entry{}
	}

	out := make([]Entry, 0)
	for _, e := range entries {
		if e.Date != "" {
			if e.Date >= monday && e.Date <= friday {
				out = append(out, e)
			}
			continue
		}
		if e.Day.IsValid() && weekActive(e.Weeks, week) {
			out = append(out, e)
		}
	}

	sortEntries(out)
	return out
}

// weekActive reports whether an entry restricted to the given term weeks is
// active in week. An empty mask means every week of the term.
func weekActive(weeks []int, week int) bool {
	if len(weeks) == 0 {
		return true
	}
	for _, w := range weeks {
		if w == week {
			return true
		}
	}
	return false
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].StartTime == entries[j].StartTime {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].StartTime < entries[j].StartTime
	})
}
