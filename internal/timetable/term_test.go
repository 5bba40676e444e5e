package timetable

import "testing"

func TestTermConfigWeekOf(t *testing.T) {
	// Term starts Monday 2024-02-26.
	term := TermConfig{StartDate: "2024-02-26"}

	cases := []struct {
		name string
		date string
		want int
	}{
		{name: "start date itself", date: "2024-02-26", want: 1},
		{name: "friday of week 1", date: "2024-03-01", want: 1},
		{name: "sunday still week 1", date: "2024-03-03", want: 1},
		{name: "monday of week 2", date: "2024-03-04", want: 2},
		{name: "midweek of week 3", date: "2024-03-13", want: 3},
		{name: "week 16", date: "2024-06-10", want: 16},
		{name: "before term clamps to week 1", date: "2024-02-12", want: 1},
		{name: "unparseable date degrades to week 1", date: "nope", want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := term.WeekOf(tc.date); got != tc.want {
				t.Fatalf("WeekOf(%q) = %d, want %d", tc.date, got, tc.want)
			}
		})
	}
}

func TestTermConfigMidweekStart(t *testing.T) {
	// A term starting Wednesday still counts its whole Monday-aligned week
	// as week 1.
	term := TermConfig{StartDate: "2024-02-28"}

	if got := term.WeekOf("2024-02-26"); got != 1 {
		t.Fatalf("Monday before a Wednesday start should be week 1, got %d", got)
	}
	if got := term.WeekOf("2024-03-04"); got != 2 {
		t.Fatalf("next Monday should be week 2, got %d", got)
	}
}

func TestTermConfigUnconfigured(t *testing.T) {
	var term TermConfig

	for _, date := range []string{"2024-03-04", "2024-09-30", "bad"} {
		if got := term.WeekOf(date); got != 1 {
			t.Fatalf("unconfigured term must pin week 1, got %d for %q", got, date)
		}
	}
}

func TestWeeksRestrictedScheduleAcrossTerm(t *testing.T) {
	// A Monday 08:00-10:00 class limited to weeks 1..8: active in week 3,
	// inactive in week 10, evaluated against real term arithmetic.
	term := TermConfig{StartDate: "2024-02-26"}
	entries := Merge([]Schedule{
		{ID: "s1", RoomID: "r1", Day: Senin, StartTime: "08:00", EndTime: "10:00", Weeks: []int{1, 2, 3, 4, 5, 6, 7, 8}},
	}, nil)

	week3Monday := "2024-03-11"
	if got := term.WeekOf(week3Monday); got != 3 {
		t.Fatalf("fixture drift: expected week 3, got %d", got)
	}
	if active := ActiveOn(entries, week3Monday, term.WeekOf(week3Monday)); len(active) != 1 {
		t.Fatalf("class must be active on a Monday in week 3, got %v", entryIDs(active))
	}

	week10Monday := "2024-04-29"
	if got := term.WeekOf(week10Monday); got != 10 {
		t.Fatalf("fixture drift: expected week 10, got %d", got)
	}
	if active := ActiveOn(entries, week10Monday, term.WeekOf(week10Monday)); len(active) != 0 {
		t.Fatalf("class must be inactive in week 10, got %v", entryIDs(active))
	}
}
