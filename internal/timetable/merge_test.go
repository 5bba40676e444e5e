package timetable

import (
	"reflect"
	"sort"
	"testing"
)

func TestMergeProjectsSchedulesUnchanged(t *testing.T) {
	schedules := []Schedule{
		{
			ID:           "s1",
			CourseID:     "c1",
			LecturerID:   "l1",
			RoomID:       "r1",
			Day:          Senin,
			StartTime:    "08:00",
			EndTime:      "10:00",
			StudyProgram: "D3 Administrasi Bisnis",
			ClassGroup:   "AB-2A",
			Semester:     4,
			CreditHours:  3,
			Weeks:        []int{1, 2, 3},
			Date:         "",
		},
	}

	entries := Merge(schedules, nil)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.IsBooking {
		t.Fatal("schedule-derived entry must not be marked as booking")
	}
	if e.ID != "s1" || e.CourseID != "c1" || e.LecturerID != "l1" || e.RoomID != "r1" {
		t.Fatalf("identity fields not carried: %+v", e)
	}
	if e.Day != Senin || e.StartTime != "08:00" || e.EndTime != "10:00" {
		t.Fatalf("time fields not carried: %+v", e)
	}
	if !reflect.DeepEqual(e.Weeks, []int{1, 2, 3}) {
		t.Fatalf("weeks not carried: %v", e.Weeks)
	}
}

func TestMergeFiltersBookingsByStatus(t *testing.T) {
	bookings := []Booking{
		{ID: "b1", RoomID: "r1", Date: "2024-03-05", StartTime: "09:00", EndTime: "12:00", Status: BookingApproved},
		{ID: "b2", RoomID: "r1", Date: "2024-03-05", StartTime: "13:00", EndTime: "14:00", Status: BookingPending},
		{ID: "b3", RoomID: "r1", Date: "2024-03-05", StartTime: "14:00", EndTime: "15:00", Status: BookingRejected},
	}

	entries := Merge(nil, bookings)
	if len(entries) != 1 {
		t.Fatalf("expected only the approved booking, got %d entries", len(entries))
	}
	if entries[0].ID != "booking-b1" {
		t.Fatalf("unexpected entry id %q", entries[0].ID)
	}
}

func TestMergeBookingProjection(t *testing.T) {
	booking := Booking{
		ID:        "b7",
		UserID:    "u9",
		RoomID:    "r4",
		Date:      "2024-03-05", // a Tuesday
		StartTime: "09:00",
		EndTime:   "12:00",
		Purpose:   "Seminar proposal",
		Status:    BookingApproved,
	}

	entries := Merge(nil, []Booking{booking})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if !e.IsBooking {
		t.Fatal("booking-derived entry must be marked as booking")
	}
	if e.CourseID != ReservationCourseID || e.LecturerID != ReservationLecturerID {
		t.Fatalf("sentinel ids missing: %+v", e)
	}
	if e.StudyProgram != ReservationProgram || e.ClassGroup != ReservationClassGroup {
		t.Fatalf("reservation markers missing: %+v", e)
	}
	if e.Day != Selasa {
		t.Fatalf("weekday not resolved from booking date: got %q", e.Day)
	}
	if e.Date != booking.Date || e.StartTime != booking.StartTime || e.EndTime != booking.EndTime || e.RoomID != booking.RoomID {
		t.Fatalf("booking fields not carried: %+v", e)
	}
	if e.BookingPurpose != booking.Purpose || e.BookingUser != booking.UserID {
		t.Fatalf("booking metadata not carried: %+v", e)
	}
	if len(e.Weeks) != TermWeeks || e.Weeks[0] != 1 || e.Weeks[TermWeeks-1] != TermWeeks {
		t.Fatalf("booking entry must span all %d term weeks, got %v", TermWeeks, e.Weeks)
	}
}

func TestMergeBookingWithUnresolvableDateFallsBackToMonday(t *testing.T) {
	booking := Booking{ID: "b1", RoomID: "r1", Date: "broken", StartTime: "09:00", EndTime: "10:00", Status: BookingApproved}

	entries := Merge(nil, []Booking{booking})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Day != Senin {
		t.Fatalf("expected Monday fallback, got %q", entries[0].Day)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	schedules := []Schedule{
		{ID: "s1", RoomID: "r1", Day: Senin, StartTime: "08:00", EndTime: "10:00"},
		{ID: "s2", RoomID: "r2", Day: Rabu, StartTime: "13:00", EndTime: "15:00", Weeks: []int{1, 3, 5}},
	}
	bookings := []Booking{
		{ID: "b1", RoomID: "r1", Date: "2024-03-05", StartTime: "09:00", EndTime: "12:00", Status: BookingApproved},
		{ID: "b2", RoomID: "r2", Date: "2024-03-06", StartTime: "10:00", EndTime: "11:00", Status: BookingPending},
	}

	first := Merge(schedules, bookings)
	second := Merge(schedules, bookings)

	sortEntries(first)
	sortEntries(second)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("merging the same snapshot twice diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestMergedBookingAlwaysActiveOnItsDate(t *testing.T) {
	// Week filtering must never drop a booking entry: only its date gates it.
	booking := Booking{ID: "b1", RoomID: "r1", Date: "2024-03-05", StartTime: "09:00", EndTime: "12:00", Status: BookingApproved}
	entries := Merge(nil, []Booking{booking})

	for week := 1; week <= TermWeeks; week++ {
		active := ActiveOn(entries, "2024-03-05", week)
		if len(active) != 1 || active[0].ID != "booking-b1" {
			t.Fatalf("week %d: booking entry missing from its own date, got %+v", week, active)
		}
	}
}

func TestMergeOutputSetIsStableAcrossInputOrder(t *testing.T) {
	schedules := []Schedule{
		{ID: "s1", RoomID: "r1", Day: Senin, StartTime: "08:00", EndTime: "10:00"},
		{ID: "s2", RoomID: "r2", Day: Selasa, StartTime: "10:00", EndTime: "12:00"},
	}
	reversed := []Schedule{schedules[1], schedules[0]}

	a := Merge(schedules, nil)
	b := Merge(reversed, nil)

	ids := func(entries []Entry) []string {
		out := make([]string, len(entries))
		for i, e := range entries {
			out[i] = e.ID
		}
		sort.Strings(out)
		return out
	}

	if !reflect.DeepEqual(ids(a), ids(b)) {
		t.Fatalf("merge output set depends on input order: %v vs %v", ids(a), ids(b))
	}
}
