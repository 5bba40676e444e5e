package timetable

// Merge combines persisted schedules with approved bookings into one unified
// collection. Schedules are projected verbatim; each approved booking becomes
// a synthetic entry carrying reservation sentinels and an all-weeks mask, so
// week-of-term filtering keeps it and only its explicit date gates it.
//
// Output ordering is unspecified here; query-time filters apply presentation
// ordering. Merge never fails: it is side-effect-free and total.
func Merge(schedules []Schedule, bookings []Booking) []Entry {
	entries := make([]Entry, 0, len(schedules)+len(bookings))

	for _, s := range schedules {
		entries = append(entries, Entry{
			ID:           s.ID,
			CourseID:     s.CourseID,
			LecturerID:   s.LecturerID,
			RoomID:       s.RoomID,
			Day:          s.Day,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			StudyProgram: s.StudyProgram,
			ClassGroup:   s.ClassGroup,
			Semester:     s.Semester,
			CreditHours:  s.CreditHours,
			Weeks:        cloneWeeks(s.Weeks),
			Date:         s.Date,
		})
	}

	for _, b := range bookings {
		if b.Status != BookingApproved {
			continue
		}
		entries = append(entries, bookingEntry(b))
	}

	return entries
}

func bookingEntry(b Booking) Entry {
	day, ok := ResolveWeekday(b.Date)
	if !ok {
		// Unresolvable booking dates fall back to Monday; the explicit
		// date still decides when the entry is actually shown.
		day = Senin
	}
	return Entry{
		ID:             "booking-" + b.ID,
		CourseID:       ReservationCourseID,
		LecturerID:     ReservationLecturerID,
		RoomID:         b.RoomID,
		Day:            day,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		StudyProgram:   ReservationProgram,
		ClassGroup:     ReservationClassGroup,
		Weeks:          allWeeks(),
		Date:           b.Date,
		IsBooking:      true,
		BookingPurpose: b.Purpose,
		BookingUser:    b.UserID,
	}
}

func allWeeks() []int {
	weeks := make([]int, TermWeeks)
	for i := range weeks {
		weeks[i] = i + 1
	}
	return weeks
}

func cloneWeeks(weeks []int) []int {
	if len(weeks) == 0 {
		return nil
	}
	out := make([]int, len(weeks))
	copy(out, weeks)
	return out
}
