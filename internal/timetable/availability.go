package timetable

// AvailableRooms returns the rooms free for the whole window starting at
// startTime on date and lasting durationMinutes. A room is unavailable when
// any schedule applies to that date (explicit date match, or recurring on
// the date's weekday) and overlaps the window, or when any non-rejected
// booking on that date overlaps it. Pending bookings block availability so
// two users cannot queue requests for the same slot.
//
// Weekends and unparseable dates have no bookable slots: the result is
// empty. Input order is preserved for the rooms that survive.
func AvailableRooms(rooms []Room, schedules []Schedule, bookings []Booking, date, startTime string, durationMinutes int) []Room {
	day, ok := ResolveWeekday(date)
	if !ok {
		return []Room{}
	}

	endTime, ok := AddMinutes(startTime, durationMinutes)
	if !ok || durationMinutes <= 0 {
		return []Room{}
	}

	out := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		if roomOccupied(room.ID, schedules, bookings, date, day, startTime, endTime) {
			continue
		}
		out = append(out, room)
	}
	return out
}

func roomOccupied(roomID string, schedules []Schedule, bookings []Booking, date string, day Weekday, start, end string) bool {
	for _, s := range schedules {
		if s.RoomID != roomID {
			continue
		}
		dayMatch := s.Date == date || (s.Date == "" && s.Day == day)
		if !dayMatch {
			continue
		}
		if Overlaps(s.StartTime, s.EndTime, start, end) {
			return true
		}
	}

	for _, b := range bookings {
		if b.RoomID != roomID || b.Status == BookingRejected || b.Date != date {
			continue
		}
		if Overlaps(b.StartTime, b.EndTime, start, end) {
			return true
		}
	}

	return false
}
