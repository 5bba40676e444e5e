package timetable

import "testing"

func roomIDs(rooms []Room) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.ID
	}
	return out
}

func TestAvailableRoomsExcludesBookedRoom(t *testing.T) {
	rooms := []Room{{ID: "r1"}, {ID: "r4"}}
	bookings := []Booking{
		{ID: "b1", RoomID: "r4", Date: "2024-03-05", StartTime: "09:00", EndTime: "12:00", Status: BookingApproved},
	}

	// 60 minute window at 10:00 on the booking date lands inside 09:00-12:00.
	available := AvailableRooms(rooms, nil, bookings, "2024-03-05", "10:00", 60)

	if containsRoom(available, "r4") {
		t.Fatalf("r4 must be excluded, got %v", roomIDs(available))
	}
	if !containsRoom(available, "r1") {
		t.Fatalf("r1 must remain available, got %v", roomIDs(available))
	}
}

func TestAvailableRoomsAllowsAbuttingWindow(t *testing.T) {
	rooms := []Room{{ID: "r1"}}
	schedules := []Schedule{
		{ID: "s1", RoomID: "r1", Day: Selasa, StartTime: "08:00", EndTime: "10:00"},
	}

	// 30 minute window starting exactly when the class ends.
	available := AvailableRooms(rooms, schedules, nil, "2024-03-05", "10:00", 30)
	if !containsRoom(available, "r1") {
		t.Fatalf("abutting window must not block the room, got %v", roomIDs(available))
	}
}

func TestAvailableRoomsSchedulesBlock(t *testing.T) {
	rooms := []Room{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}
	schedules := []Schedule{
		// Recurring Tuesday class.
		{ID: "s1", RoomID: "r1", Day: Selasa, StartTime: "08:00", EndTime: "10:00"},
		// One-off override pinned to the query date, weekday field stale.
		{ID: "s2", RoomID: "r2", Day: Jumat, Date: "2024-03-05", StartTime: "09:00", EndTime: "11:00"},
		// Recurring class on another weekday.
		{ID: "s3", RoomID: "r3", Day: Rabu, StartTime: "08:00", EndTime: "12:00"},
	}

	available := AvailableRooms(rooms, schedules, nil, "2024-03-05", "09:00", 60)

	if containsRoom(available, "r1") {
		t.Fatal("recurring Tuesday class must block r1 on a Tuesday")
	}
	if containsRoom(available, "r2") {
		t.Fatal("date-pinned schedule must block r2 on its date")
	}
	if !containsRoom(available, "r3") {
		t.Fatal("Wednesday class must not block r3 on a Tuesday")
	}
}

func TestAvailableRoomsBookingStatusHandling(t *testing.T) {
	rooms := []Room{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}
	bookings := []Booking{
		{ID: "b1", RoomID: "r1", Date: "2024-03-05", StartTime: "09:00", EndTime: "11:00", Status: BookingApproved},
		{ID: "b2", RoomID: "r2", Date: "2024-03-05", StartTime: "09:00", EndTime: "11:00", Status: BookingPending},
		{ID: "b3", RoomID: "r3", Date: "2024-03-05", StartTime: "09:00", EndTime: "11:00", Status: BookingRejected},
	}

	available := AvailableRooms(rooms, nil, bookings, "2024-03-05", "09:30", 30)

	if containsRoom(available, "r1") {
		t.Fatal("approved booking must block the room")
	}
	if containsRoom(available, "r2") {
		t.Fatal("pending booking must block the room")
	}
	if !containsRoom(available, "r3") {
		t.Fatal("rejected booking must not block the room")
	}
}

func TestAvailableRoomsOtherDateDoesNotBlock(t *testing.T) {
	rooms := []Room{{ID: "r1"}}
	bookings := []Booking{
		{ID: "b1", RoomID: "r1", Date: "2024-03-12", StartTime: "09:00", EndTime: "11:00", Status: BookingApproved},
	}

	available := AvailableRooms(rooms, nil, bookings, "2024-03-05", "09:30", 30)
	if !containsRoom(available, "r1") {
		t.Fatal("booking on another date must not block availability")
	}
}

func TestAvailableRoomsEdgeInputs(t *testing.T) {
	rooms := []Room{{ID: "r1"}}

	cases := []struct {
		name     string
		date     string
		start    string
		duration int
	}{
		{name: "weekend", date: "2024-03-09", start: "10:00", duration: 60},
		{name: "bad date", date: "garbage", start: "10:00", duration: 60},
		{name: "bad start time", date: "2024-03-05", start: "10h00", duration: 60},
		{name: "zero duration", date: "2024-03-05", start: "10:00", duration: 0},
		{name: "negative duration", date: "2024-03-05", start: "10:00", duration: -30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if available := AvailableRooms(rooms, nil, nil, tc.date, tc.start, tc.duration); len(available) != 0 {
				t.Fatalf("expected no bookable rooms, got %v", roomIDs(available))
			}
		})
	}
}

func TestAvailableRoomsPreservesInputOrder(t *testing.T) {
	rooms := []Room{{ID: "r3"}, {ID: "r1"}, {ID: "r2"}}

	available := AvailableRooms(rooms, nil, nil, "2024-03-05", "10:00", 60)
	got := roomIDs(available)
	want := []string{"r3", "r1", "r2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order changed: got %v, want %v", got, want)
		}
	}
}

func containsRoom(rooms []Room, id string) bool {
	for _, r := range rooms {
		if r.ID == id {
			return true
		}
	}
	return false
}
