// Package timetable implements the merged campus timeline: recurring class
// schedules, date-specific overrides, and approved room bookings are combined
// into a single queryable collection over which day filtering, conflict
// detection, and room availability are computed. Every function in this
// package is a pure query over the snapshot passed in by the caller.
package timetable

// TermWeeks is the number of week slots in one academic term.
const TermWeeks = 16

// BookingStatus tracks the approval lifecycle of a room reservation request.
type BookingStatus string

const (
	BookingPending  BookingStatus = "PENDING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

// Sentinel values stamped onto booking-derived entries so presentation code
// can resolve them without a catalog lookup.
const (
	ReservationCourseID   = "RESERVATION"
	ReservationLecturerID = "PIC"
	ReservationProgram    = "Public Reservation"
	ReservationClassGroup = "EXT-REQ"
)

// Schedule is a recurring weekly class slot, optionally pinned to a single
// calendar date or restricted to a subset of term weeks.
type Schedule struct {
	ID           string
	CourseID     string
	LecturerID   string
	RoomID       string
	Day          Weekday
	StartTime    string // "HH:MM", zero padded
	EndTime      string
	StudyProgram string
	ClassGroup   string
	Semester     int
	CreditHours  int
	Weeks        []int  // active term weeks; empty means every week
	Date         string // "YYYY-MM-DD"; when set the entry applies only on this date
}

// Booking is a room reservation request. Only approved bookings participate
// in the merged timeline; pending and rejected ones never affect availability.
type Booking struct {
	ID        string
	UserID    string
	RoomID    string
	Date      string
	StartTime string
	EndTime   string
	Purpose   string
	Status    BookingStatus
}

// Room is the catalog entry availability queries filter over.
type Room struct {
	ID       string
	Name     string
	Capacity int
	Building string
	Type     string
}

// Entry is the unified, merge-time representation of a schedule or an
// approved booking. It is ephemeral and recomputed on every query.
type Entry struct {
	ID           string
	CourseID     string
	LecturerID   string
	RoomID       string
	Day          Weekday
	StartTime    string
	EndTime      string
	StudyProgram string
	ClassGroup   string
	Semester     int
	CreditHours  int
	Weeks        []int
	Date         string

	IsBooking      bool
	BookingPurpose string
	BookingUser    string
}
