package application

import "time"

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Name     string
	Capacity int
	Building string
	Type     string
}

// Room represents a catalog entry for a teaching room.
type Room struct {
	ID        string
	Name      string
	Capacity  int
	Building  string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateRoomParams wraps the data required to create a room.
type CreateRoomParams struct {
	Principal Principal
	Input     RoomInput
}

// UpdateRoomParams wraps the data required to update a room.
type UpdateRoomParams struct {
	Principal Principal
	RoomID    string
	Input     RoomInput
}

// CourseInput captures caller provided course fields.
type CourseInput struct {
	Code    string
	Name    string
	Credits int
}

// Course represents a taught course.
type Course struct {
	ID        string
	Code      string
	Name      string
	Credits   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LecturerInput captures caller provided lecturer fields.
type LecturerInput struct {
	NIP          string
	Name         string
	StudyProgram string
	Email        string
	Phone        string
}

// Lecturer represents a member of the teaching staff.
type Lecturer struct {
	ID           string
	NIP          string
	Name         string
	StudyProgram string
	Email        string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ItemInput captures caller provided equipment fields.
type ItemInput struct {
	Name            string
	Brand           string
	AcquisitionYear string
	SerialNumber    string
	Condition       string
	Location        string
	Photo           *string
}

// Item represents a borrowable piece of equipment including its live
// availability state.
type Item struct {
	ID              string
	Name            string
	Brand           string
	AcquisitionYear string
	SerialNumber    string
	Condition       string
	Location        string
	Photo           *string
	BorrowStatus    string
	Borrower        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ScheduleInput captures caller provided class slot fields. Weeks lists the
// active term weeks; empty means every week. Date pins the slot to a single
// calendar day and takes precedence over Day on that date.
type ScheduleInput struct {
	CourseID     string
	LecturerID   string
	RoomID       string
	Day          string
	StartTime    string
	EndTime      string
	StudyProgram string
	ClassGroup   string
	Semester     int
	CreditHours  int
	Weeks        []int
	Date         *string
}

// Schedule represents a persisted class slot.
type Schedule struct {
	ID           string
	CourseID     string
	LecturerID   string
	RoomID       string
	Day          string
	StartTime    string
	EndTime      string
	StudyProgram string
	ClassGroup   string
	Semester     int
	CreditHours  int
	Weeks        []int
	Date         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateScheduleParams wraps the data required to create a schedule.
type CreateScheduleParams struct {
	Principal Principal
	Input     ScheduleInput
}

// UpdateScheduleParams wraps the data required to update a schedule.
type UpdateScheduleParams struct {
	Principal  Principal
	ScheduleID string
	Input      ScheduleInput
}

// BookingInput captures caller provided reservation fields.
type BookingInput struct {
	RoomID    string
	Date      string
	StartTime string
	EndTime   string
	Purpose   string
}

// Booking represents a room reservation request.
type Booking struct {
	ID        string
	UserID    string
	RoomID    string
	Date      string
	StartTime string
	EndTime   string
	Purpose   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateBookingParams wraps the data required to file a booking request.
type CreateBookingParams struct {
	Principal Principal
	Input     BookingInput
}

// UpdateBookingStatusParams wraps the data required to decide a booking request.
type UpdateBookingStatusParams struct {
	Principal Principal
	BookingID string
	Status    string
}

// BorrowingInput captures caller provided borrowing fields.
type BorrowingInput struct {
	ItemID     string
	BorrowDate string
	Purpose    string
}

// Borrowing represents an equipment borrowing request.
type Borrowing struct {
	ID         string
	UserID     string
	ItemID     string
	BorrowDate string
	ReturnDate *string
	Purpose    string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateBorrowingParams wraps the data required to file a borrowing request.
type CreateBorrowingParams struct {
	Principal Principal
	Input     BorrowingInput
}

// UpdateBorrowingStatusParams wraps the data required to move a borrowing
// through its lifecycle.
type UpdateBorrowingStatusParams struct {
	Principal   Principal
	BorrowingID string
	Status      string
}

// UserInput captures caller provided user attributes. Password is only
// consulted on create; updates keep the stored hash when it is empty.
type UserInput struct {
	Username string
	FullName string
	Password string
	IsAdmin  bool
}

// User represents an account exposed by the application services.
type User struct {
	ID        string
	Username  string
	FullName  string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserParams wraps the data required to create a user.
type CreateUserParams struct {
	Principal Principal
	Input     UserInput
}

// UpdateUserParams wraps the data required to update a user.
type UpdateUserParams struct {
	Principal Principal
	UserID    string
	Input     UserInput
}

// Session represents an authenticated session issued to a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// AuthenticateParams captures the data required to authenticate a user.
type AuthenticateParams struct {
	Username string
	Password string
}

// AuthenticateResult captures the outcome of a successful authentication attempt.
type AuthenticateResult struct {
	User    User
	Session Session
}

// TimetableView selects the slice of the merged timetable returned for a date.
type TimetableView string

const (
	// ViewDay returns the entries active on the requested date only.
	ViewDay TimetableView = "day"
	// ViewWeek returns the entries active in the Monday-to-Friday week
	// containing the requested date.
	ViewWeek TimetableView = "week"
)

// AvailabilityQuery describes a requested room usage window.
type AvailabilityQuery struct {
	Date            string
	StartTime       string
	DurationMinutes int
}
