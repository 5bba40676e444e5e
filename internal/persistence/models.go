package persistence

import "time"

// User represents an account stored for authentication and ownership checks.
type User struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Room represents a bookable room catalog entry.
type Room struct {
	ID        string
	Name      string
	Capacity  int
	Building  string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Course represents a taught course catalog entry.
type Course struct {
	ID        string
	Code      string
	Name      string
	Credits   int
	CreatedAt time.Time
	UpdatedAt time.Time
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

// Schedule represents a recurring or date-pinned class slot. Weeks is the
// ordered set of active term weeks; empty means every week. Date, when set,
// pins the entry to a single calendar day.
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

// Booking represents a room reservation request and its approval state.
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

// Borrowing lifecycle statuses.
const (
	BorrowingPending  = "PENDING"
	BorrowingApproved = "APPROVED"
	BorrowingRejected = "REJECTED"
	BorrowingReturned = "RETURNED"
)

// Item availability labels shown to users.
const (
	ItemAvailable = "Tersedia"
	ItemBorrowed  = "Dipinjam"
)

// Item represents a borrowable piece of equipment.
type Item struct {
	ID              string
	Name            string
	Brand           string
	AcquisitionYear string
	SerialNumber    string
	Condition       string
	Location        string
	Photo           *string
	BorrowStatus    string  // "Tersedia" or "Dipinjam"
	Borrower        *string // display label, present only while borrowed
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ItemBorrowing represents an equipment borrowing request and its lifecycle.
type ItemBorrowing struct {
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

// Session represents an authentication session persisted for a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}
