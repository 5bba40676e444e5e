package persistence

import (
	"context"
	"time"
)

// UserRepository exposes CRUD operations for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int, error)
}

// RoomRepository exposes CRUD operations for rooms.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	UpdateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// CourseRepository exposes CRUD operations for courses.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course Course) error
	UpdateCourse(ctx context.Context, course Course) error
	GetCourse(ctx context.Context, id string) (Course, error)
	ListCourses(ctx context.Context) ([]Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

// LecturerRepository exposes CRUD operations for lecturers.
type LecturerRepository interface {
	CreateLecturer(ctx context.Context, lecturer Lecturer) error
	UpdateLecturer(ctx context.Context, lecturer Lecturer) error
	GetLecturer(ctx context.Context, id string) (Lecturer, error)
	ListLecturers(ctx context.Context) ([]Lecturer, error)
	DeleteLecturer(ctx context.Context, id string) error
}

// ScheduleRepository stores recurring and date-pinned class slots.
type ScheduleRepository interface {
	CreateSchedule(ctx context.Context, schedule Schedule) error
	UpdateSchedule(ctx context.Context, schedule Schedule) error
	GetSchedule(ctx context.Context, id string) (Schedule, error)
	ListSchedules(ctx context.Context) ([]Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}

// BookingRepository stores room reservation requests. ApproveBooking must
// re-check room/time conflicts inside the same transaction that flips the
// status, returning ErrBookingConflict when the approval would double-book.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking Booking) error
	GetBooking(ctx context.Context, id string) (Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	ListBookingsForUser(ctx context.Context, userID string) ([]Booking, error)
	UpdateBookingStatus(ctx context.Context, id, status string, updatedAt time.Time) (Booking, error)
	ApproveBooking(ctx context.Context, id string, updatedAt time.Time) (Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// ItemRepository exposes CRUD operations for borrowable equipment.
type ItemRepository interface {
	CreateItem(ctx context.Context, item Item) error
	UpdateItem(ctx context.Context, item Item) error
	GetItem(ctx context.Context, id string) (Item, error)
	ListItems(ctx context.Context) ([]Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// BorrowingRepository stores equipment borrowing requests. Status updates
// cascade onto the referenced item (borrow status and borrower label) within
// a single transaction.
type BorrowingRepository interface {
	CreateBorrowing(ctx context.Context, borrowing ItemBorrowing) error
	GetBorrowing(ctx context.Context, id string) (ItemBorrowing, error)
	ListBorrowings(ctx context.Context) ([]ItemBorrowing, error)
	ListBorrowingsForUser(ctx context.Context, userID string) ([]ItemBorrowing, error)
	HasActiveBorrowing(ctx context.Context, itemID string) (bool, error)
	UpdateBorrowingStatus(ctx context.Context, id, status, borrowerLabel string, updatedAt time.Time) (ItemBorrowing, error)
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
