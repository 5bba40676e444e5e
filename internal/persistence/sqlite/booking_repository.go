package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/campus-scheduler/internal/persistence"
	"github.com/example/campus-scheduler/internal/timetable"
)

// BookingRepository implements persistence.BookingRepository using SQLite.
type BookingRepository struct {
	pool *ConnectionPool
}

// NewBookingRepository creates a new SQLite booking repository.
func NewBookingRepository(pool *ConnectionPool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = "id, user_id, room_id, date, start_time, end_time, purpose, status, created_at, updated_at"

// CreateBooking inserts a new booking request.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking persistence.Booking) error {
	if booking.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		booking.ID,
		booking.UserID,
		booking.RoomID,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
		booking.Purpose,
		booking.Status,
		encodeTime(booking.CreatedAt),
		encodeTime(booking.UpdatedAt),
	)
	return mapError(err)
}

// GetBooking retrieves a booking by ID.
func (r *BookingRepository) GetBooking(ctx context.Context, id string) (persistence.Booking, error) {
	row := r.pool.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	return scanBooking(row)
}

// ListBookings returns all bookings ordered by date then start time.
func (r *BookingRepository) ListBookings(ctx context.Context) ([]persistence.Booking, error) {
	return r.queryBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY date ASC, start_time ASC, id ASC`)
}

// ListBookingsForUser returns the bookings created by one user.
func (r *BookingRepository) ListBookingsForUser(ctx context.Context, userID string) ([]persistence.Booking, error) {
	return r.queryBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = ? ORDER BY date ASC, start_time ASC, id ASC`,
		userID)
}

// UpdateBookingStatus sets the booking status without conflict checking.
// Approval must go through ApproveBooking instead.
func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, id, status string, updatedAt time.Time) (persistence.Booking, error) {
	result, err := r.pool.db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`,
		status, encodeTime(updatedAt), id)
	if err != nil {
		return persistence.Booking{}, mapError(err)
	}
	if err := requireRowsAffected(result); err != nil {
		return persistence.Booking{}, err
	}
	return r.GetBooking(ctx, id)
}

// ApproveBooking flips a booking to APPROVED after re-running the room/date
// conflict check inside the same transaction. Two racing approvals for
// overlapping slots serialize on the write transaction, so the second one
// sees the first approval and fails with ErrBookingConflict.
func (r *BookingRepository) ApproveBooking(ctx context.Context, id string, updatedAt time.Time) (persistence.Booking, error) {
	var approved persistence.Booking

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
		booking, err := scanBooking(row)
		if err != nil {
			return err
		}

		conflicting, err := approvalConflictsLocked(tx, booking)
		if err != nil {
			return err
		}
		if conflicting {
			return persistence.ErrBookingConflict
		}

		result, err := tx.Exec(
			`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`,
			string(timetable.BookingApproved), encodeTime(updatedAt), id)
		if err != nil {
			return mapError(err)
		}
		if err := requireRowsAffected(result); err != nil {
			return err
		}

		booking.Status = string(timetable.BookingApproved)
		booking.UpdatedAt = updatedAt.UTC()
		approved = booking
		return nil
	})
	if err != nil {
		return persistence.Booking{}, err
	}
	return approved, nil
}

// approvalConflictsLocked checks whether approving booking would overlap an
// already approved booking or a class schedule in the same room on the same
// date. Overlap math is delegated to the timetable engine so the guard and
// the availability view can never disagree.
func approvalConflictsLocked(tx *sql.Tx, booking persistence.Booking) (bool, error) {
	rows, err := tx.Query(
		`SELECT start_time, end_time FROM bookings WHERE room_id = ? AND date = ? AND status = ? AND id != ?`,
		booking.RoomID, booking.Date, string(timetable.BookingApproved), booking.ID)
	if err != nil {
		return false, mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var start, end string
		if err := rows.Scan(&start, &end); err != nil {
			return false, mapError(err)
		}
		if timetable.Overlaps(start, end, booking.StartTime, booking.EndTime) {
			return true, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, mapError(err)
	}

	day, _ := timetable.ResolveWeekday(booking.Date)
	scheduleRows, err := tx.Query(
		`SELECT day, start_time, end_time, date FROM schedules WHERE room_id = ?`, booking.RoomID)
	if err != nil {
		return false, mapError(err)
	}
	defer scheduleRows.Close()

	for scheduleRows.Next() {
		var scheduleDay, start, end string
		var date *string
		if err := scheduleRows.Scan(&scheduleDay, &start, &end, &date); err != nil {
			return false, mapError(err)
		}
		dayMatch := (date != nil && *date == booking.Date) ||
			(date == nil && timetable.Weekday(scheduleDay) == day)
		if dayMatch && timetable.Overlaps(start, end, booking.StartTime, booking.EndTime) {
			return true, nil
		}
	}
	if err := scheduleRows.Err(); err != nil {
		return false, mapError(err)
	}

	return false, nil
}

// DeleteBooking removes a booking by ID.
func (r *BookingRepository) DeleteBooking(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowsAffected(result)
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]persistence.Booking, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var bookings []persistence.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return bookings, nil
}

func scanBooking(row rowScanner) (persistence.Booking, error) {
	var booking persistence.Booking
	var createdAt, updatedAt string

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.RoomID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Purpose,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Booking{}, mapError(err)
	}

	if booking.CreatedAt, err = decodeTime(createdAt); err != nil {
		return persistence.Booking{}, err
	}
	if booking.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return persistence.Booking{}, err
	}
	return booking, nil
}
