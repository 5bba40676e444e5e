package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/campus-scheduler/internal/persistence"
	"github.com/example/campus-scheduler/internal/timetable"
)

// BookingService orchestrates room reservation requests and their approval
// lifecycle. Requests start pending; approval re-checks room conflicts inside
// the storage transaction so racing approvals cannot double-book.
type BookingService struct {
	bookings    persistence.BookingRepository
	rooms       persistence.RoomRepository
	idGenerator func() string
	now         func() time.Time
	invalidate  func()
	logger      *slog.Logger
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(
	bookings persistence.BookingRepository,
	rooms persistence.RoomRepository,
	idGenerator func() string,
	now func() time.Time,
	invalidate func(),
	logger *slog.Logger,
) *BookingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if invalidate == nil {
		invalidate = func() {}
	}
	return &BookingService{
		bookings:    bookings,
		rooms:       rooms,
		idGenerator: idGenerator,
		now:         now,
		invalidate:  invalidate,
		logger:      defaultLogger(logger),
	}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// CreateBooking validates input and files a pending reservation owned by the
// acting principal.
func (s *BookingService) CreateBooking(ctx context.Context, params CreateBookingParams) (booking Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateBooking",
		"principal_id", params.Principal.UserID,
		"room_id", params.Input.RoomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", booking.ID).InfoContext(ctx, "booking created")
	}()

	input := params.Input
	input.RoomID = strings.TrimSpace(input.RoomID)
	input.Date = strings.TrimSpace(input.Date)
	input.StartTime = strings.TrimSpace(input.StartTime)
	input.EndTime = strings.TrimSpace(input.EndTime)
	input.Purpose = strings.TrimSpace(input.Purpose)

	vErr := validateBookingInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if s.rooms != nil {
		if _, roomErr := s.rooms.GetRoom(ctx, input.RoomID); roomErr != nil {
			if errors.Is(roomErr, persistence.ErrNotFound) {
				vErr.add("roomId", "room does not exist")
				err = vErr
				return
			}
			err = mapRepoError(roomErr)
			return
		}
	}

	now := s.now()
	record := persistence.Booking{
		ID:        s.idGenerator(),
		UserID:    params.Principal.UserID,
		RoomID:    input.RoomID,
		Date:      input.Date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Purpose:   input.Purpose,
		Status:    string(timetable.BookingPending),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.bookings.CreateBooking(ctx, record); err != nil {
		err = mapRepoError(err)
		return
	}

	s.invalidate()
	booking = bookingFromRecord(record)
	return
}

// GetBooking returns one booking. Non-admin principals may only read their own.
func (s *BookingService) GetBooking(ctx context.Context, principal Principal, bookingID string) (Booking, error) {
	if s == nil {
		return Booking{}, fmt.Errorf("BookingService is nil")
	}
	record, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return Booking{}, mapRepoError(err)
	}
	if !principal.IsAdmin && record.UserID != principal.UserID {
		return Booking{}, ErrUnauthorized
	}
	return bookingFromRecord(record), nil
}

// ListBookings returns all bookings for administrators and only the
// principal's own bookings otherwise.
func (s *BookingService) ListBookings(ctx context.Context, principal Principal) (bookings []Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListBookings",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list bookings", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(bookings)).InfoContext(ctx, "bookings listed")
	}()

	var raw []persistence.Booking
	if principal.IsAdmin {
		raw, err = s.bookings.ListBookings(ctx)
	} else {
		raw, err = s.bookings.ListBookingsForUser(ctx, principal.UserID)
	}
	if err != nil {
		err = mapRepoError(err)
		return
	}

	bookings = make([]Booking, 0, len(raw))
	for _, record := range raw {
		bookings = append(bookings, bookingFromRecord(record))
	}
	return
}

// UpdateBookingStatus decides a pending booking for administrators. Approval
// runs the transactional conflict guard and surfaces ErrBookingConflict when
// the room is already taken for the requested window.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, params UpdateBookingStatusParams) (booking Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateBookingStatus",
		"principal_id", params.Principal.UserID,
		"booking_id", params.BookingID,
		"status", params.Status,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update booking status", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", booking.ID).InfoContext(ctx, "booking status updated")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	status := timetable.BookingStatus(strings.ToUpper(strings.TrimSpace(params.Status)))
	var record persistence.Booking
	switch status {
	case timetable.BookingApproved:
		record, err = s.bookings.ApproveBooking(ctx, params.BookingID, s.now())
	case timetable.BookingRejected, timetable.BookingPending:
		record, err = s.bookings.UpdateBookingStatus(ctx, params.BookingID, string(status), s.now())
	default:
		vErr := &ValidationError{}
		vErr.add("status", "status must be PENDING, APPROVED, or REJECTED")
		err = vErr
		return
	}
	if err != nil {
		err = mapRepoError(err)
		return
	}

	s.invalidate()
	booking = bookingFromRecord(record)
	return
}

// DeleteBooking removes a booking. Administrators may delete any booking;
// owners may withdraw their own while it is still pending.
func (s *BookingService) DeleteBooking(ctx context.Context, principal Principal, bookingID string) error {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteBooking",
		"principal_id", principal.UserID,
		"booking_id", bookingID,
	)

	record, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete booking", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if !principal.IsAdmin {
		if record.UserID != principal.UserID || record.Status != string(timetable.BookingPending) {
			logger.ErrorContext(ctx, "failed to delete booking", "error", ErrUnauthorized, "error_kind", ErrorKind(ErrUnauthorized))
			return ErrUnauthorized
		}
	}

	if err := s.bookings.DeleteBooking(ctx, bookingID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete booking", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	s.invalidate()
	logger.InfoContext(ctx, "booking deleted")
	return nil
}

func validateBookingInput(input BookingInput) *ValidationError {
	vErr := &ValidationError{}

	if input.RoomID == "" {
		vErr.add("roomId", "room is required")
	}
	if _, ok := timetable.ResolveWeekday(input.Date); !ok {
		vErr.add("date", "date must be a teaching weekday in the YYYY-MM-DD format")
	}

	_, startOK := timetable.ClockMinutes(input.StartTime)
	if !startOK {
		vErr.add("startTime", "start time must use the HH:MM format")
	}
	_, endOK := timetable.ClockMinutes(input.EndTime)
	if !endOK {
		vErr.add("endTime", "end time must use the HH:MM format")
	}
	if startOK && endOK && input.StartTime >= input.EndTime {
		vErr.add("endTime", "end time must be after start time")
	}

	if input.Purpose == "" {
		vErr.add("purpose", "purpose is required")
	}

	return vErr
}
