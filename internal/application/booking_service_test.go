package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/campus-scheduler/internal/persistence"
	"github.com/example/campus-scheduler/internal/timetable"
)

func TestBookingService_CreateBooking(t *testing.T) {
	now := time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)
	room := persistence.Room{ID: "room-1", Name: "Lab Komputer 1", Capacity: 30}

	t.Run("files a pending booking owned by the principal", func(t *testing.T) {
		bookings := newBookingRepoStub()
		svc := NewBookingService(bookings, newRoomRepoStub(room),
			func() string { return "bk-1" }, func() time.Time { return now }, nil, nil)

		created, err := svc.CreateBooking(context.Background(), CreateBookingParams{
			Principal: Principal{UserID: "user-7"},
			Input: BookingInput{
				RoomID:    "room-1",
				Date:      "2024-03-14",
				StartTime: "10:00",
				EndTime:   "12:00",
				Purpose:   "  Seminar proposal  ",
			},
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if created.ID != "bk-1" {
			t.Fatalf("expected generated id bk-1, got %q", created.ID)
		}
		if created.UserID != "user-7" {
			t.Fatalf("expected owner user-7, got %q", created.UserID)
		}
		if created.Status != string(timetable.BookingPending) {
			t.Fatalf("expected status PENDING, got %q", created.Status)
		}
		if created.Purpose != "Seminar proposal" {
			t.Fatalf("expected trimmed purpose, got %q", created.Purpose)
		}
		if stored, ok := bookings.bookings["bk-1"]; !ok || stored.Status != string(timetable.BookingPending) {
			t.Fatalf("expected pending booking persisted, got %+v", stored)
		}
	})

	t.Run("rejects weekend dates", func(t *testing.T) {
		svc := NewBookingService(newBookingRepoStub(), newRoomRepoStub(room), nil, nil, nil, nil)

		_, err := svc.CreateBooking(context.Background(), CreateBookingParams{
			Principal: Principal{UserID: "user-7"},
			Input: BookingInput{
				RoomID:    "room-1",
				Date:      "2024-03-16", // Saturday
				StartTime: "10:00",
				EndTime:   "12:00",
				Purpose:   "Latihan",
			},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["date"]; !ok {
			t.Fatalf("expected date validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("rejects malformed and inverted windows", func(t *testing.T) {
		svc := NewBookingService(newBookingRepoStub(), newRoomRepoStub(room), nil, nil, nil, nil)

		_, err := svc.CreateBooking(context.Background(), CreateBookingParams{
			Principal: Principal{UserID: "user-7"},
			Input: BookingInput{
				RoomID:    "room-1",
				Date:      "2024-03-14",
				StartTime: "12:00",
				EndTime:   "10:00",
				Purpose:   "Latihan",
			},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["endTime"]; !ok {
			t.Fatalf("expected endTime validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("rejects unknown rooms", func(t *testing.T) {
		svc := NewBookingService(newBookingRepoStub(), newRoomRepoStub(), nil, nil, nil, nil)

		_, err := svc.CreateBooking(context.Background(), CreateBookingParams{
			Principal: Principal{UserID: "user-7"},
			Input: BookingInput{
				RoomID:    "missing",
				Date:      "2024-03-14",
				StartTime: "10:00",
				EndTime:   "12:00",
				Purpose:   "Latihan",
			},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["roomId"]; !ok {
			t.Fatalf("expected roomId validation error, got %v", vErr.FieldErrors)
		}
	})
}

func TestBookingService_UpdateBookingStatus(t *testing.T) {
	now := time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)
	pending := persistence.Booking{
		ID:     "bk-1",
		UserID: "user-7",
		RoomID: "room-1",
		Date:   "2024-03-14",
		Status: string(timetable.BookingPending),
	}

	t.Run("requires administrator privileges", func(t *testing.T) {
		svc := NewBookingService(newBookingRepoStub(pending), nil, nil, nil, nil, nil)

		_, err := svc.UpdateBookingStatus(context.Background(), UpdateBookingStatusParams{
			Principal: Principal{UserID: "user-7"},
			BookingID: "bk-1",
			Status:    "APPROVED",
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("approval goes through the conflict guard", func(t *testing.T) {
		bookings := newBookingRepoStub(pending)
		svc := NewBookingService(bookings, nil, nil, func() time.Time { return now }, nil, nil)

		updated, err := svc.UpdateBookingStatus(context.Background(), UpdateBookingStatusParams{
			Principal: Principal{UserID: "admin", IsAdmin: true},
			BookingID: "bk-1",
			Status:    "approved",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if updated.Status != string(timetable.BookingApproved) {
			t.Fatalf("expected APPROVED, got %q", updated.Status)
		}
		if len(bookings.approved) != 1 || bookings.approved[0] != "bk-1" {
			t.Fatalf("expected ApproveBooking path, got %v", bookings.approved)
		}
	})

	t.Run("surfaces booking conflicts from the guard", func(t *testing.T) {
		bookings := newBookingRepoStub(pending)
		bookings.approveErr = persistence.ErrBookingConflict
		svc := NewBookingService(bookings, nil, nil, func() time.Time { return now }, nil, nil)

		_, err := svc.UpdateBookingStatus(context.Background(), UpdateBookingStatusParams{
			Principal: Principal{UserID: "admin", IsAdmin: true},
			BookingID: "bk-1",
			Status:    "APPROVED",
		})
		if !errors.Is(err, ErrBookingConflict) {
			t.Fatalf("expected ErrBookingConflict, got %v", err)
		}
	})

	t.Run("rejection bypasses the guard", func(t *testing.T) {
		bookings := newBookingRepoStub(pending)
		svc := NewBookingService(bookings, nil, nil, func() time.Time { return now }, nil, nil)

		updated, err := svc.UpdateBookingStatus(context.Background(), UpdateBookingStatusParams{
			Principal: Principal{UserID: "admin", IsAdmin: true},
			BookingID: "bk-1",
			Status:    "REJECTED",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if updated.Status != string(timetable.BookingRejected) {
			t.Fatalf("expected REJECTED, got %q", updated.Status)
		}
		if len(bookings.approved) != 0 {
			t.Fatalf("expected no approval calls, got %v", bookings.approved)
		}
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		svc := NewBookingService(newBookingRepoStub(pending), nil, nil, nil, nil, nil)

		_, err := svc.UpdateBookingStatus(context.Background(), UpdateBookingStatusParams{
			Principal: Principal{UserID: "admin", IsAdmin: true},
			BookingID: "bk-1",
			Status:    "DONE",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestBookingService_ListBookings(t *testing.T) {
	mine := persistence.Booking{ID: "bk-1", UserID: "user-7", Status: string(timetable.BookingPending)}
	other := persistence.Booking{ID: "bk-2", UserID: "user-9", Status: string(timetable.BookingApproved)}
	bookings := newBookingRepoStub(mine, other)
	svc := NewBookingService(bookings, nil, nil, nil, nil, nil)

	t.Run("administrators see every booking", func(t *testing.T) {
		listed, err := svc.ListBookings(context.Background(), Principal{UserID: "admin", IsAdmin: true})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(listed) != 2 {
			t.Fatalf("expected 2 bookings, got %d", len(listed))
		}
	})

	t.Run("members see only their own", func(t *testing.T) {
		listed, err := svc.ListBookings(context.Background(), Principal{UserID: "user-7"})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(listed) != 1 || listed[0].ID != "bk-1" {
			t.Fatalf("expected only bk-1, got %+v", listed)
		}
	})
}

func TestBookingService_DeleteBooking(t *testing.T) {
	pending := persistence.Booking{ID: "bk-1", UserID: "user-7", Status: string(timetable.BookingPending)}
	approved := persistence.Booking{ID: "bk-2", UserID: "user-7", Status: string(timetable.BookingApproved)}

	t.Run("owners may withdraw pending requests", func(t *testing.T) {
		bookings := newBookingRepoStub(pending)
		svc := NewBookingService(bookings, nil, nil, nil, nil, nil)

		if err := svc.DeleteBooking(context.Background(), Principal{UserID: "user-7"}, "bk-1"); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if _, ok := bookings.bookings["bk-1"]; ok {
			t.Fatal("expected booking removed")
		}
	})

	t.Run("owners may not withdraw decided requests", func(t *testing.T) {
		svc := NewBookingService(newBookingRepoStub(approved), nil, nil, nil, nil, nil)

		err := svc.DeleteBooking(context.Background(), Principal{UserID: "user-7"}, "bk-2")
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("administrators may delete any booking", func(t *testing.T) {
		bookings := newBookingRepoStub(approved)
		svc := NewBookingService(bookings, nil, nil, nil, nil, nil)

		if err := svc.DeleteBooking(context.Background(), Principal{UserID: "admin", IsAdmin: true}, "bk-2"); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})
}
