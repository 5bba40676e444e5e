package http

import (
	"context"

	"github.com/example/campus-scheduler/internal/application"
)

type contextKey string

const (
	principalContextKey   contextKey = "principal"
	roomIDContextKey      contextKey = "room_id"
	courseIDContextKey    contextKey = "course_id"
	lecturerIDContextKey  contextKey = "lecturer_id"
	itemIDContextKey      contextKey = "item_id"
	scheduleIDContextKey  contextKey = "schedule_id"
	bookingIDContextKey   contextKey = "booking_id"
	borrowingIDContextKey contextKey = "borrowing_id"
	userIDContextKey      contextKey = "user_id"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

// ContextWithRoomID injects the room identifier resolved from the request path.
func ContextWithRoomID(ctx context.Context, roomID string) context.Context {
	return context.WithValue(ctx, roomIDContextKey, roomID)
}

// RoomIDFromContext extracts a room identifier previously associated with the context.
func RoomIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(roomIDContextKey).(string)
	return id, ok
}

// ContextWithCourseID injects the course identifier resolved from the request path.
func ContextWithCourseID(ctx context.Context, courseID string) context.Context {
	return context.WithValue(ctx, courseIDContextKey, courseID)
}

// CourseIDFromContext extracts a course identifier previously associated with the context.
func CourseIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(courseIDContextKey).(string)
	return id, ok
}

// ContextWithLecturerID injects the lecturer identifier resolved from the request path.
func ContextWithLecturerID(ctx context.Context, lecturerID string) context.Context {
	return context.WithValue(ctx, lecturerIDContextKey, lecturerID)
}

// LecturerIDFromContext extracts a lecturer identifier previously associated with the context.
func LecturerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(lecturerIDContextKey).(string)
	return id, ok
}

// ContextWithItemID injects the item identifier resolved from the request path.
func ContextWithItemID(ctx context.Context, itemID string) context.Context {
	return context.WithValue(ctx, itemIDContextKey, itemID)
}

// ItemIDFromContext extracts an item identifier previously associated with the context.
func ItemIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(itemIDContextKey).(string)
	return id, ok
}

// ContextWithScheduleID injects the schedule identifier resolved from the request path.
func ContextWithScheduleID(ctx context.Context, scheduleID string) context.Context {
	return context.WithValue(ctx, scheduleIDContextKey, scheduleID)
}

// ScheduleIDFromContext extracts a schedule identifier previously associated with the context.
func ScheduleIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(scheduleIDContextKey).(string)
	return id, ok
}

// ContextWithBookingID injects the booking identifier resolved from the request path.
func ContextWithBookingID(ctx context.Context, bookingID string) context.Context {
	return context.WithValue(ctx, bookingIDContextKey, bookingID)
}

// BookingIDFromContext extracts a booking identifier previously associated with the context.
func BookingIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(bookingIDContextKey).(string)
	return id, ok
}

// ContextWithBorrowingID injects the borrowing identifier resolved from the request path.
func ContextWithBorrowingID(ctx context.Context, borrowingID string) context.Context {
	return context.WithValue(ctx, borrowingIDContextKey, borrowingID)
}

// BorrowingIDFromContext extracts a borrowing identifier previously associated with the context.
func BorrowingIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(borrowingIDContextKey).(string)
	return id, ok
}

// ContextWithUserID injects the user identifier resolved from the request path.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext extracts a user identifier previously associated with the context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey).(string)
	return id, ok
}
