// Package http provides HTTP handlers and middleware for the campus scheduler API.
//
// The router exposes the following endpoints:
//   - POST /sessions: issues a session token. Body: {"username","password"}.
//     Response: {"token","expires_at"} with the token also surfaced via the
//     `X-Session-Token` header and a `session_token` cookie.
//   - DELETE /sessions/current: revokes the caller's own session token and
//     clears the cookie. DELETE /sessions/{token} lets administrators revoke
//     any session.
//   - GET /timetable?date=YYYY-MM-DD&view=day|week: the merged timeline of
//     class schedules and approved bookings for a date or its teaching week.
//     GET /timetable/conflicts?date= lists the IDs of entries double-booked on that date.
//   - GET /rooms, POST /rooms, GET /rooms/{id}, PUT /rooms/{id},
//     DELETE /rooms/{id}: room catalog endpoints exchanging the `roomDTO`
//     payload defined in room_handler.go. GET /rooms/available?date=&time=&duration=
//     returns the rooms free for the requested window.
//   - GET /courses, /lecturers, /items with the usual POST/PUT/DELETE ID
//     routes: reference catalog endpoints defined in catalog_handler.go.
//   - GET /schedules, POST /schedules, GET /schedules/{id}, PUT /schedules/{id},
//     DELETE /schedules/{id}: class slot management exchanging the
//     `scheduleDTO` payload defined in schedule_handler.go.
//   - GET /bookings, POST /bookings, GET /bookings/{id}, DELETE /bookings/{id},
//     PATCH /bookings/{id}/status: room reservation requests and their
//     administrator approval flow.
//   - GET /borrowings, POST /borrowings, GET /borrowings/{id},
//     PATCH /borrowings/{id}/status: equipment borrowing requests; status
//     changes cascade onto the item's availability.
//   - GET /users, POST /users, GET /users/{id}, PUT /users/{id},
//     DELETE /users/{id}: administrator controlled account management.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
