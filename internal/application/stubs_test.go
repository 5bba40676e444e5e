package application

import (
	"context"
	"time"

	"github.com/example/campus-scheduler/internal/persistence"
	"github.com/example/campus-scheduler/internal/timetable"
)

// In-memory repository fakes shared by the service tests. Each fake keeps
// insertion order so listings are deterministic, and exposes a forced error
// slot for failure-path tests.

type roomRepoStub struct {
	order []string
	rooms map[string]persistence.Room
	err   error
}

func newRoomRepoStub(rooms ...persistence.Room) *roomRepoStub {
	stub := &roomRepoStub{rooms: make(map[string]persistence.Room)}
	for _, room := range rooms {
		stub.order = append(stub.order, room.ID)
		stub.rooms[room.ID] = room
	}
	return stub
}

func (r *roomRepoStub) CreateRoom(ctx context.Context, room persistence.Room) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.rooms[room.ID]; !ok {
		r.order = append(r.order, room.ID)
	}
	r.rooms[room.ID] = room
	return nil
}

func (r *roomRepoStub) UpdateRoom(ctx context.Context, room persistence.Room) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.rooms[room.ID]; !ok {
		return persistence.ErrNotFound
	}
	r.rooms[room.ID] = room
	return nil
}

func (r *roomRepoStub) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	if r.err != nil {
		return persistence.Room{}, r.err
	}
	room, ok := r.rooms[id]
	if !ok {
		return persistence.Room{}, persistence.ErrNotFound
	}
	return room, nil
}

func (r *roomRepoStub) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]persistence.Room, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rooms[id])
	}
	return out, nil
}

func (r *roomRepoStub) DeleteRoom(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.rooms[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.rooms, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type courseRepoStub struct {
	order   []string
	courses map[string]persistence.Course
	err     error
}

func newCourseRepoStub(courses ...persistence.Course) *courseRepoStub {
	stub := &courseRepoStub{courses: make(map[string]persistence.Course)}
	for _, course := range courses {
		stub.order = append(stub.order, course.ID)
		stub.courses[course.ID] = course
	}
	return stub
}

func (r *courseRepoStub) CreateCourse(ctx context.Context, course persistence.Course) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.courses[course.ID]; !ok {
		r.order = append(r.order, course.ID)
	}
	r.courses[course.ID] = course
	return nil
}

func (r *courseRepoStub) UpdateCourse(ctx context.Context, course persistence.Course) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.courses[course.ID]; !ok {
		return persistence.ErrNotFound
	}
	r.courses[course.ID] = course
	return nil
}

func (r *courseRepoStub) GetCourse(ctx context.Context, id string) (persistence.Course, error) {
	if r.err != nil {
		return persistence.Course{}, r.err
	}
	course, ok := r.courses[id]
	if !ok {
		return persistence.Course{}, persistence.ErrNotFound
	}
	return course, nil
}

func (r *courseRepoStub) ListCourses(ctx context.Context) ([]persistence.Course, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]persistence.Course, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.courses[id])
	}
	return out, nil
}

func (r *courseRepoStub) DeleteCourse(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.courses[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

type lecturerRepoStub struct {
	order     []string
	lecturers map[string]persistence.Lecturer
	err       error
}

func newLecturerRepoStub(lecturers ...persistence.Lecturer) *lecturerRepoStub {
	stub := &lecturerRepoStub{lecturers: make(map[string]persistence.Lecturer)}
	for _, lecturer := range lecturers {
		stub.order = append(stub.order, lecturer.ID)
		stub.lecturers[lecturer.ID] = lecturer
	}
	return stub
}

func (r *lecturerRepoStub) CreateLecturer(ctx context.Context, lecturer persistence.Lecturer) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.lecturers[lecturer.ID]; !ok {
		r.order = append(r.order, lecturer.ID)
	}
	r.lecturers[lecturer.ID] = lecturer
	return nil
}

func (r *lecturerRepoStub) UpdateLecturer(ctx context.Context, lecturer persistence.Lecturer) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.lecturers[lecturer.ID]; !ok {
		return persistence.ErrNotFound
	}
	r.lecturers[lecturer.ID] = lecturer
	return nil
}

func (r *lecturerRepoStub) GetLecturer(ctx context.Context, id string) (persistence.Lecturer, error) {
	if r.err != nil {
		return persistence.Lecturer{}, r.err
	}
	lecturer, ok := r.lecturers[id]
	if !ok {
		return persistence.Lecturer{}, persistence.ErrNotFound
	}
	return lecturer, nil
}

func (r *lecturerRepoStub) ListLecturers(ctx context.Context) ([]persistence.Lecturer, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]persistence.Lecturer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.lecturers[id])
	}
	return out, nil
}

func (r *lecturerRepoStub) DeleteLecturer(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.lecturers[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.lecturers, id)
	return nil
}

type scheduleRepoStub struct {
	order     []string
	schedules map[string]persistence.Schedule
	err       error
}

func newScheduleRepoStub(schedules ...persistence.Schedule) *scheduleRepoStub {
	stub := &scheduleRepoStub{schedules: make(map[string]persistence.Schedule)}
	for _, schedule := range schedules {
		stub.order = append(stub.order, schedule.ID)
		stub.schedules[schedule.ID] = schedule
	}
	return stub
}

func (r *scheduleRepoStub) CreateSchedule(ctx context.Context, schedule persistence.Schedule) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.schedules[schedule.ID]; !ok {
		r.order = append(r.order, schedule.ID)
	}
	r.schedules[schedule.ID] = schedule
	return nil
}

func (r *scheduleRepoStub) UpdateSchedule(ctx context.Context, schedule persistence.Schedule) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.schedules[schedule.ID]; !ok {
		return persistence.ErrNotFound
	}
	r.schedules[schedule.ID] = schedule
	return nil
}

func (r *scheduleRepoStub) GetSchedule(ctx context.Context, id string) (persistence.Schedule, error) {
	if r.err != nil {
		return persistence.Schedule{}, r.err
	}
	schedule, ok := r.schedules[id]
	if !ok {
		return persistence.Schedule{}, persistence.ErrNotFound
	}
	return schedule, nil
}

func (r *scheduleRepoStub) ListSchedules(ctx context.Context) ([]persistence.Schedule, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]persistence.Schedule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.schedules[id])
	}
	return out, nil
}

func (r *scheduleRepoStub) DeleteSchedule(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.schedules[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.schedules, id)
	return nil
}

type bookingRepoStub struct {
	order    []string
	bookings map[string]persistence.Booking
	err      error

	approveErr error
	approved   []string
}

func newBookingRepoStub(bookings ...persistence.Booking) *bookingRepoStub {
	stub := &bookingRepoStub{bookings: make(map[string]persistence.Booking)}
	for _, booking := range bookings {
		stub.order = append(stub.order, booking.ID)
		stub.bookings[booking.ID] = booking
	}
	return stub
}

func (r *bookingRepoStub) CreateBooking(ctx context.Context, booking persistence.Booking) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.bookings[booking.ID]; !ok {
		r.order = append(r.order, booking.ID)
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *bookingRepoStub) GetBooking(ctx context.Context, id string) (persistence.Booking, error) {
	if r.err != nil {
		return persistence.Booking{}, r.err
	}
	booking, ok := r.bookings[id]
	if !ok {
		return persistence.Booking{}, persistence.ErrNotFound
	}
	return booking, nil
}

func (r *bookingRepoStub) ListBookings(ctx context.Context) ([]persistence.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]persistence.Booking, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.bookings[id])
	}
	return out, nil
}

func (r *bookingRepoStub) ListBookingsForUser(ctx context.Context, userID string) ([]persistence.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []persistence.Booking
	for _, id := range r.order {
		if r.bookings[id].UserID == userID {
			out = append(out, r.bookings[id])
		}
	}
	return out, nil
}

func (r *bookingRepoStub) UpdateBookingStatus(ctx context.Context, id, status string, updatedAt time.Time) (persistence.Booking, error) {
	if r.err != nil {
		return persistence.Booking{}, r.err
	}
	booking, ok := r.bookings[id]
	if !ok {
		return persistence.Booking{}, persistence.ErrNotFound
	}
	booking.Status = status
	booking.UpdatedAt = updatedAt
	r.bookings[id] = booking
	return booking, nil
}

func (r *bookingRepoStub) ApproveBooking(ctx context.Context, id string, updatedAt time.Time) (persistence.Booking, error) {
	if r.approveErr != nil {
		return persistence.Booking{}, r.approveErr
	}
	r.approved = append(r.approved, id)
	return r.UpdateBookingStatus(ctx, id, string(timetable.BookingApproved), updatedAt)
}

func (r *bookingRepoStub) DeleteBooking(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.bookings[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.bookings, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type itemRepoStub struct {
	order []string
	items map[string]persistence.Item
	err   error
}

func newItemRepoStub(items ...persistence.Item) *itemRepoStub {
	stub := &itemRepoStub{items: make(map[string]persistence.Item)}
	for _, item := range items {
		stub.order = append(stub.order, item.ID)
		stub.items[item.ID] = item
	}
	return stub
}

func (r *itemRepoStub) CreateItem(ctx context.Context, item persistence.Item) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.items[item.ID]; !ok {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *itemRepoStub) UpdateItem(ctx context.Context, item persistence.Item) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.items[item.ID]; !ok {
		return persistence.ErrNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *itemRepoStub) GetItem(ctx context.Context, id string) (persistence.Item, error) {
	if r.err != nil {
		return persistence.Item{}, r.err
	}
	item, ok := r.items[id]
	if !ok {
		return persistence.Item{}, persistence.ErrNotFound
	}
	return item, nil
}

func (r *itemRepoStub) ListItems(ctx context.Context) ([]persistence.Item, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]persistence.Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *itemRepoStub) DeleteItem(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.items[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type borrowingRepoStub struct {
	order      []string
	borrowings map[string]persistence.ItemBorrowing
	err        error

	items *itemRepoStub

	lastStatus string
	lastLabel  string
}

func newBorrowingRepoStub(items *itemRepoStub, borrowings ...persistence.ItemBorrowing) *borrowingRepoStub {
	stub := &borrowingRepoStub{borrowings: make(map[string]persistence.ItemBorrowing), items: items}
	for _, borrowing := range borrowings {
		stub.order = append(stub.order, borrowing.ID)
		stub.borrowings[borrowing.ID] = borrowing
	}
	return stub
}

func (r *borrowingRepoStub) CreateBorrowing(ctx context.Context, borrowing persistence.ItemBorrowing) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.borrowings[borrowing.ID]; !ok {
		r.order = append(r.order, borrowing.ID)
	}
	r.borrowings[borrowing.ID] = borrowing
	return nil
}

func (r *borrowingRepoStub) GetBorrowing(ctx context.Context, id string) (persistence.ItemBorrowing, error) {
	if r.err != nil {
		return persistence.ItemBorrowing{}, r.err
	}
	borrowing, ok := r.borrowings[id]
	if !ok {
		return persistence.ItemBorrowing{}, persistence.ErrNotFound
	}
	return borrowing, nil
}

func (r *borrowingRepoStub) ListBorrowings(ctx context.Context) ([]persistence.ItemBorrowing, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]persistence.ItemBorrowing, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.borrowings[id])
	}
	return out, nil
}

func (r *borrowingRepoStub) ListBorrowingsForUser(ctx context.Context, userID string) ([]persistence.ItemBorrowing, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []persistence.ItemBorrowing
	for _, id := range r.order {
		if r.borrowings[id].UserID == userID {
			out = append(out, r.borrowings[id])
		}
	}
	return out, nil
}

func (r *borrowingRepoStub) HasActiveBorrowing(ctx context.Context, itemID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, borrowing := range r.borrowings {
		if borrowing.ItemID != itemID {
			continue
		}
		if borrowing.Status == persistence.BorrowingPending || borrowing.Status == persistence.BorrowingApproved {
			return true, nil
		}
	}
	return false, nil
}

func (r *borrowingRepoStub) UpdateBorrowingStatus(ctx context.Context, id, status, borrowerLabel string, updatedAt time.Time) (persistence.ItemBorrowing, error) {
	if r.err != nil {
		return persistence.ItemBorrowing{}, r.err
	}
	borrowing, ok := r.borrowings[id]
	if !ok {
		return persistence.ItemBorrowing{}, persistence.ErrNotFound
	}
	borrowing.Status = status
	borrowing.UpdatedAt = updatedAt
	if status == persistence.BorrowingReturned {
		day := updatedAt.UTC().Format("2006-01-02")
		borrowing.ReturnDate = &day
	}
	r.borrowings[id] = borrowing
	r.lastStatus = status
	r.lastLabel = borrowerLabel

	if r.items != nil && status != persistence.BorrowingPending {
		item, ok := r.items.items[borrowing.ItemID]
		if ok {
			if status == persistence.BorrowingApproved {
				item.BorrowStatus = persistence.ItemBorrowed
				label := borrowerLabel
				item.Borrower = &label
			} else {
				item.BorrowStatus = persistence.ItemAvailable
				item.Borrower = nil
			}
			r.items.items[borrowing.ItemID] = item
		}
	}
	return borrowing, nil
}

type userRepoStub struct {
	order []string
	users map[string]persistence.User
	err   error
}

func newUserRepoStub(users ...persistence.User) *userRepoStub {
	stub := &userRepoStub{users: make(map[string]persistence.User)}
	for _, user := range users {
		stub.order = append(stub.order, user.ID)
		stub.users[user.ID] = user
	}
	return stub
}

func (r *userRepoStub) CreateUser(ctx context.Context, user persistence.User) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return persistence.ErrDuplicate
		}
	}
	if _, ok := r.users[user.ID]; !ok {
		r.order = append(r.order, user.ID)
	}
	r.users[user.ID] = user
	return nil
}

func (r *userRepoStub) UpdateUser(ctx context.Context, user persistence.User) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[user.ID]; !ok {
		return persistence.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *userRepoStub) GetUser(ctx context.Context, id string) (persistence.User, error) {
	if r.err != nil {
		return persistence.User{}, r.err
	}
	user, ok := r.users[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (r *userRepoStub) GetUserByUsername(ctx context.Context, username string) (persistence.User, error) {
	if r.err != nil {
		return persistence.User{}, r.err
	}
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

func (r *userRepoStub) ListUsers(ctx context.Context) ([]persistence.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]persistence.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}

func (r *userRepoStub) DeleteUser(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *userRepoStub) CountUsers(ctx context.Context) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	return len(r.users), nil
}

func userRecord(id, username string, admin bool) persistence.User {
	return persistence.User{
		ID:           id,
		Username:     username,
		FullName:     username,
		PasswordHash: "x",
		IsAdmin:      admin,
	}
}

type sessionRepoStub struct {
	sessions map[string]persistence.Session
	err      error
}

func newSessionRepoStub(sessions ...persistence.Session) *sessionRepoStub {
	stub := &sessionRepoStub{sessions: make(map[string]persistence.Session)}
	for _, session := range sessions {
		stub.sessions[session.Token] = session
	}
	return stub
}

func (r *sessionRepoStub) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	if r.err != nil {
		return persistence.Session{}, r.err
	}
	r.sessions[session.Token] = session
	return session, nil
}

func (r *sessionRepoStub) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	if r.err != nil {
		return persistence.Session{}, r.err
	}
	session, ok := r.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (r *sessionRepoStub) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	if r.err != nil {
		return persistence.Session{}, r.err
	}
	session, ok := r.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	if session.RevokedAt == nil {
		session.RevokedAt = &revokedAt
	}
	r.sessions[token] = session
	return session, nil
}

func (r *sessionRepoStub) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	if r.err != nil {
		return r.err
	}
	for token, session := range r.sessions {
		if !session.ExpiresAt.After(reference) {
			delete(r.sessions, token)
		}
	}
	return nil
}
