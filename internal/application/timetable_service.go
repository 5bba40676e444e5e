package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/example/campus-scheduler/internal/persistence"
	"github.com/example/campus-scheduler/internal/timetable"
)

// TimetableService answers read-only questions about the merged campus
// timeline: day and week views, conflict detection, and room availability.
// All computation happens over a snapshot loaded from the repositories; a
// short-lived cache absorbs repeated identical queries between mutations.
type TimetableService struct {
	schedules persistence.ScheduleRepository
	bookings  persistence.BookingRepository
	rooms     persistence.RoomRepository
	term      timetable.TermConfig
	cache     *entryCache
	logger    *slog.Logger
}

// NewTimetableService constructs a timetable service with the provided dependencies.
func NewTimetableService(
	schedules persistence.ScheduleRepository,
	bookings persistence.BookingRepository,
	rooms persistence.RoomRepository,
	term timetable.TermConfig,
	now func() time.Time,
	logger *slog.Logger,
) *TimetableService {
	return &TimetableService{
		schedules: schedules,
		bookings:  bookings,
		rooms:     rooms,
		term:      term,
		cache:     newEntryCache(30*time.Second, 128, now),
		logger:    defaultLogger(logger),
	}
}

func (s *TimetableService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "TimetableService", operation, attrs...)
}

// Invalidate drops cached merged entries. Mutating services call this after
// every write so the next query observes fresh data.
func (s *TimetableService) Invalidate() {
	if s == nil {
		return
	}
	s.cache.Invalidate()
}

// Merged returns the full merged timeline of schedules and approved bookings.
func (s *TimetableService) Merged(ctx context.Context) (entries []timetable.Entry, err error) {
	if s == nil {
		err = fmt.Errorf("TimetableService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Merged")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to merge timetable", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(entries)).InfoContext(ctx, "timetable merged")
	}()

	return s.mergedEntries(ctx)
}

// EntriesOn returns the entries active on one calendar date, ordered by start
// time. Weekend and unparseable dates produce an empty result.
func (s *TimetableService) EntriesOn(ctx context.Context, date string) (entries []timetable.Entry, err error) {
	if s == nil {
		err = fmt.Errorf("TimetableService is nil")
		return
	}

	logger := s.loggerWith(ctx, "EntriesOn", "date", date)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to load day view", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(entries)).InfoContext(ctx, "day view loaded")
	}()

	key := "day|" + date
	if cached, ok := s.cache.Get(key); ok {
		entries = cached
		return
	}

	var merged []timetable.Entry
	merged, err = s.mergedEntries(ctx)
	if err != nil {
		return
	}

	entries = timetable.ActiveOn(merged, date, s.term.WeekOf(date))
	s.cache.Store(key, entries)
	return
}

// EntriesForWeek returns the entries active in the Monday-to-Friday week
// containing the given date.
func (s *TimetableService) EntriesForWeek(ctx context.Context, date string) (entries []timetable.Entry, err error) {
	if s == nil {
		err = fmt.Errorf("TimetableService is nil")
		return
	}

	logger := s.loggerWith(ctx, "EntriesForWeek", "date", date)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to load week view", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(entries)).InfoContext(ctx, "week view loaded")
	}()

	key := "week|" + date
	if cached, ok := s.cache.Get(key); ok {
		entries = cached
		return
	}

	var merged []timetable.Entry
	merged, err = s.mergedEntries(ctx)
	if err != nil {
		return
	}

	entries = timetable.ActiveInWeek(merged, date, s.term.WeekOf(date))
	s.cache.Store(key, entries)
	return
}

// Conflicts returns the IDs of entries that double-book a room on the given
// date, sorted for stable output. Only entries active on that date are
// compared, so slots sharing a room and weekday in disjoint term weeks are
// not flagged. Weekend and unparseable dates produce an empty result.
func (s *TimetableService) Conflicts(ctx context.Context, date string) (ids []string, err error) {
	if s == nil {
		err = fmt.Errorf("TimetableService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Conflicts", "date", date)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to detect conflicts", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(ids)).InfoContext(ctx, "conflicts detected")
	}()

	var merged []timetable.Entry
	merged, err = s.mergedEntries(ctx)
	if err != nil {
		return
	}

	active := timetable.ActiveOn(merged, date, s.term.WeekOf(date))
	conflicting := timetable.FindConflicts(active)
	ids = make([]string, 0, len(conflicting))
	for id := range conflicting {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return
}

// AvailableRooms returns the rooms free for the requested window, in catalog
// order. Pending bookings block availability; only rejected ones do not.
func (s *TimetableService) AvailableRooms(ctx context.Context, query AvailabilityQuery) (rooms []Room, err error) {
	if s == nil {
		err = fmt.Errorf("TimetableService is nil")
		return
	}

	logger := s.loggerWith(ctx, "AvailableRooms",
		"date", query.Date,
		"start_time", query.StartTime,
		"duration_minutes", query.DurationMinutes,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to compute availability", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(rooms)).InfoContext(ctx, "availability computed")
	}()

	var roomRecords []persistence.Room
	roomRecords, err = s.rooms.ListRooms(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	var scheduleRecords []persistence.Schedule
	scheduleRecords, err = s.schedules.ListSchedules(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	var bookingRecords []persistence.Booking
	bookingRecords, err = s.bookings.ListBookings(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	catalog := make([]timetable.Room, 0, len(roomRecords))
	for _, record := range roomRecords {
		catalog = append(catalog, timetable.Room{
			ID:       record.ID,
			Name:     record.Name,
			Capacity: record.Capacity,
			Building: record.Building,
			Type:     record.Type,
		})
	}

	free := timetable.AvailableRooms(
		catalog,
		timetableSchedules(scheduleRecords),
		timetableBookings(bookingRecords),
		query.Date,
		query.StartTime,
		query.DurationMinutes,
	)

	byID := make(map[string]persistence.Room, len(roomRecords))
	for _, record := range roomRecords {
		byID[record.ID] = record
	}
	rooms = make([]Room, 0, len(free))
	for _, room := range free {
		rooms = append(rooms, roomFromRecord(byID[room.ID]))
	}
	return
}

func (s *TimetableService) mergedEntries(ctx context.Context) ([]timetable.Entry, error) {
	const key = "merged"
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	scheduleRecords, err := s.schedules.ListSchedules(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	bookingRecords, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	entries := timetable.Merge(timetableSchedules(scheduleRecords), timetableBookings(bookingRecords))
	s.cache.Store(key, entries)
	return entries, nil
}

func timetableSchedules(records []persistence.Schedule) []timetable.Schedule {
	schedules := make([]timetable.Schedule, 0, len(records))
	for _, record := range records {
		var date string
		if record.Date != nil {
			date = *record.Date
		}
		schedules = append(schedules, timetable.Schedule{
			ID:           record.ID,
			CourseID:     record.CourseID,
			LecturerID:   record.LecturerID,
			RoomID:       record.RoomID,
			Day:          timetable.Weekday(record.Day),
			StartTime:    record.StartTime,
			EndTime:      record.EndTime,
			StudyProgram: record.StudyProgram,
			ClassGroup:   record.ClassGroup,
			Semester:     record.Semester,
			CreditHours:  record.CreditHours,
			Weeks:        record.Weeks,
			Date:         date,
		})
	}
	return schedules
}

func timetableBookings(records []persistence.Booking) []timetable.Booking {
	bookings := make([]timetable.Booking, 0, len(records))
	for _, record := range records {
		bookings = append(bookings, timetable.Booking{
			ID:        record.ID,
			UserID:    record.UserID,
			RoomID:    record.RoomID,
			Date:      record.Date,
			StartTime: record.StartTime,
			EndTime:   record.EndTime,
			Purpose:   record.Purpose,
			Status:    timetable.BookingStatus(record.Status),
		})
	}
	return bookings
}
