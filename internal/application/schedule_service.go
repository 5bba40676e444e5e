package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/campus-scheduler/internal/persistence"
	"github.com/example/campus-scheduler/internal/timetable"
)

// ScheduleService orchestrates validation, authorization, and persistence for
// recurring and date-pinned class slots.
type ScheduleService struct {
	schedules   persistence.ScheduleRepository
	courses     persistence.CourseRepository
	lecturers   persistence.LecturerRepository
	rooms       persistence.RoomRepository
	idGenerator func() string
	now         func() time.Time
	invalidate  func()
	logger      *slog.Logger
}

// NewScheduleService constructs a schedule service with the provided dependencies.
func NewScheduleService(
	schedules persistence.ScheduleRepository,
	courses persistence.CourseRepository,
	lecturers persistence.LecturerRepository,
	rooms persistence.RoomRepository,
	idGenerator func() string,
	now func() time.Time,
	invalidate func(),
	logger *slog.Logger,
) *ScheduleService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if invalidate == nil {
		invalidate = func() {}
	}
	return &ScheduleService{
		schedules:   schedules,
		courses:     courses,
		lecturers:   lecturers,
		rooms:       rooms,
		idGenerator: idGenerator,
		now:         now,
		invalidate:  invalidate,
		logger:      defaultLogger(logger),
	}
}

func (s *ScheduleService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ScheduleService", operation, attrs...)
}

// CreateSchedule validates input, checks referenced catalog entries, and
// persists a new class slot for administrators.
func (s *ScheduleService) CreateSchedule(ctx context.Context, params CreateScheduleParams) (schedule Schedule, err error) {
	if s == nil {
		err = fmt.Errorf("ScheduleService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateSchedule",
		"principal_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create schedule", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("schedule_id", schedule.ID).InfoContext(ctx, "schedule created")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	input := normalizeScheduleInput(params.Input)
	vErr := validateScheduleInput(input)
	if err = s.checkScheduleReferences(ctx, input, vErr); err != nil {
		return
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	record := scheduleRecord(s.idGenerator(), input)
	record.CreatedAt = now
	record.UpdatedAt = now

	if err = s.schedules.CreateSchedule(ctx, record); err != nil {
		err = mapRepoError(err)
		return
	}

	s.invalidate()
	schedule = scheduleFromRecord(record)
	return
}

// UpdateSchedule validates input and updates an existing class slot for administrators.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, params UpdateScheduleParams) (schedule Schedule, err error) {
	if s == nil {
		err = fmt.Errorf("ScheduleService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateSchedule",
		"principal_id", params.Principal.UserID,
		"schedule_id", params.ScheduleID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update schedule", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("schedule_id", schedule.ID).InfoContext(ctx, "schedule updated")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	var existing persistence.Schedule
	existing, err = s.schedules.GetSchedule(ctx, params.ScheduleID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	input := normalizeScheduleInput(params.Input)
	vErr := validateScheduleInput(input)
	if err = s.checkScheduleReferences(ctx, input, vErr); err != nil {
		return
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	record := scheduleRecord(existing.ID, input)
	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = s.now()

	if err = s.schedules.UpdateSchedule(ctx, record); err != nil {
		err = mapRepoError(err)
		return
	}

	s.invalidate()
	schedule = scheduleFromRecord(record)
	return
}

// DeleteSchedule removes a class slot when requested by an administrator.
func (s *ScheduleService) DeleteSchedule(ctx context.Context, principal Principal, scheduleID string) error {
	if s == nil {
		return fmt.Errorf("ScheduleService is nil")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "DeleteSchedule",
		"principal_id", principal.UserID,
		"schedule_id", scheduleID,
	)

	if err := s.schedules.DeleteSchedule(ctx, scheduleID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete schedule", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	s.invalidate()
	logger.InfoContext(ctx, "schedule deleted")
	return nil
}

// GetSchedule returns one class slot for any authenticated user.
func (s *ScheduleService) GetSchedule(ctx context.Context, principal Principal, scheduleID string) (Schedule, error) {
	if s == nil {
		return Schedule{}, fmt.Errorf("ScheduleService is nil")
	}
	record, err := s.schedules.GetSchedule(ctx, scheduleID)
	if err != nil {
		return Schedule{}, mapRepoError(err)
	}
	return scheduleFromRecord(record), nil
}

// ListSchedules returns all class slots for any authenticated user, ordered
// by weekday then start time.
func (s *ScheduleService) ListSchedules(ctx context.Context, principal Principal) (schedules []Schedule, err error) {
	if s == nil {
		err = fmt.Errorf("ScheduleService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListSchedules",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list schedules", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(schedules)).InfoContext(ctx, "schedules listed")
	}()

	var raw []persistence.Schedule
	raw, err = s.schedules.ListSchedules(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	schedules = make([]Schedule, 0, len(raw))
	for _, record := range raw {
		schedules = append(schedules, scheduleFromRecord(record))
	}

	dayRank := make(map[string]int, len(timetable.Weekdays))
	for i, day := range timetable.Weekdays {
		dayRank[string(day)] = i
	}
	sort.Slice(schedules, func(i, j int) bool {
		if schedules[i].Day != schedules[j].Day {
			return dayRank[schedules[i].Day] < dayRank[schedules[j].Day]
		}
		if schedules[i].StartTime != schedules[j].StartTime {
			return schedules[i].StartTime < schedules[j].StartTime
		}
		return schedules[i].ID < schedules[j].ID
	})

	return
}

func normalizeScheduleInput(input ScheduleInput) ScheduleInput {
	out := input
	out.CourseID = strings.TrimSpace(input.CourseID)
	out.LecturerID = strings.TrimSpace(input.LecturerID)
	out.RoomID = strings.TrimSpace(input.RoomID)
	out.Day = strings.TrimSpace(input.Day)
	out.StartTime = strings.TrimSpace(input.StartTime)
	out.EndTime = strings.TrimSpace(input.EndTime)
	out.StudyProgram = strings.TrimSpace(input.StudyProgram)
	out.ClassGroup = strings.TrimSpace(input.ClassGroup)
	if input.Date != nil {
		trimmed := strings.TrimSpace(*input.Date)
		if trimmed == "" {
			out.Date = nil
		} else {
			out.Date = &trimmed
		}
	}
	if len(input.Weeks) > 0 {
		weeks := make([]int, len(input.Weeks))
		copy(weeks, input.Weeks)
		sort.Ints(weeks)
		out.Weeks = weeks
	} else {
		out.Weeks = nil
	}
	return out
}

func validateScheduleInput(input ScheduleInput) *ValidationError {
	vErr := &ValidationError{}

	if input.CourseID == "" {
		vErr.add("courseId", "course is required")
	}
	if input.LecturerID == "" {
		vErr.add("lecturerId", "lecturer is required")
	}
	if input.RoomID == "" {
		vErr.add("roomId", "room is required")
	}
	if !timetable.Weekday(input.Day).IsValid() {
		vErr.add("day", "day must be a teaching weekday")
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

	seen := make(map[int]bool, len(input.Weeks))
	for _, week := range input.Weeks {
		if week < 1 || week > timetable.TermWeeks {
			vErr.add("weeks", fmt.Sprintf("weeks must be between 1 and %d", timetable.TermWeeks))
			break
		}
		if seen[week] {
			vErr.add("weeks", "weeks must not repeat")
			break
		}
		seen[week] = true
	}

	if input.Date != nil {
		if _, ok := timetable.ResolveWeekday(*input.Date); !ok {
			vErr.add("date", "date must be a teaching weekday in the YYYY-MM-DD format")
		}
	}

	return vErr
}

// checkScheduleReferences confirms the course, lecturer, and room exist,
// recording a field error for each missing reference. Unexpected repository
// failures abort the operation instead.
func (s *ScheduleService) checkScheduleReferences(ctx context.Context, input ScheduleInput, vErr *ValidationError) error {
	if input.CourseID != "" && s.courses != nil {
		if _, err := s.courses.GetCourse(ctx, input.CourseID); err != nil {
			if !errors.Is(err, persistence.ErrNotFound) {
				return mapRepoError(err)
			}
			vErr.add("courseId", "course does not exist")
		}
	}
	if input.LecturerID != "" && s.lecturers != nil {
		if _, err := s.lecturers.GetLecturer(ctx, input.LecturerID); err != nil {
			if !errors.Is(err, persistence.ErrNotFound) {
				return mapRepoError(err)
			}
			vErr.add("lecturerId", "lecturer does not exist")
		}
	}
	if input.RoomID != "" && s.rooms != nil {
		if _, err := s.rooms.GetRoom(ctx, input.RoomID); err != nil {
			if !errors.Is(err, persistence.ErrNotFound) {
				return mapRepoError(err)
			}
			vErr.add("roomId", "room does not exist")
		}
	}
	return nil
}

func scheduleRecord(id string, input ScheduleInput) persistence.Schedule {
	return persistence.Schedule{
		ID:           id,
		CourseID:     input.CourseID,
		LecturerID:   input.LecturerID,
		RoomID:       input.RoomID,
		Day:          input.Day,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		StudyProgram: input.StudyProgram,
		ClassGroup:   input.ClassGroup,
		Semester:     input.Semester,
		CreditHours:  input.CreditHours,
		Weeks:        input.Weeks,
		Date:         input.Date,
	}
}
