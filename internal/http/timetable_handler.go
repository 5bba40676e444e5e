package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/campus-scheduler/internal/application"
	"github.com/example/campus-scheduler/internal/timetable"
)

type timetableService interface {
	EntriesOn(ctx context.Context, date string) ([]timetable.Entry, error)
	EntriesForWeek(ctx context.Context, date string) ([]timetable.Entry, error)
	Conflicts(ctx context.Context, date string) ([]string, error)
	AvailableRooms(ctx context.Context, query application.AvailabilityQuery) ([]application.Room, error)
}

// TimetableHandler serves the merged timeline of class schedules and approved
// bookings, conflict listings, and room availability queries.
type TimetableHandler struct {
	service   timetableService
	responder responder
	logger    *slog.Logger
}

func NewTimetableHandler(service timetableService, logger *slog.Logger) *TimetableHandler {
	base := defaultLogger(logger)
	return &TimetableHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *TimetableHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "TimetableHandler", operation, attrs...)
}

func (h *TimetableHandler) View(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		h.log(r.Context(), "View", "error_kind", "bad_request").ErrorContext(r.Context(), "missing date parameter for timetable view")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingDateParam)
		return
	}

	view := strings.TrimSpace(r.URL.Query().Get("view"))
	if view == "" {
		view = string(application.ViewDay)
	}

	logger := h.log(r.Context(), "View", "date", date, "view", view)

	var (
		entries []timetable.Entry
		err     error
	)
	switch application.TimetableView(view) {
	case application.ViewDay:
		entries, err = h.service.EntriesOn(r.Context(), date)
	case application.ViewWeek:
		entries, err = h.service.EntriesForWeek(r.Context(), date)
	default:
		logger.ErrorContext(r.Context(), "invalid view parameter", "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidViewParam)
		return
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "timetable view failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(entries)).InfoContext(r.Context(), "timetable viewed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, timetableResponse{
		Date:    date,
		View:    view,
		Entries: toEntryDTOs(entries),
	})
}

func (h *TimetableHandler) Conflicts(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		h.log(r.Context(), "Conflicts", "error_kind", "bad_request").ErrorContext(r.Context(), "missing date parameter for conflict listing")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingDateParam)
		return
	}

	logger := h.log(r.Context(), "Conflicts", "date", date)
	ids, err := h.service.Conflicts(r.Context(), date)
	if err != nil {
		logger.ErrorContext(r.Context(), "conflict listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(ids)).InfoContext(r.Context(), "conflicts listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, conflictsResponse{ConflictIDs: ids})
}

func (h *TimetableHandler) AvailableRooms(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	date := strings.TrimSpace(query.Get("date"))
	if date == "" {
		h.log(r.Context(), "AvailableRooms", "error_kind", "bad_request").ErrorContext(r.Context(), "missing date parameter for availability")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingDateParam)
		return
	}

	start := strings.TrimSpace(query.Get("time"))
	if _, ok := timetable.ClockMinutes(start); !ok {
		h.log(r.Context(), "AvailableRooms", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid time parameter for availability")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTimeParam)
		return
	}

	duration, err := strconv.Atoi(strings.TrimSpace(query.Get("duration")))
	if err != nil || duration <= 0 {
		h.log(r.Context(), "AvailableRooms", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid duration parameter for availability")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDuration)
		return
	}

	logger := h.log(r.Context(), "AvailableRooms", "date", date, "time", start, "duration", duration)

	rooms, err := h.service.AvailableRooms(r.Context(), application.AvailabilityQuery{
		Date:            date,
		StartTime:       start,
		DurationMinutes: duration,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "availability query failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(rooms)).InfoContext(r.Context(), "availability computed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listRoomsResponse{Rooms: toRoomDTOs(rooms)})
}

type timetableResponse struct {
	Date    string     `json:"date"`
	View    string     `json:"view"`
	Entries []entryDTO `json:"entries"`
}

type conflictsResponse struct {
	ConflictIDs []string `json:"conflict_ids"`
}

type entryDTO struct {
	ID             string  `json:"id"`
	CourseID       string  `json:"course_id"`
	LecturerID     string  `json:"lecturer_id"`
	RoomID         string  `json:"room_id"`
	Day            string  `json:"day"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	StudyProgram   string  `json:"study_program"`
	ClassGroup     string  `json:"class_group"`
	Semester       int     `json:"semester"`
	CreditHours    int     `json:"credit_hours"`
	Weeks          []int   `json:"weeks,omitempty"`
	Date           string  `json:"date,omitempty"`
	IsBooking      bool    `json:"is_booking"`
	BookingPurpose *string `json:"booking_purpose,omitempty"`
	BookingUser    *string `json:"booking_user,omitempty"`
}

func toEntryDTO(entry timetable.Entry) entryDTO {
	dto := entryDTO{
		ID:           entry.ID,
		CourseID:     entry.CourseID,
		LecturerID:   entry.LecturerID,
		RoomID:       entry.RoomID,
		Day:          string(entry.Day),
		StartTime:    entry.StartTime,
		EndTime:      entry.EndTime,
		StudyProgram: entry.StudyProgram,
		ClassGroup:   entry.ClassGroup,
		Semester:     entry.Semester,
		CreditHours:  entry.CreditHours,
		Weeks:        entry.Weeks,
		Date:         entry.Date,
		IsBooking:    entry.IsBooking,
	}
	if entry.IsBooking {
		purpose := entry.BookingPurpose
		user := entry.BookingUser
		dto.BookingPurpose = &purpose
		dto.BookingUser = &user
	}
	return dto
}

func toEntryDTOs(entries []timetable.Entry) []entryDTO {
	if len(entries) == 0 {
		return nil
	}
	out := make([]entryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toEntryDTO(entry))
	}
	return out
}
