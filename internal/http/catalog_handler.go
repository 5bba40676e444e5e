package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/campus-scheduler/internal/application"
)

type courseService interface {
	CreateCourse(ctx context.Context, principal application.Principal, input application.CourseInput) (application.Course, error)
	UpdateCourse(ctx context.Context, principal application.Principal, courseID string, input application.CourseInput) (application.Course, error)
	DeleteCourse(ctx context.Context, principal application.Principal, courseID string) error
	GetCourse(ctx context.Context, principal application.Principal, courseID string) (application.Course, error)
	ListCourses(ctx context.Context, principal application.Principal) ([]application.Course, error)
}

// CourseHandler exposes CRUD endpoints for the course catalog.
type CourseHandler struct {
	service   courseService
	responder responder
	logger    *slog.Logger
}

func NewCourseHandler(service courseService, logger *slog.Logger) *CourseHandler {
	base := defaultLogger(logger)
	return &CourseHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *CourseHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "CourseHandler", operation, attrs...)
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode course request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.UserID)

	course, err := h.service.CreateCourse(r.Context(), principal, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "course creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("course_id", course.ID).InfoContext(r.Context(), "course created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, courseResponse{Course: toCourseDTO(course)})
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	courseID, ok := CourseIDFromContext(r.Context())
	if !ok || strings.TrimSpace(courseID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing course id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCourseID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "principal_id", principal.UserID, "course_id", courseID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode course update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "principal_id", principal.UserID, "course_id", courseID)

	course, err := h.service.UpdateCourse(r.Context(), principal, courseID, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "course update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "course updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, courseResponse{Course: toCourseDTO(course)})
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	courseID, ok := CourseIDFromContext(r.Context())
	if !ok || strings.TrimSpace(courseID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing course id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCourseID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.UserID, "course_id", courseID)
	if err := h.service.DeleteCourse(r.Context(), principal, courseID); err != nil {
		logger.ErrorContext(r.Context(), "course delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "course deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	courseID, ok := CourseIDFromContext(r.Context())
	if !ok || strings.TrimSpace(courseID) == "" {
		h.log(r.Context(), "Get", "error_kind", "bad_request").ErrorContext(r.Context(), "missing course id for get")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCourseID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "principal_id", principal.UserID, "course_id", courseID)
	course, err := h.service.GetCourse(r.Context(), principal, courseID)
	if err != nil {
		logger.ErrorContext(r.Context(), "course get failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "course fetched")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, courseResponse{Course: toCourseDTO(course)})
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "List", "principal_id", principal.UserID)
	courses, err := h.service.ListCourses(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "course list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(courses)).InfoContext(r.Context(), "courses listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listCoursesResponse{Courses: toCourseDTOs(courses)})
}

type courseRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
}

func (r courseRequest) toInput() application.CourseInput {
	return application.CourseInput{
		Code:    strings.TrimSpace(r.Code),
		Name:    strings.TrimSpace(r.Name),
		Credits: r.Credits,
	}
}

type courseResponse struct {
	Course courseDTO `json:"course"`
}

type listCoursesResponse struct {
	Courses []courseDTO `json:"courses"`
}

type courseDTO struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Credits   int    `json:"credits"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toCourseDTO(course application.Course) courseDTO {
	return courseDTO{
		ID:        course.ID,
		Code:      course.Code,
		Name:      course.Name,
		Credits:   course.Credits,
		CreatedAt: course.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: course.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toCourseDTOs(courses []application.Course) []courseDTO {
	if len(courses) == 0 {
		return nil
	}
	out := make([]courseDTO, 0, len(courses))
	for _, course := range courses {
		out = append(out, toCourseDTO(course))
	}
	return out
}

type lecturerService interface {
	CreateLecturer(ctx context.Context, principal application.Principal, input application.LecturerInput) (application.Lecturer, error)
	UpdateLecturer(ctx context.Context, principal application.Principal, lecturerID string, input application.LecturerInput) (application.Lecturer, error)
	DeleteLecturer(ctx context.Context, principal application.Principal, lecturerID string) error
	GetLecturer(ctx context.Context, principal application.Principal, lecturerID string) (application.Lecturer, error)
	ListLecturers(ctx context.Context, principal application.Principal) ([]application.Lecturer, error)
}

// LecturerHandler exposes CRUD endpoints for the lecturer catalog.
type LecturerHandler struct {
	service   lecturerService
	responder responder
	logger    *slog.Logger
}

func NewLecturerHandler(service lecturerService, logger *slog.Logger) *LecturerHandler {
	base := defaultLogger(logger)
	return &LecturerHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *LecturerHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "LecturerHandler", operation, attrs...)
}

func (h *LecturerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req lecturerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode lecturer request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.UserID)

	lecturer, err := h.service.CreateLecturer(r.Context(), principal, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "lecturer creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("lecturer_id", lecturer.ID).InfoContext(r.Context(), "lecturer created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, lecturerResponse{Lecturer: toLecturerDTO(lecturer)})
}

func (h *LecturerHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	lecturerID, ok := LecturerIDFromContext(r.Context())
	if !ok || strings.TrimSpace(lecturerID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing lecturer id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidLecturerID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req lecturerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "principal_id", principal.UserID, "lecturer_id", lecturerID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode lecturer update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "principal_id", principal.UserID, "lecturer_id", lecturerID)

	lecturer, err := h.service.UpdateLecturer(r.Context(), principal, lecturerID, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "lecturer update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "lecturer updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, lecturerResponse{Lecturer: toLecturerDTO(lecturer)})
}

func (h *LecturerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	lecturerID, ok := LecturerIDFromContext(r.Context())
	if !ok || strings.TrimSpace(lecturerID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing lecturer id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidLecturerID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.UserID, "lecturer_id", lecturerID)
	if err := h.service.DeleteLecturer(r.Context(), principal, lecturerID); err != nil {
		logger.ErrorContext(r.Context(), "lecturer delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "lecturer deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *LecturerHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	lecturerID, ok := LecturerIDFromContext(r.Context())
	if !ok || strings.TrimSpace(lecturerID) == "" {
		h.log(r.Context(), "Get", "error_kind", "bad_request").ErrorContext(r.Context(), "missing lecturer id for get")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidLecturerID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "principal_id", principal.UserID, "lecturer_id", lecturerID)
	lecturer, err := h.service.GetLecturer(r.Context(), principal, lecturerID)
	if err != nil {
		logger.ErrorContext(r.Context(), "lecturer get failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "lecturer fetched")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, lecturerResponse{Lecturer: toLecturerDTO(lecturer)})
}

func (h *LecturerHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "List", "principal_id", principal.UserID)
	lecturers, err := h.service.ListLecturers(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "lecturer list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(lecturers)).InfoContext(r.Context(), "lecturers listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listLecturersResponse{Lecturers: toLecturerDTOs(lecturers)})
}

type lecturerRequest struct {
	NIP          string `json:"nip"`
	Name         string `json:"name"`
	StudyProgram string `json:"study_program"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

func (r lecturerRequest) toInput() application.LecturerInput {
	return application.LecturerInput{
		NIP:          strings.TrimSpace(r.NIP),
		Name:         strings.TrimSpace(r.Name),
		StudyProgram: strings.TrimSpace(r.StudyProgram),
		Email:        strings.TrimSpace(r.Email),
		Phone:        strings.TrimSpace(r.Phone),
	}
}

type lecturerResponse struct {
	Lecturer lecturerDTO `json:"lecturer"`
}

type listLecturersResponse struct {
	Lecturers []lecturerDTO `json:"lecturers"`
}

type lecturerDTO struct {
	ID           string `json:"id"`
	NIP          string `json:"nip"`
	Name         string `json:"name"`
	StudyProgram string `json:"study_program"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toLecturerDTO(lecturer application.Lecturer) lecturerDTO {
	return lecturerDTO{
		ID:           lecturer.ID,
		NIP:          lecturer.NIP,
		Name:         lecturer.Name,
		StudyProgram: lecturer.StudyProgram,
		Email:        lecturer.Email,
		Phone:        lecturer.Phone,
		CreatedAt:    lecturer.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    lecturer.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toLecturerDTOs(lecturers []application.Lecturer) []lecturerDTO {
	if len(lecturers) == 0 {
		return nil
	}
	out := make([]lecturerDTO, 0, len(lecturers))
	for _, lecturer := range lecturers {
		out = append(out, toLecturerDTO(lecturer))
	}
	return out
}

type itemService interface {
	CreateItem(ctx context.Context, principal application.Principal, input application.ItemInput) (application.Item, error)
	UpdateItem(ctx context.Context, principal application.Principal, itemID string, input application.ItemInput) (application.Item, error)
	DeleteItem(ctx context.Context, principal application.Principal, itemID string) error
	GetItem(ctx context.Context, principal application.Principal, itemID string) (application.Item, error)
	ListItems(ctx context.Context, principal application.Principal) ([]application.Item, error)
}

// ItemHandler exposes CRUD endpoints for the equipment catalog. Availability
// fields on the item are owned by the borrowing workflow and are read only here.
type ItemHandler struct {
	service   itemService
	responder responder
	logger    *slog.Logger
}

func NewItemHandler(service itemService, logger *slog.Logger) *ItemHandler {
	base := defaultLogger(logger)
	return &ItemHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ItemHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ItemHandler", operation, attrs...)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode item request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.UserID)

	item, err := h.service.CreateItem(r.Context(), principal, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "item creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("item_id", item.ID).InfoContext(r.Context(), "item created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, itemResponse{Item: toItemDTO(item)})
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	itemID, ok := ItemIDFromContext(r.Context())
	if !ok || strings.TrimSpace(itemID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing item id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidItemID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "principal_id", principal.UserID, "item_id", itemID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode item update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "principal_id", principal.UserID, "item_id", itemID)

	item, err := h.service.UpdateItem(r.Context(), principal, itemID, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "item update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "item updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, itemResponse{Item: toItemDTO(item)})
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	itemID, ok := ItemIDFromContext(r.Context())
	if !ok || strings.TrimSpace(itemID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing item id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidItemID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.UserID, "item_id", itemID)
	if err := h.service.DeleteItem(r.Context(), principal, itemID); err != nil {
		logger.ErrorContext(r.Context(), "item delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "item deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	itemID, ok := ItemIDFromContext(r.Context())
	if !ok || strings.TrimSpace(itemID) == "" {
		h.log(r.Context(), "Get", "error_kind", "bad_request").ErrorContext(r.Context(), "missing item id for get")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidItemID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "principal_id", principal.UserID, "item_id", itemID)
	item, err := h.service.GetItem(r.Context(), principal, itemID)
	if err != nil {
		logger.ErrorContext(r.Context(), "item get failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "item fetched")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, itemResponse{Item: toItemDTO(item)})
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "List", "principal_id", principal.UserID)
	items, err := h.service.ListItems(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "item list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(items)).InfoContext(r.Context(), "items listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listItemsResponse{Items: toItemDTOs(items)})
}

type itemRequest struct {
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	AcquisitionYear string  `json:"acquisition_year"`
	SerialNumber    string  `json:"serial_number"`
	Condition       string  `json:"condition"`
	Location        string  `json:"location"`
	Photo           *string `json:"photo"`
}

func (r itemRequest) toInput() application.ItemInput {
	var photo *string
	if r.Photo != nil {
		trimmed := strings.TrimSpace(*r.Photo)
		photo = &trimmed
	}
	return application.ItemInput{
		Name:            strings.TrimSpace(r.Name),
		Brand:           strings.TrimSpace(r.Brand),
		AcquisitionYear: strings.TrimSpace(r.AcquisitionYear),
		SerialNumber:    strings.TrimSpace(r.SerialNumber),
		Condition:       strings.TrimSpace(r.Condition),
		Location:        strings.TrimSpace(r.Location),
		Photo:           photo,
	}
}

type itemResponse struct {
	Item itemDTO `json:"item"`
}

type listItemsResponse struct {
	Items []itemDTO `json:"items"`
}

type itemDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	AcquisitionYear string  `json:"acquisition_year"`
	SerialNumber    string  `json:"serial_number"`
	Condition       string  `json:"condition"`
	Location        string  `json:"location"`
	Photo           *string `json:"photo,omitempty"`
	BorrowStatus    string  `json:"borrow_status"`
	Borrower        *string `json:"borrower,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func toItemDTO(item application.Item) itemDTO {
	return itemDTO{
		ID:              item.ID,
		Name:            item.Name,
		Brand:           item.Brand,
		AcquisitionYear: item.AcquisitionYear,
		SerialNumber:    item.SerialNumber,
		Condition:       item.Condition,
		Location:        item.Location,
		Photo:           item.Photo,
		BorrowStatus:    item.BorrowStatus,
		Borrower:        item.Borrower,
		CreatedAt:       item.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       item.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toItemDTOs(items []application.Item) []itemDTO {
	if len(items) == 0 {
		return nil
	}
	out := make([]itemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toItemDTO(item))
	}
	return out
}
