package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/campus-scheduler/internal/persistence"
)

// CatalogService orchestrates the administrative reference data behind the
// timetable: courses, lecturers, and borrowable equipment. Writes are admin
// only; any authenticated user may read.
type CatalogService struct {
	courses     persistence.CourseRepository
	lecturers   persistence.LecturerRepository
	items       persistence.ItemRepository
	idGenerator func() string
	now         func() time.Time
	invalidate  func()
	logger      *slog.Logger
}

// NewCatalogService constructs a catalog service with the provided dependencies.
func NewCatalogService(
	courses persistence.CourseRepository,
	lecturers persistence.LecturerRepository,
	items persistence.ItemRepository,
	idGenerator func() string,
	now func() time.Time,
	invalidate func(),
	logger *slog.Logger,
) *CatalogService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if invalidate == nil {
		invalidate = func() {}
	}
	return &CatalogService{
		courses:     courses,
		lecturers:   lecturers,
		items:       items,
		idGenerator: idGenerator,
		now:         now,
		invalidate:  invalidate,
		logger:      defaultLogger(logger),
	}
}

func (s *CatalogService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CatalogService", operation, attrs...)
}

// CreateCourse validates input and persists a new course for administrators.
func (s *CatalogService) CreateCourse(ctx context.Context, principal Principal, input CourseInput) (course Course, err error) {
	if s == nil {
		err = fmt.Errorf("CatalogService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateCourse", "principal_id", principal.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create course", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("course_id", course.ID).InfoContext(ctx, "course created")
	}()

	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	vErr := validateCourseInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	record := persistence.Course{
		ID:        s.idGenerator(),
		Code:      strings.ToUpper(strings.TrimSpace(input.Code)),
		Name:      strings.TrimSpace(input.Name),
		Credits:   input.Credits,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.courses.CreateCourse(ctx, record); err != nil {
		err = mapRepoError(err)
		return
	}

	s.invalidate()
	course = courseFromRecord(record)
	return
}

// UpdateCourse validates input and updates an existing course for administrators.
func (s *CatalogService) UpdateCourse(ctx context.Context, principal Principal, courseID string, input CourseInput) (course Course, err error) {
	if s == nil {
		err = fmt.Errorf("CatalogService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateCourse", "principal_id", principal.UserID, "course_id", courseID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update course", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("course_id", course.ID).InfoContext(ctx, "course updated")
	}()

	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	var existing persistence.Course
	existing, err = s.courses.GetCourse(ctx, courseID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateCourseInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	updated.Name = strings.TrimSpace(input.Name)
	updated.Credits = input.Credits
	updated.UpdatedAt = s.now()

	if err = s.courses.UpdateCourse(ctx, updated); err != nil {
		err = mapRepoError(err)
		return
	}

	s.invalidate()
	course = courseFromRecord(updated)
	return
}

// DeleteCourse removes a course when requested by an administrator.
func (s *CatalogService) DeleteCourse(ctx context.Context, principal Principal, courseID string) error {
	return s.deleteCatalogEntry(ctx, principal, "DeleteCourse", "course", courseID, func() error {
		return s.courses.DeleteCourse(ctx, courseID)
	})
}

// GetCourse returns one course for any authenticated user.
func (s *CatalogService) GetCourse(ctx context.Context, principal Principal, courseID string) (Course, error) {
	if s == nil {
		return Course{}, fmt.Errorf("CatalogService is nil")
	}
	record, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return Course{}, mapRepoError(err)
	}
	return courseFromRecord(record), nil
}

// ListCourses returns all courses ordered by code.
func (s *CatalogService) ListCourses(ctx context.Context, principal Principal) ([]Course, error) {
	if s == nil {
		return nil, fmt.Errorf("CatalogService is nil")
	}
	raw, err := s.courses.ListCourses(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	courses := make([]Course, 0, len(raw))
	for _, record := range raw {
		courses = append(courses, courseFromRecord(record))
	}
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].Code != courses[j].Code {
			return courses[i].Code < courses[j].Code
		}
		return courses[i].ID < courses[j].ID
	})
	return courses, nil
}

// CreateLecturer validates input and persists a new lecturer for administrators.
func (s *CatalogService) CreateLecturer(ctx context.Context, principal Principal, input LecturerInput) (lecturer Lecturer, err error) {
	if s == nil {
		err = fmt.Errorf("CatalogService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateLecturer", "principal_id", principal.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create lecturer", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("lecturer_id", lecturer.ID).InfoContext(ctx, "lecturer created")
	}()

	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	vErr := validateLecturerInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	record := persistence.Lecturer{
		ID:           s.idGenerator(),
		NIP:          strings.TrimSpace(input.NIP),
		Name:         strings.TrimSpace(input.Name),
		StudyProgram: strings.TrimSpace(input.StudyProgram),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = s.lecturers.CreateLecturer(ctx, record); err != nil {
		err = mapRepoError(err)
		return
	}

	s.invalidate()
	lecturer = lecturerFromRecord(record)
	return
}

// UpdateLecturer validates input and updates an existing lecturer for administrators.
func (s *CatalogService) UpdateLecturer(ctx context.Context, principal Principal, lecturerID string, input LecturerInput) (lecturer Lecturer, err error) {
	if s == nil {
		err = fmt.Errorf("CatalogService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateLecturer", "principal_id", principal.UserID, "lecturer_id", lecturerID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update lecturer", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("lecturer_id", lecturer.ID).InfoContext(ctx, "lecturer updated")
	}()

	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	var existing persistence.Lecturer
	existing, err = s.lecturers.GetLecturer(ctx, lecturerID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateLecturerInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.NIP = strings.TrimSpace(input.NIP)
	updated.Name = strings.TrimSpace(input.Name)
	updated.StudyProgram = strings.TrimSpace(input.StudyProgram)
	updated.Email = strings.TrimSpace(input.Email)
	updated.Phone = strings.TrimSpace(input.Phone)
	updated.UpdatedAt = s.now()

	if err = s.lecturers.UpdateLecturer(ctx, updated); err != nil {
		err = mapRepoError(err)
		return
	}

	s.invalidate()
	lecturer = lecturerFromRecord(updated)
	return
}

// DeleteLecturer removes a lecturer when requested by an administrator.
func (s *CatalogService) DeleteLecturer(ctx context.Context, principal Principal, lecturerID string) error {
	return s.deleteCatalogEntry(ctx, principal, "DeleteLecturer", "lecturer", lecturerID, func() error {
		return s.lecturers.DeleteLecturer(ctx, lecturerID)
	})
}

// GetLecturer returns one lecturer for any authenticated user.
func (s *CatalogService) GetLecturer(ctx context.Context, principal Principal, lecturerID string) (Lecturer, error) {
	if s == nil {
		return Lecturer{}, fmt.Errorf("CatalogService is nil")
	}
	record, err := s.lecturers.GetLecturer(ctx, lecturerID)
	if err != nil {
		return Lecturer{}, mapRepoError(err)
	}
	return lecturerFromRecord(record), nil
}

// ListLecturers returns all lecturers ordered by name.
func (s *CatalogService) ListLecturers(ctx context.Context, principal Principal) ([]Lecturer, error) {
	if s == nil {
		return nil, fmt.Errorf("CatalogService is nil")
	}
	raw, err := s.lecturers.ListLecturers(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	lecturers := make([]Lecturer, 0, len(raw))
	for _, record := range raw {
		lecturers = append(lecturers, lecturerFromRecord(record))
	}
	sort.Slice(lecturers, func(i, j int) bool {
		if !strings.EqualFold(lecturers[i].Name, lecturers[j].Name) {
			return strings.ToLower(lecturers[i].Name) < strings.ToLower(lecturers[j].Name)
		}
		return lecturers[i].ID < lecturers[j].ID
	})
	return lecturers, nil
}

// CreateItem validates input and persists a new equipment item for administrators.
func (s *CatalogService) CreateItem(ctx context.Context, principal Principal, input ItemInput) (item Item, err error) {
	if s == nil {
		err = fmt.Errorf("CatalogService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateItem", "principal_id", principal.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("item_id", item.ID).InfoContext(ctx, "item created")
	}()

	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	vErr := validateItemInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	record := persistence.Item{
		ID:              s.idGenerator(),
		Name:            strings.TrimSpace(input.Name),
		Brand:           strings.TrimSpace(input.Brand),
		AcquisitionYear: strings.TrimSpace(input.AcquisitionYear),
		SerialNumber:    strings.TrimSpace(input.SerialNumber),
		Condition:       strings.TrimSpace(input.Condition),
		Location:        strings.TrimSpace(input.Location),
		Photo:           normalizeOptionalString(input.Photo),
		BorrowStatus:    persistence.ItemAvailable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err = s.items.CreateItem(ctx, record); err != nil {
		err = mapRepoError(err)
		return
	}

	item = itemFromRecord(record)
	return
}

// UpdateItem validates input and updates the catalog fields of an item for
// administrators. Availability state is owned by the borrowing cascade.
func (s *CatalogService) UpdateItem(ctx context.Context, principal Principal, itemID string, input ItemInput) (item Item, err error) {
	if s == nil {
		err = fmt.Errorf("CatalogService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateItem", "principal_id", principal.UserID, "item_id", itemID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("item_id", item.ID).InfoContext(ctx, "item updated")
	}()

	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	var existing persistence.Item
	existing, err = s.items.GetItem(ctx, itemID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateItemInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Brand = strings.TrimSpace(input.Brand)
	updated.AcquisitionYear = strings.TrimSpace(input.AcquisitionYear)
	updated.SerialNumber = strings.TrimSpace(input.SerialNumber)
	updated.Condition = strings.TrimSpace(input.Condition)
	updated.Location = strings.TrimSpace(input.Location)
	updated.Photo = normalizeOptionalString(input.Photo)
	updated.UpdatedAt = s.now()

	if err = s.items.UpdateItem(ctx, updated); err != nil {
		err = mapRepoError(err)
		return
	}

	item = itemFromRecord(updated)
	return
}

// DeleteItem removes an equipment item when requested by an administrator.
func (s *CatalogService) DeleteItem(ctx context.Context, principal Principal, itemID string) error {
	return s.deleteCatalogEntry(ctx, principal, "DeleteItem", "item", itemID, func() error {
		return s.items.DeleteItem(ctx, itemID)
	})
}

// GetItem returns one equipment item for any authenticated user.
func (s *CatalogService) GetItem(ctx context.Context, principal Principal, itemID string) (Item, error) {
	if s == nil {
		return Item{}, fmt.Errorf("CatalogService is nil")
	}
	record, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return Item{}, mapRepoError(err)
	}
	return itemFromRecord(record), nil
}

// ListItems returns all equipment items ordered by name.
func (s *CatalogService) ListItems(ctx context.Context, principal Principal) ([]Item, error) {
	if s == nil {
		return nil, fmt.Errorf("CatalogService is nil")
	}
	raw, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	items := make([]Item, 0, len(raw))
	for _, record := range raw {
		items = append(items, itemFromRecord(record))
	}
	return items, nil
}

func (s *CatalogService) deleteCatalogEntry(ctx context.Context, principal Principal, operation, kind, id string, remove func() error) error {
	if s == nil {
		return fmt.Errorf("CatalogService is nil")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, operation,
		"principal_id", principal.UserID,
		kind+"_id", id,
	)

	if err := remove(); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete "+kind, "error", err, "error_kind", ErrorKind(err))
		return err
	}

	s.invalidate()
	logger.InfoContext(ctx, kind+" deleted")
	return nil
}

func validateCourseInput(input CourseInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Code) == "" {
		vErr.add("code", "code is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Credits <= 0 {
		vErr.add("credits", "credits must be positive")
	}

	return vErr
}

func validateLecturerInput(input LecturerInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}

	return vErr
}

func validateItemInput(input ItemInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}

	return vErr
}

func normalizeOptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
