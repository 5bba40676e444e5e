package sqlite

import (
	"context"

	"github.com/example/campus-scheduler/internal/persistence"
)

// CourseRepository implements persistence.CourseRepository using SQLite.
type CourseRepository struct {
	pool *ConnectionPool
}

// NewCourseRepository creates a new SQLite course repository.
func NewCourseRepository(pool *ConnectionPool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = "id, code, name, credits, created_at, updated_at"

// CreateCourse inserts a new course.
func (r *CourseRepository) CreateCourse(ctx context.Context, course persistence.Course) error {
	if course.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO courses (`+courseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		course.ID,
		course.Code,
		course.Name,
		course.Credits,
		encodeTime(course.CreatedAt),
		encodeTime(course.UpdatedAt),
	)
	return mapError(err)
}

// UpdateCourse updates an existing course.
func (r *CourseRepository) UpdateCourse(ctx context.Context, course persistence.Course) error {
	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE courses SET code = ?, name = ?, credits = ?, updated_at = ? WHERE id = ?
	`,
		course.Code,
		course.Name,
		course.Credits,
		encodeTime(course.UpdatedAt),
		course.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowsAffected(result)
}

// GetCourse retrieves a course by ID.
func (r *CourseRepository) GetCourse(ctx context.Context, id string) (persistence.Course, error) {
	row := r.pool.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id)
	return scanCourse(row)
}

// ListCourses returns all courses ordered by code.
func (r *CourseRepository) ListCourses(ctx context.Context) ([]persistence.Course, error) {
	rows, err := r.pool.db.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY code ASC, id ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var courses []persistence.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return courses, nil
}

// DeleteCourse removes a course by ID.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowsAffected(result)
}

func scanCourse(row rowScanner) (persistence.Course, error) {
	var course persistence.Course
	var createdAt, updatedAt string

	err := row.Scan(&course.ID, &course.Code, &course.Name, &course.Credits, &createdAt, &updatedAt)
	if err != nil {
		return persistence.Course{}, mapError(err)
	}

	if course.CreatedAt, err = decodeTime(createdAt); err != nil {
		return persistence.Course{}, err
	}
	if course.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return persistence.Course{}, err
	}
	return course, nil
}

// LecturerRepository implements persistence.LecturerRepository using SQLite.
type LecturerRepository struct {
	pool *ConnectionPool
}

// NewLecturerRepository creates a new SQLite lecturer repository.
func NewLecturerRepository(pool *ConnectionPool) *LecturerRepository {
	return &LecturerRepository{pool: pool}
}

const lecturerColumns = "id, nip, name, study_program, email, phone, created_at, updated_at"

// CreateLecturer inserts a new lecturer.
func (r *LecturerRepository) CreateLecturer(ctx context.Context, lecturer persistence.Lecturer) error {
	if lecturer.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO lecturers (`+lecturerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		lecturer.ID,
		lecturer.NIP,
		lecturer.Name,
		lecturer.StudyProgram,
		lecturer.Email,
		lecturer.Phone,
		encodeTime(lecturer.CreatedAt),
		encodeTime(lecturer.UpdatedAt),
	)
	return mapError(err)
}

// UpdateLecturer updates an existing lecturer.
func (r *LecturerRepository) UpdateLecturer(ctx context.Context, lecturer persistence.Lecturer) error {
	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE lecturers
		SET nip = ?, name = ?, study_program = ?, email = ?, phone = ?, updated_at = ?
		WHERE id = ?
	`,
		lecturer.NIP,
		lecturer.Name,
		lecturer.StudyProgram,
		lecturer.Email,
		lecturer.Phone,
		encodeTime(lecturer.UpdatedAt),
		lecturer.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowsAffected(result)
}

// GetLecturer retrieves a lecturer by ID.
func (r *LecturerRepository) GetLecturer(ctx context.Context, id string) (persistence.Lecturer, error) {
	row := r.pool.db.QueryRowContext(ctx, `SELECT `+lecturerColumns+` FROM lecturers WHERE id = ?`, id)
	return scanLecturer(row)
}

// ListLecturers returns all lecturers ordered by name.
func (r *LecturerRepository) ListLecturers(ctx context.Context) ([]persistence.Lecturer, error) {
	rows, err := r.pool.db.QueryContext(ctx, `SELECT `+lecturerColumns+` FROM lecturers ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var lecturers []persistence.Lecturer
	for rows.Next() {
		lecturer, err := scanLecturer(rows)
		if err != nil {
			return nil, err
		}
		lecturers = append(lecturers, lecturer)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return lecturers, nil
}

// DeleteLecturer removes a lecturer by ID.
func (r *LecturerRepository) DeleteLecturer(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM lecturers WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowsAffected(result)
}

func scanLecturer(row rowScanner) (persistence.Lecturer, error) {
	var lecturer persistence.Lecturer
	var createdAt, updatedAt string

	err := row.Scan(
		&lecturer.ID,
		&lecturer.NIP,
		&lecturer.Name,
		&lecturer.StudyProgram,
		&lecturer.Email,
		&lecturer.Phone,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Lecturer{}, mapError(err)
	}

	if lecturer.CreatedAt, err = decodeTime(createdAt); err != nil {
		return persistence.Lecturer{}, err
	}
	if lecturer.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return persistence.Lecturer{}, err
	}
	return lecturer, nil
}
