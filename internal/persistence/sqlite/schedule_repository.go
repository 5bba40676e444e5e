package sqlite

import (
	"context"

	"github.com/example/campus-scheduler/internal/persistence"
)

// ScheduleRepository implements persistence.ScheduleRepository using SQLite.
type ScheduleRepository struct {
	pool *ConnectionPool
}

// NewScheduleRepository creates a new SQLite schedule repository.
func NewScheduleRepository(pool *ConnectionPool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

const scheduleColumns = "id, course_id, lecturer_id, room_id, day, start_time, end_time, " +
	"study_program, class_group, semester, credit_hours, weeks, date, created_at, updated_at"

// CreateSchedule inserts a new schedule entry.
func (r *ScheduleRepository) CreateSchedule(ctx context.Context, schedule persistence.Schedule) error {
	if schedule.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO schedules (`+scheduleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		schedule.ID,
		schedule.CourseID,
		schedule.LecturerID,
		schedule.RoomID,
		schedule.Day,
		schedule.StartTime,
		schedule.EndTime,
		schedule.StudyProgram,
		schedule.ClassGroup,
		schedule.Semester,
		schedule.CreditHours,
		encodeWeeks(schedule.Weeks),
		schedule.Date,
		encodeTime(schedule.CreatedAt),
		encodeTime(schedule.UpdatedAt),
	)
	return mapError(err)
}

// UpdateSchedule updates an existing schedule entry.
func (r *ScheduleRepository) UpdateSchedule(ctx context.Context, schedule persistence.Schedule) error {
	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE schedules
		SET course_id = ?, lecturer_id = ?, room_id = ?, day = ?, start_time = ?, end_time = ?,
		    study_program = ?, class_group = ?, semester = ?, credit_hours = ?, weeks = ?, date = ?,
		    updated_at = ?
		WHERE id = ?
	`,
		schedule.CourseID,
		schedule.LecturerID,
		schedule.RoomID,
		schedule.Day,
		schedule.StartTime,
		schedule.EndTime,
		schedule.StudyProgram,
		schedule.ClassGroup,
		schedule.Semester,
		schedule.CreditHours,
		encodeWeeks(schedule.Weeks),
		schedule.Date,
		encodeTime(schedule.UpdatedAt),
		schedule.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowsAffected(result)
}

// GetSchedule retrieves a schedule entry by ID.
func (r *ScheduleRepository) GetSchedule(ctx context.Context, id string) (persistence.Schedule, error) {
	row := r.pool.db.QueryRowContext(ctx, `SELECT `+scheduleColumns+` FROM schedules WHERE id = ?`, id)
	return scanSchedule(row)
}

// ListSchedules returns all schedule entries ordered by day then start time.
func (r *ScheduleRepository) ListSchedules(ctx context.Context) ([]persistence.Schedule, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules ORDER BY day ASC, start_time ASC, id ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var schedules []persistence.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return schedules, nil
}

// DeleteSchedule removes a schedule entry by ID.
func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowsAffected(result)
}

func scanSchedule(row rowScanner) (persistence.Schedule, error) {
	var schedule persistence.Schedule
	var weeks string
	var createdAt, updatedAt string

	err := row.Scan(
		&schedule.ID,
		&schedule.CourseID,
		&schedule.LecturerID,
		&schedule.RoomID,
		&schedule.Day,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.StudyProgram,
		&schedule.ClassGroup,
		&schedule.Semester,
		&schedule.CreditHours,
		&weeks,
		&schedule.Date,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Schedule{}, mapError(err)
	}

	if schedule.Weeks, err = decodeWeeks(weeks); err != nil {
		return persistence.Schedule{}, err
	}
	if schedule.CreatedAt, err = decodeTime(createdAt); err != nil {
		return persistence.Schedule{}, err
	}
	if schedule.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return persistence.Schedule{}, err
	}
	return schedule, nil
}
