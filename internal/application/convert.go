package application

import (
	"errors"

	"github.com/example/campus-scheduler/internal/persistence"
)

func roomFromRecord(record persistence.Room) Room {
	return Room{
		ID:        record.ID,
		Name:      record.Name,
		Capacity:  record.Capacity,
		Building:  record.Building,
		Type:      record.Type,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func courseFromRecord(record persistence.Course) Course {
	return Course{
		ID:        record.ID,
		Code:      record.Code,
		Name:      record.Name,
		Credits:   record.Credits,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func lecturerFromRecord(record persistence.Lecturer) Lecturer {
	return Lecturer{
		ID:           record.ID,
		NIP:          record.NIP,
		Name:         record.Name,
		StudyProgram: record.StudyProgram,
		Email:        record.Email,
		Phone:        record.Phone,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func itemFromRecord(record persistence.Item) Item {
	return Item{
		ID:              record.ID,
		Name:            record.Name,
		Brand:           record.Brand,
		AcquisitionYear: record.AcquisitionYear,
		SerialNumber:    record.SerialNumber,
		Condition:       record.Condition,
		Location:        record.Location,
		Photo:           record.Photo,
		BorrowStatus:    record.BorrowStatus,
		Borrower:        record.Borrower,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func scheduleFromRecord(record persistence.Schedule) Schedule {
	weeks := make([]int, len(record.Weeks))
	copy(weeks, record.Weeks)
	if len(weeks) == 0 {
		weeks = nil
	}
	return Schedule{
		ID:           record.ID,
		CourseID:     record.CourseID,
		LecturerID:   record.LecturerID,
		RoomID:       record.RoomID,
		Day:          record.Day,
		StartTime:    record.StartTime,
		EndTime:      record.EndTime,
		StudyProgram: record.StudyProgram,
		ClassGroup:   record.ClassGroup,
		Semester:     record.Semester,
		CreditHours:  record.CreditHours,
		Weeks:        weeks,
		Date:         record.Date,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func bookingFromRecord(record persistence.Booking) Booking {
	return Booking{
		ID:        record.ID,
		UserID:    record.UserID,
		RoomID:    record.RoomID,
		Date:      record.Date,
		StartTime: record.StartTime,
		EndTime:   record.EndTime,
		Purpose:   record.Purpose,
		Status:    record.Status,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func borrowingFromRecord(record persistence.ItemBorrowing) Borrowing {
	return Borrowing{
		ID:         record.ID,
		UserID:     record.UserID,
		ItemID:     record.ItemID,
		BorrowDate: record.BorrowDate,
		ReturnDate: record.ReturnDate,
		Purpose:    record.Purpose,
		Status:     record.Status,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

func userFromRecord(record persistence.User) User {
	return User{
		ID:        record.ID,
		Username:  record.Username,
		FullName:  record.FullName,
		IsAdmin:   record.IsAdmin,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func sessionFromRecord(record persistence.Session) Session {
	return Session{
		ID:        record.ID,
		UserID:    record.UserID,
		Token:     record.Token,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
		RevokedAt: record.RevokedAt,
	}
}

// mapRepoError lifts persistence sentinels into application sentinels so
// callers never depend on the storage package.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, persistence.ErrBookingConflict):
		return ErrBookingConflict
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return ErrNotFound
	default:
		return err
	}
}
