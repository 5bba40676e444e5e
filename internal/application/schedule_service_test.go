package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/campus-scheduler/internal/persistence"
)

func scheduleServiceFixture() (*ScheduleService, *scheduleRepoStub) {
	schedules := newScheduleRepoStub()
	courses := newCourseRepoStub(persistence.Course{ID: "course-1", Code: "IF101", Name: "Algoritma"})
	lecturers := newLecturerRepoStub(persistence.Lecturer{ID: "lect-1", Name: "Dr. Siti"})
	rooms := newRoomRepoStub(persistence.Room{ID: "room-1", Name: "Lab 1", Capacity: 30})
	now := time.Date(2024, time.February, 26, 7, 0, 0, 0, time.UTC)
	svc := NewScheduleService(schedules, courses, lecturers, rooms,
		func() string { return "sch-1" }, fixedClock(now), nil, nil)
	return svc, schedules
}

func validScheduleInput() ScheduleInput {
	return ScheduleInput{
		CourseID:   "course-1",
		LecturerID: "lect-1",
		RoomID:     "room-1",
		Day:        "Senin",
		StartTime:  "08:00",
		EndTime:    "10:00",
		ClassGroup: "A",
	}
}

func TestScheduleService_CreateSchedule(t *testing.T) {
	t.Run("requires administrator privileges", func(t *testing.T) {
		svc, _ := scheduleServiceFixture()

		_, err := svc.CreateSchedule(context.Background(), CreateScheduleParams{
			Principal: Principal{UserID: "user-7"},
			Input:     validScheduleInput(),
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("persists valid slots", func(t *testing.T) {
		svc, schedules := scheduleServiceFixture()

		created, err := svc.CreateSchedule(context.Background(), CreateScheduleParams{
			Principal: Principal{UserID: "admin", IsAdmin: true},
			Input:     validScheduleInput(),
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if created.ID != "sch-1" {
			t.Fatalf("expected generated id, got %q", created.ID)
		}
		if _, ok := schedules.schedules["sch-1"]; !ok {
			t.Fatal("expected schedule persisted")
		}
	})

	t.Run("rejects invalid weekdays and windows", func(t *testing.T) {
		svc, _ := scheduleServiceFixture()

		input := validScheduleInput()
		input.Day = "Sabtu"
		input.StartTime = "10:00"
		input.EndTime = "08:00"

		_, err := svc.CreateSchedule(context.Background(), CreateScheduleParams{
			Principal: Principal{UserID: "admin", IsAdmin: true},
			Input:     input,
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["day"]; !ok {
			t.Fatalf("expected day validation error, got %v", vErr.FieldErrors)
		}
		if _, ok := vErr.FieldErrors["endTime"]; !ok {
			t.Fatalf("expected endTime validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("rejects week masks outside the term", func(t *testing.T) {
		svc, _ := scheduleServiceFixture()

		input := validScheduleInput()
		input.Weeks = []int{0, 5}

		_, err := svc.CreateSchedule(context.Background(), CreateScheduleParams{
			Principal: Principal{UserID: "admin", IsAdmin: true},
			Input:     input,
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["weeks"]; !ok {
			t.Fatalf("expected weeks validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("rejects weekend pin dates", func(t *testing.T) {
		svc, _ := scheduleServiceFixture()

		date := "2024-03-16"
		input := validScheduleInput()
		input.Date = &date

		_, err := svc.CreateSchedule(context.Background(), CreateScheduleParams{
			Principal: Principal{UserID: "admin", IsAdmin: true},
			Input:     input,
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["date"]; !ok {
			t.Fatalf("expected date validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("rejects dangling references", func(t *testing.T) {
		svc, _ := scheduleServiceFixture()

		input := validScheduleInput()
		input.CourseID = "missing-course"
		input.RoomID = "missing-room"

		_, err := svc.CreateSchedule(context.Background(), CreateScheduleParams{
			Principal: Principal{UserID: "admin", IsAdmin: true},
			Input:     input,
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["courseId"]; !ok {
			t.Fatalf("expected courseId validation error, got %v", vErr.FieldErrors)
		}
		if _, ok := vErr.FieldErrors["roomId"]; !ok {
			t.Fatalf("expected roomId validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("sorts and keeps the week mask", func(t *testing.T) {
		svc, schedules := scheduleServiceFixture()

		input := validScheduleInput()
		input.Weeks = []int{8, 1, 3}

		created, err := svc.CreateSchedule(context.Background(), CreateScheduleParams{
			Principal: Principal{UserID: "admin", IsAdmin: true},
			Input:     input,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		want := []int{1, 3, 8}
		if len(created.Weeks) != 3 {
			t.Fatalf("expected 3 weeks, got %v", created.Weeks)
		}
		for i, w := range want {
			if created.Weeks[i] != w {
				t.Fatalf("expected sorted weeks %v, got %v", want, created.Weeks)
			}
		}
		if stored := schedules.schedules["sch-1"]; len(stored.Weeks) != 3 {
			t.Fatalf("expected weeks persisted, got %v", stored.Weeks)
		}
	})
}

func TestScheduleService_UpdateSchedule(t *testing.T) {
	svc, schedules := scheduleServiceFixture()
	admin := Principal{UserID: "admin", IsAdmin: true}

	if _, err := svc.CreateSchedule(context.Background(), CreateScheduleParams{
		Principal: admin,
		Input:     validScheduleInput(),
	}); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	input := validScheduleInput()
	input.Day = "Rabu"
	input.StartTime = "13:00"
	input.EndTime = "15:00"

	updated, err := svc.UpdateSchedule(context.Background(), UpdateScheduleParams{
		Principal:  admin,
		ScheduleID: "sch-1",
		Input:      input,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if updated.Day != "Rabu" || updated.StartTime != "13:00" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if stored := schedules.schedules["sch-1"]; stored.Day != "Rabu" {
		t.Fatalf("expected persisted day Rabu, got %q", stored.Day)
	}

	_, err = svc.UpdateSchedule(context.Background(), UpdateScheduleParams{
		Principal:  admin,
		ScheduleID: "missing",
		Input:      input,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScheduleService_DeleteSchedule(t *testing.T) {
	svc, schedules := scheduleServiceFixture()
	admin := Principal{UserID: "admin", IsAdmin: true}

	if _, err := svc.CreateSchedule(context.Background(), CreateScheduleParams{
		Principal: admin,
		Input:     validScheduleInput(),
	}); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	if err := svc.DeleteSchedule(context.Background(), Principal{UserID: "user-7"}, "sch-1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := svc.DeleteSchedule(context.Background(), admin, "sch-1"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if _, ok := schedules.schedules["sch-1"]; ok {
		t.Fatal("expected schedule removed")
	}
}
