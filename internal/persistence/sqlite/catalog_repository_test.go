package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/campus-scheduler/internal/persistence"
)

func TestCourseRepository_CreateCourse(t *testing.T) {
	pool, cleanup := newTestPool(t)
	defer cleanup()
	repo := NewCourseRepository(pool)

	ctx := context.Background()
	course := persistence.Course{
		ID:        "course1",
		Code:      "IF2110",
		Name:      "Algoritma dan Struktur Data",
		Credits:   4,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}

	if err := repo.CreateCourse(ctx, course); err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}

	retrieved, err := repo.GetCourse(ctx, "course1")
	if err != nil {
		t.Fatalf("GetCourse failed: %v", err)
	}
	if retrieved.Code != "IF2110" {
		t.Errorf("Expected code 'IF2110', got '%s'", retrieved.Code)
	}
	if retrieved.Credits != 4 {
		t.Errorf("Expected 4 credits, got %d", retrieved.Credits)
	}
}

func TestCourseRepository_UpdateCourse_NotFound(t *testing.T) {
	pool, cleanup := newTestPool(t)
	defer cleanup()
	repo := NewCourseRepository(pool)

	ctx := context.Background()
	err := repo.UpdateCourse(ctx, persistence.Course{
		ID:        "tidak-ada",
		Code:      "IF2110",
		Name:      "Algoritma dan Struktur Data",
		Credits:   4,
		UpdatedAt: testTime,
	})
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown course, got %v", err)
	}
}

func TestLecturerRepository_CreateLecturer(t *testing.T) {
	pool, cleanup := newTestPool(t)
	defer cleanup()
	repo := NewLecturerRepository(pool)

	ctx := context.Background()
	lecturer := persistence.Lecturer{
		ID:           "lecturer1",
		NIP:          "198001012005011001",
		Name:         "Dr. Siti Rahma",
		StudyProgram: "Teknik Informatika",
		Email:        "siti.rahma@kampus.ac.id",
		Phone:        "081234567890",
		CreatedAt:    testTime,
		UpdatedAt:    testTime,
	}

	if err := repo.CreateLecturer(ctx, lecturer); err != nil {
		t.Fatalf("CreateLecturer failed: %v", err)
	}

	retrieved, err := repo.GetLecturer(ctx, "lecturer1")
	if err != nil {
		t.Fatalf("GetLecturer failed: %v", err)
	}
	if retrieved.Name != "Dr. Siti Rahma" {
		t.Errorf("Expected name 'Dr. Siti Rahma', got '%s'", retrieved.Name)
	}
	if retrieved.NIP != "198001012005011001" {
		t.Errorf("Expected NIP '198001012005011001', got '%s'", retrieved.NIP)
	}
}

func TestLecturerRepository_DeleteLecturer(t *testing.T) {
	pool, cleanup := newTestPool(t)
	defer cleanup()
	repo := NewLecturerRepository(pool)

	ctx := context.Background()
	lecturer := persistence.Lecturer{
		ID:        "lecturer1",
		Name:      "Dr. Siti Rahma",
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
	if err := repo.CreateLecturer(ctx, lecturer); err != nil {
		t.Fatalf("CreateLecturer failed: %v", err)
	}

	if err := repo.DeleteLecturer(ctx, "lecturer1"); err != nil {
		t.Fatalf("DeleteLecturer failed: %v", err)
	}
	if _, err := repo.GetLecturer(ctx, "lecturer1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestItemRepository_CreateItem_DefaultsToAvailable(t *testing.T) {
	pool, cleanup := newTestPool(t)
	defer cleanup()
	repo := NewItemRepository(pool)

	ctx := context.Background()
	err := repo.CreateItem(ctx, persistence.Item{
		ID:        "item1",
		Name:      "Proyektor",
		CreatedAt: testTime,
		UpdatedAt: testTime,
	})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	retrieved, err := repo.GetItem(ctx, "item1")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if retrieved.BorrowStatus != persistence.ItemAvailable {
		t.Errorf("Expected status '%s', got '%s'", persistence.ItemAvailable, retrieved.BorrowStatus)
	}
	if retrieved.Borrower != nil {
		t.Errorf("Expected no borrower, got %v", *retrieved.Borrower)
	}
	if retrieved.Photo != nil {
		t.Errorf("Expected no photo, got %v", *retrieved.Photo)
	}
}

func TestItemRepository_UpdateItem_PreservesBorrowState(t *testing.T) {
	pool, cleanup := newTestPool(t)
	defer cleanup()
	repo := NewItemRepository(pool)
	borrowings := NewBorrowingRepository(pool)

	ctx := context.Background()
	seedTestUser(t, pool, "user1", "budi")
	seedTestItem(t, pool, "item1", "Proyektor")

	if err := borrowings.CreateBorrowing(ctx, newTestBorrowing("borrowing1", "item1")); err != nil {
		t.Fatalf("CreateBorrowing failed: %v", err)
	}
	if _, err := borrowings.UpdateBorrowingStatus(ctx, "borrowing1", persistence.BorrowingApproved, "Budi Santoso", testTime); err != nil {
		t.Fatalf("UpdateBorrowingStatus failed: %v", err)
	}

	err := repo.UpdateItem(ctx, persistence.Item{
		ID:        "item1",
		Name:      "Proyektor Epson",
		Brand:     "Epson",
		Condition: "Baik",
		UpdatedAt: testTime,
	})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	retrieved, err := repo.GetItem(ctx, "item1")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if retrieved.Name != "Proyektor Epson" {
		t.Errorf("Expected name 'Proyektor Epson', got '%s'", retrieved.Name)
	}
	if retrieved.BorrowStatus != persistence.ItemBorrowed {
		t.Errorf("Expected borrow status to survive catalog update, got '%s'", retrieved.BorrowStatus)
	}
	if retrieved.Borrower == nil || *retrieved.Borrower != "Budi Santoso" {
		t.Errorf("Expected borrower 'Budi Santoso', got %v", retrieved.Borrower)
	}
}
