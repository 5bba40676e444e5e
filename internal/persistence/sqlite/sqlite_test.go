package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/campus-scheduler/internal/persistence"
)

var testTime = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

// newTestPool opens a file-backed database under t.TempDir() and runs the
// embedded migrations so tests exercise the real schema, constraints
// included.
func newTestPool(t *testing.T) (*ConnectionPool, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "campus_test.db")
	pool, err := NewConnectionPool("file:" + dbPath)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	if err := pool.Migrate(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return pool, func() { pool.Close() }
}

func seedTestUser(t *testing.T, pool *ConnectionPool, id, username string) {
	t.Helper()

	repo := NewUserRepository(pool)
	err := repo.CreateUser(context.Background(), persistence.User{
		ID:           id,
		Username:     username,
		FullName:     "Budi Santoso",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		CreatedAt:    testTime,
		UpdatedAt:    testTime,
	})
	if err != nil {
		t.Fatalf("Failed to seed user %s: %v", id, err)
	}
}

func seedTestRoom(t *testing.T, pool *ConnectionPool, id, name string) {
	t.Helper()

	repo := NewRoomRepository(pool)
	err := repo.CreateRoom(context.Background(), persistence.Room{
		ID:        id,
		Name:      name,
		Capacity:  40,
		Building:  "Gedung A",
		Type:      "Kelas",
		CreatedAt: testTime,
		UpdatedAt: testTime,
	})
	if err != nil {
		t.Fatalf("Failed to seed room %s: %v", id, err)
	}
}

func seedTestItem(t *testing.T, pool *ConnectionPool, id, name string) {
	t.Helper()

	repo := NewItemRepository(pool)
	err := repo.CreateItem(context.Background(), persistence.Item{
		ID:              id,
		Name:            name,
		Brand:           "Epson",
		AcquisitionYear: "2024",
		SerialNumber:    "SN-" + id,
		Condition:       "Baik",
		Location:        "Lab Komputer 1",
		BorrowStatus:    persistence.ItemAvailable,
		CreatedAt:       testTime,
		UpdatedAt:       testTime,
	})
	if err != nil {
		t.Fatalf("Failed to seed item %s: %v", id, err)
	}
}
