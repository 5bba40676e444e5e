package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/campus-scheduler/internal/persistence"
)

// BorrowingRepository implements persistence.BorrowingRepository using SQLite.
type BorrowingRepository struct {
	pool *ConnectionPool
}

// NewBorrowingRepository creates a new SQLite borrowing repository.
func NewBorrowingRepository(pool *ConnectionPool) *BorrowingRepository {
	return &BorrowingRepository{pool: pool}
}

const borrowingColumns = "id, user_id, item_id, borrow_date, return_date, purpose, status, created_at, updated_at"

// CreateBorrowing inserts a new borrowing request.
func (r *BorrowingRepository) CreateBorrowing(ctx context.Context, borrowing persistence.ItemBorrowing) error {
	if borrowing.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO item_borrowings (`+borrowingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		borrowing.ID,
		borrowing.UserID,
		borrowing.ItemID,
		borrowing.BorrowDate,
		borrowing.ReturnDate,
		borrowing.Purpose,
		borrowing.Status,
		encodeTime(borrowing.CreatedAt),
		encodeTime(borrowing.UpdatedAt),
	)
	return mapError(err)
}

// GetBorrowing retrieves a borrowing request by ID.
func (r *BorrowingRepository) GetBorrowing(ctx context.Context, id string) (persistence.ItemBorrowing, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+borrowingColumns+` FROM item_borrowings WHERE id = ?`, id)
	return scanBorrowing(row)
}

// ListBorrowings returns all borrowing requests, newest first.
func (r *BorrowingRepository) ListBorrowings(ctx context.Context) ([]persistence.ItemBorrowing, error) {
	return r.queryBorrowings(ctx,
		`SELECT `+borrowingColumns+` FROM item_borrowings ORDER BY created_at DESC, id ASC`)
}

// ListBorrowingsForUser returns the borrowing requests created by one user.
func (r *BorrowingRepository) ListBorrowingsForUser(ctx context.Context, userID string) ([]persistence.ItemBorrowing, error) {
	return r.queryBorrowings(ctx,
		`SELECT `+borrowingColumns+` FROM item_borrowings WHERE user_id = ? ORDER BY created_at DESC, id ASC`,
		userID)
}

// HasActiveBorrowing reports whether the item has a request that is still
// pending or approved. At most one such request may exist per item.
func (r *BorrowingRepository) HasActiveBorrowing(ctx context.Context, itemID string) (bool, error) {
	var count int
	err := r.pool.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM item_borrowings
		WHERE item_id = ? AND status IN (?, ?)
	`, itemID, persistence.BorrowingPending, persistence.BorrowingApproved).Scan(&count)
	if err != nil {
		return false, mapError(err)
	}
	return count > 0, nil
}

// UpdateBorrowingStatus moves a borrowing request through its lifecycle and
// cascades the result onto the item in the same transaction. Approval marks
// the item borrowed under the given label; rejection and return release it.
func (r *BorrowingRepository) UpdateBorrowingStatus(ctx context.Context, id, status, borrowerLabel string, updatedAt time.Time) (persistence.ItemBorrowing, error) {
	var updated persistence.ItemBorrowing

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRow(`SELECT `+borrowingColumns+` FROM item_borrowings WHERE id = ?`, id)
		borrowing, err := scanBorrowing(row)
		if err != nil {
			return err
		}

		var returnDate *string
		if status == persistence.BorrowingReturned {
			day := updatedAt.UTC().Format("2006-01-02")
			returnDate = &day
		}

		result, err := tx.Exec(
			`UPDATE item_borrowings SET status = ?, return_date = ?, updated_at = ? WHERE id = ?`,
			status, returnDate, encodeTime(updatedAt), id)
		if err != nil {
			return mapError(err)
		}
		if err := requireRowsAffected(result); err != nil {
			return err
		}

		itemStatus := persistence.ItemAvailable
		var borrower *string
		if status == persistence.BorrowingApproved {
			itemStatus = persistence.ItemBorrowed
			borrower = &borrowerLabel
		}
		if status != persistence.BorrowingPending {
			result, err = tx.Exec(
				`UPDATE items SET borrow_status = ?, borrower = ?, updated_at = ? WHERE id = ?`,
				itemStatus, borrower, encodeTime(updatedAt), borrowing.ItemID)
			if err != nil {
				return mapError(err)
			}
			if err := requireRowsAffected(result); err != nil {
				return err
			}
		}

		borrowing.Status = status
		borrowing.ReturnDate = returnDate
		borrowing.UpdatedAt = updatedAt.UTC()
		updated = borrowing
		return nil
	})
	if err != nil {
		return persistence.ItemBorrowing{}, err
	}
	return updated, nil
}

func (r *BorrowingRepository) queryBorrowings(ctx context.Context, query string, args ...any) ([]persistence.ItemBorrowing, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var borrowings []persistence.ItemBorrowing
	for rows.Next() {
		borrowing, err := scanBorrowing(rows)
		if err != nil {
			return nil, err
		}
		borrowings = append(borrowings, borrowing)
	}
	return borrowings, mapError(rows.Err())
}

func scanBorrowing(row rowScanner) (persistence.ItemBorrowing, error) {
	var borrowing persistence.ItemBorrowing
	var createdAt, updatedAt string

	err := row.Scan(
		&borrowing.ID,
		&borrowing.UserID,
		&borrowing.ItemID,
		&borrowing.BorrowDate,
		&borrowing.ReturnDate,
		&borrowing.Purpose,
		&borrowing.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.ItemBorrowing{}, mapError(err)
	}

	if borrowing.CreatedAt, err = decodeTime(createdAt); err != nil {
		return persistence.ItemBorrowing{}, err
	}
	if borrowing.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return persistence.ItemBorrowing{}, err
	}
	return borrowing, nil
}
