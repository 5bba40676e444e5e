package sqlite

import (
	"context"

	"github.com/example/campus-scheduler/internal/persistence"
)

// ItemRepository implements persistence.ItemRepository using SQLite.
type ItemRepository struct {
	pool *ConnectionPool
}

// NewItemRepository creates a new SQLite item repository.
func NewItemRepository(pool *ConnectionPool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

const itemColumns = "id, name, brand, acquisition_year, serial_number, condition, location, photo, borrow_status, borrower, created_at, updated_at"

// CreateItem inserts a new equipment item.
func (r *ItemRepository) CreateItem(ctx context.Context, item persistence.Item) error {
	if item.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if item.BorrowStatus == "" {
		item.BorrowStatus = persistence.ItemAvailable
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID,
		item.Name,
		item.Brand,
		item.AcquisitionYear,
		item.SerialNumber,
		item.Condition,
		item.Location,
		item.Photo,
		item.BorrowStatus,
		item.Borrower,
		encodeTime(item.CreatedAt),
		encodeTime(item.UpdatedAt),
	)
	return mapError(err)
}

// UpdateItem replaces the catalog fields of an item. The borrow status and
// borrower label are managed by the borrowing cascade and left untouched.
func (r *ItemRepository) UpdateItem(ctx context.Context, item persistence.Item) error {
	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE items
		SET name = ?, brand = ?, acquisition_year = ?, serial_number = ?,
		    condition = ?, location = ?, photo = ?, updated_at = ?
		WHERE id = ?
	`,
		item.Name,
		item.Brand,
		item.AcquisitionYear,
		item.SerialNumber,
		item.Condition,
		item.Location,
		item.Photo,
		encodeTime(item.UpdatedAt),
		item.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowsAffected(result)
}

// GetItem retrieves an item by ID.
func (r *ItemRepository) GetItem(ctx context.Context, id string) (persistence.Item, error) {
	row := r.pool.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	return scanItem(row)
}

// ListItems returns all items ordered by name.
func (r *ItemRepository) ListItems(ctx context.Context) ([]persistence.Item, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var items []persistence.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, mapError(rows.Err())
}

// DeleteItem removes an item by ID.
func (r *ItemRepository) DeleteItem(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowsAffected(result)
}

func scanItem(row rowScanner) (persistence.Item, error) {
	var item persistence.Item
	var createdAt, updatedAt string

	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Brand,
		&item.AcquisitionYear,
		&item.SerialNumber,
		&item.Condition,
		&item.Location,
		&item.Photo,
		&item.BorrowStatus,
		&item.Borrower,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Item{}, mapError(err)
	}

	if item.CreatedAt, err = decodeTime(createdAt); err != nil {
		return persistence.Item{}, err
	}
	if item.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return persistence.Item{}, err
	}
	return item, nil
}
