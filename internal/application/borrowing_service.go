package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/campus-scheduler/internal/persistence"
)

// BorrowingService orchestrates equipment borrowing requests. Each item may
// carry at most one pending or approved request at a time, and every decision
// cascades onto the item's availability state.
type BorrowingService struct {
	borrowings  persistence.BorrowingRepository
	items       persistence.ItemRepository
	users       persistence.UserRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBorrowingService constructs a borrowing service with the provided dependencies.
func NewBorrowingService(
	borrowings persistence.BorrowingRepository,
	items persistence.ItemRepository,
	users persistence.UserRepository,
	idGenerator func() string,
	now func() time.Time,
	logger *slog.Logger,
) *BorrowingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BorrowingService{
		borrowings:  borrowings,
		items:       items,
		users:       users,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *BorrowingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BorrowingService", operation, attrs...)
}

// CreateBorrowing validates input and files a pending borrowing request owned
// by the acting principal. Items with an open request are rejected with
// ErrItemUnavailable.
func (s *BorrowingService) CreateBorrowing(ctx context.Context, params CreateBorrowingParams) (borrowing Borrowing, err error) {
	if s == nil {
		err = fmt.Errorf("BorrowingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateBorrowing",
		"principal_id", params.Principal.UserID,
		"item_id", params.Input.ItemID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create borrowing", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("borrowing_id", borrowing.ID).InfoContext(ctx, "borrowing created")
	}()

	input := params.Input
	input.ItemID = strings.TrimSpace(input.ItemID)
	input.BorrowDate = strings.TrimSpace(input.BorrowDate)
	input.Purpose = strings.TrimSpace(input.Purpose)

	vErr := validateBorrowingInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if _, itemErr := s.items.GetItem(ctx, input.ItemID); itemErr != nil {
		if errors.Is(itemErr, persistence.ErrNotFound) {
			vErr.add("itemId", "item does not exist")
			err = vErr
			return
		}
		err = mapRepoError(itemErr)
		return
	}

	var active bool
	active, err = s.borrowings.HasActiveBorrowing(ctx, input.ItemID)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	if active {
		err = ErrItemUnavailable
		return
	}

	now := s.now()
	record := persistence.ItemBorrowing{
		ID:         s.idGenerator(),
		UserID:     params.Principal.UserID,
		ItemID:     input.ItemID,
		BorrowDate: input.BorrowDate,
		Purpose:    input.Purpose,
		Status:     persistence.BorrowingPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err = s.borrowings.CreateBorrowing(ctx, record); err != nil {
		err = mapRepoError(err)
		return
	}

	borrowing = borrowingFromRecord(record)
	return
}

// GetBorrowing returns one borrowing request. Non-admin principals may only
// read their own.
func (s *BorrowingService) GetBorrowing(ctx context.Context, principal Principal, borrowingID string) (Borrowing, error) {
	if s == nil {
		return Borrowing{}, fmt.Errorf("BorrowingService is nil")
	}
	record, err := s.borrowings.GetBorrowing(ctx, borrowingID)
	if err != nil {
		return Borrowing{}, mapRepoError(err)
	}
	if !principal.IsAdmin && record.UserID != principal.UserID {
		return Borrowing{}, ErrUnauthorized
	}
	return borrowingFromRecord(record), nil
}

// ListBorrowings returns all borrowing requests for administrators and only
// the principal's own otherwise.
func (s *BorrowingService) ListBorrowings(ctx context.Context, principal Principal) (borrowings []Borrowing, err error) {
	if s == nil {
		err = fmt.Errorf("BorrowingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListBorrowings",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list borrowings", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(borrowings)).InfoContext(ctx, "borrowings listed")
	}()

	var raw []persistence.ItemBorrowing
	if principal.IsAdmin {
		raw, err = s.borrowings.ListBorrowings(ctx)
	} else {
		raw, err = s.borrowings.ListBorrowingsForUser(ctx, principal.UserID)
	}
	if err != nil {
		err = mapRepoError(err)
		return
	}

	borrowings = make([]Borrowing, 0, len(raw))
	for _, record := range raw {
		borrowings = append(borrowings, borrowingFromRecord(record))
	}
	return
}

// UpdateBorrowingStatus moves a request through its lifecycle for
// administrators. Pending requests may be approved or rejected; approved
// requests may be returned. Approval stamps the requester's name onto the
// item, rejection and return release it.
func (s *BorrowingService) UpdateBorrowingStatus(ctx context.Context, params UpdateBorrowingStatusParams) (borrowing Borrowing, err error) {
	if s == nil {
		err = fmt.Errorf("BorrowingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateBorrowingStatus",
		"principal_id", params.Principal.UserID,
		"borrowing_id", params.BorrowingID,
		"status", params.Status,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update borrowing status", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("borrowing_id", borrowing.ID).InfoContext(ctx, "borrowing status updated")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	status := strings.ToUpper(strings.TrimSpace(params.Status))

	var existing persistence.ItemBorrowing
	existing, err = s.borrowings.GetBorrowing(ctx, params.BorrowingID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	if !borrowingTransitionAllowed(existing.Status, status) {
		vErr := &ValidationError{}
		vErr.add("status", fmt.Sprintf("cannot move a %s request to %s", existing.Status, status))
		err = vErr
		return
	}

	label := ""
	if status == persistence.BorrowingApproved {
		label, err = s.borrowerLabel(ctx, existing.UserID)
		if err != nil {
			return
		}
	}

	var record persistence.ItemBorrowing
	record, err = s.borrowings.UpdateBorrowingStatus(ctx, params.BorrowingID, status, label, s.now())
	if err != nil {
		err = mapRepoError(err)
		return
	}

	borrowing = borrowingFromRecord(record)
	return
}

// borrowerLabel resolves the display name stamped onto a borrowed item,
// preferring the full name over the username.
func (s *BorrowingService) borrowerLabel(ctx context.Context, userID string) (string, error) {
	if s.users == nil {
		return userID, nil
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return userID, nil
		}
		return "", mapRepoError(err)
	}
	if name := strings.TrimSpace(user.FullName); name != "" {
		return name, nil
	}
	return user.Username, nil
}

func borrowingTransitionAllowed(from, to string) bool {
	switch from {
	case persistence.BorrowingPending:
		return to == persistence.BorrowingApproved || to == persistence.BorrowingRejected
	case persistence.BorrowingApproved:
		return to == persistence.BorrowingReturned
	default:
		return false
	}
}

func validateBorrowingInput(input BorrowingInput) *ValidationError {
	vErr := &ValidationError{}

	if input.ItemID == "" {
		vErr.add("itemId", "item is required")
	}
	if !validCalendarDate(input.BorrowDate) {
		vErr.add("borrowDate", "borrow date must use the YYYY-MM-DD format")
	}
	if input.Purpose == "" {
		vErr.add("purpose", "purpose is required")
	}

	return vErr
}

func validCalendarDate(date string) bool {
	parsed, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return false
	}
	return parsed.Format("2006-01-02") == date
}
