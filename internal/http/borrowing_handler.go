package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/campus-scheduler/internal/application"
)

type borrowingService interface {
	CreateBorrowing(ctx context.Context, params application.CreateBorrowingParams) (application.Borrowing, error)
	GetBorrowing(ctx context.Context, principal application.Principal, borrowingID string) (application.Borrowing, error)
	ListBorrowings(ctx context.Context, principal application.Principal) ([]application.Borrowing, error)
	UpdateBorrowingStatus(ctx context.Context, params application.UpdateBorrowingStatusParams) (application.Borrowing, error)
}

type BorrowingHandler struct {
	service   borrowingService
	responder responder
	logger    *slog.Logger
}

func NewBorrowingHandler(service borrowingService, logger *slog.Logger) *BorrowingHandler {
	base := defaultLogger(logger)
	return &BorrowingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BorrowingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BorrowingHandler", operation, attrs...)
}

func (h *BorrowingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req borrowingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode borrowing request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.UserID)

	borrowing, err := h.service.CreateBorrowing(r.Context(), application.CreateBorrowingParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "borrowing creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("borrowing_id", borrowing.ID).InfoContext(r.Context(), "borrowing created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, borrowingResponse{Borrowing: toBorrowingDTO(borrowing)})
}

func (h *BorrowingHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	borrowingID, ok := BorrowingIDFromContext(r.Context())
	if !ok || strings.TrimSpace(borrowingID) == "" {
		h.log(r.Context(), "Get", "error_kind", "bad_request").ErrorContext(r.Context(), "missing borrowing id for get")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBorrowingID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "principal_id", principal.UserID, "borrowing_id", borrowingID)
	borrowing, err := h.service.GetBorrowing(r.Context(), principal, borrowingID)
	if err != nil {
		logger.ErrorContext(r.Context(), "borrowing get failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "borrowing fetched")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, borrowingResponse{Borrowing: toBorrowingDTO(borrowing)})
}

func (h *BorrowingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "List", "principal_id", principal.UserID)
	borrowings, err := h.service.ListBorrowings(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "borrowing list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(borrowings)).InfoContext(r.Context(), "borrowings listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBorrowingsResponse{Borrowings: toBorrowingDTOs(borrowings)})
}

func (h *BorrowingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	borrowingID, ok := BorrowingIDFromContext(r.Context())
	if !ok || strings.TrimSpace(borrowingID) == "" {
		h.log(r.Context(), "UpdateStatus", "error_kind", "bad_request").ErrorContext(r.Context(), "missing borrowing id for status update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBorrowingID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateStatus", "principal_id", principal.UserID, "borrowing_id", borrowingID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode status update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateStatus", "principal_id", principal.UserID, "borrowing_id", borrowingID, "status", req.Status)

	borrowing, err := h.service.UpdateBorrowingStatus(r.Context(), application.UpdateBorrowingStatusParams{
		Principal:   principal,
		BorrowingID: borrowingID,
		Status:      strings.TrimSpace(req.Status),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "borrowing status update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "borrowing status updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, borrowingResponse{Borrowing: toBorrowingDTO(borrowing)})
}

type borrowingRequest struct {
	ItemID     string `json:"item_id"`
	BorrowDate string `json:"borrow_date"`
	Purpose    string `json:"purpose"`
}

func (r borrowingRequest) toInput() application.BorrowingInput {
	return application.BorrowingInput{
		ItemID:     strings.TrimSpace(r.ItemID),
		BorrowDate: strings.TrimSpace(r.BorrowDate),
		Purpose:    strings.TrimSpace(r.Purpose),
	}
}

type borrowingResponse struct {
	Borrowing borrowingDTO `json:"borrowing"`
}

type listBorrowingsResponse struct {
	Borrowings []borrowingDTO `json:"borrowings"`
}

type borrowingDTO struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	ItemID     string  `json:"item_id"`
	BorrowDate string  `json:"borrow_date"`
	ReturnDate *string `json:"return_date,omitempty"`
	Purpose    string  `json:"purpose"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func toBorrowingDTO(borrowing application.Borrowing) borrowingDTO {
	return borrowingDTO{
		ID:         borrowing.ID,
		UserID:     borrowing.UserID,
		ItemID:     borrowing.ItemID,
		BorrowDate: borrowing.BorrowDate,
		ReturnDate: borrowing.ReturnDate,
		Purpose:    borrowing.Purpose,
		Status:     borrowing.Status,
		CreatedAt:  borrowing.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  borrowing.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toBorrowingDTOs(borrowings []application.Borrowing) []borrowingDTO {
	if len(borrowings) == 0 {
		return nil
	}
	out := make([]borrowingDTO, 0, len(borrowings))
	for _, borrowing := range borrowings {
		out = append(out, toBorrowingDTO(borrowing))
	}
	return out
}
