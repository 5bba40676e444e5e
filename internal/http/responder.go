package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/campus-scheduler/internal/application"
)

var (
	errBadRequestBody      = errors.New("Format permintaan tidak valid.")
	errInvalidRoomID       = errors.New("ID ruangan tidak valid.")
	errInvalidCourseID     = errors.New("ID mata kuliah tidak valid.")
	errInvalidLecturerID   = errors.New("ID dosen tidak valid.")
	errInvalidItemID       = errors.New("ID barang tidak valid.")
	errInvalidScheduleID   = errors.New("ID jadwal tidak valid.")
	errInvalidBookingID    = errors.New("ID pemesanan tidak valid.")
	errInvalidBorrowingID  = errors.New("ID peminjaman tidak valid.")
	errInvalidUserID       = errors.New("ID pengguna tidak valid.")
	errMissingSessionToken = errors.New("Token autentikasi harus disertakan.")
	errMissingDateParam    = errors.New("Parameter date wajib diisi dengan format YYYY-MM-DD.")
	errInvalidViewParam    = errors.New("Parameter view harus bernilai day atau week.")
	errInvalidTimeParam    = errors.New("Parameter time harus menggunakan format HH:MM.")
	errInvalidDuration     = errors.New("Parameter duration harus berupa menit positif.")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrUnauthorized):
		r.writeJSON(ctx, w, http.StatusForbidden, errorResponse{
			ErrorCode: "AUTH_FORBIDDEN",
			Message:   "Anda tidak memiliki izin untuk melakukan operasi ini.",
		})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "Sumber daya yang diminta tidak ditemukan."})
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "RESOURCE_EXISTS",
			Message:   "Data dengan atribut unik yang sama sudah terdaftar.",
		})
	case errors.Is(err, application.ErrBookingConflict):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "BOOKING_CONFLICT",
			Message:   "Ruangan sudah terpakai pada rentang waktu tersebut.",
		})
	case errors.Is(err, application.ErrItemUnavailable):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "ITEM_UNAVAILABLE",
			Message:   "Barang sedang dalam proses peminjaman lain.",
		})
	case errors.Is(err, application.ErrSessionExpired):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_SESSION_EXPIRED",
			Message:   "Sesi telah berakhir. Silakan masuk kembali.",
		})
	case errors.Is(err, application.ErrSessionRevoked):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_SESSION_REVOKED",
			Message:   "Sesi telah dicabut. Silakan masuk kembali.",
		})
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_INVALID_CREDENTIALS",
			Message:   "Nama pengguna atau kata sandi salah.",
		})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			details := localizeValidationErrors(vErr)
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "Data yang dikirim tidak valid.",
				Errors:  details,
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "Terjadi kesalahan pada server."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Permintaan tidak dapat diproses."
	case http.StatusUnauthorized:
		return "Autentikasi diperlukan."
	case http.StatusForbidden:
		return "Anda tidak memiliki izin untuk melakukan operasi ini."
	case http.StatusNotFound:
		return "Sumber daya yang diminta tidak ditemukan."
	case http.StatusConflict:
		return "Permintaan bertentangan dengan kondisi data saat ini."
	case http.StatusUnprocessableEntity:
		return "Data yang dikirim tidak valid."
	default:
		return "Terjadi kesalahan pada server."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "username is required":
		return "Nama pengguna wajib diisi."
	case "username must not contain spaces":
		return "Nama pengguna tidak boleh mengandung spasi."
	case "full name is required":
		return "Nama lengkap wajib diisi."
	case "password must be at least 8 characters":
		return "Kata sandi minimal 8 karakter."
	case "cannot delete your own account":
		return "Akun sendiri tidak dapat dihapus."
	case "name is required":
		return "Nama wajib diisi."
	case "capacity must be positive":
		return "Kapasitas harus berupa bilangan positif."
	case "code is required":
		return "Kode mata kuliah wajib diisi."
	case "credits must be positive":
		return "Jumlah SKS harus berupa bilangan positif."
	case "course is required":
		return "Mata kuliah wajib diisi."
	case "course does not exist":
		return "Mata kuliah yang dipilih tidak ditemukan."
	case "lecturer is required":
		return "Dosen wajib diisi."
	case "lecturer does not exist":
		return "Dosen yang dipilih tidak ditemukan."
	case "room is required":
		return "Ruangan wajib diisi."
	case "room does not exist":
		return "Ruangan yang dipilih tidak ditemukan."
	case "item is required":
		return "Barang wajib diisi."
	case "item does not exist":
		return "Barang yang dipilih tidak ditemukan."
	case "purpose is required":
		return "Keperluan wajib diisi."
	case "day must be a teaching weekday":
		return "Hari harus hari perkuliahan antara Senin dan Jumat."
	case "date must be a teaching weekday in the YYYY-MM-DD format":
		return "Tanggal harus hari perkuliahan dengan format YYYY-MM-DD."
	case "borrow date must use the YYYY-MM-DD format":
		return "Tanggal pinjam harus menggunakan format YYYY-MM-DD."
	case "start time must use the HH:MM format":
		return "Waktu mulai harus menggunakan format HH:MM."
	case "end time must use the HH:MM format":
		return "Waktu selesai harus menggunakan format HH:MM."
	case "end time must be after start time":
		return "Waktu selesai harus setelah waktu mulai."
	case "weeks must not repeat":
		return "Minggu perkuliahan tidak boleh berulang."
	case "status must be PENDING, APPROVED, or REJECTED":
		return "Status harus bernilai PENDING, APPROVED, atau REJECTED."
	default:
		if strings.HasPrefix(message, "weeks must be between 1 and ") {
			return "Minggu perkuliahan harus antara 1 dan " + strings.TrimSpace(strings.TrimPrefix(message, "weeks must be between 1 and ")) + "."
		}
		if strings.HasPrefix(message, "cannot move a ") {
			return "Status permohonan tidak dapat diubah dari kondisi saat ini."
		}
		return message
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
