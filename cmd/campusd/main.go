package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/campus-scheduler/internal/application"
	"github.com/example/campus-scheduler/internal/config"
	httptransport "github.com/example/campus-scheduler/internal/http"
	"github.com/example/campus-scheduler/internal/logging"
	"github.com/example/campus-scheduler/internal/persistence"
	"github.com/example/campus-scheduler/internal/persistence/sqlite"
	"github.com/example/campus-scheduler/internal/timetable"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger := logging.NewLogger(os.Stdout, "info")
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(os.Stdout, cfg.LogLevel)

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	tokenGenerator := func() string { return randomHex(32) }
	now := time.Now

	userRepo := sqlite.NewUserRepository(pool)
	roomRepo := sqlite.NewRoomRepository(pool)
	courseRepo := sqlite.NewCourseRepository(pool)
	lecturerRepo := sqlite.NewLecturerRepository(pool)
	itemRepo := sqlite.NewItemRepository(pool)
	scheduleRepo := sqlite.NewScheduleRepository(pool)
	bookingRepo := sqlite.NewBookingRepository(pool)
	borrowingRepo := sqlite.NewBorrowingRepository(pool)
	sessionRepo := sqlite.NewSessionRepository(pool)

	if err := seedAdmin(context.Background(), userRepo, cfg, idGenerator, now); err != nil {
		logger.Error("failed to seed administrator account", "error", err)
		os.Exit(1)
	}

	term := timetable.TermConfig{StartDate: cfg.SemesterStart}
	timetableService := application.NewTimetableService(scheduleRepo, bookingRepo, roomRepo, term, now, logger)
	invalidate := timetableService.Invalidate

	roomService := application.NewRoomService(roomRepo, idGenerator, now, invalidate, logger)
	catalogService := application.NewCatalogService(courseRepo, lecturerRepo, itemRepo, idGenerator, now, invalidate, logger)
	scheduleService := application.NewScheduleService(scheduleRepo, courseRepo, lecturerRepo, roomRepo, idGenerator, now, invalidate, logger)
	bookingService := application.NewBookingService(bookingRepo, roomRepo, idGenerator, now, invalidate, logger)
	borrowingService := application.NewBorrowingService(borrowingRepo, itemRepo, userRepo, idGenerator, now, logger)
	hasher := func(password string) (string, error) {
		return application.CreatePasswordHash(password, application.DefaultArgon2idParams)
	}
	userService := application.NewUserService(userRepo, hasher, idGenerator, now, logger)
	authService := application.NewAuthService(userRepo, sessionRepo, nil, tokenGenerator, now, cfg.SessionTTL, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:       httptransport.NewAuthHandler(authService, logger),
		Timetable:  httptransport.NewTimetableHandler(timetableService, logger),
		Rooms:      httptransport.NewRoomHandler(roomService, logger),
		Courses:    httptransport.NewCourseHandler(catalogService, logger),
		Lecturers:  httptransport.NewLecturerHandler(catalogService, logger),
		Items:      httptransport.NewItemHandler(catalogService, logger),
		Schedules:  httptransport.NewScheduleHandler(scheduleService, logger),
		Bookings:   httptransport.NewBookingHandler(bookingService, logger),
		Borrowings: httptransport.NewBorrowingHandler(borrowingService, logger),
		Users:      httptransport.NewUserHandler(userService, logger),
	})

	protected := httptransport.RequireSession(authService, logger)(router)
	handler := httptransport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sessions" && r.Method == http.MethodPost {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("campus scheduler API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// seedAdmin creates the initial administrator account when the user table is
// empty so a fresh deployment can be logged into.
func seedAdmin(ctx context.Context, users persistence.UserRepository, cfg config.Config, idGenerator func() string, now func() time.Time) error {
	count, err := users.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := application.CreatePasswordHash(cfg.AdminPassword, application.DefaultArgon2idParams)
	if err != nil {
		return err
	}

	created := now().UTC()
	return users.CreateUser(ctx, persistence.User{
		ID:           idGenerator(),
		Username:     cfg.AdminUsername,
		FullName:     "Administrator",
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    created,
		UpdatedAt:    created,
	})
}

func randomHex(bytes int) string {
	if bytes <= 0 {
		bytes = 16
	}
	buf := make([]byte, bytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
