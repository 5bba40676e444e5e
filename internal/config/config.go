// Package config parses environment driven settings for the campus scheduler.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the campus scheduler service.
type Config struct {
	HTTPPort      int
	SQLiteDSN     string
	SessionTTL    time.Duration
	SemesterStart string
	LogLevel      string
	AdminUsername string
	AdminPassword string
}

// Load parses configuration values from the current process environment. A
// .env file in the working directory is read first when present.
//
// The loader applies sensible defaults for optional fields while validating
// required values and reporting localized error messages for missing entries.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:      8080,
		SQLiteDSN:     "file:campus.db?_foreign_keys=on",
		SessionTTL:    24 * time.Hour,
		LogLevel:      "info",
		AdminUsername: "admin",
		AdminPassword: "ganti-kata-sandi",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("CAMPUS_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "CAMPUS_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("CAMPUS_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("CAMPUS_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "CAMPUS_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if start := strings.TrimSpace(os.Getenv("CAMPUS_SEMESTER_START")); start == "" {
		missing = append(missing, "CAMPUS_SEMESTER_START")
	} else if _, err := time.Parse("2006-01-02", start); err != nil {
		invalid = append(invalid, "CAMPUS_SEMESTER_START")
	} else {
		cfg.SemesterStart = start
	}

	if level := strings.TrimSpace(os.Getenv("CAMPUS_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if username := strings.TrimSpace(os.Getenv("CAMPUS_ADMIN_USERNAME")); username != "" {
		cfg.AdminUsername = username
	}

	if password := strings.TrimSpace(os.Getenv("CAMPUS_ADMIN_PASSWORD")); password != "" {
		if len(password) < 8 {
			invalid = append(invalid, "CAMPUS_ADMIN_PASSWORD")
		} else {
			cfg.AdminPassword = password
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("variabel lingkungan wajib belum diatur: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("nilai variabel lingkungan tidak valid: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
