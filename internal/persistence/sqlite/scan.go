package sqlite

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamps are stored as RFC3339 text so rows stay readable in the sqlite
// shell and sort correctly without driver-specific time handling.

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func decodeTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t, nil
}

func encodeNullableTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := encodeTime(*t)
	return &s
}

func decodeNullableTime(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := decodeTime(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Week masks are stored comma-joined ("1,2,3"); an empty string means the
// schedule is active every week of the term.

func encodeWeeks(weeks []int) string {
	if len(weeks) == 0 {
		return ""
	}
	parts := make([]string, len(weeks))
	for i, w := range weeks {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, ",")
}

func decodeWeeks(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	weeks := make([]int, 0, len(parts))
	for _, part := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("parse week list %q: %w", value, err)
		}
		weeks = append(weeks, w)
	}
	return weeks, nil
}
