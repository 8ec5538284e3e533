package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// It is stored as a plain string so it maps directly onto TIME columns
// and JSON payloads without timezone conversions.
type TimeString string

var timeStringRe = regexp.MustCompile(`^(([01][0-9]|2[0-3]):([0-5][0-9])|24:00)$`)

// ErrInvalidTimeString is returned when a value does not match "HH:MM"
var ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

// NewTimeString creates a TimeString from the wall-clock part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates an "HH:MM" string
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > 24*60 {
		return "", fmt.Errorf("%w: %d minutes out of range", ErrInvalidTimeString, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate checks the "HH:MM" format
func (t TimeString) Validate() error {
	if !timeStringRe.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero reports whether the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the raw "HH:MM" value
func (t TimeString) String() string {
	return string(t)
}

// Minutes returns the value as minutes since midnight.
// Invalid values yield 0; callers are expected to Validate first.
func (t TimeString) Minutes() int {
	var h, m int
	if _, err := fmt.Sscanf(string(t), "%d:%d", &h, &m); err != nil {
		return 0
	}
	return h*60 + m
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// AddMinutes returns t shifted forward by the given number of minutes.
// The result may be "24:00" (end of day) but never past it.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(t.Minutes() + minutes)
}

// Value implements driver.Valuer for SQL writes
func (t TimeString) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner for SQL reads.
// Postgres TIME columns arrive as "HH:MM:SS"; the seconds part is dropped.
func (t *TimeString) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}

	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}

	if len(s) > 5 {
		s = s[:5]
	}

	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
