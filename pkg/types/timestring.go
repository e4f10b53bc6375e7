package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString is a time of day stored canonically as "HH:MM:SS".
// Input in "HH:MM" form is expanded with ":00" seconds on parse; every
// comparison and every value handed to the database is in the canonical form.
type TimeString string

var (
	// ErrInvalidTimeString is returned when the value is not HH:MM or HH:MM:SS
	ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM or HH:MM:SS")

	// ErrTimeOutOfRange is returned when a time of day leaves the 24h range
	ErrTimeOutOfRange = errors.New("types: time of day out of range")
)

const (
	canonicalLayout = "15:04:05"
	shortLayout     = "15:04"
)

// NewTimeString builds a TimeString from the clock component of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(canonicalLayout))
}

// ParseTimeString parses "HH:MM" or "HH:MM:SS" into the canonical form.
func ParseTimeString(s string) (TimeString, error) {
	if t, err := time.Parse(canonicalLayout, s); err == nil {
		return TimeString(t.Format(canonicalLayout)), nil
	}
	if t, err := time.Parse(shortLayout, s); err == nil {
		return TimeString(t.Format(canonicalLayout)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

// FromMinutes builds a TimeString from minutes since midnight.
func FromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d:00", m/60, m%60)), nil
}

// String returns the canonical "HH:MM:SS" representation.
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero returns true for the empty value.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate checks that the value parses in the canonical or short form.
func (ts TimeString) Validate() error {
	_, err := ParseTimeString(string(ts))
	return err
}

// Minutes converts the time of day to whole minutes since midnight.
// Seconds are truncated; the canonical form always carries them.
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(canonicalLayout, string(ts))
	if err != nil {
		st, serr := time.Parse(shortLayout, string(ts))
		if serr != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
		}
		t = st
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes returns the time of day shifted forward by m minutes.
// The result must stay within the same day.
func (ts TimeString) AddMinutes(m int) (TimeString, error) {
	cur, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(cur + m)
}

// IsBefore reports whether ts is strictly earlier than other.
func (ts TimeString) IsBefore(other TimeString) bool {
	a, errA := ts.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether ts is strictly later than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	a, errA := ts.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// Value implements driver.Valuer so the canonical form reaches the database.
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	normalized, err := ParseTimeString(string(ts))
	if err != nil {
		return nil, err
	}
	return string(normalized), nil
}

// Scan implements sql.Scanner for TIME columns returned as string, []byte or time.Time.
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case string:
		parsed, err := ParseTimeString(v)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case []byte:
		parsed, err := ParseTimeString(string(v))
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}
