package booking

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format of pickup and return dates.
const DateLayout = "2006-01-02"

// Errors
var (
	ErrBadDate   = errors.New("date must be a valid YYYY-MM-DD")
	ErrDateOrder = errors.New("return date precedes pickup date")
)

// ParseDate validates and parses a YYYY-MM-DD date: exactly 10 characters,
// hyphens at positions 4 and 7, and a valid calendar date.
func ParseDate(s string) (time.Time, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return t, nil
}

// RentalDays returns the whole days between pickup and return, ignoring
// time-of-day. Return before pickup is ErrDateOrder; a same-day rental is
// zero days.
func RentalDays(pickup, ret time.Time) (int, error) {
	if ret.Before(pickup) {
		return 0, ErrDateOrder
	}
	return int(ret.Sub(pickup) / (24 * time.Hour)), nil
}
