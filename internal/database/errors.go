package database

import "errors"

var (
	// ErrInvalidWeekday is returned for weekday indexes outside 0..4.
	ErrInvalidWeekday = errors.New("weekday out of range")

	// ErrInvalidDuty is returned for duty kinds other than trash or coffee.
	ErrInvalidDuty = errors.New("unknown duty kind")

	// ErrPastDate is returned when a booking targets a date before today.
	ErrPastDate = errors.New("booking date is in the past")

	// ErrDateTooFar is returned when a booking targets a date beyond the
	// bookable window (end of next week).
	ErrDateTooFar = errors.New("booking date is beyond the bookable window")
)
