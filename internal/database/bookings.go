package database

import (
	"context"
	"fmt"
	"time"

	"turni/internal/models"
)

const dateLayout = "2006-01-02"

func validDuty(duty string) bool {
	return duty == models.DutyTrash || duty == models.DutyCoffee
}

// AddBooking reserves a date for a user. It returns false without mutating
// anything when the user already holds a booking for that duty and date; the
// unique index makes the insert race-free.
func (db *DB) AddBooking(ctx context.Context, duty string, date time.Time, userID int64, userName string) (bool, error) {
	if !validDuty(duty) {
		return false, ErrInvalidDuty
	}

	query := `INSERT OR IGNORE INTO bookings (duty, booking_date, user_id, user_name, created_at)
              VALUES (?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query, duty, date.Format(dateLayout), userID, userName, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to add booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// ListBookingsForDate returns the display names booked for a duty on a date,
// alphabetically ordered regardless of insertion order.
func (db *DB) ListBookingsForDate(ctx context.Context, duty string, date time.Time) ([]string, error) {
	if !validDuty(duty) {
		return nil, ErrInvalidDuty
	}

	query := `SELECT user_name FROM bookings WHERE duty = ? AND booking_date = ? ORDER BY user_name ASC`
	rows, err := db.QueryContext(ctx, query, duty, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for date: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ListBookingsInRange groups booked names by ISO date for the rendering of
// weekly views. Dates without bookings are absent from the map.
func (db *DB) ListBookingsInRange(ctx context.Context, duty string, from, to time.Time) (map[string][]string, error) {
	if !validDuty(duty) {
		return nil, ErrInvalidDuty
	}

	query := `SELECT booking_date, user_name FROM bookings
              WHERE duty = ? AND booking_date >= ? AND booking_date <= ?
              ORDER BY booking_date ASC, user_name ASC`
	rows, err := db.QueryContext(ctx, query, duty, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings in range: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]string)
	for rows.Next() {
		var dateStr, name string
		if err := rows.Scan(&dateStr, &name); err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		grouped[dateStr] = append(grouped[dateStr], name)
	}
	return grouped, rows.Err()
}

// ListUserBookings returns the dates a user is booked for one duty, most
// recent first. Used to build the cancellation picker.
func (db *DB) ListUserBookings(ctx context.Context, duty string, userID int64) ([]time.Time, error) {
	if !validDuty(duty) {
		return nil, ErrInvalidDuty
	}

	query := `SELECT booking_date FROM bookings WHERE duty = ? AND user_id = ? ORDER BY booking_date DESC`
	rows, err := db.QueryContext(ctx, query, duty, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var dateStr string
		if err := rows.Scan(&dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan booking date: %w", err)
		}
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse booking date %s: %w", dateStr, err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// GetBooking loads one booking by (duty, date, user). Returns sql.ErrNoRows
// wrapped when absent.
func (db *DB) GetBooking(ctx context.Context, duty string, date time.Time, userID int64) (*models.Booking, error) {
	if !validDuty(duty) {
		return nil, ErrInvalidDuty
	}

	var b models.Booking
	var dateStr string
	query := `SELECT id, duty, booking_date, user_id, user_name, created_at
              FROM bookings WHERE duty = ? AND booking_date = ? AND user_id = ?`
	err := db.QueryRowContext(ctx, query, duty, date.Format(dateLayout), userID).
		Scan(&b.ID, &b.Duty, &dateStr, &b.UserID, &b.UserName, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	b.Date, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse booking date %s: %w", dateStr, err)
	}
	return &b, nil
}

// DeleteBooking removes the row matching duty, date and user. The user_id
// filter is the ownership check: nobody can cancel someone else's booking.
// Deleting an absent booking is a no-op.
func (db *DB) DeleteBooking(ctx context.Context, duty string, date time.Time, userID int64) error {
	if !validDuty(duty) {
		return ErrInvalidDuty
	}

	query := `DELETE FROM bookings WHERE duty = ? AND booking_date = ? AND user_id = ?`
	if _, err := db.ExecContext(ctx, query, duty, date.Format(dateLayout), userID); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

// ListAllBookings returns every booking for one duty, date-ordered. Used by
// the XLSX export and the Sheets mirror.
func (db *DB) ListAllBookings(ctx context.Context, duty string) ([]*models.Booking, error) {
	if !validDuty(duty) {
		return nil, ErrInvalidDuty
	}

	query := `SELECT id, duty, booking_date, user_id, user_name, created_at
              FROM bookings WHERE duty = ? ORDER BY booking_date ASC, user_name ASC`
	rows, err := db.QueryContext(ctx, query, duty)
	if err != nil {
		return nil, fmt.Errorf("failed to list all bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		var dateStr string
		if err := rows.Scan(&b.ID, &b.Duty, &dateStr, &b.UserID, &b.UserName, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		b.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse booking date %s: %w", dateStr, err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
