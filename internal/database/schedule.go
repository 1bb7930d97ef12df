package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"turni/internal/models"
)

// GetTrashTypes returns the configured trash types for a weekday (0 = Monday).
// Unconfigured weekdays yield the NoCollection sentinel, never an error.
func (db *DB) GetTrashTypes(ctx context.Context, weekday int) (string, error) {
	if weekday < 0 || weekday > 4 {
		return "", ErrInvalidWeekday
	}

	var types string
	query := `SELECT trash_types FROM trash_schedule WHERE weekday = ?`
	err := db.QueryRowContext(ctx, query, weekday).Scan(&types)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NoCollection, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get trash types: %w", err)
	}
	return types, nil
}

// SetTrashTypes overwrites the schedule entry for a weekday. Free text is
// stored as submitted.
func (db *DB) SetTrashTypes(ctx context.Context, weekday int, trashTypes string) error {
	if weekday < 0 || weekday > 4 {
		return ErrInvalidWeekday
	}

	query := `INSERT INTO trash_schedule (weekday, trash_types) VALUES (?, ?)
              ON CONFLICT(weekday) DO UPDATE SET trash_types = excluded.trash_types`
	if _, err := db.ExecContext(ctx, query, weekday, trashTypes); err != nil {
		return fmt.Errorf("failed to set trash types: %w", err)
	}
	return nil
}

// GetWeeklySchedule returns the full weekday -> trash types snapshot.
func (db *DB) GetWeeklySchedule(ctx context.Context) (map[int]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT weekday, trash_types FROM trash_schedule ORDER BY weekday`)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly schedule: %w", err)
	}
	defer rows.Close()

	schedule := make(map[int]string, 5)
	for rows.Next() {
		var weekday int
		var types string
		if err := rows.Scan(&weekday, &types); err != nil {
			return nil, fmt.Errorf("failed to scan schedule row: %w", err)
		}
		schedule[weekday] = types
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return schedule, nil
}

// SeedSchedule inserts the default schedule on first startup. Existing rows
// win; seeding an initialized database is a no-op.
func (db *DB) SeedSchedule(ctx context.Context, defaults map[int]string) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trash_schedule`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count schedule rows: %w", err)
	}
	if count > 0 {
		return nil
	}

	for weekday := 0; weekday < 5; weekday++ {
		types, ok := defaults[weekday]
		if !ok {
			types = models.NoCollection
		}
		if err := db.SetTrashTypes(ctx, weekday, types); err != nil {
			return err
		}
	}

	db.logger.Info().Msg("trash schedule seeded with defaults")
	return nil
}
