package database

import (
	"context"
	"fmt"

	"turni/internal/models"
)

// GetLeaderboard ranks users by completed bookings across both duties.
// Ties on the combined total break on user_name ascending.
func (db *DB) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = models.LeaderboardSize
	}

	query := `
        SELECT user_name,
               SUM(CASE WHEN duty = ? THEN 1 ELSE 0 END) AS trash_count,
               SUM(CASE WHEN duty = ? THEN 1 ELSE 0 END) AS coffee_count,
               COUNT(*) AS total
        FROM bookings
        GROUP BY user_name
        ORDER BY total DESC, user_name ASC
        LIMIT ?`

	rows, err := db.QueryContext(ctx, query, models.DutyTrash, models.DutyCoffee, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserName, &e.TrashCount, &e.CoffeeCount, &e.Total); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
