package models

import "time"

// Booking is a (duty, date, user) reservation. Date carries no time component;
// it is stored as YYYY-MM-DD.
type Booking struct {
	ID        int64     `json:"id"`
	Duty      string    `json:"duty"` // trash, coffee
	Date      time.Time `json:"date"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ScheduleEntry is one weekday of the recurring trash calendar.
type ScheduleEntry struct {
	Weekday    int    `json:"weekday"` // 0 = Monday .. 4 = Friday
	TrashTypes string `json:"trash_types"`
}

// LeaderboardEntry is one ranked row of the chore leaderboard.
type LeaderboardEntry struct {
	UserName    string `json:"user_name"`
	TrashCount  int    `json:"trash_count"`
	CoffeeCount int    `json:"coffee_count"`
	Total       int    `json:"total"`
}
