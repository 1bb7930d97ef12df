package models

import "time"

// SyncTask is a persisted unit of Google Sheets work. Rows survive restarts;
// the worker polls pending ones when the redis queue is empty.
type SyncTask struct {
	ID          int64      `json:"id"`
	TaskType    string     `json:"task_type"` // append, delete, refresh
	BookingID   int64      `json:"booking_id"`
	Payload     string     `json:"payload"`
	Status      string     `json:"status"` // pending, completed, retry, failed
	RetryCount  int        `json:"retry_count"`
	LastError   string     `json:"last_error,omitempty"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
