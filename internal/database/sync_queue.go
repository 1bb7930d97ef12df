package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"turni/internal/models"
)

// CreateSyncTask persists a sheets sync task so it survives restarts.
func (db *DB) CreateSyncTask(ctx context.Context, task *models.SyncTask) error {
	now := time.Now()
	query := `INSERT INTO sync_queue (task_type, booking_id, payload, status, retry_count, created_at, updated_at)
              VALUES (?, ?, ?, ?, 0, ?, ?)`
	result, err := db.ExecContext(ctx, query, task.TaskType, task.BookingID, task.Payload, task.Status, now, now)
	if err != nil {
		return fmt.Errorf("failed to create sync task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

// GetPendingSyncTasks returns pending tasks plus retry tasks whose backoff
// delay has elapsed.
func (db *DB) GetPendingSyncTasks(ctx context.Context, limit int) ([]models.SyncTask, error) {
	query := `SELECT id, task_type, booking_id, payload, status, retry_count, COALESCE(last_error, ''), next_retry_at, created_at, updated_at
              FROM sync_queue
              WHERE status = 'pending' OR (status = 'retry' AND next_retry_at <= ?)
              ORDER BY created_at ASC
              LIMIT ?`
	rows, err := db.QueryContext(ctx, query, time.Now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending sync tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.SyncTask
	for rows.Next() {
		var t models.SyncTask
		var nextRetry sql.NullTime
		if err := rows.Scan(&t.ID, &t.TaskType, &t.BookingID, &t.Payload, &t.Status,
			&t.RetryCount, &t.LastError, &nextRetry, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sync task: %w", err)
		}
		if nextRetry.Valid {
			t.NextRetryAt = &nextRetry.Time
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateSyncTaskStatus transitions a task; retry transitions bump retry_count
// and record the next attempt time.
func (db *DB) UpdateSyncTaskStatus(ctx context.Context, id int64, status, lastError string, nextRetryAt *time.Time) error {
	var query string
	var args []interface{}
	if status == "retry" {
		query = `UPDATE sync_queue SET status = ?, retry_count = retry_count + 1, last_error = ?, next_retry_at = ?, updated_at = ? WHERE id = ?`
		args = []interface{}{status, lastError, nextRetryAt, time.Now(), id}
	} else {
		query = `UPDATE sync_queue SET status = ?, last_error = ?, updated_at = ? WHERE id = ?`
		args = []interface{}{status, lastError, time.Now(), id}
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update sync task status: %w", err)
	}
	return nil
}
