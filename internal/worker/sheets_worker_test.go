package worker

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"turni/internal/database"
	"turni/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheets struct {
	appended  []*models.Booking
	deleted   []int64
	replaced  [][]*models.Booking
	appendErr error
	deleteErr error
}

func (f *fakeSheets) AppendBooking(ctx context.Context, booking *models.Booking) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, booking)
	return nil
}

func (f *fakeSheets) DeleteBookingRow(ctx context.Context, bookingID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, bookingID)
	return nil
}

func (f *fakeSheets) ReplaceBookingsSheet(ctx context.Context, bookings []*models.Booking) error {
	f.replaced = append(f.replaced, bookings)
	return nil
}

func newTestWorker(t *testing.T, sheets *fakeSheets, redisClient *redis.Client, retry RetryPolicy) (*SheetsWorker, *database.DB) {
	t.Helper()
	logger := zerolog.New(os.Stdout)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSheetsWorker(db, sheets, redisClient, retry, &logger), db
}

func createBooking(t *testing.T, db *database.DB) *models.Booking {
	t.Helper()
	ctx := context.Background()
	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	created, err := db.AddBooking(ctx, models.DutyTrash, date, 7, "Anna")
	require.NoError(t, err)
	require.True(t, created)

	booking, err := db.GetBooking(ctx, models.DutyTrash, date, 7)
	require.NoError(t, err)
	return booking
}

func taskStatus(t *testing.T, db *database.DB, id int64) (string, int) {
	t.Helper()
	var status string
	var retries int
	err := db.QueryRowContext(context.Background(),
		`SELECT status, retry_count FROM sync_queue WHERE id = ?`, id).Scan(&status, &retries)
	require.NoError(t, err)
	return status, retries
}

func TestEnqueueAppendPersistsTask(t *testing.T) {
	w, db := newTestWorker(t, &fakeSheets{}, nil, RetryPolicy{})
	ctx := context.Background()

	booking := createBooking(t, db)
	require.NoError(t, w.EnqueueAppend(ctx, booking))

	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, TaskAppend, tasks[0].TaskType)
	assert.Equal(t, booking.ID, tasks[0].BookingID)
}

func TestEnqueueRejectsMissingBookingID(t *testing.T) {
	w, _ := newTestWorker(t, &fakeSheets{}, nil, RetryPolicy{})
	ctx := context.Background()

	assert.Error(t, w.EnqueueAppend(ctx, nil))
	assert.Error(t, w.EnqueueAppend(ctx, &models.Booking{}))
	assert.Error(t, w.EnqueueDelete(ctx, 0))
}

func TestProcessAppendTask(t *testing.T) {
	sheets := &fakeSheets{}
	w, db := newTestWorker(t, sheets, nil, RetryPolicy{})
	ctx := context.Background()

	booking := createBooking(t, db)
	require.NoError(t, w.EnqueueAppend(ctx, booking))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.processTask(ctx, &task)

	require.Len(t, sheets.appended, 1)
	assert.Equal(t, booking.ID, sheets.appended[0].ID)

	status, _ := taskStatus(t, db, task.ID)
	assert.Equal(t, "completed", status)
}

func TestProcessDeleteTask(t *testing.T) {
	sheets := &fakeSheets{}
	w, db := newTestWorker(t, sheets, nil, RetryPolicy{})
	ctx := context.Background()

	require.NoError(t, w.EnqueueDelete(ctx, 42))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.processTask(ctx, &task)

	assert.Equal(t, []int64{42}, sheets.deleted)
	status, _ := taskStatus(t, db, task.ID)
	assert.Equal(t, "completed", status)
}

func TestProcessRefreshTaskRebuildsBothDuties(t *testing.T) {
	sheets := &fakeSheets{}
	w, db := newTestWorker(t, sheets, nil, RetryPolicy{})
	ctx := context.Background()

	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	_, err := db.AddBooking(ctx, models.DutyTrash, date, 7, "Anna")
	require.NoError(t, err)
	_, err = db.AddBooking(ctx, models.DutyCoffee, date, 8, "Bruno")
	require.NoError(t, err)

	require.NoError(t, w.EnqueueRefresh(ctx))
	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.processTask(ctx, &task)

	require.Len(t, sheets.replaced, 1)
	assert.Len(t, sheets.replaced[0], 2)
}

func TestFailingTaskIsScheduledForRetry(t *testing.T) {
	sheets := &fakeSheets{appendErr: errors.New("sheets api unavailable")}
	w, db := newTestWorker(t, sheets, nil, RetryPolicy{MaxRetries: 5})
	ctx := context.Background()

	booking := createBooking(t, db)
	require.NoError(t, w.EnqueueAppend(ctx, booking))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.processTask(ctx, &task)

	status, retries := taskStatus(t, db, task.ID)
	assert.Equal(t, "retry", status)
	assert.Equal(t, 1, retries)
}

func TestTaskFailsAfterMaxRetries(t *testing.T) {
	sheets := &fakeSheets{appendErr: errors.New("sheets api unavailable")}
	w, db := newTestWorker(t, sheets, nil, RetryPolicy{MaxRetries: 1})
	ctx := context.Background()

	booking := createBooking(t, db)
	require.NoError(t, w.EnqueueAppend(ctx, booking))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.processTask(ctx, &task)

	status, _ := taskStatus(t, db, task.ID)
	assert.Equal(t, "failed", status)
}

func TestEnqueuePushesToRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	w, db := newTestWorker(t, &fakeSheets{}, client, RetryPolicy{})
	ctx := context.Background()

	booking := createBooking(t, db)
	require.NoError(t, w.EnqueueAppend(ctx, booking))

	// With redis available nothing lands in the memory channel.
	_, ok := w.tryLocalQueue()
	assert.False(t, ok)

	items, err := client.LRange(ctx, w.redisQueueKey, 0, -1).Result()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestFailedTaskGoesToDeadLetter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sheets := &fakeSheets{deleteErr: errors.New("sheets api unavailable")}
	w, db := newTestWorker(t, sheets, client, RetryPolicy{MaxRetries: 1})
	ctx := context.Background()

	require.NoError(t, w.EnqueueDelete(ctx, 42))

	task, ok := w.tryRedis(ctx)
	require.True(t, ok)
	w.processTask(ctx, &task)

	status, _ := taskStatus(t, db, task.ID)
	assert.Equal(t, "failed", status)

	dead, err := client.LRange(ctx, w.deadLetterKey, 0, -1).Result()
	require.NoError(t, err)
	assert.Len(t, dead, 1)
}

func TestRetryPolicyBackoff(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 5, InitialDelay: time.Second, MaxDelay: 10 * time.Second, BackoffFactor: 2}

	assert.Equal(t, time.Second, policy.NextDelay(1))
	assert.Equal(t, 2*time.Second, policy.NextDelay(2))
	assert.Equal(t, 4*time.Second, policy.NextDelay(3))
	// Capped at MaxDelay.
	assert.Equal(t, 10*time.Second, policy.NextDelay(5))
}
