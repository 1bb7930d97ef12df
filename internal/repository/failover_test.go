package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"turni/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStateRepository always fails, simulating a dead redis.
type brokenStateRepository struct{}

func (b *brokenStateRepository) GetState(ctx context.Context, chatID, userID int64) (*models.UserState, error) {
	return nil, errors.New("connection refused")
}

func (b *brokenStateRepository) SetState(ctx context.Context, state *models.UserState) error {
	return errors.New("connection refused")
}

func (b *brokenStateRepository) ClearState(ctx context.Context, chatID, userID int64) error {
	return errors.New("connection refused")
}

func (b *brokenStateRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}

func TestFailoverFallsBackToMemory(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	fallback := NewMemoryStateRepository(time.Hour)
	repo := NewFailoverStateRepository(&brokenStateRepository{}, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, &models.UserState{ChatID: 1, UserID: 7, Step: models.StateSelectCoffeeDate}))

	state, err := repo.GetState(ctx, 1, 7)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, models.StateSelectCoffeeDate, state.Step)
}

func TestFailoverPrefersHealthyPrimary(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	primary := NewMemoryStateRepository(time.Hour)
	fallback := NewMemoryStateRepository(time.Hour)
	repo := NewFailoverStateRepository(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, &models.UserState{ChatID: 1, UserID: 7, Step: models.StateConfigSelectDay}))

	// The write must land on the primary, not the fallback.
	state, err := primary.GetState(ctx, 1, 7)
	require.NoError(t, err)
	require.NotNil(t, state)

	state, err = fallback.GetState(ctx, 1, 7)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestFailoverRateLimitFallsBack(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	fallback := NewMemoryStateRepository(time.Hour)
	repo := NewFailoverStateRepository(&brokenStateRepository{}, fallback, &logger)
	ctx := context.Background()

	allowed, err := repo.CheckRateLimit(ctx, 7, 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = repo.CheckRateLimit(ctx, 7, 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
}
