package repository

import (
	"context"
	"testing"
	"time"

	"turni/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateRoundTrip(t *testing.T) {
	repo := NewMemoryStateRepository(time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, &models.UserState{
		ChatID: 1, UserID: 7, Step: models.StateSelectTrashDate,
	}))

	state, err := repo.GetState(ctx, 1, 7)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, models.StateSelectTrashDate, state.Step)

	require.NoError(t, repo.ClearState(ctx, 1, 7))
	state, err = repo.GetState(ctx, 1, 7)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestMemoryStateExpires(t *testing.T) {
	repo := NewMemoryStateRepository(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, &models.UserState{ChatID: 1, UserID: 7, Step: models.StateCancelChooseDuty}))

	time.Sleep(20 * time.Millisecond)

	state, err := repo.GetState(ctx, 1, 7)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestMemoryCheckRateLimit(t *testing.T) {
	repo := NewMemoryStateRepository(time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := repo.CheckRateLimit(ctx, 7, 2, 50*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := repo.CheckRateLimit(ctx, 7, 2, 50*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, allowed)

	time.Sleep(60 * time.Millisecond)

	allowed, err = repo.CheckRateLimit(ctx, 7, 2, 50*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, allowed)
}
