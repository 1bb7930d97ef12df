package database

import (
	"context"
	"testing"

	"turni/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrashTypesSentinel(t *testing.T) {
	db := setupTestDB(t)

	// Nothing seeded: every weekday falls back to the sentinel.
	text, err := db.GetTrashTypes(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, models.NoCollection, text)
}

func TestGetTrashTypesInvalidWeekday(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetTrashTypes(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = db.GetTrashTypes(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestSetTrashTypesUpsert(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SetTrashTypes(ctx, 0, "Organico"))
	require.NoError(t, db.SetTrashTypes(ctx, 0, "Carta, Vetro"))

	text, err := db.GetTrashTypes(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Carta, Vetro", text)
}

func TestSeedScheduleOnlyWhenEmpty(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seed := map[int]string{0: "Indifferenziato", 1: "Organico", 2: "Carta", 3: "Organico", 4: "Vetro, Organico, Plastica"}
	require.NoError(t, db.SeedSchedule(ctx, seed))

	schedule, err := db.GetWeeklySchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed, schedule)

	// A second seed with different content must not overwrite admin edits.
	require.NoError(t, db.SetTrashTypes(ctx, 0, "Plastica"))
	require.NoError(t, db.SeedSchedule(ctx, map[int]string{0: "Altro"}))

	text, err := db.GetTrashTypes(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Plastica", text)
}

func TestSeedScheduleFillsMissingWeekdays(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SeedSchedule(ctx, map[int]string{1: "Organico"}))

	schedule, err := db.GetWeeklySchedule(ctx)
	require.NoError(t, err)
	require.Len(t, schedule, 5)
	assert.Equal(t, "Organico", schedule[1])
	assert.Equal(t, models.NoCollection, schedule[0])
	assert.Equal(t, models.NoCollection, schedule[4])
}
