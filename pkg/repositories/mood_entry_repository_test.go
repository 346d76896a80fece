package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
	"github.com/mindwell-app/mindwell-engine/pkg/models"
)

func TestMoodEntryRepository_CreateAndGet(t *testing.T) {
	repo := NewMoodEntryRepository(newTestStore(t))
	ctx := context.Background()

	notes := "long walk, felt lighter"
	timeOfDay := models.TimeOfDayEvening
	created, err := repo.Create(ctx, &models.CreateMoodEntryInput{
		MoodLevel:    4,
		AnxietyLevel: 1,
		EnergyLevel:  3,
		SleepQuality: 2,
		Notes:        &notes,
		EntryDate:    "2025-06-14",
		TimeOfDay:    &timeOfDay,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 4, got.MoodLevel)
	assert.Equal(t, 1, got.AnxietyLevel)
	assert.Equal(t, "2025-06-14", got.EntryDate)
	require.NotNil(t, got.Notes)
	assert.Equal(t, notes, *got.Notes)
	require.NotNil(t, got.TimeOfDay)
	assert.Equal(t, models.TimeOfDayEvening, *got.TimeOfDay)
}

func TestMoodEntryRepository_CreateRejectsInvalidInput(t *testing.T) {
	repo := NewMoodEntryRepository(newTestStore(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.CreateMoodEntryInput{
		MoodLevel:    9,
		AnxietyLevel: 2,
		EnergyLevel:  2,
		SleepQuality: 2,
		EntryDate:    "2025-06-14",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Nothing was persisted.
	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMoodEntryRepository_GetByID_NotFound(t *testing.T) {
	repo := NewMoodEntryRepository(newTestStore(t))

	_, err := repo.GetByID(context.Background(), 12345)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMoodEntryRepository_ListOrderingAndCap(t *testing.T) {
	repo := NewMoodEntryRepository(newTestStore(t))
	ctx := context.Background()

	// 105 entries across distinct dates, inserted oldest first.
	for day := 1; day <= 105; day++ {
		date := fmt.Sprintf("2025-%02d-%02d", (day-1)/28+1, (day-1)%28+1)
		mustCreateEntry(t, repo, date)
	}

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, ListLimit)

	// Newest date first, and dates never increase down the list.
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].EntryDate, entries[i].EntryDate,
			"position %d out of order", i)
	}
	assert.Equal(t, "2025-04-21", entries[0].EntryDate)
}

func TestMoodEntryRepository_ListSince(t *testing.T) {
	repo := NewMoodEntryRepository(newTestStore(t))
	ctx := context.Background()

	mustCreateEntry(t, repo, "2025-05-01")
	mustCreateEntry(t, repo, "2025-06-01")
	mustCreateEntry(t, repo, "2025-06-10")

	entries, err := repo.ListSince(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-06-01", entries[0].EntryDate)
	assert.Equal(t, "2025-06-10", entries[1].EntryDate)
}

func TestMoodEntryRepository_Update(t *testing.T) {
	repo := NewMoodEntryRepository(newTestStore(t))
	ctx := context.Background()

	entry := mustCreateEntry(t, repo, "2025-06-14")

	mood := 1
	notes := "crashed in the afternoon"
	updated, err := repo.Update(ctx, entry.ID, &models.UpdateMoodEntryInput{
		MoodLevel: &mood,
		Notes:     &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.MoodLevel)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)
	// Untouched fields survive the merge.
	assert.Equal(t, entry.AnxietyLevel, updated.AnxietyLevel)
	assert.Equal(t, entry.EntryDate, updated.EntryDate)

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MoodLevel)
}

func TestMoodEntryRepository_Update_Missing(t *testing.T) {
	repo := NewMoodEntryRepository(newTestStore(t))

	mood := 2
	_, err := repo.Update(context.Background(), 999, &models.UpdateMoodEntryInput{MoodLevel: &mood})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMoodEntryRepository_Update_InvalidPatch(t *testing.T) {
	repo := NewMoodEntryRepository(newTestStore(t))
	ctx := context.Background()

	entry := mustCreateEntry(t, repo, "2025-06-14")

	bad := 0
	_, err := repo.Update(ctx, entry.ID, &models.UpdateMoodEntryInput{SleepQuality: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.SleepQuality, got.SleepQuality)
}

func TestMoodEntryRepository_Delete(t *testing.T) {
	repo := NewMoodEntryRepository(newTestStore(t))
	ctx := context.Background()

	entry := mustCreateEntry(t, repo, "2025-06-14")
	require.NoError(t, repo.Delete(ctx, entry.ID))

	_, err := repo.GetByID(ctx, entry.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, entry.ID), apperrors.ErrNotFound)
}

func TestMoodEntryRepository_DeleteCascadesLinks(t *testing.T) {
	store := newTestStore(t)
	entries := NewMoodEntryRepository(store)
	emotions := NewEmotionRepository(store)
	links := NewEntryEmotionRepository(store)
	ctx := context.Background()

	mustInsertEmotion(t, emotions, 1, "Calm", models.CategoryPositive)
	entry := mustCreateEntry(t, entries, "2025-06-14")

	_, err := links.Create(ctx, &models.CreateEntryEmotionInput{
		MoodEntryID: entry.ID,
		EmotionID:   1,
		Intensity:   3,
	})
	require.NoError(t, err)

	require.NoError(t, entries.Delete(ctx, entry.ID))

	remaining, err := links.ListByEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining, "links should cascade with the entry")
}

func TestMoodEntryRepository_RestorePreservesID(t *testing.T) {
	repo := NewMoodEntryRepository(newTestStore(t))
	ctx := context.Background()

	entry := mustCreateEntry(t, repo, "2025-06-14")
	original := *entry
	require.NoError(t, repo.Delete(ctx, entry.ID))

	require.NoError(t, repo.Restore(ctx, &original))

	got, err := repo.GetByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, original.EntryDate, got.EntryDate)
}
