package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
	"github.com/mindwell-app/mindwell-engine/pkg/models"
)

func TestEntryEmotionRepository_CreateReturnsJoinedDetail(t *testing.T) {
	store := newTestStore(t)
	entries := NewMoodEntryRepository(store)
	emotions := NewEmotionRepository(store)
	repo := NewEntryEmotionRepository(store)
	ctx := context.Background()

	mustInsertEmotion(t, emotions, 23, "Anxious", models.CategoryNegative)
	entry := mustCreateEntry(t, entries, "2025-06-14")

	detail, err := repo.Create(ctx, &models.CreateEntryEmotionInput{
		MoodEntryID: entry.ID,
		EmotionID:   23,
		Intensity:   4,
	})
	require.NoError(t, err)
	assert.NotZero(t, detail.ID)
	assert.Equal(t, entry.ID, detail.MoodEntryID)
	assert.Equal(t, int64(23), detail.EmotionID)
	assert.Equal(t, 4, detail.Intensity)
	assert.Equal(t, "Anxious", detail.Name)
	assert.Equal(t, models.CategoryNegative, detail.Category)
	assert.NotEmpty(t, detail.Color)
}

func TestEntryEmotionRepository_CreateChecksReferences(t *testing.T) {
	store := newTestStore(t)
	entries := NewMoodEntryRepository(store)
	emotions := NewEmotionRepository(store)
	repo := NewEntryEmotionRepository(store)
	ctx := context.Background()

	mustInsertEmotion(t, emotions, 1, "Calm", models.CategoryPositive)
	entry := mustCreateEntry(t, entries, "2025-06-14")

	t.Run("missing entry", func(t *testing.T) {
		_, err := repo.Create(ctx, &models.CreateEntryEmotionInput{
			MoodEntryID: 999, EmotionID: 1, Intensity: 2,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("missing emotion", func(t *testing.T) {
		_, err := repo.Create(ctx, &models.CreateEntryEmotionInput{
			MoodEntryID: entry.ID, EmotionID: 999, Intensity: 2,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	// Neither failed attempt left a row behind.
	links, err := repo.ListByEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestEntryEmotionRepository_ListByEntryOrdering(t *testing.T) {
	store := newTestStore(t)
	entries := NewMoodEntryRepository(store)
	emotions := NewEmotionRepository(store)
	repo := NewEntryEmotionRepository(store)
	ctx := context.Background()

	mustInsertEmotion(t, emotions, 1, "Worried", models.CategoryNegative)
	mustInsertEmotion(t, emotions, 2, "Calm", models.CategoryPositive)
	mustInsertEmotion(t, emotions, 3, "Hopeful", models.CategoryPositive)
	entry := mustCreateEntry(t, entries, "2025-06-14")

	for _, emotionID := range []int64{1, 2, 3} {
		_, err := repo.Create(ctx, &models.CreateEntryEmotionInput{
			MoodEntryID: entry.ID, EmotionID: emotionID, Intensity: 3,
		})
		require.NoError(t, err)
	}

	links, err := repo.ListByEntry(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, "Calm", links[0].Name)
	assert.Equal(t, "Hopeful", links[1].Name)
	assert.Equal(t, "Worried", links[2].Name)
}

func TestEntryEmotionRepository_ListSinceFollowsEntryDate(t *testing.T) {
	store := newTestStore(t)
	entries := NewMoodEntryRepository(store)
	emotions := NewEmotionRepository(store)
	repo := NewEntryEmotionRepository(store)
	ctx := context.Background()

	mustInsertEmotion(t, emotions, 1, "Calm", models.CategoryPositive)
	oldEntry := mustCreateEntry(t, entries, "2025-01-01")
	newEntry := mustCreateEntry(t, entries, "2025-06-10")

	for _, entryID := range []int64{oldEntry.ID, newEntry.ID} {
		_, err := repo.Create(ctx, &models.CreateEntryEmotionInput{
			MoodEntryID: entryID, EmotionID: 1, Intensity: 2,
		})
		require.NoError(t, err)
	}

	links, err := repo.ListSince(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, newEntry.ID, links[0].MoodEntryID)
	assert.Equal(t, "2025-06-10", links[0].EntryDate)
}

func TestEntryEmotionRepository_Delete(t *testing.T) {
	store := newTestStore(t)
	entries := NewMoodEntryRepository(store)
	emotions := NewEmotionRepository(store)
	repo := NewEntryEmotionRepository(store)
	ctx := context.Background()

	mustInsertEmotion(t, emotions, 1, "Calm", models.CategoryPositive)
	entry := mustCreateEntry(t, entries, "2025-06-14")
	link, err := repo.Create(ctx, &models.CreateEntryEmotionInput{
		MoodEntryID: entry.ID, EmotionID: 1, Intensity: 2,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, link.ID))
	assert.ErrorIs(t, repo.Delete(ctx, link.ID), apperrors.ErrNotFound)
}
