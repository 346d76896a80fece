package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
	"github.com/mindwell-app/mindwell-engine/pkg/models"
)

func TestCatalogRepository_InsertPreservesIDs(t *testing.T) {
	repo := NewEmotionRepository(newTestStore(t))
	ctx := context.Background()

	mustInsertEmotion(t, repo, 23, "Anxious", models.CategoryNegative)

	got, err := repo.GetByID(ctx, 23)
	require.NoError(t, err)
	assert.Equal(t, int64(23), got.ID)
	assert.Equal(t, "Anxious", got.Name)
	assert.Equal(t, models.CategoryNegative, got.Category)
}

func TestCatalogRepository_ListOrdering(t *testing.T) {
	repo := NewEmotionRepository(newTestStore(t))
	ctx := context.Background()

	mustInsertEmotion(t, repo, 1, "Sad", models.CategoryNegative)
	mustInsertEmotion(t, repo, 2, "Calm", models.CategoryPositive)
	mustInsertEmotion(t, repo, 3, "Angry", models.CategoryNegative)
	mustInsertEmotion(t, repo, 4, "Bored", models.CategoryNeutral)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Category ascending, then name ascending within a category.
	names := []string{entries[0].Name, entries[1].Name, entries[2].Name, entries[3].Name}
	assert.Equal(t, []string{"Angry", "Sad", "Bored", "Calm"}, names)
}

func TestCatalogRepository_Count(t *testing.T) {
	repo := NewActivityRepository(newTestStore(t))
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	mustInsertEmotion(t, repo, 1, "Exercise", "physical")
	mustInsertEmotion(t, repo, 2, "Reading", "leisure")

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCatalogRepository_TablesAreIndependent(t *testing.T) {
	store := newTestStore(t)
	emotions := NewEmotionRepository(store)
	activities := NewActivityRepository(store)
	ctx := context.Background()

	mustInsertEmotion(t, emotions, 1, "Calm", models.CategoryPositive)

	count, err := activities.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCatalogRepository_GetByID_NotFound(t *testing.T) {
	repo := NewEmotionRepository(newTestStore(t))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
