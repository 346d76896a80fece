package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindwell-app/mindwell-engine/pkg/database"
	"github.com/mindwell-app/mindwell-engine/pkg/models"
)

// newTestStore opens a fresh migrated database under the test's temp
// directory. Each test gets its own file, so tests can run in parallel.
func newTestStore(t *testing.T) *database.Store {
	t.Helper()

	store, err := database.Open(&database.Config{
		Path:          filepath.Join(t.TempDir(), "mindwell.db"),
		BusyTimeoutMS: 5000,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func mustCreateEntry(t *testing.T, repo MoodEntryRepository, date string) *models.MoodEntry {
	t.Helper()
	entry, err := repo.Create(context.Background(), &models.CreateMoodEntryInput{
		MoodLevel:    3,
		AnxietyLevel: 2,
		EnergyLevel:  3,
		SleepQuality: 2,
		EntryDate:    date,
	})
	require.NoError(t, err)
	return entry
}

func mustInsertEmotion(t *testing.T, repo CatalogRepository, id int64, name, category string) {
	t.Helper()
	now := time.Now().UTC()
	err := repo.Insert(context.Background(), []*models.CatalogEntry{{
		ID:        id,
		Name:      name,
		Category:  category,
		Color:     "#4ECDC4",
		CreatedAt: now,
		UpdatedAt: now,
	}})
	require.NoError(t, err)
}
