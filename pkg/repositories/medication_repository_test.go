package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
	"github.com/mindwell-app/mindwell-engine/pkg/models"
)

func TestMedicationRepository_CreateAndGet(t *testing.T) {
	repo := NewMedicationRepository(newTestStore(t))
	ctx := context.Background()

	dosage := "50mg"
	frequency := "daily"
	med, err := repo.Create(ctx, &models.CreateMedicationInput{
		Name:      "Sertraline",
		Dosage:    &dosage,
		Frequency: &frequency,
		IsActive:  true,
	})
	require.NoError(t, err)
	require.NotZero(t, med.ID)

	got, err := repo.GetByID(ctx, med.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sertraline", got.Name)
	require.NotNil(t, got.Dosage)
	assert.Equal(t, "50mg", *got.Dosage)
	assert.True(t, got.IsActive)
}

func TestMedicationRepository_ListFiltersInactive(t *testing.T) {
	repo := NewMedicationRepository(newTestStore(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.CreateMedicationInput{Name: "Sertraline", IsActive: true})
	require.NoError(t, err)
	old, err := repo.Create(ctx, &models.CreateMedicationInput{Name: "Citalopram", IsActive: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.CreateMedicationInput{Name: "Abilify", IsActive: true})
	require.NoError(t, err)

	inactive := false
	_, err = repo.Update(ctx, old.ID, &models.UpdateMedicationInput{IsActive: &inactive})
	require.NoError(t, err)

	meds, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, meds, 2)
	// Name ascending, retired medication absent.
	assert.Equal(t, "Abilify", meds[0].Name)
	assert.Equal(t, "Sertraline", meds[1].Name)

	// The retired medication is still reachable directly.
	got, err := repo.GetByID(ctx, old.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestMedicationRepository_Update_Missing(t *testing.T) {
	repo := NewMedicationRepository(newTestStore(t))

	name := "Anything"
	_, err := repo.Update(context.Background(), 999, &models.UpdateMedicationInput{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMedicationRepository_DeleteCascadesLogs(t *testing.T) {
	store := newTestStore(t)
	repo := NewMedicationRepository(store)
	logs := NewMedicationLogRepository(store)
	ctx := context.Background()

	med, err := repo.Create(ctx, &models.CreateMedicationInput{Name: "Sertraline", IsActive: true})
	require.NoError(t, err)

	_, err = logs.Create(ctx, &models.CreateMedicationLogInput{
		MedicationID: med.ID,
		TakenAt:      mustParseTime(t, "2025-06-14T08:00:00Z"),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, med.ID))

	remaining, err := logs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining, "dose logs should cascade with the medication")
}
