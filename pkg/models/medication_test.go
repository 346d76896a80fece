package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
)

func TestCreateMedicationInput_Validate(t *testing.T) {
	t.Run("name is required", func(t *testing.T) {
		for _, name := range []string{"", "   ", "\t"} {
			err := (&CreateMedicationInput{Name: name}).Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		}
	})

	t.Run("name alone is enough", func(t *testing.T) {
		assert.NoError(t, (&CreateMedicationInput{Name: "Sertraline", IsActive: true}).Validate())
	})
}

func TestUpdateMedicationInput_Apply(t *testing.T) {
	dosage := "50mg"
	med := &Medication{ID: 1, Name: "Sertraline", Dosage: &dosage, IsActive: true}

	inactive := false
	newDosage := "100mg"
	patch := &UpdateMedicationInput{Dosage: &newDosage, IsActive: &inactive}
	patch.Apply(med)

	assert.Equal(t, "Sertraline", med.Name)
	assert.Equal(t, "100mg", *med.Dosage)
	assert.False(t, med.IsActive)
}

func TestUpdateMedicationInput_Validate(t *testing.T) {
	empty := " "
	err := (&UpdateMedicationInput{Name: &empty}).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateMedicationLogInput_Validate(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		in := &CreateMedicationLogInput{MedicationID: 3, TakenAt: time.Now()}
		assert.NoError(t, in.Validate())
	})

	t.Run("missing medication id fails", func(t *testing.T) {
		err := (&CreateMedicationLogInput{TakenAt: time.Now()}).Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("zero taken_at fails", func(t *testing.T) {
		err := (&CreateMedicationLogInput{MedicationID: 3}).Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
