package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
)

// Medication represents a tracked medication. Only active medications are
// listed by default; deactivating keeps history intact.
type Medication struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Dosage    *string   `db:"dosage" json:"dosage,omitempty"`
	Frequency *string   `db:"frequency" json:"frequency,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CreateMedicationInput holds the caller-supplied fields for a new medication.
type CreateMedicationInput struct {
	Name      string  `json:"name"`
	Dosage    *string `json:"dosage,omitempty"`
	Frequency *string `json:"frequency,omitempty"`
	IsActive  bool    `json:"is_active"`
}

// Validate checks the input against the declared field constraints.
func (in *CreateMedicationInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: medication name is required", apperrors.ErrValidation)
	}
	return nil
}

// UpdateMedicationInput is a merge patch for an existing medication.
// Nil fields are left unchanged.
type UpdateMedicationInput struct {
	Name      *string `json:"name,omitempty"`
	Dosage    *string `json:"dosage,omitempty"`
	Frequency *string `json:"frequency,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// Validate checks every present patch field against its constraints.
func (in *UpdateMedicationInput) Validate() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return fmt.Errorf("%w: medication name cannot be empty", apperrors.ErrValidation)
	}
	return nil
}

// Apply merges the patch onto an existing medication.
func (in *UpdateMedicationInput) Apply(med *Medication) {
	if in.Name != nil {
		med.Name = *in.Name
	}
	if in.Dosage != nil {
		med.Dosage = in.Dosage
	}
	if in.Frequency != nil {
		med.Frequency = in.Frequency
	}
	if in.IsActive != nil {
		med.IsActive = *in.IsActive
	}
}

// MedicationLog represents a single dose event for a medication.
type MedicationLog struct {
	ID           int64     `db:"id" json:"id"`
	MedicationID int64     `db:"medication_id" json:"medication_id"`
	TakenAt      time.Time `db:"taken_at" json:"taken_at"`
	Notes        *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// MedicationLogDetail is a medication log with the parent medication's
// name denormalized in, so listings need no second lookup.
type MedicationLogDetail struct {
	MedicationLog
	MedicationName string `db:"medication_name" json:"medication_name"`
}

// CreateMedicationLogInput holds the caller-supplied fields for a dose event.
type CreateMedicationLogInput struct {
	MedicationID int64     `json:"medication_id"`
	TakenAt      time.Time `json:"taken_at"`
	Notes        *string   `json:"notes,omitempty"`
}

// Validate checks the input against the declared field constraints.
func (in *CreateMedicationLogInput) Validate() error {
	if in.MedicationID <= 0 {
		return fmt.Errorf("%w: medication_id is required", apperrors.ErrValidation)
	}
	if in.TakenAt.IsZero() {
		return fmt.Errorf("%w: taken_at is required", apperrors.ErrValidation)
	}
	return nil
}
