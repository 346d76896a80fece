package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
	"github.com/mindwell-app/mindwell-engine/pkg/database"
	"github.com/mindwell-app/mindwell-engine/pkg/models"
)

// MedicationRepository provides data access for medications.
type MedicationRepository interface {
	Create(ctx context.Context, in *models.CreateMedicationInput) (*models.Medication, error)
	GetByID(ctx context.Context, id int64) (*models.Medication, error)
	// List returns active medications only, name ascending. Inactive
	// medications stay out of default listings but keep their history.
	List(ctx context.Context) ([]*models.Medication, error)
	Update(ctx context.Context, id int64, patch *models.UpdateMedicationInput) (*models.Medication, error)
	// Delete removes the medication. Its logs cascade.
	Delete(ctx context.Context, id int64) error

	ListAll(ctx context.Context) ([]*models.Medication, error)
	Restore(ctx context.Context, med *models.Medication) error
	DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error
}

type medicationRepository struct {
	store *database.Store
}

// NewMedicationRepository creates a new MedicationRepository.
func NewMedicationRepository(store *database.Store) MedicationRepository {
	return &medicationRepository{store: store}
}

var _ MedicationRepository = (*medicationRepository)(nil)

const medicationColumns = `id, name, dosage, frequency, is_active, created_at, updated_at`

func (r *medicationRepository) Create(ctx context.Context, in *models.CreateMedicationInput) (*models.Medication, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	med := &models.Medication{
		Name:      in.Name,
		Dosage:    in.Dosage,
		Frequency: in.Frequency,
		IsActive:  in.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := r.store.DB.ExecContext(ctx, `
		INSERT INTO medications (name, dosage, frequency, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		med.Name, med.Dosage, med.Frequency, med.IsActive, med.CreatedAt, med.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: create medication: %v", apperrors.ErrStorage, err)
	}

	med.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: read new medication id: %v", apperrors.ErrStorage, err)
	}
	return med, nil
}

func (r *medicationRepository) GetByID(ctx context.Context, id int64) (*models.Medication, error) {
	var med models.Medication
	query := `SELECT ` + medicationColumns + ` FROM medications WHERE id = ?`
	if err := r.store.DB.GetContext(ctx, &med, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get medication: %v", apperrors.ErrStorage, err)
	}
	return &med, nil
}

func (r *medicationRepository) List(ctx context.Context) ([]*models.Medication, error) {
	var meds []*models.Medication
	query := `
		SELECT ` + medicationColumns + `
		FROM medications
		WHERE is_active = 1
		ORDER BY name ASC`
	if err := r.store.DB.SelectContext(ctx, &meds, query); err != nil {
		return nil, fmt.Errorf("%w: list medications: %v", apperrors.ErrStorage, err)
	}
	return meds, nil
}

func (r *medicationRepository) Update(ctx context.Context, id int64, patch *models.UpdateMedicationInput) (*models.Medication, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *models.Medication
	err := database.RunInTx(ctx, r.store.DB, func(ctx context.Context, tx *sqlx.Tx) error {
		var med models.Medication
		query := `SELECT ` + medicationColumns + ` FROM medications WHERE id = ?`
		if err := tx.GetContext(ctx, &med, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("%w: load medication for update: %v", apperrors.ErrStorage, err)
		}

		patch.Apply(&med)
		med.UpdatedAt = time.Now().UTC()

		if _, err := tx.ExecContext(ctx, `
			UPDATE medications
			SET name = ?, dosage = ?, frequency = ?, is_active = ?, updated_at = ?
			WHERE id = ?`,
			med.Name, med.Dosage, med.Frequency, med.IsActive, med.UpdatedAt, id,
		); err != nil {
			return fmt.Errorf("%w: update medication: %v", apperrors.ErrStorage, err)
		}

		updated = &med
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *medicationRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.store.DB, "medications", id)
}

func (r *medicationRepository) ListAll(ctx context.Context) ([]*models.Medication, error) {
	var meds []*models.Medication
	query := `SELECT ` + medicationColumns + ` FROM medications ORDER BY id ASC`
	if err := r.store.DB.SelectContext(ctx, &meds, query); err != nil {
		return nil, fmt.Errorf("%w: list all medications: %v", apperrors.ErrStorage, err)
	}
	return meds, nil
}

func (r *medicationRepository) Restore(ctx context.Context, med *models.Medication) error {
	in := &models.CreateMedicationInput{
		Name:      med.Name,
		Dosage:    med.Dosage,
		Frequency: med.Frequency,
		IsActive:  med.IsActive,
	}
	if err := in.Validate(); err != nil {
		return err
	}

	if _, err := r.store.DB.ExecContext(ctx, `
		INSERT INTO medications (id, name, dosage, frequency, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		nullID(med.ID), med.Name, med.Dosage, med.Frequency, med.IsActive, med.CreatedAt, med.UpdatedAt,
	); err != nil {
		return fmt.Errorf("%w: restore medication %d: %v", apperrors.ErrStorage, med.ID, err)
	}
	return nil
}

func (r *medicationRepository) DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM medications`); err != nil {
		return fmt.Errorf("%w: clear medications: %v", apperrors.ErrStorage, err)
	}
	return nil
}
