package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
	"github.com/mindwell-app/mindwell-engine/pkg/database"
	"github.com/mindwell-app/mindwell-engine/pkg/models"
)

// MedicationLogRepository provides data access for medication dose events.
type MedicationLogRepository interface {
	// Create validates the medication reference and returns the stored log
	// with the medication's name denormalized in.
	Create(ctx context.Context, in *models.CreateMedicationLogInput) (*models.MedicationLogDetail, error)
	// List returns dose events with medication names, taken_at descending,
	// capped at ListLimit.
	List(ctx context.Context) ([]*models.MedicationLogDetail, error)
	Delete(ctx context.Context, id int64) error

	ListAll(ctx context.Context) ([]*models.MedicationLog, error)
	Restore(ctx context.Context, log *models.MedicationLog) error
	DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error
}

type medicationLogRepository struct {
	store *database.Store
}

// NewMedicationLogRepository creates a new MedicationLogRepository.
func NewMedicationLogRepository(store *database.Store) MedicationLogRepository {
	return &medicationLogRepository{store: store}
}

var _ MedicationLogRepository = (*medicationLogRepository)(nil)

func (r *medicationLogRepository) Create(ctx context.Context, in *models.CreateMedicationLogInput) (*models.MedicationLogDetail, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var detail *models.MedicationLogDetail
	err := database.RunInTx(ctx, r.store.DB, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := requireRow(ctx, tx, "medications", "medication_id", in.MedicationID); err != nil {
			return err
		}

		now := time.Now().UTC()
		result, err := tx.ExecContext(ctx, `
			INSERT INTO medication_logs (medication_id, taken_at, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			in.MedicationID, in.TakenAt.UTC(), in.Notes, now, now,
		)
		if err != nil {
			return fmt.Errorf("%w: create medication log: %v", apperrors.ErrStorage, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("%w: read new medication log id: %v", apperrors.ErrStorage, err)
		}

		var d models.MedicationLogDetail
		query := `
			SELECT ml.id, ml.medication_id, ml.taken_at, ml.notes, ml.created_at, ml.updated_at,
			       m.name AS medication_name
			FROM medication_logs ml
			JOIN medications m ON ml.medication_id = m.id
			WHERE ml.id = ?`
		if err := tx.GetContext(ctx, &d, query, id); err != nil {
			return fmt.Errorf("%w: load created medication log: %v", apperrors.ErrStorage, err)
		}
		detail = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *medicationLogRepository) List(ctx context.Context) ([]*models.MedicationLogDetail, error) {
	var details []*models.MedicationLogDetail
	query := `
		SELECT ml.id, ml.medication_id, ml.taken_at, ml.notes, ml.created_at, ml.updated_at,
		       m.name AS medication_name
		FROM medication_logs ml
		JOIN medications m ON ml.medication_id = m.id
		ORDER BY ml.taken_at DESC
		LIMIT ?`
	if err := r.store.DB.SelectContext(ctx, &details, query, ListLimit); err != nil {
		return nil, fmt.Errorf("%w: list medication logs: %v", apperrors.ErrStorage, err)
	}
	return details, nil
}

func (r *medicationLogRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.store.DB, "medication_logs", id)
}

func (r *medicationLogRepository) ListAll(ctx context.Context) ([]*models.MedicationLog, error) {
	var logs []*models.MedicationLog
	query := `SELECT id, medication_id, taken_at, notes, created_at, updated_at FROM medication_logs ORDER BY id ASC`
	if err := r.store.DB.SelectContext(ctx, &logs, query); err != nil {
		return nil, fmt.Errorf("%w: list all medication logs: %v", apperrors.ErrStorage, err)
	}
	return logs, nil
}

func (r *medicationLogRepository) Restore(ctx context.Context, log *models.MedicationLog) error {
	in := &models.CreateMedicationLogInput{
		MedicationID: log.MedicationID,
		TakenAt:      log.TakenAt,
		Notes:        log.Notes,
	}
	if err := in.Validate(); err != nil {
		return err
	}

	if _, err := r.store.DB.ExecContext(ctx, `
		INSERT INTO medication_logs (id, medication_id, taken_at, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		nullID(log.ID), log.MedicationID, log.TakenAt.UTC(), log.Notes, log.CreatedAt, log.UpdatedAt,
	); err != nil {
		return fmt.Errorf("%w: restore medication log %d: %v", apperrors.ErrStorage, log.ID, err)
	}
	return nil
}

func (r *medicationLogRepository) DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM medication_logs`); err != nil {
		return fmt.Errorf("%w: clear medication logs: %v", apperrors.ErrStorage, err)
	}
	return nil
}
