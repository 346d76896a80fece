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

// EntryActivityRepository provides data access for entry-activity links.
type EntryActivityRepository interface {
	// Create validates both foreign ids and returns the stored link joined
	// with the activity's display fields.
	Create(ctx context.Context, in *models.CreateEntryActivityInput) (*models.EntryActivityDetail, error)
	ListByEntry(ctx context.Context, moodEntryID int64) ([]*models.EntryActivityDetail, error)
	Delete(ctx context.Context, id int64) error
}

type entryActivityRepository struct {
	store *database.Store
}

// NewEntryActivityRepository creates a new EntryActivityRepository.
func NewEntryActivityRepository(store *database.Store) EntryActivityRepository {
	return &entryActivityRepository{store: store}
}

var _ EntryActivityRepository = (*entryActivityRepository)(nil)

func (r *entryActivityRepository) Create(ctx context.Context, in *models.CreateEntryActivityInput) (*models.EntryActivityDetail, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var detail *models.EntryActivityDetail
	err := database.RunInTx(ctx, r.store.DB, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := requireRow(ctx, tx, "mood_entries", "mood_entry_id", in.MoodEntryID); err != nil {
			return err
		}
		if err := requireRow(ctx, tx, "activities", "activity_id", in.ActivityID); err != nil {
			return err
		}

		now := time.Now().UTC()
		result, err := tx.ExecContext(ctx, `
			INSERT INTO mood_entry_activities (mood_entry_id, activity_id, created_at, updated_at)
			VALUES (?, ?, ?, ?)`,
			in.MoodEntryID, in.ActivityID, now, now,
		)
		if err != nil {
			return fmt.Errorf("%w: create entry activity: %v", apperrors.ErrStorage, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("%w: read new entry activity id: %v", apperrors.ErrStorage, err)
		}

		var d models.EntryActivityDetail
		query := `
			SELECT mea.id, mea.mood_entry_id, mea.activity_id, mea.created_at, mea.updated_at,
			       a.name, a.category, a.color, a.icon
			FROM mood_entry_activities mea
			JOIN activities a ON mea.activity_id = a.id
			WHERE mea.id = ?`
		if err := tx.GetContext(ctx, &d, query, id); err != nil {
			return fmt.Errorf("%w: load created entry activity: %v", apperrors.ErrStorage, err)
		}
		detail = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *entryActivityRepository) ListByEntry(ctx context.Context, moodEntryID int64) ([]*models.EntryActivityDetail, error) {
	var details []*models.EntryActivityDetail
	query := `
		SELECT mea.id, mea.mood_entry_id, mea.activity_id, mea.created_at, mea.updated_at,
		       a.name, a.category, a.color, a.icon
		FROM mood_entry_activities mea
		JOIN activities a ON mea.activity_id = a.id
		WHERE mea.mood_entry_id = ?
		ORDER BY a.name ASC`
	if err := r.store.DB.SelectContext(ctx, &details, query, moodEntryID); err != nil {
		return nil, fmt.Errorf("%w: list entry activities: %v", apperrors.ErrStorage, err)
	}
	return details, nil
}

func (r *entryActivityRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.store.DB, "mood_entry_activities", id)
}
