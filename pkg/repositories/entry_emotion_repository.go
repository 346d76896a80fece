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

// EntryEmotionLink is an entry-emotion link paired with the owning
// entry's date for windowed analytics.
type EntryEmotionLink struct {
	models.EntryEmotion
	EntryDate string `db:"entry_date"`
}

// EntryEmotionRepository provides data access for entry-emotion links.
type EntryEmotionRepository interface {
	// Create validates both foreign ids and returns the stored link joined
	// with the emotion's display fields, so callers need no second lookup.
	Create(ctx context.Context, in *models.CreateEntryEmotionInput) (*models.EntryEmotionDetail, error)
	// ListByEntry returns the entry's links joined with emotion display
	// fields, emotion name ascending.
	ListByEntry(ctx context.Context, moodEntryID int64) ([]*models.EntryEmotionDetail, error)
	// ListSince returns every link whose owning entry has
	// entry_date >= since.
	ListSince(ctx context.Context, since string) ([]*EntryEmotionLink, error)
	Delete(ctx context.Context, id int64) error

	ListAll(ctx context.Context) ([]*models.EntryEmotion, error)
	Restore(ctx context.Context, link *models.EntryEmotion) error
	DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error
}

type entryEmotionRepository struct {
	store *database.Store
}

// NewEntryEmotionRepository creates a new EntryEmotionRepository.
func NewEntryEmotionRepository(store *database.Store) EntryEmotionRepository {
	return &entryEmotionRepository{store: store}
}

var _ EntryEmotionRepository = (*entryEmotionRepository)(nil)

func (r *entryEmotionRepository) Create(ctx context.Context, in *models.CreateEntryEmotionInput) (*models.EntryEmotionDetail, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var detail *models.EntryEmotionDetail
	err := database.RunInTx(ctx, r.store.DB, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := requireRow(ctx, tx, "mood_entries", "mood_entry_id", in.MoodEntryID); err != nil {
			return err
		}
		if err := requireRow(ctx, tx, "emotions", "emotion_id", in.EmotionID); err != nil {
			return err
		}

		now := time.Now().UTC()
		result, err := tx.ExecContext(ctx, `
			INSERT INTO mood_entry_emotions (mood_entry_id, emotion_id, intensity, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			in.MoodEntryID, in.EmotionID, in.Intensity, now, now,
		)
		if err != nil {
			return fmt.Errorf("%w: create entry emotion: %v", apperrors.ErrStorage, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("%w: read new entry emotion id: %v", apperrors.ErrStorage, err)
		}

		var d models.EntryEmotionDetail
		query := `
			SELECT mee.id, mee.mood_entry_id, mee.emotion_id, mee.intensity, mee.created_at, mee.updated_at,
			       e.name, e.category, e.color
			FROM mood_entry_emotions mee
			JOIN emotions e ON mee.emotion_id = e.id
			WHERE mee.id = ?`
		if err := tx.GetContext(ctx, &d, query, id); err != nil {
			return fmt.Errorf("%w: load created entry emotion: %v", apperrors.ErrStorage, err)
		}
		detail = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *entryEmotionRepository) ListByEntry(ctx context.Context, moodEntryID int64) ([]*models.EntryEmotionDetail, error) {
	var details []*models.EntryEmotionDetail
	query := `
		SELECT mee.id, mee.mood_entry_id, mee.emotion_id, mee.intensity, mee.created_at, mee.updated_at,
		       e.name, e.category, e.color
		FROM mood_entry_emotions mee
		JOIN emotions e ON mee.emotion_id = e.id
		WHERE mee.mood_entry_id = ?
		ORDER BY e.name ASC`
	if err := r.store.DB.SelectContext(ctx, &details, query, moodEntryID); err != nil {
		return nil, fmt.Errorf("%w: list entry emotions: %v", apperrors.ErrStorage, err)
	}
	return details, nil
}

func (r *entryEmotionRepository) ListSince(ctx context.Context, since string) ([]*EntryEmotionLink, error) {
	var links []*EntryEmotionLink
	query := `
		SELECT mee.id, mee.mood_entry_id, mee.emotion_id, mee.intensity, mee.created_at, mee.updated_at,
		       me.entry_date
		FROM mood_entry_emotions mee
		JOIN mood_entries me ON mee.mood_entry_id = me.id
		WHERE me.entry_date >= ?`
	if err := r.store.DB.SelectContext(ctx, &links, query, since); err != nil {
		return nil, fmt.Errorf("%w: list entry emotions since %s: %v", apperrors.ErrStorage, since, err)
	}
	return links, nil
}

func (r *entryEmotionRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.store.DB, "mood_entry_emotions", id)
}

func (r *entryEmotionRepository) ListAll(ctx context.Context) ([]*models.EntryEmotion, error) {
	var links []*models.EntryEmotion
	query := `SELECT id, mood_entry_id, emotion_id, intensity, created_at, updated_at FROM mood_entry_emotions ORDER BY id ASC`
	if err := r.store.DB.SelectContext(ctx, &links, query); err != nil {
		return nil, fmt.Errorf("%w: list all entry emotions: %v", apperrors.ErrStorage, err)
	}
	return links, nil
}

func (r *entryEmotionRepository) Restore(ctx context.Context, link *models.EntryEmotion) error {
	in := &models.CreateEntryEmotionInput{
		MoodEntryID: link.MoodEntryID,
		EmotionID:   link.EmotionID,
		Intensity:   link.Intensity,
	}
	if err := in.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO mood_entry_emotions (id, mood_entry_id, emotion_id, intensity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.store.DB.ExecContext(ctx, query,
		nullID(link.ID), link.MoodEntryID, link.EmotionID, link.Intensity, link.CreatedAt, link.UpdatedAt,
	); err != nil {
		return fmt.Errorf("%w: restore entry emotion %d: %v", apperrors.ErrStorage, link.ID, err)
	}
	return nil
}

func (r *entryEmotionRepository) DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM mood_entry_emotions`); err != nil {
		return fmt.Errorf("%w: clear entry emotions: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// requireRow fails with ErrValidation when a referenced foreign id does
// not exist. Runs inside the creating transaction so the check and the
// insert are atomic.
func requireRow(ctx context.Context, tx *sqlx.Tx, table, field string, id int64) error {
	var exists int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ?`, table)
	if err := tx.GetContext(ctx, &exists, query, id); err != nil {
		return fmt.Errorf("%w: check %s reference: %v", apperrors.ErrStorage, field, err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s %d does not exist", apperrors.ErrValidation, field, id)
	}
	return nil
}

// deleteByID removes one row, mapping a missing id to ErrNotFound.
func deleteByID(ctx context.Context, db *sqlx.DB, table string, id int64) error {
	result, err := db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("%w: delete from %s: %v", apperrors.ErrStorage, table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete from %s: %v", apperrors.ErrStorage, table, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
