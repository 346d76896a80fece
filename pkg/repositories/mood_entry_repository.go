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

// ListLimit caps the default listings of mood entries and medication logs.
const ListLimit = 100

// MoodEntryRepository provides data access for mood entries.
type MoodEntryRepository interface {
	Create(ctx context.Context, in *models.CreateMoodEntryInput) (*models.MoodEntry, error)
	GetByID(ctx context.Context, id int64) (*models.MoodEntry, error)
	// List returns the most recent entries, entry_date descending with
	// created_at breaking ties, capped at ListLimit.
	List(ctx context.Context) ([]*models.MoodEntry, error)
	// ListSince returns every entry with entry_date >= since (YYYY-MM-DD),
	// ascending by date. Used by analytics; not capped.
	ListSince(ctx context.Context, since string) ([]*models.MoodEntry, error)
	Update(ctx context.Context, id int64, patch *models.UpdateMoodEntryInput) (*models.MoodEntry, error)
	// Delete removes the entry. Emotion and activity links cascade.
	Delete(ctx context.Context, id int64) error

	// ListAll and Restore serve the backup engine: full-table export and
	// id-preserving re-insert.
	ListAll(ctx context.Context) ([]*models.MoodEntry, error)
	Restore(ctx context.Context, entry *models.MoodEntry) error
	DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error
}

type moodEntryRepository struct {
	store *database.Store
}

// NewMoodEntryRepository creates a new MoodEntryRepository.
func NewMoodEntryRepository(store *database.Store) MoodEntryRepository {
	return &moodEntryRepository{store: store}
}

var _ MoodEntryRepository = (*moodEntryRepository)(nil)

const moodEntryColumns = `id, mood_level, anxiety_level, energy_level, sleep_quality, notes, entry_date, time_of_day, created_at, updated_at`

func (r *moodEntryRepository) Create(ctx context.Context, in *models.CreateMoodEntryInput) (*models.MoodEntry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := &models.MoodEntry{
		MoodLevel:    in.MoodLevel,
		AnxietyLevel: in.AnxietyLevel,
		EnergyLevel:  in.EnergyLevel,
		SleepQuality: in.SleepQuality,
		Notes:        in.Notes,
		EntryDate:    in.EntryDate,
		TimeOfDay:    in.TimeOfDay,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `
		INSERT INTO mood_entries (mood_level, anxiety_level, energy_level, sleep_quality, notes, entry_date, time_of_day, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.store.DB.ExecContext(ctx, query,
		entry.MoodLevel,
		entry.AnxietyLevel,
		entry.EnergyLevel,
		entry.SleepQuality,
		entry.Notes,
		entry.EntryDate,
		entry.TimeOfDay,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: create mood entry: %v", apperrors.ErrStorage, err)
	}

	entry.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: read new mood entry id: %v", apperrors.ErrStorage, err)
	}

	return entry, nil
}

func (r *moodEntryRepository) GetByID(ctx context.Context, id int64) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	query := `SELECT ` + moodEntryColumns + ` FROM mood_entries WHERE id = ?`
	if err := r.store.DB.GetContext(ctx, &entry, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get mood entry: %v", apperrors.ErrStorage, err)
	}
	return &entry, nil
}

func (r *moodEntryRepository) List(ctx context.Context) ([]*models.MoodEntry, error) {
	var entries []*models.MoodEntry
	query := `
		SELECT ` + moodEntryColumns + `
		FROM mood_entries
		ORDER BY entry_date DESC, created_at DESC
		LIMIT ?`
	if err := r.store.DB.SelectContext(ctx, &entries, query, ListLimit); err != nil {
		return nil, fmt.Errorf("%w: list mood entries: %v", apperrors.ErrStorage, err)
	}
	return entries, nil
}

func (r *moodEntryRepository) ListSince(ctx context.Context, since string) ([]*models.MoodEntry, error) {
	var entries []*models.MoodEntry
	query := `
		SELECT ` + moodEntryColumns + `
		FROM mood_entries
		WHERE entry_date >= ?
		ORDER BY entry_date ASC, created_at ASC`
	if err := r.store.DB.SelectContext(ctx, &entries, query, since); err != nil {
		return nil, fmt.Errorf("%w: list mood entries since %s: %v", apperrors.ErrStorage, since, err)
	}
	return entries, nil
}

func (r *moodEntryRepository) Update(ctx context.Context, id int64, patch *models.UpdateMoodEntryInput) (*models.MoodEntry, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *models.MoodEntry
	err := database.RunInTx(ctx, r.store.DB, func(ctx context.Context, tx *sqlx.Tx) error {
		var entry models.MoodEntry
		query := `SELECT ` + moodEntryColumns + ` FROM mood_entries WHERE id = ?`
		if err := tx.GetContext(ctx, &entry, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("%w: load mood entry for update: %v", apperrors.ErrStorage, err)
		}

		patch.Apply(&entry)
		entry.UpdatedAt = time.Now().UTC()

		update := `
			UPDATE mood_entries
			SET mood_level = ?, anxiety_level = ?, energy_level = ?, sleep_quality = ?, notes = ?, entry_date = ?, time_of_day = ?, updated_at = ?
			WHERE id = ?`
		if _, err := tx.ExecContext(ctx, update,
			entry.MoodLevel,
			entry.AnxietyLevel,
			entry.EnergyLevel,
			entry.SleepQuality,
			entry.Notes,
			entry.EntryDate,
			entry.TimeOfDay,
			entry.UpdatedAt,
			id,
		); err != nil {
			return fmt.Errorf("%w: update mood entry: %v", apperrors.ErrStorage, err)
		}

		updated = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *moodEntryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.store.DB.ExecContext(ctx, `DELETE FROM mood_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: delete mood entry: %v", apperrors.ErrStorage, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete mood entry: %v", apperrors.ErrStorage, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *moodEntryRepository) ListAll(ctx context.Context) ([]*models.MoodEntry, error) {
	var entries []*models.MoodEntry
	query := `SELECT ` + moodEntryColumns + ` FROM mood_entries ORDER BY id ASC`
	if err := r.store.DB.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("%w: list all mood entries: %v", apperrors.ErrStorage, err)
	}
	return entries, nil
}

// Restore inserts an entry keeping its original id, so junction rows that
// reference it stay valid after import. Field validation matches Create.
func (r *moodEntryRepository) Restore(ctx context.Context, entry *models.MoodEntry) error {
	in := &models.CreateMoodEntryInput{
		MoodLevel:    entry.MoodLevel,
		AnxietyLevel: entry.AnxietyLevel,
		EnergyLevel:  entry.EnergyLevel,
		SleepQuality: entry.SleepQuality,
		Notes:        entry.Notes,
		EntryDate:    entry.EntryDate,
		TimeOfDay:    entry.TimeOfDay,
	}
	if err := in.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO mood_entries (id, mood_level, anxiety_level, energy_level, sleep_quality, notes, entry_date, time_of_day, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.store.DB.ExecContext(ctx, query,
		nullID(entry.ID),
		entry.MoodLevel,
		entry.AnxietyLevel,
		entry.EnergyLevel,
		entry.SleepQuality,
		entry.Notes,
		entry.EntryDate,
		entry.TimeOfDay,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: restore mood entry %d: %v", apperrors.ErrStorage, entry.ID, err)
	}
	return nil
}

func (r *moodEntryRepository) DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM mood_entries`); err != nil {
		return fmt.Errorf("%w: clear mood entries: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// nullID passes NULL for a zero id so SQLite assigns the next rowid, and
// the original id otherwise.
func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
