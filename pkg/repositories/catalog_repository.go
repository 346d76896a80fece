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

// CatalogRepository provides data access for a labeled reference catalog.
// Emotions and activities share the shape and the semantics, so one
// implementation serves both, parameterized by table. Catalogs have no
// delete operation: reference rows are never cleared through normal flows.
type CatalogRepository interface {
	// List returns the whole catalog, category ascending then name ascending.
	List(ctx context.Context) ([]*models.CatalogEntry, error)
	GetByID(ctx context.Context, id int64) (*models.CatalogEntry, error)
	Count(ctx context.Context) (int, error)
	// Insert adds catalog rows preserving their ids. Seed and import paths
	// only.
	Insert(ctx context.Context, entries []*models.CatalogEntry) error
}

type catalogRepository struct {
	store *database.Store
	table string
}

// NewEmotionRepository creates the CatalogRepository backed by the
// emotions table.
func NewEmotionRepository(store *database.Store) CatalogRepository {
	return &catalogRepository{store: store, table: "emotions"}
}

// NewActivityRepository creates the CatalogRepository backed by the
// activities table.
func NewActivityRepository(store *database.Store) CatalogRepository {
	return &catalogRepository{store: store, table: "activities"}
}

var _ CatalogRepository = (*catalogRepository)(nil)

func (r *catalogRepository) List(ctx context.Context) ([]*models.CatalogEntry, error) {
	var entries []*models.CatalogEntry
	query := fmt.Sprintf(`
		SELECT id, name, category, color, icon, created_at, updated_at
		FROM %s
		ORDER BY category ASC, name ASC`, r.table)
	if err := r.store.DB.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", apperrors.ErrStorage, r.table, err)
	}
	return entries, nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id int64) (*models.CatalogEntry, error) {
	var entry models.CatalogEntry
	query := fmt.Sprintf(`SELECT id, name, category, color, icon, created_at, updated_at FROM %s WHERE id = ?`, r.table)
	if err := r.store.DB.GetContext(ctx, &entry, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get %s row: %v", apperrors.ErrStorage, r.table, err)
	}
	return &entry, nil
}

func (r *catalogRepository) Count(ctx context.Context) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.table)
	if err := r.store.DB.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("%w: count %s: %v", apperrors.ErrStorage, r.table, err)
	}
	return count, nil
}

func (r *catalogRepository) Insert(ctx context.Context, entries []*models.CatalogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return database.RunInTx(ctx, r.store.DB, func(ctx context.Context, tx *sqlx.Tx) error {
		query := fmt.Sprintf(`
			INSERT INTO %s (id, name, category, color, icon, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, r.table)

		now := time.Now().UTC()
		for _, entry := range entries {
			createdAt := entry.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}
			updatedAt := entry.UpdatedAt
			if updatedAt.IsZero() {
				updatedAt = now
			}
			if _, err := tx.ExecContext(ctx, query,
				entry.ID, entry.Name, entry.Category, entry.Color, entry.Icon, createdAt, updatedAt,
			); err != nil {
				return fmt.Errorf("%w: insert %s row %q: %v", apperrors.ErrStorage, r.table, entry.Name, err)
			}
		}
		return nil
	})
}
