package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
	"github.com/mindwell-app/mindwell-engine/pkg/database"
	"github.com/mindwell-app/mindwell-engine/pkg/jsonutil"
	"github.com/mindwell-app/mindwell-engine/pkg/logging"
	"github.com/mindwell-app/mindwell-engine/pkg/models"
	"github.com/mindwell-app/mindwell-engine/pkg/repositories"
)

// BackupService serializes the full data set to a single JSON document and
// restores from one. The emotion and activity catalogs are never cleared
// or overwritten by a restore.
type BackupService interface {
	// Export assembles the full current contents of the mutable tables
	// plus the emotion catalog.
	Export(ctx context.Context) (*models.BackupDocument, error)

	// ExportJSON is Export rendered as indented JSON, suitable for a file
	// download.
	ExportJSON(ctx context.Context) ([]byte, error)

	// Import clears the mutable tables and re-inserts the document's
	// records, preserving their ids so junction references stay coherent.
	// The clear is atomic; the re-inserts are best-effort, so callers
	// should verify the returned counts against the document.
	Import(ctx context.Context, data []byte) (*models.ImportCounts, error)
}

type backupService struct {
	store          *database.Store
	entries        repositories.MoodEntryRepository
	emotions       repositories.CatalogRepository
	entryEmotions  repositories.EntryEmotionRepository
	medications    repositories.MedicationRepository
	medicationLogs repositories.MedicationLogRepository
	logger         *zap.Logger
}

// NewBackupService creates a new BackupService.
func NewBackupService(
	store *database.Store,
	entries repositories.MoodEntryRepository,
	emotions repositories.CatalogRepository,
	entryEmotions repositories.EntryEmotionRepository,
	medications repositories.MedicationRepository,
	medicationLogs repositories.MedicationLogRepository,
	logger *zap.Logger,
) BackupService {
	return &backupService{
		store:          store,
		entries:        entries,
		emotions:       emotions,
		entryEmotions:  entryEmotions,
		medications:    medications,
		medicationLogs: medicationLogs,
		logger:         logger.Named("backup-service"),
	}
}

var _ BackupService = (*backupService)(nil)

func (s *backupService) Export(ctx context.Context) (*models.BackupDocument, error) {
	doc := &models.BackupDocument{
		ExportedAt: time.Now().UTC(),
		ExportID:   uuid.New(),
	}

	version, err := database.SchemaVersion(s.store.DB.DB)
	if err != nil {
		return nil, fmt.Errorf("read schema version for export: %w", err)
	}
	doc.Version = int(version)

	if doc.MoodEntries, err = s.entries.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("export mood entries: %w", err)
	}
	if doc.Emotions, err = s.emotions.List(ctx); err != nil {
		return nil, fmt.Errorf("export emotions: %w", err)
	}
	if doc.EntryEmotions, err = s.entryEmotions.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("export entry emotions: %w", err)
	}
	if doc.Medications, err = s.medications.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("export medications: %w", err)
	}
	if doc.MedicationLogs, err = s.medicationLogs.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("export medication logs: %w", err)
	}

	s.logger.Info("exported data set",
		zap.Int("mood_entries", len(doc.MoodEntries)),
		zap.Int("medications", len(doc.Medications)),
		zap.String("export_id", doc.ExportID.String()))
	return doc, nil
}

func (s *backupService) ExportJSON(ctx context.Context) ([]byte, error) {
	doc, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup document: %w", err)
	}
	return data, nil
}

// importMedication tolerates the 0/1 integers that the SQLite-backed REST
// facade emits for is_active. The outer field shadows the embedded one
// during decoding.
type importMedication struct {
	models.Medication
	IsActive json.RawMessage `json:"is_active"`
}

// importDocument mirrors BackupDocument with the tolerant medication shape.
type importDocument struct {
	MoodEntries    []*models.MoodEntry     `json:"mood_entries"`
	EntryEmotions  []*models.EntryEmotion  `json:"mood_entry_emotions"`
	Medications    []*importMedication     `json:"medications"`
	MedicationLogs []*models.MedicationLog `json:"medication_logs"`
}

func (s *backupService) Import(ctx context.Context, data []byte) (*models.ImportCounts, error) {
	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
	}

	// The clear is one transaction so a reader never sees half-removed
	// state. The re-inserts that follow are individually transactional
	// but not atomic as a whole.
	err := database.RunInTx(ctx, s.store.DB, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.medicationLogs.DeleteAllTx(ctx, tx); err != nil {
			return err
		}
		if err := s.medications.DeleteAllTx(ctx, tx); err != nil {
			return err
		}
		if err := s.entryEmotions.DeleteAllTx(ctx, tx); err != nil {
			return err
		}
		return s.entries.DeleteAllTx(ctx, tx)
	})
	if err != nil {
		return nil, fmt.Errorf("clear mutable tables: %w", err)
	}

	counts := &models.ImportCounts{}

	for _, entry := range doc.MoodEntries {
		if err := s.entries.Restore(ctx, entry); err != nil {
			s.logger.Warn("mood entry restore failed",
				zap.Int64("id", entry.ID),
				zap.String("entry_date", entry.EntryDate),
				zap.String("notes", logging.NotePreview(entry.Notes)),
				zap.Error(err))
			return counts, fmt.Errorf("restore mood entry %d: %w", entry.ID, err)
		}
		counts.MoodEntries++
	}
	for _, link := range doc.EntryEmotions {
		if err := s.entryEmotions.Restore(ctx, link); err != nil {
			return counts, fmt.Errorf("restore entry emotion %d: %w", link.ID, err)
		}
		counts.EntryEmotions++
	}
	for _, m := range doc.Medications {
		med := m.Medication
		active, err := jsonutil.FlexibleBoolValue(m.IsActive)
		if err != nil {
			return counts, fmt.Errorf("%w: medication %d is_active: %v", apperrors.ErrParse, med.ID, err)
		}
		med.IsActive = active
		if err := s.medications.Restore(ctx, &med); err != nil {
			s.logger.Warn("medication restore failed",
				zap.Int64("id", med.ID),
				zap.String("name", logging.TruncateField(med.Name)),
				zap.Error(err))
			return counts, fmt.Errorf("restore medication %d: %w", med.ID, err)
		}
		counts.Medications++
	}
	for _, log := range doc.MedicationLogs {
		if err := s.medicationLogs.Restore(ctx, log); err != nil {
			return counts, fmt.Errorf("restore medication log %d: %w", log.ID, err)
		}
		counts.MedicationLogs++
	}

	s.logger.Info("imported data set",
		zap.Int("mood_entries", counts.MoodEntries),
		zap.Int("mood_entry_emotions", counts.EntryEmotions),
		zap.Int("medications", counts.Medications),
		zap.Int("medication_logs", counts.MedicationLogs))
	return counts, nil
}
