package models

import (
	"time"

	"github.com/google/uuid"
)

// BackupDocument is the full-state export format. The top-level keys and
// per-entity field names match the tables they mirror, so a document
// exported here round-trips through Import, and documents produced by
// older clients remain readable.
type BackupDocument struct {
	MoodEntries    []*MoodEntry     `json:"mood_entries"`
	Emotions       []*CatalogEntry  `json:"emotions"`
	EntryEmotions  []*EntryEmotion  `json:"mood_entry_emotions"`
	Medications    []*Medication    `json:"medications"`
	MedicationLogs []*MedicationLog `json:"medication_logs"`
	ExportedAt     time.Time        `json:"exported_at"`
	Version        int              `json:"version"`
	ExportID       uuid.UUID        `json:"export_id,omitempty"`
}

// ImportCounts reports how many records of each mutable table were
// restored. Import is best-effort, so callers verify these against the
// source document.
type ImportCounts struct {
	MoodEntries    int `json:"mood_entries"`
	EntryEmotions  int `json:"mood_entry_emotions"`
	Medications    int `json:"medications"`
	MedicationLogs int `json:"medication_logs"`
}
