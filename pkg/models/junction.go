package models

import (
	"fmt"
	"time"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
)

// Intensity bounds for entry-emotion links.
const (
	IntensityMin = 1
	IntensityMax = 5
)

// EntryEmotion links a mood entry to an emotion from the catalog with a
// per-link intensity. Stored in the mood_entry_emotions table.
type EntryEmotion struct {
	ID          int64     `db:"id" json:"id"`
	MoodEntryID int64     `db:"mood_entry_id" json:"mood_entry_id"`
	EmotionID   int64     `db:"emotion_id" json:"emotion_id"`
	Intensity   int       `db:"intensity" json:"intensity"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// EntryEmotionDetail is an entry-emotion link joined with the emotion's
// display fields.
type EntryEmotionDetail struct {
	EntryEmotion
	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`
	Color    string `db:"color" json:"color"`
}

// CreateEntryEmotionInput holds the caller-supplied fields for a new link.
type CreateEntryEmotionInput struct {
	MoodEntryID int64 `json:"mood_entry_id"`
	EmotionID   int64 `json:"emotion_id"`
	Intensity   int   `json:"intensity"`
}

// Validate checks the input against the declared field constraints.
func (in *CreateEntryEmotionInput) Validate() error {
	if in.MoodEntryID <= 0 {
		return fmt.Errorf("%w: mood_entry_id is required", apperrors.ErrValidation)
	}
	if in.EmotionID <= 0 {
		return fmt.Errorf("%w: emotion_id is required", apperrors.ErrValidation)
	}
	if in.Intensity < IntensityMin || in.Intensity > IntensityMax {
		return fmt.Errorf("%w: intensity must be between %d and %d, got %d",
			apperrors.ErrValidation, IntensityMin, IntensityMax, in.Intensity)
	}
	return nil
}

// EntryActivity links a mood entry to an activity from the catalog.
// Stored in the mood_entry_activities table. No per-link attributes.
type EntryActivity struct {
	ID          int64     `db:"id" json:"id"`
	MoodEntryID int64     `db:"mood_entry_id" json:"mood_entry_id"`
	ActivityID  int64     `db:"activity_id" json:"activity_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// EntryActivityDetail is an entry-activity link joined with the activity's
// display fields.
type EntryActivityDetail struct {
	EntryActivity
	Name     string  `db:"name" json:"name"`
	Category string  `db:"category" json:"category"`
	Color    string  `db:"color" json:"color"`
	Icon     *string `db:"icon" json:"icon,omitempty"`
}

// CreateEntryActivityInput holds the caller-supplied fields for a new link.
type CreateEntryActivityInput struct {
	MoodEntryID int64 `json:"mood_entry_id"`
	ActivityID  int64 `json:"activity_id"`
}

// Validate checks the input against the declared field constraints.
func (in *CreateEntryActivityInput) Validate() error {
	if in.MoodEntryID <= 0 {
		return fmt.Errorf("%w: mood_entry_id is required", apperrors.ErrValidation)
	}
	if in.ActivityID <= 0 {
		return fmt.Errorf("%w: activity_id is required", apperrors.ErrValidation)
	}
	return nil
}
