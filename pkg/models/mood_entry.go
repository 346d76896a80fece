package models

import (
	"fmt"
	"time"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
)

// Time-of-day values for mood entries.
const (
	TimeOfDayMorning   = "morning"
	TimeOfDayAfternoon = "afternoon"
	TimeOfDayEvening   = "evening"
)

// Scale bounds for the four tracked ratings. All four scales share the
// same 1-4 range; anxiety is stored raw and only inverted for display.
const (
	ScaleMin = 1
	ScaleMax = 4
)

// MoodEntry represents a single logged mood observation.
// Stored in the mood_entries table. Multiple entries per calendar date
// are allowed.
type MoodEntry struct {
	ID           int64     `db:"id" json:"id"`
	MoodLevel    int       `db:"mood_level" json:"mood_level"`
	AnxietyLevel int       `db:"anxiety_level" json:"anxiety_level"`
	EnergyLevel  int       `db:"energy_level" json:"energy_level"`
	SleepQuality int       `db:"sleep_quality" json:"sleep_quality"`
	Notes        *string   `db:"notes" json:"notes,omitempty"`
	EntryDate    string    `db:"entry_date" json:"entry_date"`
	TimeOfDay    *string   `db:"time_of_day" json:"time_of_day,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CreateMoodEntryInput holds the caller-supplied fields for a new mood entry.
type CreateMoodEntryInput struct {
	MoodLevel    int     `json:"mood_level"`
	AnxietyLevel int     `json:"anxiety_level"`
	EnergyLevel  int     `json:"energy_level"`
	SleepQuality int     `json:"sleep_quality"`
	Notes        *string `json:"notes,omitempty"`
	EntryDate    string  `json:"entry_date"`
	TimeOfDay    *string `json:"time_of_day,omitempty"`
}

// Validate checks the input against the declared field constraints.
func (in *CreateMoodEntryInput) Validate() error {
	if err := validateScale("mood_level", in.MoodLevel); err != nil {
		return err
	}
	if err := validateScale("anxiety_level", in.AnxietyLevel); err != nil {
		return err
	}
	if err := validateScale("energy_level", in.EnergyLevel); err != nil {
		return err
	}
	if err := validateScale("sleep_quality", in.SleepQuality); err != nil {
		return err
	}
	if err := validateEntryDate(in.EntryDate); err != nil {
		return err
	}
	return validateTimeOfDay(in.TimeOfDay)
}

// UpdateMoodEntryInput is a merge patch for an existing mood entry.
// Nil fields are left unchanged.
type UpdateMoodEntryInput struct {
	MoodLevel    *int    `json:"mood_level,omitempty"`
	AnxietyLevel *int    `json:"anxiety_level,omitempty"`
	EnergyLevel  *int    `json:"energy_level,omitempty"`
	SleepQuality *int    `json:"sleep_quality,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	EntryDate    *string `json:"entry_date,omitempty"`
	TimeOfDay    *string `json:"time_of_day,omitempty"`
}

// Validate checks every present patch field against its constraints.
func (in *UpdateMoodEntryInput) Validate() error {
	scales := map[string]*int{
		"mood_level":    in.MoodLevel,
		"anxiety_level": in.AnxietyLevel,
		"energy_level":  in.EnergyLevel,
		"sleep_quality": in.SleepQuality,
	}
	for field, v := range scales {
		if v == nil {
			continue
		}
		if err := validateScale(field, *v); err != nil {
			return err
		}
	}
	if in.EntryDate != nil {
		if err := validateEntryDate(*in.EntryDate); err != nil {
			return err
		}
	}
	return validateTimeOfDay(in.TimeOfDay)
}

// Apply merges the patch onto an existing entry.
func (in *UpdateMoodEntryInput) Apply(entry *MoodEntry) {
	if in.MoodLevel != nil {
		entry.MoodLevel = *in.MoodLevel
	}
	if in.AnxietyLevel != nil {
		entry.AnxietyLevel = *in.AnxietyLevel
	}
	if in.EnergyLevel != nil {
		entry.EnergyLevel = *in.EnergyLevel
	}
	if in.SleepQuality != nil {
		entry.SleepQuality = *in.SleepQuality
	}
	if in.Notes != nil {
		entry.Notes = in.Notes
	}
	if in.EntryDate != nil {
		entry.EntryDate = *in.EntryDate
	}
	if in.TimeOfDay != nil {
		entry.TimeOfDay = in.TimeOfDay
	}
}

func validateScale(field string, value int) error {
	if value < ScaleMin || value > ScaleMax {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d",
			apperrors.ErrValidation, field, ScaleMin, ScaleMax, value)
	}
	return nil
}

func validateEntryDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: entry_date must be YYYY-MM-DD, got %q",
			apperrors.ErrValidation, date)
	}
	return nil
}

func validateTimeOfDay(v *string) error {
	if v == nil {
		return nil
	}
	switch *v {
	case TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening:
		return nil
	}
	return fmt.Errorf("%w: time_of_day must be one of morning, afternoon, evening, got %q",
		apperrors.ErrValidation, *v)
}
