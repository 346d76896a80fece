package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
	"github.com/mindwell-app/mindwell-engine/pkg/models"
)

func newLogCommand(version string) *cobra.Command {
	var (
		mood      int
		anxiety   int
		energy    int
		sleep     int
		date      string
		timeOfDay string
		notes     string
		emotions  []string
		acts      []int64
	)

	command := &cobra.Command{
		Use:   "log",
		Short: "Record a mood entry, optionally with emotions and activities",
		Example: `  mindwell log --mood 3 --anxiety 2 --energy 3 --sleep 4
  mindwell log --mood 2 --anxiety 4 --energy 1 --sleep 2 --time-of-day evening --emotion 23:4 --activity 3`,
		RunE: runWithApp(version, func(ctx context.Context, a *app) error {
			in := &models.CreateMoodEntryInput{
				MoodLevel:    mood,
				AnxietyLevel: anxiety,
				EnergyLevel:  energy,
				SleepQuality: sleep,
				EntryDate:    date,
			}
			if date == "" {
				in.EntryDate = time.Now().Format("2006-01-02")
			}
			if notes != "" {
				in.Notes = &notes
			}
			if timeOfDay != "" {
				in.TimeOfDay = &timeOfDay
			}

			entry, err := a.entries.Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Printf("Logged entry #%d for %s\n", entry.ID, entry.EntryDate)

			for _, spec := range emotions {
				emotionID, intensity, err := parseEmotionSpec(spec)
				if err != nil {
					return err
				}
				link, err := a.entryEmotions.Create(ctx, &models.CreateEntryEmotionInput{
					MoodEntryID: entry.ID,
					EmotionID:   emotionID,
					Intensity:   intensity,
				})
				if err != nil {
					return fmt.Errorf("attach emotion %d: %w", emotionID, err)
				}
				fmt.Printf("  emotion: %s (intensity %d)\n", link.Name, link.Intensity)
			}

			for _, activityID := range acts {
				link, err := a.entryActivities.Create(ctx, &models.CreateEntryActivityInput{
					MoodEntryID: entry.ID,
					ActivityID:  activityID,
				})
				if err != nil {
					return fmt.Errorf("attach activity %d: %w", activityID, err)
				}
				fmt.Printf("  activity: %s\n", link.Name)
			}
			return nil
		}),
	}

	command.Flags().IntVar(&mood, "mood", 0, "mood level (1-4)")
	command.Flags().IntVar(&anxiety, "anxiety", 0, "anxiety level (1-4, higher is worse)")
	command.Flags().IntVar(&energy, "energy", 0, "energy level (1-4)")
	command.Flags().IntVar(&sleep, "sleep", 0, "sleep quality (1-4)")
	command.Flags().StringVar(&date, "date", "", "entry date as YYYY-MM-DD (default today)")
	command.Flags().StringVar(&timeOfDay, "time-of-day", "", "morning, afternoon or evening")
	command.Flags().StringVar(&notes, "notes", "", "free-form notes")
	command.Flags().StringArrayVar(&emotions, "emotion", nil, "emotion to attach as id:intensity (repeatable)")
	command.Flags().Int64SliceVar(&acts, "activity", nil, "activity id to attach (repeatable)")
	_ = command.MarkFlagRequired("mood")
	_ = command.MarkFlagRequired("anxiety")
	_ = command.MarkFlagRequired("energy")
	_ = command.MarkFlagRequired("sleep")

	return command
}

// parseEmotionSpec splits an "id:intensity" flag value.
func parseEmotionSpec(spec string) (int64, int, error) {
	idPart, intensityPart, found := strings.Cut(spec, ":")
	if !found {
		return 0, 0, fmt.Errorf("%w: emotion must be id:intensity, got %q", apperrors.ErrValidation, spec)
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad emotion id %q", apperrors.ErrValidation, idPart)
	}
	intensity, err := strconv.Atoi(intensityPart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad intensity %q", apperrors.ErrValidation, intensityPart)
	}
	return id, intensity, nil
}
