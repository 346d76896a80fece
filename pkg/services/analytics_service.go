package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mindwell-app/mindwell-engine/pkg/models"
	"github.com/mindwell-app/mindwell-engine/pkg/repositories"
)

// Default analytics windows, matching what the tracking UI requests.
const (
	DefaultTrendWindowDays = 30
	weeklyWindowDays       = 84
	monthlyWindowMonths    = 12
	timeOfDayWindowDays    = 30
)

// AnalyticsService derives read-side aggregates over mood entries and
// their emotion links. Nothing is persisted; every call recomputes over
// the window. Anxiety averages are returned raw - the "5 - value" display
// inversion belongs to presentation, not to this service.
type AnalyticsService interface {
	// GetTrends returns one row per distinct entry date within the last
	// windowDays days, ascending by date, with unweighted means of the
	// four scales.
	GetTrends(ctx context.Context, windowDays int) ([]*models.TrendPoint, error)

	// GetWeeklyTrends aggregates the last 12 weeks by ISO week.
	GetWeeklyTrends(ctx context.Context) ([]*models.WeeklyTrend, error)

	// GetMonthlyTrends aggregates the last 12 months by calendar month.
	GetMonthlyTrends(ctx context.Context) ([]*models.MonthlyTrend, error)

	// GetTimeOfDayPatterns aggregates the last 30 days of entries that
	// carry a time_of_day, ordered morning, afternoon, evening; values
	// outside the known set sort last.
	GetTimeOfDayPatterns(ctx context.Context) ([]*models.TimeOfDayPattern, error)

	// GetEmotionAnalytics returns per-emotion frequency and mean intensity
	// over links whose owning entry falls in the window, most frequent
	// first, mean intensity breaking ties.
	GetEmotionAnalytics(ctx context.Context, windowDays int) ([]*models.EmotionStat, error)
}

type analyticsService struct {
	entries       repositories.MoodEntryRepository
	entryEmotions repositories.EntryEmotionRepository
	emotions      repositories.CatalogRepository
	logger        *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(
	entries repositories.MoodEntryRepository,
	entryEmotions repositories.EntryEmotionRepository,
	emotions repositories.CatalogRepository,
	logger *zap.Logger,
) AnalyticsService {
	return &analyticsService{
		entries:       entries,
		entryEmotions: entryEmotions,
		emotions:      emotions,
		logger:        logger.Named("analytics-service"),
	}
}

var _ AnalyticsService = (*analyticsService)(nil)

// scaleAccumulator collects the running sums for one aggregation bucket.
type scaleAccumulator struct {
	mood, anxiety, energy, sleep int
	count                        int
}

func (a *scaleAccumulator) add(e *models.MoodEntry) {
	a.mood += e.MoodLevel
	a.anxiety += e.AnxietyLevel
	a.energy += e.EnergyLevel
	a.sleep += e.SleepQuality
	a.count++
}

func (a *scaleAccumulator) averages() models.ScaleAverages {
	n := float64(a.count)
	return models.ScaleAverages{
		AvgMood:    float64(a.mood) / n,
		AvgAnxiety: float64(a.anxiety) / n,
		AvgEnergy:  float64(a.energy) / n,
		AvgSleep:   float64(a.sleep) / n,
	}
}

func (s *analyticsService) GetTrends(ctx context.Context, windowDays int) ([]*models.TrendPoint, error) {
	if windowDays <= 0 {
		windowDays = DefaultTrendWindowDays
	}

	entries, err := s.entries.ListSince(ctx, cutoffDate(windowDays))
	if err != nil {
		return nil, fmt.Errorf("load entries for trends: %w", err)
	}

	buckets := make(map[string]*scaleAccumulator)
	for _, e := range entries {
		acc := buckets[e.EntryDate]
		if acc == nil {
			acc = &scaleAccumulator{}
			buckets[e.EntryDate] = acc
		}
		acc.add(e)
	}

	points := make([]*models.TrendPoint, 0, len(buckets))
	for date, acc := range buckets {
		points = append(points, &models.TrendPoint{
			EntryDate:     date,
			ScaleAverages: acc.averages(),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].EntryDate < points[j].EntryDate })

	s.logger.Debug("computed trend aggregates",
		zap.Int("window_days", windowDays),
		zap.Int("dates", len(points)))
	return points, nil
}

func (s *analyticsService) GetWeeklyTrends(ctx context.Context) ([]*models.WeeklyTrend, error) {
	entries, err := s.entries.ListSince(ctx, cutoffDate(weeklyWindowDays))
	if err != nil {
		return nil, fmt.Errorf("load entries for weekly trends: %w", err)
	}

	buckets := make(map[string]*scaleAccumulator)
	for _, e := range entries {
		week, err := isoWeekKey(e.EntryDate)
		if err != nil {
			return nil, err
		}
		acc := buckets[week]
		if acc == nil {
			acc = &scaleAccumulator{}
			buckets[week] = acc
		}
		acc.add(e)
	}

	trends := make([]*models.WeeklyTrend, 0, len(buckets))
	for week, acc := range buckets {
		trends = append(trends, &models.WeeklyTrend{
			Week:          week,
			ScaleAverages: acc.averages(),
		})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Week < trends[j].Week })
	return trends, nil
}

func (s *analyticsService) GetMonthlyTrends(ctx context.Context) ([]*models.MonthlyTrend, error) {
	cutoff := time.Now().UTC().AddDate(0, -monthlyWindowMonths, 0).Format("2006-01-02")
	entries, err := s.entries.ListSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("load entries for monthly trends: %w", err)
	}

	buckets := make(map[string]*scaleAccumulator)
	for _, e := range entries {
		// entry_date is validated YYYY-MM-DD, so the month key is a prefix.
		month := e.EntryDate[:7]
		acc := buckets[month]
		if acc == nil {
			acc = &scaleAccumulator{}
			buckets[month] = acc
		}
		acc.add(e)
	}

	trends := make([]*models.MonthlyTrend, 0, len(buckets))
	for month, acc := range buckets {
		trends = append(trends, &models.MonthlyTrend{
			Month:         month,
			ScaleAverages: acc.averages(),
		})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Month < trends[j].Month })
	return trends, nil
}

func (s *analyticsService) GetTimeOfDayPatterns(ctx context.Context) ([]*models.TimeOfDayPattern, error) {
	entries, err := s.entries.ListSince(ctx, cutoffDate(timeOfDayWindowDays))
	if err != nil {
		return nil, fmt.Errorf("load entries for time-of-day patterns: %w", err)
	}

	buckets := make(map[string]*scaleAccumulator)
	for _, e := range entries {
		if e.TimeOfDay == nil {
			continue
		}
		acc := buckets[*e.TimeOfDay]
		if acc == nil {
			acc = &scaleAccumulator{}
			buckets[*e.TimeOfDay] = acc
		}
		acc.add(e)
	}

	patterns := make([]*models.TimeOfDayPattern, 0, len(buckets))
	for timeOfDay, acc := range buckets {
		patterns = append(patterns, &models.TimeOfDayPattern{
			TimeOfDay:     timeOfDay,
			ScaleAverages: acc.averages(),
			EntryCount:    acc.count,
		})
	}
	sort.Slice(patterns, func(i, j int) bool {
		ri, rj := timeOfDayRank(patterns[i].TimeOfDay), timeOfDayRank(patterns[j].TimeOfDay)
		if ri != rj {
			return ri < rj
		}
		return patterns[i].TimeOfDay < patterns[j].TimeOfDay
	})
	return patterns, nil
}

func (s *analyticsService) GetEmotionAnalytics(ctx context.Context, windowDays int) ([]*models.EmotionStat, error) {
	if windowDays <= 0 {
		windowDays = DefaultTrendWindowDays
	}

	links, err := s.entryEmotions.ListSince(ctx, cutoffDate(windowDays))
	if err != nil {
		return nil, fmt.Errorf("load emotion links for analytics: %w", err)
	}

	type emotionAccumulator struct {
		intensity int
		count     int
	}
	buckets := make(map[int64]*emotionAccumulator)
	for _, link := range links {
		acc := buckets[link.EmotionID]
		if acc == nil {
			acc = &emotionAccumulator{}
			buckets[link.EmotionID] = acc
		}
		acc.intensity += link.Intensity
		acc.count++
	}

	stats := make([]*models.EmotionStat, 0, len(buckets))
	for emotionID, acc := range buckets {
		emotion, err := s.emotions.GetByID(ctx, emotionID)
		if err != nil {
			return nil, fmt.Errorf("load emotion %d for analytics: %w", emotionID, err)
		}
		stats = append(stats, &models.EmotionStat{
			Name:         emotion.Name,
			Category:     emotion.Category,
			Color:        emotion.Color,
			AvgIntensity: float64(acc.intensity) / float64(acc.count),
			Frequency:    acc.count,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Frequency != stats[j].Frequency {
			return stats[i].Frequency > stats[j].Frequency
		}
		return stats[i].AvgIntensity > stats[j].AvgIntensity
	})
	return stats, nil
}

// cutoffDate returns the YYYY-MM-DD lower bound for a rolling day window.
func cutoffDate(windowDays int) string {
	return time.Now().UTC().AddDate(0, 0, -windowDays).Format("2006-01-02")
}

// isoWeekKey buckets a date like "2024-02-01" into "2024-W05".
func isoWeekKey(entryDate string) (string, error) {
	d, err := time.Parse("2006-01-02", entryDate)
	if err != nil {
		return "", fmt.Errorf("invalid entry date %q: %w", entryDate, err)
	}
	year, week := d.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week), nil
}

func timeOfDayRank(v string) int {
	switch v {
	case models.TimeOfDayMorning:
		return 0
	case models.TimeOfDayAfternoon:
		return 1
	case models.TimeOfDayEvening:
		return 2
	}
	return 3
}
