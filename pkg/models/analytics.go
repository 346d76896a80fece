package models

// ScaleAverages holds the unweighted means of the four tracked scales for
// one aggregation bucket. Anxiety is the raw stored average; the display
// inversion (5 - value) is a presentation concern, applied by callers.
type ScaleAverages struct {
	AvgMood    float64 `json:"avg_mood"`
	AvgAnxiety float64 `json:"avg_anxiety"`
	AvgEnergy  float64 `json:"avg_energy"`
	AvgSleep   float64 `json:"avg_sleep"`
}

// TrendPoint is the per-date aggregate of all entries on one calendar date.
type TrendPoint struct {
	EntryDate string `json:"entry_date"`
	ScaleAverages
}

// WeeklyTrend is the per-ISO-week aggregate, keyed like "2024-W05".
type WeeklyTrend struct {
	Week string `json:"week"`
	ScaleAverages
}

// MonthlyTrend is the per-month aggregate, keyed like "2024-01".
type MonthlyTrend struct {
	Month string `json:"month"`
	ScaleAverages
}

// TimeOfDayPattern is the aggregate of entries sharing a time_of_day value.
type TimeOfDayPattern struct {
	TimeOfDay string `json:"time_of_day"`
	ScaleAverages
	EntryCount int `json:"entry_count"`
}

// EmotionStat is the windowed frequency and mean intensity for one emotion.
type EmotionStat struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Color        string  `json:"color"`
	AvgIntensity float64 `json:"avg_intensity"`
	Frequency    int     `json:"frequency"`
}
