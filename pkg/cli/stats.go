package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mindwell-app/mindwell-engine/pkg/models"
	"github.com/mindwell-app/mindwell-engine/pkg/services"
)

func newStatsCommand(version string) *cobra.Command {
	var (
		windowDays int
		weekly     bool
		monthly    bool
		patterns   bool
	)

	command := &cobra.Command{
		Use:   "stats",
		Short: "Show mood trends and emotion analytics",
		Long: `Show per-date scale averages and the most frequent emotions over the
window. Anxiety is displayed as calm (5 minus the recorded level) so
that higher is better across every column.`,
		RunE: runWithApp(version, func(ctx context.Context, a *app) error {
			var (
				trends       []*models.TrendPoint
				emotionStats []*models.EmotionStat
			)

			// The aggregates are independent reads, fetch them together.
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				trends, err = a.analytics.GetTrends(gctx, windowDays)
				return err
			})
			g.Go(func() error {
				var err error
				emotionStats, err = a.analytics.GetEmotionAnalytics(gctx, windowDays)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			if len(trends) == 0 {
				fmt.Println("No entries in the window.")
			} else {
				fmt.Printf("Daily averages, last %d days:\n", effectiveWindow(windowDays))
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "DATE\tMOOD\tCALM\tENERGY\tSLEEP")
				for _, p := range trends {
					fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
						p.EntryDate, p.AvgMood, invertAnxiety(p.AvgAnxiety), p.AvgEnergy, p.AvgSleep)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			if len(emotionStats) > 0 {
				fmt.Println("\nMost frequent emotions:")
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "EMOTION\tCATEGORY\tCOUNT\tAVG INTENSITY")
				for _, e := range emotionStats {
					fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\n", e.Name, e.Category, e.Frequency, e.AvgIntensity)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			if weekly {
				if err := printWeekly(ctx, a); err != nil {
					return err
				}
			}
			if monthly {
				if err := printMonthly(ctx, a); err != nil {
					return err
				}
			}
			if patterns {
				if err := printTimeOfDay(ctx, a); err != nil {
					return err
				}
			}
			return nil
		}),
	}

	command.Flags().IntVar(&windowDays, "days", 0, "window in days (default 30)")
	command.Flags().BoolVar(&weekly, "weekly", false, "also show 12 weeks of ISO-week averages")
	command.Flags().BoolVar(&monthly, "monthly", false, "also show 12 months of averages")
	command.Flags().BoolVar(&patterns, "time-of-day", false, "also show morning/afternoon/evening averages")
	return command
}

func printWeekly(ctx context.Context, a *app) error {
	rows, err := a.analytics.GetWeeklyTrends(ctx)
	if err != nil {
		return err
	}
	fmt.Println("\nWeekly averages:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WEEK\tMOOD\tCALM\tENERGY\tSLEEP")
	for _, p := range rows {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
			p.Week, p.AvgMood, invertAnxiety(p.AvgAnxiety), p.AvgEnergy, p.AvgSleep)
	}
	return w.Flush()
}

func printMonthly(ctx context.Context, a *app) error {
	rows, err := a.analytics.GetMonthlyTrends(ctx)
	if err != nil {
		return err
	}
	fmt.Println("\nMonthly averages:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tMOOD\tCALM\tENERGY\tSLEEP")
	for _, p := range rows {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
			p.Month, p.AvgMood, invertAnxiety(p.AvgAnxiety), p.AvgEnergy, p.AvgSleep)
	}
	return w.Flush()
}

func printTimeOfDay(ctx context.Context, a *app) error {
	rows, err := a.analytics.GetTimeOfDayPatterns(ctx)
	if err != nil {
		return err
	}
	fmt.Println("\nTime-of-day averages:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tENTRIES\tMOOD\tCALM\tENERGY\tSLEEP")
	for _, p := range rows {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\n",
			p.TimeOfDay, p.EntryCount, p.AvgMood, invertAnxiety(p.AvgAnxiety), p.AvgEnergy, p.AvgSleep)
	}
	return w.Flush()
}

// invertAnxiety maps an average anxiety level onto the shared
// higher-is-better axis. Levels run 1 to 4, so calm = 5 - anxiety.
func invertAnxiety(avg float64) float64 {
	return float64(models.ScaleMax+1) - avg
}

func effectiveWindow(windowDays int) int {
	if windowDays <= 0 {
		return services.DefaultTrendWindowDays
	}
	return windowDays
}
