package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newEntriesCommand(version string) *cobra.Command {
	var withEmotions bool

	command := &cobra.Command{
		Use:   "entries",
		Short: "List recent mood entries, newest first",
		RunE: runWithApp(version, func(ctx context.Context, a *app) error {
			entries, err := a.entries.List(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No entries yet. Record one with 'mindwell log'.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTIME\tMOOD\tANXIETY\tENERGY\tSLEEP\tNOTES")
			for _, e := range entries {
				timeOfDay := "-"
				if e.TimeOfDay != nil {
					timeOfDay = *e.TimeOfDay
				}
				notes := ""
				if e.Notes != nil {
					notes = *e.Notes
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
					e.ID, e.EntryDate, timeOfDay,
					e.MoodLevel, e.AnxietyLevel, e.EnergyLevel, e.SleepQuality, notes)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if !withEmotions {
				return nil
			}
			for _, e := range entries {
				links, err := a.entryEmotions.ListByEntry(ctx, e.ID)
				if err != nil {
					return err
				}
				if len(links) == 0 {
					continue
				}
				fmt.Printf("entry #%d:", e.ID)
				for _, link := range links {
					fmt.Printf(" %s(%d)", link.Name, link.Intensity)
				}
				fmt.Println()
			}
			return nil
		}),
	}

	command.Flags().BoolVar(&withEmotions, "emotions", false, "also show each entry's attached emotions")
	return command
}
