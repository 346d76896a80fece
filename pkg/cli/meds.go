package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
	"github.com/mindwell-app/mindwell-engine/pkg/models"
)

func newMedsCommand(version string) *cobra.Command {
	medsCommand := &cobra.Command{
		Use:   "meds",
		Short: "Manage medications and dose logs",
	}

	medsCommand.AddCommand(
		newMedsAddCommand(version),
		newMedsListCommand(version),
		newMedsTakeCommand(version),
		newMedsLogCommand(version),
	)
	return medsCommand
}

func newMedsAddCommand(version string) *cobra.Command {
	var (
		dosage    string
		frequency string
	)

	command := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a medication",
		Args:  cobra.ExactArgs(1),
	}
	command.RunE = runWithAppArgs(version, func(ctx context.Context, a *app, args []string) error {
		in := &models.CreateMedicationInput{Name: args[0], IsActive: true}
		if dosage != "" {
			in.Dosage = &dosage
		}
		if frequency != "" {
			in.Frequency = &frequency
		}
		med, err := a.medications.Create(ctx, in)
		if err != nil {
			return err
		}
		fmt.Printf("Added medication #%d: %s\n", med.ID, med.Name)
		return nil
	})

	command.Flags().StringVar(&dosage, "dosage", "", "dose per intake, e.g. 50mg")
	command.Flags().StringVar(&frequency, "frequency", "", "schedule, e.g. daily")
	return command
}

func newMedsListCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active medications",
		RunE: runWithApp(version, func(ctx context.Context, a *app) error {
			meds, err := a.medications.List(ctx)
			if err != nil {
				return err
			}
			if len(meds) == 0 {
				fmt.Println("No active medications.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDOSAGE\tFREQUENCY")
			for _, m := range meds {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					m.ID, m.Name, strOrDash(m.Dosage), strOrDash(m.Frequency))
			}
			return w.Flush()
		}),
	}
}

func newMedsTakeCommand(version string) *cobra.Command {
	var (
		at    string
		notes string
	)

	command := &cobra.Command{
		Use:   "take <medication-id>",
		Short: "Record that a dose was taken",
		Args:  cobra.ExactArgs(1),
	}
	command.RunE = runWithAppArgs(version, func(ctx context.Context, a *app, args []string) error {
		medicationID, err := parseID(args[0])
		if err != nil {
			return err
		}
		takenAt := time.Now()
		if at != "" {
			takenAt, err = time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("%w: --at must be RFC 3339, got %q", apperrors.ErrValidation, at)
			}
		}
		in := &models.CreateMedicationLogInput{MedicationID: medicationID, TakenAt: takenAt}
		if notes != "" {
			in.Notes = &notes
		}
		log, err := a.medicationLogs.Create(ctx, in)
		if err != nil {
			return err
		}
		fmt.Printf("Logged %s at %s\n", log.MedicationName, log.TakenAt.Format(time.RFC3339))
		return nil
	})

	command.Flags().StringVar(&at, "at", "", "when the dose was taken (RFC 3339, default now)")
	command.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return command
}

func newMedsLogCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "List recent dose events, newest first",
		RunE: runWithApp(version, func(ctx context.Context, a *app) error {
			logs, err := a.medicationLogs.List(ctx)
			if err != nil {
				return err
			}
			if len(logs) == 0 {
				fmt.Println("No doses logged.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMEDICATION\tTAKEN AT\tNOTES")
			for _, l := range logs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					l.ID, l.MedicationName, l.TakenAt.Format(time.RFC3339), strOrDash(l.Notes))
			}
			return w.Flush()
		}),
	}
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
