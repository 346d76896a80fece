package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func newExportCommand(version string) *cobra.Command {
	var out string

	command := &cobra.Command{
		Use:   "export",
		Short: "Write a full backup to a JSON file",
		RunE: runWithApp(version, func(ctx context.Context, a *app) error {
			data, err := a.backup.ExportJSON(ctx)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				name := fmt.Sprintf("mindwell-export-%s.json", time.Now().Format("2006-01-02"))
				path = filepath.Join(a.cfg.Backup.Dir, name)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create backup directory: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write backup file: %w", err)
			}
			fmt.Printf("Exported %d bytes to %s\n", len(data), path)
			return nil
		}),
	}

	command.Flags().StringVarP(&out, "output", "o", "", "output file (default <backup dir>/mindwell-export-<date>.json)")
	return command
}

func newImportCommand(version string) *cobra.Command {
	command := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all tracked data with the contents of a backup file",
		Long: `Replace every mood entry, emotion link, medication and dose log with
the records in the backup file. The emotion and activity catalogs are
left untouched. Existing data is cleared before the restore begins, so
keep a fresh export around if the file might be bad.`,
		Args: cobra.ExactArgs(1),
	}
	command.RunE = runWithAppArgs(version, func(ctx context.Context, a *app, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read backup file: %w", err)
		}
		counts, err := a.backup.Import(ctx, data)
		if counts != nil {
			fmt.Printf("Restored %d entries, %d emotion links, %d medications, %d dose logs\n",
				counts.MoodEntries, counts.EntryEmotions, counts.Medications, counts.MedicationLogs)
		}
		return err
	})
	return command
}
