package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindwell-app/mindwell-engine/pkg/apperrors"
	"github.com/mindwell-app/mindwell-engine/pkg/config"
	"github.com/mindwell-app/mindwell-engine/pkg/database"
	"github.com/mindwell-app/mindwell-engine/pkg/logging"
	"github.com/mindwell-app/mindwell-engine/pkg/repositories"
	"github.com/mindwell-app/mindwell-engine/pkg/services"
)

// app bundles everything a command needs once the store is open. Each
// command invocation opens the database, runs, and closes it again;
// nothing is shared across processes except the file itself.
type app struct {
	cfg    *config.Config
	store  *database.Store
	logger *zap.Logger

	entries         repositories.MoodEntryRepository
	emotions        repositories.CatalogRepository
	activities      repositories.CatalogRepository
	entryEmotions   repositories.EntryEmotionRepository
	entryActivities repositories.EntryActivityRepository
	medications     repositories.MedicationRepository
	medicationLogs  repositories.MedicationLogRepository

	analytics services.AnalyticsService
	backup    services.BackupService
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// newApp loads config, opens the store, applies pending migrations and
// seeds the reference catalogs, so every command starts from a usable
// database regardless of whether the file existed before.
func newApp(ctx context.Context, version string) (*app, error) {
	cfg, err := config.Load(version)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := database.Open(&database.Config{
		Path:          cfg.Database.Path,
		BusyTimeoutMS: cfg.Database.BusyTimeoutMS,
	}, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	a := &app{cfg: cfg, store: store, logger: logger}
	if err := store.Initialize(ctx); err != nil {
		a.close()
		return nil, err
	}

	a.entries = repositories.NewMoodEntryRepository(store)
	a.emotions = repositories.NewEmotionRepository(store)
	a.activities = repositories.NewActivityRepository(store)
	a.entryEmotions = repositories.NewEntryEmotionRepository(store)
	a.entryActivities = repositories.NewEntryActivityRepository(store)
	a.medications = repositories.NewMedicationRepository(store)
	a.medicationLogs = repositories.NewMedicationLogRepository(store)

	seeder := services.NewSeedService(a.emotions, a.activities, logger)
	if err := seeder.SeedReferenceData(ctx); err != nil {
		a.close()
		return nil, err
	}

	a.analytics = services.NewAnalyticsService(a.entries, a.entryEmotions, a.emotions, logger)
	a.backup = services.NewBackupService(store, a.entries, a.emotions, a.entryEmotions,
		a.medications, a.medicationLogs, logger)
	return a, nil
}

// runWithApp wraps a command body with app setup and teardown.
func runWithApp(version string, fn func(ctx context.Context, a *app) error) func(*cobra.Command, []string) error {
	return runWithAppArgs(version, func(ctx context.Context, a *app, _ []string) error {
		return fn(ctx, a)
	})
}

// runWithAppArgs is runWithApp for commands that take positional arguments.
func runWithAppArgs(version string, fn func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, version)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(ctx, a, args)
	}
}

// parseID parses a positional id argument.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", apperrors.ErrValidation, raw)
	}
	return id, nil
}

// NewRootCommand builds the mindwell command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "mindwell",
		Short:         "Personal mood, emotion and medication tracker",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCommand.AddCommand(
		newLogCommand(version),
		newEntriesCommand(version),
		newMedsCommand(version),
		newStatsCommand(version),
		newExportCommand(version),
		newImportCommand(version),
	)
	return rootCommand
}
