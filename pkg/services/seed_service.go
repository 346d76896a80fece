package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mindwell-app/mindwell-engine/pkg/models"
	"github.com/mindwell-app/mindwell-engine/pkg/repositories"
	"github.com/mindwell-app/mindwell-engine/pkg/seed"
)

// SeedService populates the reference catalogs on first run.
type SeedService interface {
	// SeedReferenceData inserts the canonical emotion and activity
	// catalogs, each only when its table is empty. Rows a user has
	// removed by hand are never restored, so the call is idempotent.
	SeedReferenceData(ctx context.Context) error
}

type seedService struct {
	emotions   repositories.CatalogRepository
	activities repositories.CatalogRepository
	logger     *zap.Logger
}

// NewSeedService creates a new SeedService.
func NewSeedService(emotions, activities repositories.CatalogRepository, logger *zap.Logger) SeedService {
	return &seedService{
		emotions:   emotions,
		activities: activities,
		logger:     logger.Named("seed-service"),
	}
}

var _ SeedService = (*seedService)(nil)

func (s *seedService) SeedReferenceData(ctx context.Context) error {
	if err := s.seedCatalog(ctx, "emotions", s.emotions, seed.Emotions); err != nil {
		return err
	}
	return s.seedCatalog(ctx, "activities", s.activities, seed.Activities)
}

func (s *seedService) seedCatalog(
	ctx context.Context,
	name string,
	repo repositories.CatalogRepository,
	load func() ([]*models.CatalogEntry, error),
) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count %s before seeding: %w", name, err)
	}
	if count > 0 {
		s.logger.Debug("catalog already populated, skipping seed",
			zap.String("catalog", name),
			zap.Int("rows", count))
		return nil
	}

	entries, err := load()
	if err != nil {
		return err
	}
	if err := repo.Insert(ctx, entries); err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}

	s.logger.Info("seeded reference catalog",
		zap.String("catalog", name),
		zap.Int("rows", len(entries)))
	return nil
}
