package microservices

import (
	"context"
	"errors"
	"fmt"

	"github.com/Temutjin2k/fitness-connect/config"
	"github.com/Temutjin2k/fitness-connect/internal/adapter/memory"
	repo "github.com/Temutjin2k/fitness-connect/internal/adapter/postgres"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/internal/service/booking"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
	"github.com/Temutjin2k/fitness-connect/pkg/postgres"
)

const (
	catalogStatic   = "static"
	catalogPostgres = "postgres"
)

func newSettings(cfg config.BookingConfig) booking.Settings {
	return booking.Settings{
		MatchDelay:    cfg.MatchDelay,
		TickInterval:  cfg.TickInterval,
		GreetingDelay: cfg.GreetingDelay,
		ReplyDelay:    cfg.ReplyDelay,

		ProgressStep:    cfg.ProgressStep,
		EstimateStep:    cfg.EstimateStep,
		InitialEstimate: cfg.InitialEstimate,

		DefaultDuration: cfg.DefaultDuration,
		MinDuration:     cfg.MinDuration,
		MaxDuration:     cfg.MaxDuration,
		DurationStep:    cfg.DurationStep,
		QuickPicks:      cfg.QuickPicks,

		ReferenceRate: cfg.ReferenceRate,
	}
}

// loadCatalog builds the trainer pool. With the postgres source the returned
// database must be closed by the caller.
func loadCatalog(ctx context.Context, service string, cfg config.Config, log logger.Logger) (*memory.Catalog, *postgres.PostgreDB, error) {
	ctx = wrap.WithAction(ctx, "load_catalog")

	switch cfg.Catalog.Source {
	case catalogStatic, "":
		log.Info(ctx, "using static trainer catalog", "trainers", len(memory.DefaultTrainers))
		return memory.NewDefaultCatalog(), nil, nil
	case catalogPostgres:
	default:
		return nil, nil, fmt.Errorf("unknown catalog source: %q", cfg.Catalog.Source)
	}

	db, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup database: %w", err)
	}

	trainerRepo := repo.NewTrainerRepo(db.Pool, service)
	if cfg.Catalog.Seed {
		if err := seedCatalog(ctx, trainerRepo); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	trainers, err := trainerRepo.List(ctx)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to load trainers: %w", err)
	}

	log.Info(ctx, "loaded trainer catalog from postgres", "trainers", len(trainers))
	return memory.NewCatalog(trainers), db, nil
}

// seedCatalog writes the built-in pool when the trainers table has nothing active.
func seedCatalog(ctx context.Context, trainerRepo *repo.TrainerRepo) error {
	if err := trainerRepo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	_, err := trainerRepo.List(ctx)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, types.ErrEmptyCatalog):
		return fmt.Errorf("failed to check trainers: %w", err)
	}

	if err := trainerRepo.Upsert(ctx, memory.DefaultTrainers); err != nil {
		return fmt.Errorf("failed to seed trainers: %w", err)
	}
	return nil
}
