package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/pkg/metrics"
	"github.com/Temutjin2k/fitness-connect/pkg/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

type TrainerRepo struct {
	db      Querier
	service string
}

func NewTrainerRepo(db Querier, service string) *TrainerRepo {
	return &TrainerRepo{
		db:      db,
		service: service,
	}
}

// List returns the active trainers ordered by distance.
func (r *TrainerRepo) List(ctx context.Context) (trainers []models.Trainer, err error) {
	const op = "TrainerRepo.List"
	query := `
		SELECT id, name, avatar, specialties, rating, price_per_hour, distance_km, latitude, longitude
		FROM trainers
		WHERE is_active
		ORDER BY distance_km, id`

	start := time.Now()
	defer func() {
		metrics.RecordDatabaseQuery(r.service, "list_trainers", err, time.Since(start))
	}()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		if postgres.IsUndefinedTable(err) {
			return nil, fmt.Errorf("%s: %w: trainers table does not exist", op, types.ErrEmptyCatalog)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Trainer
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Avatar,
			&t.Specialties,
			&t.Rating,
			&t.PricePerHour,
			&t.DistanceKm,
			&t.Location.Latitude,
			&t.Location.Longitude,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		trainers = append(trainers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(trainers) == 0 {
		return nil, fmt.Errorf("%s: %w", op, types.ErrEmptyCatalog)
	}
	return trainers, nil
}

// EnsureSchema creates the trainers table when it does not exist.
func (r *TrainerRepo) EnsureSchema(ctx context.Context) error {
	const op = "TrainerRepo.EnsureSchema"
	query := `
		CREATE TABLE IF NOT EXISTS trainers (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			avatar         TEXT NOT NULL DEFAULT '',
			specialties    TEXT[] NOT NULL DEFAULT '{}',
			rating         DOUBLE PRECISION NOT NULL DEFAULT 0,
			price_per_hour DOUBLE PRECISION NOT NULL CHECK (price_per_hour > 0),
			distance_km    DOUBLE PRECISION NOT NULL DEFAULT 0,
			latitude       DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude      DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_active      BOOLEAN NOT NULL DEFAULT TRUE
		)`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Upsert inserts the trainers or updates existing rows by id.
func (r *TrainerRepo) Upsert(ctx context.Context, trainers []models.Trainer) error {
	const op = "TrainerRepo.Upsert"
	query := `
		INSERT INTO trainers(id, name, avatar, specialties, rating, price_per_hour, distance_km, latitude, longitude)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			avatar = EXCLUDED.avatar,
			specialties = EXCLUDED.specialties,
			rating = EXCLUDED.rating,
			price_per_hour = EXCLUDED.price_per_hour,
			distance_km = EXCLUDED.distance_km,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude`

	for _, t := range trainers {
		if _, err := r.db.Exec(ctx, query,
			t.ID,
			t.Name,
			t.Avatar,
			t.Specialties,
			t.Rating,
			t.PricePerHour,
			t.DistanceKm,
			t.Location.Latitude,
			t.Location.Longitude,
		); err != nil {
			return fmt.Errorf("%s: trainer %s: %w", op, t.ID, err)
		}
	}
	return nil
}
