package postgres

import (
	"context"
	"database/sql"

	"eventadmission/internal/domain"
)

type locationRepository struct {
	DB *sql.DB
}

func NewLocationRepository(db *sql.DB) domain.LocationRepository {
	return &locationRepository{DB: db}
}

// ResolveOrCreate returns the location with the exact coordinates, inserting it
// when missing. The no-op update makes RETURNING yield the existing row.
func (r *locationRepository) ResolveOrCreate(ctx context.Context, in domain.LocationInput) (*domain.Location, error) {
	query := `
		INSERT INTO locations (lat, lon)
		VALUES ($1, $2)
		ON CONFLICT (lat, lon) DO UPDATE SET lat = EXCLUDED.lat
		RETURNING id
	`
	loc := &domain.Location{Lat: in.Lat, Lon: in.Lon}
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, in.Lat, in.Lon).Scan(&loc.ID); err != nil {
		return nil, mapError(err)
	}
	return loc, nil
}
