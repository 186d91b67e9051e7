package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/domain/repositories"
	"github.com/star-burger/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/star-burger/backend/pkg/errors"
)

// LocationAdapter implements the LocationRepository interface
type LocationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLocationAdapter creates a new location adapter
func NewLocationAdapter(client *postgres.Client) repositories.LocationRepository {
	return &LocationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByAddress retrieves the cached geocoding record for an address
func (a *LocationAdapter) GetByAddress(ctx context.Context, address string) (*entities.Location, error) {
	query, args, err := a.db.Select("address", "latitude", "longitude", "updated_at").
		From("locations").
		Where(goqu.Ex{"address": address}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build location query", err)
	}

	location := &entities.Location{}
	var latitude, longitude sql.NullFloat64

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&location.Address,
		&latitude,
		&longitude,
		&location.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("location for address %q not found", address))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get location", err)
	}

	if latitude.Valid {
		location.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		location.Longitude = &longitude.Float64
	}

	return location, nil
}

// Upsert inserts or updates the record for location.Address in one statement.
// The ON CONFLICT clause keeps concurrent writes for the same address from
// producing duplicate rows.
func (a *LocationAdapter) Upsert(ctx context.Context, location *entities.Location) error {
	record := goqu.Record{
		"address":    location.Address,
		"latitude":   nullFloat(location.Latitude),
		"longitude":  nullFloat(location.Longitude),
		"updated_at": location.UpdatedAt,
	}

	query, args, err := a.db.Insert("locations").
		Rows(record).
		OnConflict(goqu.DoUpdate("address", goqu.Record{
			"latitude":   nullFloat(location.Latitude),
			"longitude":  nullFloat(location.Longitude),
			"updated_at": location.UpdatedAt,
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build location upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert location", err)
	}

	return nil
}

func nullFloat(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}
