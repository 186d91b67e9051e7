package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/star-burger/backend/internal/adapters/database"
	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/star-burger/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewClientFromDB(db), mock
}

func TestLocationAdapter_GetByAddress(t *testing.T) {
	t.Run("returns cached coordinates", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := database.NewLocationAdapter(client)

		updatedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT "address", "latitude", "longitude", "updated_at" FROM "locations" WHERE \("address" = 'moscow'\)`).
			WillReturnRows(sqlmock.NewRows([]string{"address", "latitude", "longitude", "updated_at"}).
				AddRow("moscow", 55.75, 37.61, updatedAt))

		location, err := adapter.GetByAddress(context.Background(), "moscow")

		require.NoError(t, err)
		coords := location.Coordinates()
		require.NotNil(t, coords)
		assert.Equal(t, 55.75, coords.Latitude)
		assert.Equal(t, 37.61, coords.Longitude)
		assert.Equal(t, updatedAt, location.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns placeholder with nil coordinates", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := database.NewLocationAdapter(client)

		mock.ExpectQuery(`FROM "locations"`).
			WillReturnRows(sqlmock.NewRows([]string{"address", "latitude", "longitude", "updated_at"}).
				AddRow("nowhere", nil, nil, time.Now()))

		location, err := adapter.GetByAddress(context.Background(), "nowhere")

		require.NoError(t, err)
		assert.Nil(t, location.Coordinates())
	})

	t.Run("returns not found on cache miss", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := database.NewLocationAdapter(client)

		mock.ExpectQuery(`FROM "locations"`).
			WillReturnRows(sqlmock.NewRows([]string{"address", "latitude", "longitude", "updated_at"}))

		location, err := adapter.GetByAddress(context.Background(), "unknown")

		assert.Nil(t, location)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestLocationAdapter_Upsert(t *testing.T) {
	t.Run("inserts with conflict clause on address", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := database.NewLocationAdapter(client)

		lat, lon := 55.75, 37.61
		mock.ExpectExec(`INSERT INTO "locations" .* ON CONFLICT \("address"\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := adapter.Upsert(context.Background(), &entities.Location{
			Address:   "moscow",
			Latitude:  &lat,
			Longitude: &lon,
			UpdatedAt: time.Now(),
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stores placeholder rows with null coordinates", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := database.NewLocationAdapter(client)

		mock.ExpectExec(`INSERT INTO "locations" .* NULL.* ON CONFLICT \("address"\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := adapter.Upsert(context.Background(), entities.NewLocation("nowhere", nil, time.Now()))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
