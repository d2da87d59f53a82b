package repository

import (
	"testing"

	"gogett/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Courier{},
		&models.CourierProfile{},
		&models.CourierVehicle{},
		&models.CourierBank{},
		&models.RefSequence{},
	))
	return db
}

func TestSaveVehicleCreatesAndUpdates(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourierRepository(db)

	v := models.CourierVehicle{Type: "bike", RegNo: "ABC-1234"}
	created, err := repo.SaveVehicle(3, &v)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(3), v.CourierID)

	edit := models.CourierVehicle{Type: "car", RegNo: "ABC-1234", Note: "replaced"}
	created, err = repo.SaveVehicle(3, &edit)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := repo.GetVehicle(3)
	require.NoError(t, err)
	assert.Equal(t, "car", got.Type)
	assert.Equal(t, "replaced", got.Note)
	assert.Equal(t, v.ID, got.ID)
}

// Editing a registration number that belongs to another courier must be
// refused, not applied to the other courier's row.
func TestSaveVehicleRefusesForeignRegNo(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourierRepository(db)

	mine := models.CourierVehicle{Type: "bike", RegNo: "ABC-1234", Note: "mine"}
	_, err := repo.SaveVehicle(3, &mine)
	require.NoError(t, err)

	theirs := models.CourierVehicle{Type: "van", RegNo: "ABC-1234", Note: "hijack"}
	_, err = repo.SaveVehicle(9, &theirs)
	require.ErrorIs(t, err, ErrVehicleRegTaken)

	got, err := repo.GetVehicle(3)
	require.NoError(t, err)
	assert.Equal(t, "bike", got.Type)
	assert.Equal(t, "mine", got.Note)

	_, err = repo.GetVehicle(9)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
