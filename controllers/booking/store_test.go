package booking

import (
	"testing"

	"bluecollar/models/artisan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&artisan.Artisan{}))
	return db
}

func seedArtisan(t *testing.T, db *gorm.DB) artisan.Artisan {
	t.Helper()
	a := artisan.Artisan{
		PublicID:  "a-1",
		Username:  "ade",
		FirstName: "Ade",
		LastName:  "Balogun",
		Email:     "ade@example.com",
		Phone:     "08012345678",
		Password:  "hashed",
		Service:   "Plumbing",
		Location:  "Lagos",
		Active:    true,
		Verified:  true,
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func TestClaimArtisan(t *testing.T) {
	db := newTestDB(t)
	a := seedArtisan(t, db)

	require.NoError(t, claimArtisan(db, a.ID))

	var got artisan.Artisan
	require.NoError(t, db.First(&got, a.ID).Error)
	assert.True(t, got.Booked)
}

func TestClaimArtisanLosesRaceWhenAlreadyBooked(t *testing.T) {
	db := newTestDB(t)
	a := seedArtisan(t, db)

	// Two orders read booked=false before either claim lands. The first
	// claim wins; the second must fail even though its precondition
	// check passed.
	require.NoError(t, claimArtisan(db, a.ID))
	assert.ErrorIs(t, claimArtisan(db, a.ID), errArtisanBooked)

	var got artisan.Artisan
	require.NoError(t, db.First(&got, a.ID).Error)
	assert.True(t, got.Booked)
}

func TestClaimArtisanUnknownID(t *testing.T) {
	db := newTestDB(t)

	assert.ErrorIs(t, claimArtisan(db, 42), errArtisanBooked)
}
