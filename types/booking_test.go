package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrderRequest(ref time.Time) OrderCreateRequest {
	return OrderCreateRequest{
		ArtisanID:       "a1b2c3",
		ServiceType:     "Plumber",
		CustomerAddress: "12 Allen Avenue, Ikeja",
		BookingDate:     ref.Add(3 * time.Hour),
	}
}

func TestOrderCreateRequestValid(t *testing.T) {
	ref := time.Now()
	require.NoError(t, validOrderRequest(ref).Validate(ref))
}

func TestOrderCreateRequestRejectsShortLead(t *testing.T) {
	ref := time.Now()

	req := validOrderRequest(ref)
	req.BookingDate = ref.Add(30 * time.Minute)
	assert.Error(t, req.Validate(ref))

	// Exactly one hour out is accepted.
	req.BookingDate = ref.Add(MinBookingLead)
	assert.NoError(t, req.Validate(ref))
}

func TestOrderCreateRequestRejectsShortAddress(t *testing.T) {
	ref := time.Now()

	req := validOrderRequest(ref)
	req.CustomerAddress = "short"
	assert.Error(t, req.Validate(ref))
}

func TestOrderCreateRequestRequiredFields(t *testing.T) {
	ref := time.Now()

	req := validOrderRequest(ref)
	req.ArtisanID = ""
	assert.Error(t, req.Validate(ref))

	req = validOrderRequest(ref)
	req.ServiceType = ""
	assert.Error(t, req.Validate(ref))

	req = validOrderRequest(ref)
	req.BookingDate = time.Time{}
	assert.Error(t, req.Validate(ref))
}

func TestSignupRequestValidation(t *testing.T) {
	valid := UserSignupRequest{
		FirstName: "Ade",
		LastName:  "Balogun",
		Username:  "ade",
		Email:     "ade@example.com",
		Password:  "longenough",
		Phone:     "08012345678",
		Location:  "Lagos",
	}
	require.NoError(t, valid.Validate())

	short := valid
	short.Password = "short"
	assert.Error(t, short.Validate())

	badLocation := valid
	badLocation.Location = "Atlantis"
	assert.Error(t, badLocation.Validate())
}

func TestArtisanSignupRequiresKnownCatalogEntries(t *testing.T) {
	valid := ArtisanSignupRequest{
		FirstName: "Bola",
		LastName:  "Ade",
		Username:  "bola",
		Email:     "bola@example.com",
		Password:  "longenough",
		Phone:     "08012345678",
		Service:   "Plumbing",
		Location:  "Lagos",
	}
	require.NoError(t, valid.Validate())

	badService := valid
	badService.Service = "Dragon Tamer"
	assert.Error(t, badService.Validate())

	badLocation := valid
	badLocation.Location = "Atlantis"
	assert.Error(t, badLocation.Validate())
}

func TestReviewRequestValidation(t *testing.T) {
	require.NoError(t, ReviewRequest{Rating: 5, Comment: "great work"}.Validate())
	assert.Error(t, ReviewRequest{Rating: 0, Comment: "x"}.Validate())
	assert.Error(t, ReviewRequest{Rating: 6, Comment: "x"}.Validate())
	assert.Error(t, ReviewRequest{Rating: 3}.Validate())
}
