package geo

import (
	"testing"

	"bluecollar/models/address"
	"bluecollar/models/artisan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeAddress(t *testing.T, lat, lng float64) string {
	t.Helper()
	a := address.AddressType{Lat: lat, Lng: lng}
	raw, err := a.Encode()
	require.NoError(t, err)
	return raw
}

func TestDistanceIdenticalPoints(t *testing.T) {
	d := Distance(6.5244, 3.3792, 6.5244, 3.3792)
	assert.Zero(t, d)
}

func TestDistanceKnownCities(t *testing.T) {
	// Lagos to Abuja is roughly 525km as the crow flies.
	d := Distance(6.5244, 3.3792, 9.0765, 7.3986)
	assert.InDelta(t, 526, d, 15)
}

func TestDistanceAntipodal(t *testing.T) {
	// Half the Earth's circumference.
	d := Distance(0, 0, 0, 180)
	assert.InDelta(t, 20015, d, 5)
}

func TestDistanceSymmetry(t *testing.T) {
	a := Distance(6.5244, 3.3792, 9.0765, 7.3986)
	b := Distance(9.0765, 7.3986, 6.5244, 3.3792)
	assert.InDelta(t, a, b, 1e-9)
}

func TestWithinRadiusBoundaryInclusive(t *testing.T) {
	refLat, refLng := 6.5244, 3.3792
	lat, lng := 6.6, 3.4
	d := Distance(refLat, refLng, lat, lng)

	assert.True(t, WithinRadius(refLat, refLng, lat, lng, d))
	assert.False(t, WithinRadius(refLat, refLng, lat, lng, d-0.001))
}

func TestClampRadius(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below minimum", 0.2, MinRadiusKm},
		{"zero", 0, MinRadiusKm},
		{"negative", -10, MinRadiusKm},
		{"within range", 25, 25},
		{"at minimum", MinRadiusKm, MinRadiusKm},
		{"at maximum", MaxRadiusKm, MaxRadiusKm},
		{"above maximum", 120, MaxRadiusKm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampRadius(tt.in))
		})
	}
}

func TestNearbyFiltersByRadius(t *testing.T) {
	ref := &address.AddressType{Lat: 6.5244, Lng: 3.3792}

	candidates := []artisan.Artisan{
		{Username: "close", Address: encodeAddress(t, 6.53, 3.38)},
		{Username: "far", Address: encodeAddress(t, 9.0765, 7.3986)},
	}

	got := Nearby(ref, candidates, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "close", got[0].Username)
}

func TestNearbySkipsMalformedAddresses(t *testing.T) {
	ref := &address.AddressType{Lat: 6.5244, Lng: 3.3792}

	candidates := []artisan.Artisan{
		{Username: "garbage", Address: "not json"},
		{Username: "empty", Address: ""},
		{Username: "no-coords", Address: encodeAddress(t, 0, 0)},
		{Username: "ok", Address: encodeAddress(t, 6.525, 3.38)},
	}

	got := Nearby(ref, candidates, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Username)
}

func TestNearbyClampsOversizedRadius(t *testing.T) {
	ref := &address.AddressType{Lat: 6.5244, Lng: 3.3792}

	// ~494km away; even a requested 1000km radius is clamped to 50km.
	candidates := []artisan.Artisan{
		{Username: "abuja", Address: encodeAddress(t, 9.0765, 7.3986)},
	}

	got := Nearby(ref, candidates, 1000)
	assert.Empty(t, got)
}
