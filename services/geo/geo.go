package geo

import (
	"math"

	"bluecollar/models/address"
	"bluecollar/models/artisan"
)

// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
const EarthRadiusKm = 6371.0

// Radius bounds exposed to callers, in kilometers.
const (
	MinRadiusKm = 1.0
	MaxRadiusKm = 50.0
)

// Distance returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// WithinRadius reports whether the candidate point lies within radiusKm
// of the reference point. The boundary is inclusive.
func WithinRadius(refLat, refLng, lat, lng, radiusKm float64) bool {
	return Distance(refLat, refLng, lat, lng) <= radiusKm
}

// ClampRadius forces a requested radius into the supported range.
func ClampRadius(radiusKm float64) float64 {
	if radiusKm < MinRadiusKm {
		return MinRadiusKm
	}
	if radiusKm > MaxRadiusKm {
		return MaxRadiusKm
	}
	return radiusKm
}

// Nearby filters artisans down to those whose stored address resolves to
// coordinates within radiusKm of the reference point. Artisans with a
// malformed or coordinate-less address are excluded, never an error.
func Nearby(ref *address.AddressType, candidates []artisan.Artisan, radiusKm float64) []artisan.Artisan {
	radiusKm = ClampRadius(radiusKm)

	matched := make([]artisan.Artisan, 0, len(candidates))
	for _, a := range candidates {
		addr, err := address.Parse(a.Address)
		if err != nil || !addr.HasCoordinates() {
			continue
		}
		if WithinRadius(ref.Lat, ref.Lng, addr.Lat, addr.Lng, radiusKm) {
			matched = append(matched, a)
		}
	}
	return matched
}
