package address

import (
	"encoding/json"
	"errors"
	"fmt"
)

// AddressType is the structured address produced by the geocoding lookup.
// It is not persisted as its own table; users and artisans carry it as a
// JSON-encoded string in their address column.
type AddressType struct {
	Address1         string  `json:"address1"`
	Address2         string  `json:"address2"`
	FormattedAddress string  `json:"formattedAddress"`
	City             string  `json:"city"`
	Region           string  `json:"region"`
	PostalCode       string  `json:"postalCode"`
	Country          string  `json:"country"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
}

var ErrMalformedAddress = errors.New("malformed address payload")

// Parse decodes a JSON-encoded address string. Callers filtering candidate
// lists treat an error as "no match" rather than failing the whole batch.
func Parse(raw string) (*AddressType, error) {
	if raw == "" {
		return nil, ErrMalformedAddress
	}
	var a AddressType
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAddress, err)
	}
	return &a, nil
}

// HasCoordinates reports whether lat/lng are present and within valid
// decimal-degree bounds.
func (a *AddressType) HasCoordinates() bool {
	if a.Lat == 0 && a.Lng == 0 {
		return false
	}
	return a.Lat >= -90 && a.Lat <= 90 && a.Lng >= -180 && a.Lng <= 180
}

// Encode serializes the address back to its storage form.
func (a *AddressType) Encode() (string, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
