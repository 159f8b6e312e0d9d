package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	in := AddressType{
		Address1:         "12 Allen Avenue",
		FormattedAddress: "12 Allen Avenue, Ikeja, Lagos",
		City:             "Ikeja",
		Region:           "Lagos",
		PostalCode:       "100001",
		Country:          "Nigeria",
		Lat:              6.6018,
		Lng:              3.3515,
	}

	raw, err := in.Encode()
	require.NoError(t, err)

	got, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, &in, got)
}

func TestParseMalformed(t *testing.T) {
	for _, raw := range []string{"", "not json", "[1,2,3"} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, ErrMalformedAddress, raw)
	}
}

func TestHasCoordinates(t *testing.T) {
	tests := []struct {
		name string
		addr AddressType
		want bool
	}{
		{"valid", AddressType{Lat: 6.6, Lng: 3.35}, true},
		{"null island", AddressType{Lat: 0, Lng: 0}, false},
		{"lat out of range", AddressType{Lat: 91, Lng: 3}, false},
		{"lng out of range", AddressType{Lat: 6, Lng: -181}, false},
		{"southern hemisphere", AddressType{Lat: -33.9, Lng: 18.4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.addr.HasCoordinates())
		})
	}
}
