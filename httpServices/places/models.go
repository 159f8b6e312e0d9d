package httpServices

// placeDetailsResponse is the subset of the places provider's
// place-details payload this service consumes.
type placeDetailsResponse struct {
	AdrFormatAddress      string `json:"adrFormatAddress"`
	ShortFormattedAddress string `json:"shortFormattedAddress"`
	FormattedAddress      string `json:"formattedAddress"`
	Location              struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
}

// PlaceDetails is the resolved result handed back to callers: the
// structured address plus the raw adr-microformat markup it was parsed
// from.
type PlaceDetails struct {
	Address    interface{} `json:"address"`
	AdrAddress string      `json:"adrAddress"`
}
