package httpServices

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"bluecollar/models/address"
)

// fieldMask lists the place-details fields the provider is asked for.
const fieldMask = "adrFormatAddress,shortFormattedAddress,formattedAddress,location,addressComponents"

type PlacesClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string) *PlacesClient {
	return &PlacesClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// PlaceDetails resolves a place ID to a structured address. The
// provider embeds the address as adr-microformat HTML; the individual
// components are pulled out of the class-tagged spans.
func (c *PlacesClient) PlaceDetails(placeID string) (*address.AddressType, string, error) {
	if c.apiKey == "" {
		return nil, "", errors.New("places API key is not configured")
	}
	if placeID == "" {
		return nil, "", errors.New("placeID cannot be empty")
	}

	httpReq, err := http.NewRequest("GET", c.baseURL+"/v1/"+placeID, nil)
	if err != nil {
		return nil, "", err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.apiKey)
	httpReq.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.New("places API returned non-OK status: " + resp.Status)
	}

	var apiResp placeDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, "", err
	}

	addr := parseAdrAddress(apiResp.AdrFormatAddress)
	addr.FormattedAddress = apiResp.FormattedAddress
	addr.Lat = apiResp.Location.Latitude
	addr.Lng = apiResp.Location.Longitude

	return addr, apiResp.AdrFormatAddress, nil
}

// parseAdrAddress extracts the adr-microformat components out of the
// provider's class-tagged spans.
func parseAdrAddress(adr string) *address.AddressType {
	return &address.AddressType{
		Address1:   adrField(adr, "street-address"),
		Address2:   "",
		City:       adrField(adr, "locality"),
		Region:     adrField(adr, "region"),
		PostalCode: adrField(adr, "postal-code"),
		Country:    adrField(adr, "country-name"),
	}
}

func adrField(adr, class string) string {
	re := regexp.MustCompile(fmt.Sprintf(`<span class="%s">([^<]+)</span>`, regexp.QuoteMeta(class)))
	match := re.FindStringSubmatch(adr)
	if match == nil {
		return ""
	}
	return match[1]
}
