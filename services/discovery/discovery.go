package discovery

import (
	"strings"

	"bluecollar/models/artisan"
)

// ItemsPerPage is the fixed discovery page size.
const ItemsPerPage = 9

// Criteria holds the optional discovery filters. Zero values mean
// "no constraint".
type Criteria struct {
	// Search matches case-insensitively against full name, location or
	// service.
	Search string

	// Service and Location are exact-match filters.
	Service  string
	Location string

	// IncludedServices is OR-matched against the artisan's service.
	// When present it replaces the Service and Location equality checks
	// and combines with Search only.
	IncludedServices []string
}

// Filter returns the artisans matching the criteria. Inactive or
// unverified artisans never match, regardless of criteria. The result
// is a pure function of its inputs.
func Filter(candidates []artisan.Artisan, c Criteria) []artisan.Artisan {
	matched := make([]artisan.Artisan, 0, len(candidates))
	for _, a := range candidates {
		if !a.Discoverable() {
			continue
		}
		if !matchesSearch(&a, c.Search) {
			continue
		}

		if len(c.IncludedServices) > 0 {
			if matchesIncluded(&a, c.IncludedServices) {
				matched = append(matched, a)
			}
			continue
		}

		if c.Service != "" && a.Service != c.Service {
			continue
		}
		if c.Location != "" && a.Location != c.Location {
			continue
		}
		matched = append(matched, a)
	}
	return matched
}

func matchesSearch(a *artisan.Artisan, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(a.FullName()), term) ||
		strings.Contains(strings.ToLower(a.Location), term) ||
		strings.Contains(strings.ToLower(a.Service), term)
}

func matchesIncluded(a *artisan.Artisan, included []string) bool {
	for _, svc := range included {
		if strings.EqualFold(a.Service, svc) {
			return true
		}
	}
	return false
}

// Paginate slices the filtered result into the requested page and
// returns the total page count. Pages are 1-based; an out-of-range page
// yields an empty slice. An empty input is a valid outcome, not an
// error.
func Paginate(matches []artisan.Artisan, page int) ([]artisan.Artisan, int) {
	totalPages := (len(matches) + ItemsPerPage - 1) / ItemsPerPage
	if page < 1 {
		page = 1
	}

	start := (page - 1) * ItemsPerPage
	if start >= len(matches) {
		return []artisan.Artisan{}, totalPages
	}
	end := start + ItemsPerPage
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], totalPages
}
