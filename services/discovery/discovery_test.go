package discovery

import (
	"testing"

	"bluecollar/models/artisan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster() []artisan.Artisan {
	return []artisan.Artisan{
		{Username: "ade", FirstName: "Ade", LastName: "Balogun", Service: "Plumbing", Location: "Lagos", Active: true, Verified: true},
		{Username: "chi", FirstName: "Chi", LastName: "Okafor", Service: "Electrical", Location: "Abuja", Active: true, Verified: true},
		{Username: "bola", FirstName: "Bola", LastName: "Ade", Service: "Carpentry", Location: "Lagos", Active: true, Verified: true},
		{Username: "hidden", FirstName: "Sam", LastName: "Eze", Service: "Plumbing", Location: "Lagos", Active: false, Verified: true},
		{Username: "unverified", FirstName: "Ifeoma", LastName: "Obi", Service: "Plumbing", Location: "Lagos", Active: true, Verified: false},
	}
}

func TestFilterNoCriteriaReturnsDiscoverableOnly(t *testing.T) {
	got := Filter(roster(), Criteria{})
	require.Len(t, got, 3)
	for _, a := range got {
		assert.True(t, a.Discoverable())
	}
}

func TestFilterExcludesInactiveAndUnverified(t *testing.T) {
	got := Filter(roster(), Criteria{Service: "Plumbing"})
	require.Len(t, got, 1)
	assert.Equal(t, "ade", got[0].Username)
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"by last name fragment", "balog", []string{"ade"}},
		{"by service", "eLeCtRi", []string{"chi"}},
		{"by location", "lagos", []string{"ade", "bola"}},
		{"matches name across artisans", "ade", []string{"ade", "bola"}},
		{"no match", "welder", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(roster(), Criteria{Search: tt.search})
			var names []string
			for _, a := range got {
				names = append(names, a.Username)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterServiceAndLocationAreExactMatch(t *testing.T) {
	got := Filter(roster(), Criteria{Service: "Carpentry", Location: "Lagos"})
	require.Len(t, got, 1)
	assert.Equal(t, "bola", got[0].Username)

	// Lowercase does not match the exact-match filters.
	assert.Empty(t, Filter(roster(), Criteria{Service: "carpenter"}))
	assert.Empty(t, Filter(roster(), Criteria{Location: "lagos"}))
}

func TestFilterIncludedServicesReplacesEqualityChecks(t *testing.T) {
	// Service/Location are ignored once IncludedServices is present.
	got := Filter(roster(), Criteria{
		Service:          "Carpentry",
		Location:         "Abuja",
		IncludedServices: []string{"plumbing", "ELECTRICAL"},
	})

	var names []string
	for _, a := range got {
		names = append(names, a.Username)
	}
	assert.Equal(t, []string{"ade", "chi"}, names)
}

func TestFilterIncludedServicesCombinesWithSearch(t *testing.T) {
	got := Filter(roster(), Criteria{
		Search:           "abuja",
		IncludedServices: []string{"Plumbing", "Electrical"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "chi", got[0].Username)
}

func TestFilterIsIdempotent(t *testing.T) {
	c := Criteria{Search: "lagos"}
	once := Filter(roster(), c)
	twice := Filter(once, c)
	assert.Equal(t, once, twice)
}

func TestPaginate(t *testing.T) {
	var matches []artisan.Artisan
	for i := 0; i < 20; i++ {
		matches = append(matches, artisan.Artisan{ID: uint(i + 1)})
	}

	page1, totalPages := Paginate(matches, 1)
	assert.Equal(t, 3, totalPages)
	require.Len(t, page1, ItemsPerPage)
	assert.Equal(t, uint(1), page1[0].ID)

	page3, _ := Paginate(matches, 3)
	require.Len(t, page3, 2)
	assert.Equal(t, uint(19), page3[0].ID)
}

func TestPaginateOutOfRange(t *testing.T) {
	matches := []artisan.Artisan{{ID: 1}}

	got, totalPages := Paginate(matches, 5)
	assert.Equal(t, 1, totalPages)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestPaginateEmptyInput(t *testing.T) {
	got, totalPages := Paginate(nil, 1)
	assert.Zero(t, totalPages)
	assert.Empty(t, got)
}

func TestPaginatePageBelowOneDefaultsToFirst(t *testing.T) {
	matches := []artisan.Artisan{{ID: 1}, {ID: 2}}
	got, _ := Paginate(matches, 0)
	require.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].ID)
}
