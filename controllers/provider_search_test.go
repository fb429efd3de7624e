package controllers

import (
	"strings"
	"testing"

	"github.com/localkart/core-api/models"
)

func activeProvider() models.Provider {
	return models.Provider{
		IsActive:   true,
		IsVerified: true,
		Services: models.ServiceOfferings{
			{Category: "Plumbing", Subcategory: "pipe repair", BasePrice: 500, Unit: "hour"},
		},
		ServiceAreas: models.ServiceAreas{
			{City: "New Delhi", Pincodes: []string{"110001"}, Radius: 15},
		},
		User: models.User{
			Profile: models.UserProfile{
				// [lng, lat] — Connaught Place, Delhi.
				Location: models.GeoLocation{Coordinates: []float64{77.2090, 28.6139}},
			},
		},
	}
}

func TestMatchesSearchExcludesInactiveAndUnverified(t *testing.T) {
	q := searchQuery{}

	p := activeProvider()
	p.IsActive = false
	if matchesSearch(&p, q) {
		t.Error("inactive provider must never match")
	}

	p = activeProvider()
	p.IsVerified = false
	if matchesSearch(&p, q) {
		t.Error("unverified provider must never match")
	}

	p = activeProvider()
	if !matchesSearch(&p, q) {
		t.Error("active verified provider should match an empty query")
	}
}

func TestMatchesSearchCityCaseInsensitive(t *testing.T) {
	p := activeProvider()

	if !matchesSearch(&p, searchQuery{City: "delhi"}) {
		t.Error("city filter should be a case-insensitive substring match")
	}
	if !matchesSearch(&p, searchQuery{City: "DELHI"}) {
		t.Error("city filter should ignore case")
	}
	if matchesSearch(&p, searchQuery{City: "Mumbai"}) {
		t.Error("non-matching city should exclude the provider")
	}
}

func TestMatchesSearchCategoryCaseInsensitive(t *testing.T) {
	p := activeProvider()

	if !matchesSearch(&p, searchQuery{Category: "plumbing"}) {
		t.Error("category filter should ignore case")
	}
	if !matchesSearch(&p, searchQuery{Category: "plumb"}) {
		t.Error("category filter should match substrings")
	}
	if matchesSearch(&p, searchQuery{Category: "electrical"}) {
		t.Error("non-matching category should exclude the provider")
	}
}

func TestMatchesSearchRadiusWithoutPoint(t *testing.T) {
	p := activeProvider()

	if !matchesSearch(&p, searchQuery{Radius: 10}) {
		t.Error("area radius 15 should satisfy a requested radius of 10")
	}
	if matchesSearch(&p, searchQuery{Radius: 20}) {
		t.Error("area radius 15 should not satisfy a requested radius of 20")
	}
}

func TestMatchesSearchGeoDistance(t *testing.T) {
	p := activeProvider()

	// Query point right at the provider's location.
	near := searchQuery{Lat: 28.6139, Lng: 77.2090, HasPoint: true, Radius: 10}
	if !matchesSearch(&p, near) {
		t.Error("query at the provider's own location should match")
	}

	// Mumbai is ~1150 km away; well outside any service area.
	far := searchQuery{Lat: 19.0760, Lng: 72.8777, HasPoint: true, Radius: 10}
	if matchesSearch(&p, far) {
		t.Error("query far outside the service area should not match")
	}
}

func TestMatchesSearchGeoSkipsProvidersWithoutCoordinates(t *testing.T) {
	p := activeProvider()
	p.User.Profile.Location.Coordinates = nil

	q := searchQuery{Lat: 28.6139, Lng: 77.2090, HasPoint: true, Radius: 10}
	if matchesSearch(&p, q) {
		t.Error("provider without coordinates cannot satisfy a geo query")
	}
}

func TestPortfolioPublicIDUniquePerUpload(t *testing.T) {
	a := portfolioPublicID(7)
	b := portfolioPublicID(7)
	if a == b {
		t.Error("two uploads must never share a public ID")
	}
	if !strings.HasPrefix(a, "provider-7-") {
		t.Errorf("unexpected public ID %q", a)
	}
}

func TestMatchesSearchCombinedFilters(t *testing.T) {
	p := activeProvider()

	q := searchQuery{City: "Delhi", Category: "plumbing"}
	if !matchesSearch(&p, q) {
		t.Error("provider matching both filters should be included")
	}

	q.Category = "cleaning"
	if matchesSearch(&p, q) {
		t.Error("provider must satisfy every supplied filter")
	}
}
