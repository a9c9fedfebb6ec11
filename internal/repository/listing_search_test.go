package repository

import (
	"reflect"
	"testing"

	"github.com/renthub/condo-rental/internal/model"
)

func fptr(v float64) *float64 { return &v }

func TestBuildListingFilter(t *testing.T) {
	tests := []struct {
		name     string
		query    ListingSearchQuery
		wantCond string
		wantArgs []any
	}{
		{
			// The public view with no filters still pins status so a
			// Booked listing never leaks to non-admin callers.
			name:     "public view no filters",
			query:    ListingSearchQuery{},
			wantCond: "status = ?",
			wantArgs: []any{model.ListingStatusAvailable},
		},
		{
			name:     "admin view no filters",
			query:    ListingSearchQuery{AllStatuses: true},
			wantCond: "1=1",
			wantArgs: []any{},
		},
		{
			name:     "admin filters by status",
			query:    ListingSearchQuery{AllStatuses: true, Status: model.ListingStatusBooked},
			wantCond: "status = ?",
			wantArgs: []any{model.ListingStatusBooked},
		},
		{
			// A non-admin status filter is ignored: the view stays
			// pinned to AVAILABLE.
			name:     "public status filter ignored",
			query:    ListingSearchQuery{Status: model.ListingStatusBooked},
			wantCond: "status = ?",
			wantArgs: []any{model.ListingStatusAvailable},
		},
		{
			name:     "location substring",
			query:    ListingSearchQuery{AllStatuses: true, Location: "Miami"},
			wantCond: "location LIKE BINARY ?",
			wantArgs: []any{"%Miami%"},
		},
		{
			name:     "min price inclusive",
			query:    ListingSearchQuery{AllStatuses: true, MinPrice: fptr(200)},
			wantCond: "price >= ?",
			wantArgs: []any{200.0},
		},
		{
			name: "all filters combined",
			query: ListingSearchQuery{
				Location: "Austin",
				MinPrice: fptr(100),
				MaxPrice: fptr(300),
			},
			wantCond: "status = ? AND location LIKE BINARY ? AND price >= ? AND price <= ?",
			wantArgs: []any{model.ListingStatusAvailable, "%Austin%", 100.0, 300.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, args := buildListingFilter(tt.query)
			if cond != tt.wantCond {
				t.Errorf("cond = %q, want %q", cond, tt.wantCond)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestBuildListingFilterEscapesWildcards(t *testing.T) {
	// A location filter matches as a literal substring: % and _ in the
	// request value must not act as LIKE wildcards.
	tests := []struct {
		name     string
		location string
		wantArg  string
	}{
		{"percent", "50% Quarter", `%50\% Quarter%`},
		{"underscore", "East_Side", `%East\_Side%`},
		{"backslash", `Lofts\West`, `%Lofts\\West%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, args := buildListingFilter(ListingSearchQuery{AllStatuses: true, Location: tt.location})
			if cond != "location LIKE BINARY ?" {
				t.Errorf("cond = %q, want location clause only", cond)
			}
			if len(args) != 1 || args[0] != tt.wantArg {
				t.Errorf("args = %#v, want [%q]", args, tt.wantArg)
			}
		})
	}
}

func TestBuildListingFilterUsesPlaceholdersOnly(t *testing.T) {
	// Filter values must never be concatenated into the SQL text.
	cond, _ := buildListingFilter(ListingSearchQuery{
		AllStatuses: true,
		Location:    "'; DROP TABLE listings; --",
	})
	if cond != "location LIKE BINARY ?" {
		t.Errorf("cond = %q, request value leaked into SQL", cond)
	}
}
