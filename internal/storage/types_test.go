package storage

import "testing"

func TestDocumentText(t *testing.T) {
	tests := []struct {
		name     string
		listing  Listing
		expected string
	}{
		{
			name: "hotel",
			listing: Listing{
				Kind:          KindHotel,
				Name:          "Hotel Lux",
				Location:      "Paris",
				PricePerNight: "$120",
				Rating:        "8.4 / Very Good",
			},
			expected: "Hotel Hotel Lux in Paris costs $120 per night with rating 8.4 / Very Good.",
		},
		{
			name: "hotel with missing fields",
			listing: Listing{
				Kind:          KindHotel,
				Name:          "Budget Inn",
				Location:      "Lisbon",
				PricePerNight: "N/A",
				Rating:        "N/A",
			},
			expected: "Hotel Budget Inn in Lisbon costs N/A per night with rating N/A.",
		},
		{
			name: "flight",
			listing: Listing{
				Kind:    KindFlight,
				Airline: "Delta",
				Route:   "Boston to Miami",
				Date:    "2026-09-30",
				Time:    "8:05 am",
				Price:   "$214",
			},
			expected: "Flight by Delta from Boston to Miami on 2026-09-30 departing at 8:05 am priced at $214.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.listing.DocumentText(); got != tt.expected {
				t.Errorf("DocumentText() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestListingIDs(t *testing.T) {
	if got := HotelID("New York", 2); got != "hotel_new-york_2" {
		t.Errorf("HotelID() = %q, want %q", got, "hotel_new-york_2")
	}
	if got := FlightID("New York", "Paris", 0); got != "flight_new-york_paris_0" {
		t.Errorf("FlightID() = %q, want %q", got, "flight_new-york_paris_0")
	}

	// Same inputs must always produce the same key so re-ingestion overwrites.
	if HotelID("Lisbon", 1) != HotelID("Lisbon", 1) {
		t.Error("HotelID should be deterministic")
	}
	if HotelID("  Lisbon ", 1) != HotelID("Lisbon", 1) {
		t.Error("HotelID should ignore surrounding whitespace")
	}
}
