package services

import "testing"

func TestParseQueryFlights(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		origin      string
		destination string
	}{
		{
			name:        "plain flight question",
			text:        "Show me flights from New York to Paris",
			origin:      "New York",
			destination: "Paris",
		},
		{
			name:        "case insensitive",
			text:        "FLIGHTS FROM boston TO miami please",
			origin:      "boston",
			destination: "miami please",
		},
		{
			name:        "extra whitespace is trimmed",
			text:        "flights from  Boston  to  Miami",
			origin:      "Boston",
			destination: "Miami",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParseQuery(tt.text)
			if q.Kind != QueryFlight {
				t.Fatalf("ParseQuery(%q).Kind = %v, want QueryFlight", tt.text, q.Kind)
			}
			if q.Origin != tt.origin {
				t.Errorf("Origin = %q, want %q", q.Origin, tt.origin)
			}
			if q.Destination != tt.destination {
				t.Errorf("Destination = %q, want %q", q.Destination, tt.destination)
			}
		})
	}
}

func TestParseQueryHotels(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		location string
	}{
		{name: "plain hotel question", text: "hotels in Paris", location: "Paris"},
		{name: "multi word location", text: "Show me hotels in New York", location: "New York"},
		{name: "case insensitive", text: "Anything cheap IN lisbon", location: "lisbon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParseQuery(tt.text)
			if q.Kind != QueryHotel {
				t.Fatalf("ParseQuery(%q).Kind = %v, want QueryHotel", tt.text, q.Kind)
			}
			if q.Location != tt.location {
				t.Errorf("Location = %q, want %q", q.Location, tt.location)
			}
		})
	}
}

func TestParseQueryFlightPrecedence(t *testing.T) {
	// Matches both "from X to Y" and "in Z"; the flight pattern wins.
	q := ParseQuery("flights from Boston to Miami in July")
	if q.Kind != QueryFlight {
		t.Fatalf("Kind = %v, want QueryFlight", q.Kind)
	}
	if q.Origin != "Boston" {
		t.Errorf("Origin = %q, want %q", q.Origin, "Boston")
	}
}

func TestParseQueryUnrecognized(t *testing.T) {
	tests := []string{
		"tell me something",
		"",
		"what is the weather like",
	}

	for _, text := range tests {
		if q := ParseQuery(text); q.Kind != QueryUnrecognized {
			t.Errorf("ParseQuery(%q).Kind = %v, want QueryUnrecognized", text, q.Kind)
		}
	}
}

func TestRouteText(t *testing.T) {
	q := Query{Origin: "Boston", Destination: "Miami"}
	if got := q.RouteText(); got != "Boston to Miami" {
		t.Errorf("RouteText() = %q, want %q", got, "Boston to Miami")
	}
}
