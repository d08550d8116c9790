package booking

import (
	"testing"
	"time"
)

func TestSearchURL(t *testing.T) {
	s := New("https://www.booking.com", 5, 15*time.Second)

	tests := []struct {
		location string
		expected string
	}{
		{"Paris", "https://www.booking.com/searchresults.html?ss=Paris"},
		{"New York", "https://www.booking.com/searchresults.html?ss=New+York"},
	}

	for _, tt := range tests {
		if got := s.searchURL(tt.location); got != tt.expected {
			t.Errorf("searchURL(%q) = %q, want %q", tt.location, got, tt.expected)
		}
	}
}

func TestDetailURL(t *testing.T) {
	s := New("https://www.booking.com", 5, 15*time.Second)

	tests := []struct {
		name     string
		href     string
		checkin  string
		checkout string
		expected string
	}{
		{
			name:     "relative href is absolutized",
			href:     "/hotel/fr/lux.html?aid=1234&label=foo",
			expected: "https://www.booking.com/hotel/fr/lux.html",
		},
		{
			name:     "absolute href keeps host",
			href:     "https://www.booking.com/hotel/fr/lux.html?aid=1234",
			expected: "https://www.booking.com/hotel/fr/lux.html",
		},
		{
			name:     "dates are appended",
			href:     "/hotel/fr/lux.html",
			checkin:  "2026-09-01",
			checkout: "2026-09-05",
			expected: "https://www.booking.com/hotel/fr/lux.html?checkin=2026-09-01&checkout=2026-09-05",
		},
		{
			name:     "empty href stays empty",
			href:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.detailURL(tt.href, tt.checkin, tt.checkout); got != tt.expected {
				t.Errorf("detailURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatRating(t *testing.T) {
	tests := []struct {
		name     string
		score    string
		desc     string
		expected string
	}{
		{name: "score and description", score: "8.4", desc: "Very Good", expected: "8.4 / Very Good"},
		{name: "score only", score: "8.4", desc: "", expected: "8.4"},
		{name: "nothing found", score: "", desc: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRating(tt.score, tt.desc); got != tt.expected {
				t.Errorf("formatRating(%q, %q) = %q, want %q", tt.score, tt.desc, got, tt.expected)
			}
		})
	}
}
