package services

import (
	"regexp"
	"strings"
)

type QueryKind int

const (
	QueryUnrecognized QueryKind = iota
	QueryFlight
	QueryHotel
)

// Query is the parsed intent of one incoming question. Built once per
// request, never persisted.
type Query struct {
	RawText     string
	Kind        QueryKind
	Origin      string
	Destination string
	Location    string
}

var (
	flightPattern = regexp.MustCompile(`(?i)from ([A-Za-z ]+) to ([A-Za-z ]+)`)
	hotelPattern  = regexp.MustCompile(`(?i)in ([A-Za-z ]+)`)
)

// ParseQuery classifies a free-text question as a flight or hotel query and
// pulls out the locations involved. The flight pattern wins when a question
// matches both. A capture that trims to nothing counts as no match.
func ParseQuery(text string) Query {
	query := Query{RawText: text, Kind: QueryUnrecognized}

	if m := flightPattern.FindStringSubmatch(text); m != nil {
		origin := strings.TrimSpace(m[1])
		destination := strings.TrimSpace(m[2])
		if origin != "" && destination != "" {
			query.Kind = QueryFlight
			query.Origin = origin
			query.Destination = destination
			return query
		}
	}

	if m := hotelPattern.FindStringSubmatch(text); m != nil {
		location := strings.TrimSpace(m[1])
		if location != "" {
			query.Kind = QueryHotel
			query.Location = location
			return query
		}
	}

	return query
}

// RouteText is the "<origin> to <destination>" form that appears inside
// flight document sentences; the cache gate matches against it.
func (q Query) RouteText() string {
	return q.Origin + " to " + q.Destination
}
