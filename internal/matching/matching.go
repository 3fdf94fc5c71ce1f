// Package matching ranks posted trips against a traveller's search.
//
// A candidate survives when its owner passes the gender filter, both of its
// endpoints lie within StationThreshold stops of the searched endpoints on a
// shared line, and its departure time is within TimeThresholdMinutes of the
// searched time. Survivors are ordered by SortScore, lowest first.
//
// Ranking is pure: it performs no I/O and keeps no state between calls.
package matching

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/metroconnect/metroconnect/internal/metro"
)

// Matching thresholds.
const (
	StationThreshold     = 5
	TimeThresholdMinutes = 30

	// timeWeight converts minutes of departure difference into score units.
	timeWeight = 0.1
)

// ExactRouteMatch is the quality label for a candidate with identical endpoints.
const ExactRouteMatch = "Exact route match"

// ErrInvalidClock is returned for times not in HH:MM form.
var ErrInvalidClock = errors.New("time must be HH:MM")

// Gender is a profile gender or the search-wide filter value.
type Gender string

// Gender values. GenderAll is only meaningful as a filter.
const (
	GenderAll    Gender = "All"
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid reports whether g is a profile gender.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ValidFilter reports whether g can be used as a search filter.
func (g Gender) ValidFilter() bool {
	return g == GenderAll || g.Valid()
}

// Query is one search request.
type Query struct {
	StartStation string
	EndStation   string
	TravelTime   string
	GenderFilter Gender
}

// Candidate is the slice of a posted trip the matcher looks at.
type Candidate struct {
	ID           string
	StartStation string
	EndStation   string
	TravelTime   string
	OwnerGender  Gender
}

// Match is a candidate that passed every filter, with its ranking data.
type Match struct {
	Candidate       Candidate
	StartDistance   int
	EndDistance     int
	TimeDiffMinutes int
	Quality         string
	SortScore       float64
}

// Matcher ranks candidates using a station index.
type Matcher struct {
	index *metro.Index
}

// NewMatcher creates a matcher over the given index.
func NewMatcher(index *metro.Index) *Matcher {
	return &Matcher{index: index}
}

// Rank filters candidates against q and returns the survivors ordered by
// ascending SortScore. Candidates with equal scores keep their input order.
func (m *Matcher) Rank(q Query, candidates []Candidate) []Match {
	filter := q.GenderFilter
	if filter == "" {
		filter = GenderAll
	}

	queryMinutes, queryErr := MinutesSinceMidnight(q.TravelTime)

	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if filter != GenderAll && c.OwnerGender != filter {
			continue
		}

		if !m.index.IsWithinStations(q.StartStation, c.StartStation, StationThreshold) ||
			!m.index.IsWithinStations(q.EndStation, c.EndStation, StationThreshold) {
			continue
		}
		startDist := m.index.MinStationDistance(q.StartStation, c.StartStation)
		endDist := m.index.MinStationDistance(q.EndStation, c.EndStation)

		if queryErr != nil {
			continue
		}
		tripMinutes, err := MinutesSinceMidnight(c.TravelTime)
		if err != nil {
			continue
		}
		timeDiff := absInt(queryMinutes - tripMinutes)
		if timeDiff > TimeThresholdMinutes {
			continue
		}

		matches = append(matches, Match{
			Candidate:       c,
			StartDistance:   startDist,
			EndDistance:     endDist,
			TimeDiffMinutes: timeDiff,
			Quality:         QualityLabel(startDist, endDist),
			SortScore:       float64(startDist+endDist) + float64(timeDiff)*timeWeight,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SortScore < matches[j].SortScore
	})

	return matches
}

// QualityLabel describes how far a candidate's endpoints are from the searched
// ones. An Unreachable leg counts as zero here; Rank never passes one.
func QualityLabel(startDist, endDist int) string {
	if startDist == 0 && endDist == 0 {
		return ExactRouteMatch
	}

	if startDist == metro.Unreachable {
		startDist = 0
	}
	if endDist == metro.Unreachable {
		endDist = 0
	}
	maxDist := max(startDist, endDist)

	if maxDist == 1 {
		return "±1 station"
	}
	return fmt.Sprintf("±%d stations", maxDist)
}

// MinutesSinceMidnight converts "HH:MM" to minutes. A trailing ":SS" is
// ignored so database TIME values can be passed through unchanged.
func MinutesSinceMidnight(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}

	return h*60 + m, nil
}

// TimeDiffMinutes returns the absolute difference between two clock times.
// There is no wraparound: 23:50 and 00:10 are 1420 minutes apart.
func TimeDiffMinutes(a, b string) (int, error) {
	ma, err := MinutesSinceMidnight(a)
	if err != nil {
		return 0, err
	}
	mb, err := MinutesSinceMidnight(b)
	if err != nil {
		return 0, err
	}
	return absInt(ma - mb), nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
