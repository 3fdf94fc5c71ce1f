// Package trip manages posted metro trips and searches them for travel companions.
package trip

import (
	"errors"
	"slices"
	"time"
)

// DateLayout is the wire format of a travel date.
const DateLayout = "2006-01-02"

// Repository errors.
var (
	ErrTripNotFound = errors.New("trip not found")
)

// Trip represents a planned journey between two stations.
type Trip struct {
	ID           string
	UserID       string
	StartStation string
	EndStation   string
	TravelDate   time.Time
	TravelTime   string
	IsRepeating  bool
	RepeatDays   []int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RunsOn reports whether the trip is taken on the given date: either it is
// the trip's own date or the trip repeats on that weekday (Sunday = 0).
func (t *Trip) RunsOn(date time.Time) bool {
	if sameDay(t.TravelDate, date) {
		return true
	}
	return t.IsRepeating && slices.Contains(t.RepeatDays, int(date.Weekday()))
}

func (t *Trip) clone() *Trip {
	cpy := *t
	cpy.RepeatDays = slices.Clone(t.RepeatDays)
	return &cpy
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// startOfDay truncates t to midnight in UTC, keeping its calendar date in
// t's own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
