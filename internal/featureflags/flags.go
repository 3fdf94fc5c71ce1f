// Package featureflags provides runtime kill switches for the social features.
//
// Flags live in the feature_flags table and are read through a short-lived
// in-memory cache, so an operator can turn a feature off without a deploy.
package featureflags

import (
	"time"
)

// Well-known feature flag keys. Every flag defaults to false.
const (
	// FlagDisableMessaging turns off the chat endpoints.
	FlagDisableMessaging = "disable_messaging"

	// FlagDisablePeopleSearch turns off searching other users by name.
	FlagDisablePeopleSearch = "disable_people_search"

	// FlagDisableConnectionRequests stops new connection requests. Existing
	// requests can still be answered.
	FlagDisableConnectionRequests = "disable_connection_requests"
)

// Flag represents a feature flag with its current value.
type Flag struct {
	Key       string
	Value     interface{}
	UpdatedAt time.Time
}

// BoolValue returns the flag value as a boolean.
// Returns the default value if the flag is nil or not a boolean.
func (f *Flag) BoolValue(defaultValue bool) bool {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case bool:
		return v
	case float64:
		// JSON unmarshals numbers as float64
		return v != 0
	case string:
		return v == "true" || v == "1"
	default:
		return defaultValue
	}
}

// DefaultFlags returns the flag values used when the store has no row.
func DefaultFlags() map[string]*Flag {
	return map[string]*Flag{
		FlagDisableMessaging:          {Key: FlagDisableMessaging, Value: false},
		FlagDisablePeopleSearch:       {Key: FlagDisablePeopleSearch, Value: false},
		FlagDisableConnectionRequests: {Key: FlagDisableConnectionRequests, Value: false},
	}
}
