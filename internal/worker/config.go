// Package worker runs the Metro Connect background jobs delivered over Pub/Sub.
package worker

import (
	"time"

	"github.com/metroconnect/metroconnect/internal/metro"
	"github.com/metroconnect/metroconnect/internal/provider/resilience"
)

// Job types carried in the job_type field of a message.
const (
	JobExpireTrips = "expire_trips"
	JobHealthCheck = "health_check"
)

// Config holds configuration for the job runner.
type Config struct {
	// TripRetentionDays keeps past one-off trips this many days before they
	// are deleted. Zero deletes everything dated before today.
	TripRetentionDays int

	// JobTimeout bounds a single job, retries included.
	// Default: 2 minutes
	JobTimeout time.Duration

	// Retry controls how failing database work is retried.
	Retry resilience.RetryConfig

	// Location decides where "today" is.
	// Default: India Standard Time
	Location *time.Location
}

// DefaultConfig returns the default job configuration.
func DefaultConfig() Config {
	return Config{
		TripRetentionDays: 0,
		JobTimeout:        2 * time.Minute,
		Retry:             resilience.DefaultRetryConfig(),
		Location:          metro.Location,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.JobTimeout <= 0 {
		c.JobTimeout = def.JobTimeout
	}
	if c.Retry == (resilience.RetryConfig{}) {
		c.Retry = def.Retry
	}
	if c.Location == nil {
		c.Location = def.Location
	}
	if c.TripRetentionDays < 0 {
		c.TripRetentionDays = 0
	}
	return c
}
