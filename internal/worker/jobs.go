package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/metroconnect/metroconnect/internal/provider/resilience"
)

// ErrUnknownJob is returned by Handle for a job type it does not run.
var ErrUnknownJob = errors.New("unknown job type")

// TripExpirer deletes one-off trips dated before a cutoff.
// *trip.PostgresRepository satisfies it.
type TripExpirer interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Pinger checks that a dependency is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JobMessage is the payload of a job message.
type JobMessage struct {
	JobType string `json:"job_type"`
}

// Stats tracks job statistics.
type Stats struct {
	JobsRun      int64     `json:"jobsRun"`
	JobsFailed   int64     `json:"jobsFailed"`
	TripsExpired int64     `json:"tripsExpired"`
	LastJobAt    time.Time `json:"lastJobAt"`
	LastJobType  string    `json:"lastJobType,omitempty"`
	LastError    string    `json:"lastError,omitempty"`
}

// Runner executes background jobs.
type Runner struct {
	config Config
	trips  TripExpirer
	db     Pinger
	logger zerolog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	stats Stats
}

// RunnerConfig holds the dependencies of a Runner.
type RunnerConfig struct {
	Config Config
	Trips  TripExpirer
	DB     Pinger
	Logger zerolog.Logger
}

// NewRunner creates a new job runner.
func NewRunner(cfg RunnerConfig) *Runner {
	return &Runner{
		config: cfg.Config.withDefaults(),
		trips:  cfg.Trips,
		db:     cfg.DB,
		logger: cfg.Logger,
		now:    time.Now,
	}
}

// Handle runs the job named by msg within the configured timeout.
func (r *Runner) Handle(ctx context.Context, msg JobMessage) error {
	ctx, cancel := context.WithTimeout(ctx, r.config.JobTimeout)
	defer cancel()

	var err error
	switch msg.JobType {
	case JobExpireTrips:
		_, err = r.ExpireTrips(ctx)
	case JobHealthCheck:
		err = r.HealthCheck(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownJob, msg.JobType)
	}

	r.record(msg.JobType, err)
	return err
}

// ExpireTrips deletes one-off trips older than the retention window and
// returns how many were removed.
func (r *Runner) ExpireTrips(ctx context.Context) (int64, error) {
	cutoff := r.expiryCutoff()
	start := time.Now()

	r.logger.Info().
		Str("cutoff", cutoff.Format("2006-01-02")).
		Int("retention_days", r.config.TripRetentionDays).
		Msg("starting trip expiry")

	var deleted int64
	err := resilience.Retry(ctx, r.config.Retry, func(ctx context.Context) error {
		n, err := r.trips.DeleteExpired(ctx, cutoff)
		if err != nil {
			r.logger.Warn().Err(err).Msg("trip expiry attempt failed")
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("expire trips: %w", err)
	}

	r.mu.Lock()
	r.stats.TripsExpired += deleted
	r.mu.Unlock()

	r.logger.Info().
		Int64("deleted", deleted).
		Dur("duration", time.Since(start)).
		Msg("trip expiry completed")

	return deleted, nil
}

// expiryCutoff is the first date that is kept: today minus the retention.
// It is a UTC midnight so it compares cleanly with DATE columns.
func (r *Runner) expiryCutoff() time.Time {
	y, m, d := r.now().In(r.config.Location).Date()
	return time.Date(y, m, d-r.config.TripRetentionDays, 0, 0, 0, 0, time.UTC)
}

// HealthCheck pings the database.
func (r *Runner) HealthCheck(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	r.logger.Debug().Msg("health check passed")
	return nil
}

// Stats returns a copy of the current job statistics.
func (r *Runner) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}

func (r *Runner) record(jobType string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.JobsRun++
	r.stats.LastJobAt = r.now()
	r.stats.LastJobType = jobType
	r.stats.LastError = ""
	if err != nil {
		r.stats.JobsFailed++
		r.stats.LastError = err.Error()
	}
}
