// Package api provides the HTTP API for Metro Connect.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/metroconnect/metroconnect/internal/api/handler"
	"github.com/metroconnect/metroconnect/internal/api/middleware"
	"github.com/metroconnect/metroconnect/internal/api/models"
	"github.com/metroconnect/metroconnect/internal/connection"
	"github.com/metroconnect/metroconnect/internal/featureflags"
	"github.com/metroconnect/metroconnect/internal/metro"
	"github.com/metroconnect/metroconnect/internal/profile"
	"github.com/metroconnect/metroconnect/internal/provider/resilience"
	"github.com/metroconnect/metroconnect/internal/report"
	"github.com/metroconnect/metroconnect/internal/trip"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	// Tokens validates bearer tokens on authenticated routes.
	Tokens middleware.TokenValidator

	TripService       *trip.Service
	ProfileService    *profile.Service
	ConnectionService *connection.Service
	ReportService     *report.Service

	// FeatureFlags holds the social feature kill switches. Nil leaves everything on.
	FeatureFlags *featureflags.Service

	// Stations is the station index the services were built on.
	Stations *metro.Index

	// TopologySource names where the station list came from ("static" or the feed URL).
	TopologySource string

	// Database and Providers back the readiness and status checks.
	Database  handler.Pinger
	Providers *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "metroconnect-api"
	}

	stations := cfg.Stations
	if stations == nil {
		stations = metro.Default()
	}

	var flags middleware.FlagChecker
	if cfg.FeatureFlags != nil {
		flags = cfg.FeatureFlags
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type
	r.Use(middleware.RequireJSON)          // Reject non-JSON request bodies

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Database:  cfg.Database,
		Providers: cfg.Providers,
		Topology: models.TopologyStatus{
			Source:       topologySource(cfg.TopologySource),
			LineCount:    len(stations.Lines()),
			StationCount: stations.StationCount(),
		},
	})
	stationHandler := handler.NewStationHandler(stations)
	tripHandler := handler.NewTripHandler(cfg.TripService, cfg.Logger)
	profileHandler := handler.NewProfileHandler(cfg.ProfileService, cfg.ConnectionService, cfg.Logger)
	connectionHandler := handler.NewConnectionHandler(cfg.ConnectionService, cfg.Logger)
	reportHandler := handler.NewReportHandler(cfg.ReportService, cfg.Logger)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.Tokens)

	// Create rate limit middleware for different endpoint categories
	publicRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)       // 100 req/min per IP
	userRateLimit := middleware.RateLimitByUser(middleware.StandardRateLimit)       // 100 req/min per user
	expensiveRateLimit := middleware.RateLimitByUser(middleware.ExpensiveRateLimit) // 30 req/min per user
	socialRateLimit := middleware.RateLimitByUser(middleware.SocialRateLimit)       // 20 req/min per user

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Station metadata (public)
		r.With(publicRateLimit).Get("/stations", stationHandler.ListStations)

		// Everything below is authenticated
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(userRateLimit)

			// Trip search - expensive, stricter per-user limit
			r.With(expensiveRateLimit).Get("/search", tripHandler.Search)

			r.Route("/me", func(r chi.Router) {
				// Profile
				r.Get("/profile", profileHandler.GetProfile)
				r.Patch("/profile", profileHandler.UpdateProfile)

				// Trips
				r.Route("/trips", func(r chi.Router) {
					r.Get("/", tripHandler.ListTrips)
					r.Post("/", tripHandler.CreateTrip)
					r.Route("/{tripId}", func(r chi.Router) {
						r.Put("/", tripHandler.UpdateTrip)
						r.Delete("/", tripHandler.DeleteTrip)
					})
				})
			})

			r.Route("/people", func(r chi.Router) {
				r.With(
					middleware.DisabledBy(flags, featureflags.FlagDisablePeopleSearch),
					expensiveRateLimit,
				).Get("/", profileHandler.SearchPeople)
				r.Get("/{userId}/trips", tripHandler.ListPersonTrips)
			})

			r.Route("/connections", func(r chi.Router) {
				r.Get("/", connectionHandler.ListConnections)
				r.With(
					middleware.DisabledBy(flags, featureflags.FlagDisableConnectionRequests),
					socialRateLimit,
				).Post("/", connectionHandler.CreateConnection)

				r.Route("/{connectionId}", func(r chi.Router) {
					r.Patch("/", connectionHandler.UpdateConnection)

					// Chat
					r.Route("/messages", func(r chi.Router) {
						r.Use(middleware.DisabledBy(flags, featureflags.FlagDisableMessaging))
						r.Get("/", connectionHandler.ListMessages)
						r.With(socialRateLimit).Post("/", connectionHandler.SendMessage)
					})
				})
			})

			r.With(socialRateLimit).Post("/reports", reportHandler.CreateReport)
		})
	})

	return r
}

func topologySource(source string) string {
	if source == "" {
		return "static"
	}
	return source
}
