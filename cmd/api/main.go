// Package main provides the entrypoint for the Metro Connect API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/metroconnect/metroconnect/internal/api"
	"github.com/metroconnect/metroconnect/internal/api/middleware"
	"github.com/metroconnect/metroconnect/internal/auth"
	"github.com/metroconnect/metroconnect/internal/connection"
	"github.com/metroconnect/metroconnect/internal/database"
	"github.com/metroconnect/metroconnect/internal/featureflags"
	"github.com/metroconnect/metroconnect/internal/metro"
	"github.com/metroconnect/metroconnect/internal/profile"
	"github.com/metroconnect/metroconnect/internal/provider/resilience"
	"github.com/metroconnect/metroconnect/internal/report"
	"github.com/metroconnect/metroconnect/internal/telemetry"
	"github.com/metroconnect/metroconnect/internal/trip"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const gtfsProviderName = "metro_gtfs"

func main() {
	const serviceName = "metroconnect-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Metro Connect API")

	// Get configuration from environment
	port := getEnvOrDefault("APP_PORT", "8080")
	env := getEnvOrDefault("APP_ENV", "development")

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryConfig := telemetry.ConfigFromEnv(serviceName, Version, env)

	tp, err := telemetry.Init(ctx, telemetryConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryConfig.Enabled {
		log.Info().
			Str("otlp_endpoint", telemetryConfig.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	if getEnvOrDefault("DB_MIGRATE", "true") == "true" {
		if err := database.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
	}

	// Initialize JWT validation (key shared with the hosted auth provider)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     os.Getenv("JWT_ISSUER"),
		Audience:   os.Getenv("JWT_AUDIENCE"),
	})

	// Load the station network, from GTFS when configured
	providers := resilience.NewRegistry()
	topology, topologySource := loadTopology(ctx, log, providers)
	stations := metro.NewIndex(topology)
	log.Info().
		Str("source", topologySource).
		Int("lines", len(stations.Lines())).
		Int("stations", stations.StationCount()).
		Msg("station index built")

	// Initialize domain services
	profileService := profile.NewService(profile.NewPostgresRepository(pool))
	connectionService := connection.NewService(connection.NewPostgresRepository(pool), profileService)
	tripService := trip.NewService(trip.NewPostgresRepository(pool), stations, profileService, connectionService)
	reportService := report.NewService(report.NewPostgresRepository(pool))
	log.Info().Msg("domain services initialized")

	// Initialize feature flags repository and service
	ffService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: featureflags.NewPostgresRepository(pool),
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})
	log.Info().Msg("feature flags service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:           Version,
		BuildTime:         BuildTime,
		Logger:            log,
		ServiceName:       serviceName,
		Metrics:           metrics,
		Tokens:            jwtService,
		TripService:       tripService,
		ProfileService:    profileService,
		ConnectionService: connectionService,
		ReportService:     reportService,
		FeatureFlags:      ffService,
		Stations:          stations,
		TopologySource:    topologySource,
		Database:          pool,
		Providers:         providers,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

// loadTopology fetches the GTFS feed named by METRO_GTFS_URL. Without one,
// or when the download fails, the built-in network is used.
func loadTopology(ctx context.Context, log zerolog.Logger, providers *resilience.Registry) (metro.Topology, string) {
	feedURL := os.Getenv("METRO_GTFS_URL")
	if feedURL == "" {
		return metro.DefaultTopology(), "static"
	}

	upstream, err := middleware.NewUpstreamMetrics(gtfsProviderName)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize upstream metrics")
		upstream = nil
	}

	clientConfig := resilience.DefaultClientConfig(gtfsProviderName)
	clientConfig.Timeout = 30 * time.Second
	clientConfig.Registry = providers
	if upstream != nil {
		clientConfig.Recorder = upstream
	}
	client := resilience.NewClient(clientConfig)

	fetchCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	topology, err := metro.FetchGTFSTopology(fetchCtx, client, feedURL)
	if err != nil {
		log.Warn().Err(err).Str("url", feedURL).Msg("gtfs topology unavailable, using built-in network")
		if upstream != nil {
			upstream.RecordFallback("topology")
		}
		return metro.DefaultTopology(), "static"
	}

	return topology, feedURL
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
