package trip

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/metroconnect/metroconnect/internal/api/models"
	"github.com/metroconnect/metroconnect/internal/matching"
	"github.com/metroconnect/metroconnect/internal/metro"
	"github.com/metroconnect/metroconnect/internal/telemetry"
)

// Service errors.
var (
	ErrNotConnected = errors.New("users are not connected")
)

// timeHHMMRegex validates 24-hour HH:MM times.
var timeHHMMRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// OwnerLookup resolves the public profiles of trip owners.
type OwnerLookup interface {
	PublicProfiles(ctx context.Context, userIDs []string) (map[string]models.PublicProfile, error)
}

// ConnectionChecker reports whether two users have an accepted connection.
type ConnectionChecker interface {
	AreConnected(ctx context.Context, userA, userB string) (bool, error)
}

// Service provides trip operations.
type Service struct {
	repo        Repository
	index       *metro.Index
	matcher     *matching.Matcher
	owners      OwnerLookup
	connections ConnectionChecker
	tracer      trace.Tracer
	now         func() time.Time
}

// NewService creates a new trip service.
func NewService(repo Repository, index *metro.Index, owners OwnerLookup, connections ConnectionChecker) *Service {
	return &Service{
		repo:        repo,
		index:       index,
		matcher:     matching.NewMatcher(index),
		owners:      owners,
		connections: connections,
		tracer:      telemetry.Tracer("github.com/metroconnect/metroconnect/internal/trip"),
		now:         time.Now,
	}
}

// ListUpcoming returns the caller's trips from today onwards.
func (s *Service) ListUpcoming(ctx context.Context, userID string) (*models.TripList, error) {
	trips, err := s.repo.ListUpcoming(ctx, userID, s.today())
	if err != nil {
		return nil, err
	}
	return toAPITripList(trips), nil
}

// today is the current time on the network's calendar, so a trip stays
// listed for the whole of its travel date in Delhi.
func (s *Service) today() time.Time {
	return s.now().In(metro.Location)
}

// ListForConnection returns another user's upcoming trips. The two users
// must have an accepted connection.
func (s *Service) ListForConnection(ctx context.Context, viewerID, ownerID string) (*models.TripList, error) {
	connected, err := s.connections.AreConnected(ctx, viewerID, ownerID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, ErrNotConnected
	}
	return s.ListUpcoming(ctx, ownerID)
}

// Create posts a new trip for a user.
func (s *Service) Create(ctx context.Context, userID string, input *models.TripInput) (*models.Trip, error) {
	date, fieldErrors := s.validateInput(input)
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := s.now()
	t := &Trip{
		ID:        "trp_" + uuid.New().String()[:22],
		UserID:    userID,
		CreatedAt: now,
	}
	applyInput(t, input, date, now)

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	result := toAPITrip(t)
	return &result, nil
}

// Update replaces the fields of a trip owned by the user.
func (s *Service) Update(ctx context.Context, userID, tripID string, input *models.TripInput) (*models.Trip, error) {
	t, err := s.repo.GetByUserAndID(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	date, fieldErrors := s.validateInput(input)
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	applyInput(t, input, date, s.now())

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	result := toAPITrip(t)
	return &result, nil
}

// Delete deletes a trip owned by the user.
func (s *Service) Delete(ctx context.Context, userID, tripID string) error {
	if _, err := s.repo.GetByUserAndID(ctx, userID, tripID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tripID)
}

// Search finds other users' trips that fit the query, best match first.
func (s *Service) Search(ctx context.Context, userID string, q models.SearchQuery) (*models.SearchResults, error) {
	ctx, span := s.tracer.Start(ctx, "trip.Search")
	defer span.End()

	date, gender, fieldErrors := s.validateSearch(q)
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	span.SetAttributes(
		attribute.String("search.start_station", q.StartStation),
		attribute.String("search.end_station", q.EndStation),
		attribute.String("search.travel_date", q.TravelDate),
		attribute.String("search.gender_filter", string(gender)),
	)

	trips, err := s.repo.ListCandidates(ctx, date, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list candidates")
		return nil, fmt.Errorf("list candidate trips: %w", err)
	}

	owners, err := s.owners.PublicProfiles(ctx, ownerIDs(trips))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load owners")
		return nil, fmt.Errorf("load trip owners: %w", err)
	}

	byID := make(map[string]*Trip, len(trips))
	candidates := make([]matching.Candidate, 0, len(trips))
	for _, t := range trips {
		owner, ok := owners[t.UserID]
		if !ok {
			// Trips are only searchable once their owner has a profile.
			continue
		}
		byID[t.ID] = t
		candidates = append(candidates, matching.Candidate{
			ID:           t.ID,
			StartStation: t.StartStation,
			EndStation:   t.EndStation,
			TravelTime:   t.TravelTime,
			OwnerGender:  matching.Gender(owner.Gender),
		})
	}

	ranked := s.matcher.Rank(matching.Query{
		StartStation: q.StartStation,
		EndStation:   q.EndStation,
		TravelTime:   q.TravelTime,
		GenderFilter: gender,
	}, candidates)

	items := make([]models.TripMatch, 0, len(ranked))
	for _, m := range ranked {
		t := byID[m.Candidate.ID]
		items = append(items, models.TripMatch{
			Trip:          toAPITrip(t),
			MatchQuality:  m.Quality,
			StartDistance: m.StartDistance,
			EndDistance:   m.EndDistance,
			TimeDiff:      m.TimeDiffMinutes,
			SortScore:     m.SortScore,
			User:          owners[t.UserID],
		})
	}

	span.SetAttributes(
		attribute.Int("search.candidates", len(candidates)),
		attribute.Int("search.matches", len(items)),
	)

	return &models.SearchResults{Items: items, Count: len(items)}, nil
}

// validateInput validates a trip body and returns the parsed travel date.
func (s *Service) validateInput(input *models.TripInput) (time.Time, []models.FieldError) {
	var errs []models.FieldError

	errs = append(errs, s.validateStations(input.StartStation, input.EndStation)...)

	date, dateErrs := validateDate(input.TravelDate)
	errs = append(errs, dateErrs...)
	errs = append(errs, validateTime(input.TravelTime)...)

	for _, day := range input.RepeatDays {
		if day < 0 || day > 6 {
			errs = append(errs, models.FieldError{Field: "repeat_days", Message: "must contain values between 0 and 6"})
			break
		}
	}

	return date, errs
}

// validateSearch validates search parameters and returns the parsed date and filter.
func (s *Service) validateSearch(q models.SearchQuery) (time.Time, matching.Gender, []models.FieldError) {
	var errs []models.FieldError

	errs = append(errs, s.validateStations(q.StartStation, q.EndStation)...)

	date, dateErrs := validateDate(q.TravelDate)
	errs = append(errs, dateErrs...)
	errs = append(errs, validateTime(q.TravelTime)...)

	gender := matching.Gender(q.GenderFilter)
	if gender == "" {
		gender = matching.GenderAll
	}
	if !gender.ValidFilter() {
		errs = append(errs, models.FieldError{Field: "gender_filter", Message: "must be one of All, Male, Female, Other"})
	}

	return date, gender, errs
}

func (s *Service) validateStations(start, end string) []models.FieldError {
	var errs []models.FieldError

	if start == "" {
		errs = append(errs, models.FieldError{Field: "start_station", Message: "is required"})
	} else if !s.index.Has(start) {
		errs = append(errs, models.FieldError{Field: "start_station", Message: "is not a known station"})
	}

	if end == "" {
		errs = append(errs, models.FieldError{Field: "end_station", Message: "is required"})
	} else if !s.index.Has(end) {
		errs = append(errs, models.FieldError{Field: "end_station", Message: "is not a known station"})
	}

	if start != "" && start == end {
		errs = append(errs, models.FieldError{Field: "end_station", Message: "must differ from start_station"})
	}

	return errs
}

func validateDate(value string) (time.Time, []models.FieldError) {
	if value == "" {
		return time.Time{}, []models.FieldError{{Field: "travel_date", Message: "is required"}}
	}
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, []models.FieldError{{Field: "travel_date", Message: "must be in YYYY-MM-DD format"}}
	}
	return date, nil
}

func validateTime(value string) []models.FieldError {
	if value == "" {
		return []models.FieldError{{Field: "travel_time", Message: "is required"}}
	}
	if !timeHHMMRegex.MatchString(value) {
		return []models.FieldError{{Field: "travel_time", Message: "must be in HH:MM format"}}
	}
	return nil
}

func applyInput(t *Trip, input *models.TripInput, date, now time.Time) {
	t.StartStation = input.StartStation
	t.EndStation = input.EndStation
	t.TravelDate = date
	t.TravelTime = input.TravelTime
	t.IsRepeating = input.IsRepeating != nil && *input.IsRepeating
	t.RepeatDays = normalizeDays(input.RepeatDays)
	t.UpdatedAt = now
}

// normalizeDays sorts and deduplicates weekday numbers.
func normalizeDays(days []int) []int {
	out := slices.Clone(days)
	if out == nil {
		return []int{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func ownerIDs(trips []*Trip) []string {
	seen := make(map[string]struct{}, len(trips))
	ids := make([]string, 0, len(trips))
	for _, t := range trips {
		if _, ok := seen[t.UserID]; ok {
			continue
		}
		seen[t.UserID] = struct{}{}
		ids = append(ids, t.UserID)
	}
	return ids
}

func toAPITripList(trips []*Trip) *models.TripList {
	items := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		items = append(items, toAPITrip(t))
	}
	return &models.TripList{Items: items}
}

// toAPITrip converts a domain Trip to an API Trip.
func toAPITrip(t *Trip) models.Trip {
	repeatDays := t.RepeatDays
	if repeatDays == nil {
		repeatDays = []int{}
	}
	return models.Trip{
		ID:           t.ID,
		UserID:       t.UserID,
		StartStation: t.StartStation,
		EndStation:   t.EndStation,
		TravelDate:   t.TravelDate.Format(DateLayout),
		TravelTime:   t.TravelTime,
		IsRepeating:  t.IsRepeating,
		RepeatDays:   repeatDays,
		CreatedAt:    models.Timestamp(t.CreatedAt),
		UpdatedAt:    models.Timestamp(t.UpdatedAt),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
