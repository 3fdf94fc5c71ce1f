package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/metroconnect/metroconnect/internal/api/models"
	"github.com/metroconnect/metroconnect/internal/matching"
)

// Validation constants.
const (
	MinNameLength     = 2
	MaxNameLength     = 50
	MinAge            = 18
	MaxAge            = 100
	MaxBioLength      = 100
	MaxHandleLength   = 30
	MaxPhoneLength    = 15
	MinSearchLength   = 2
	MaxSearchResults  = 20
	maxProfilePicURL  = 2048
	genderChoicesText = "must be one of Male, Female, Other"
)

// Service provides profile operations.
type Service struct {
	repo Repository
}

// NewService creates a new profile service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the user's own profile.
func (s *Service) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toAPIProfile(p), nil
}

// Update applies the provided fields to the user's profile, creating it on
// first use. A new profile needs a name, age and gender.
func (s *Service) Update(ctx context.Context, userID string, input *models.ProfileInput) (*models.Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	isNew := errors.Is(err, ErrProfileNotFound)
	if err != nil && !isNew {
		return nil, err
	}

	if fieldErrors := validateInput(input, isNew); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	if isNew {
		p = &Profile{ID: userID, CreatedAt: now}
	}

	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
	}
	if input.Age != nil {
		p.Age = *input.Age
	}
	if input.Gender != nil {
		p.Gender = *input.Gender
	}
	if input.ProfilePicURL != nil {
		p.ProfilePicURL = optional(*input.ProfilePicURL)
	}
	if input.Bio != nil {
		p.Bio = optional(*input.Bio)
	}
	if input.InstagramHandle != nil {
		p.InstagramHandle = optional(*input.InstagramHandle)
	}
	if input.TwitterHandle != nil {
		p.TwitterHandle = optional(*input.TwitterHandle)
	}
	if input.PhoneNumber != nil {
		p.PhoneNumber = optional(*input.PhoneNumber)
	}
	p.UpdatedAt = now

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	return toAPIProfile(p), nil
}

// PublicProfiles returns the public view of each existing profile among ids, keyed by ID.
func (s *Service) PublicProfiles(ctx context.Context, ids []string) (map[string]models.PublicProfile, error) {
	profiles, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}

	out := make(map[string]models.PublicProfile, len(profiles))
	for _, p := range profiles {
		out[p.ID] = p.Public()
	}
	return out, nil
}

// Search finds other users by name.
func (s *Service) Search(ctx context.Context, userID, query string) ([]models.PublicProfile, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchLength {
		return nil, &ValidationError{Errors: []models.FieldError{
			{Field: "q", Message: fmt.Sprintf("must be at least %d characters", MinSearchLength)},
		}}
	}

	profiles, err := s.repo.SearchByName(ctx, query, userID, MaxSearchResults)
	if err != nil {
		return nil, err
	}

	out := make([]models.PublicProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.Public())
	}
	return out, nil
}

func validateInput(input *models.ProfileInput, isNew bool) []models.FieldError {
	var errs []models.FieldError

	if input.Name != nil {
		n := utf8.RuneCountInString(strings.TrimSpace(*input.Name))
		if n < MinNameLength || n > MaxNameLength {
			errs = append(errs, models.FieldError{Field: "name", Message: fmt.Sprintf("must be between %d and %d characters", MinNameLength, MaxNameLength)})
		}
	} else if isNew {
		errs = append(errs, models.FieldError{Field: "name", Message: "is required"})
	}

	if input.Age != nil {
		if *input.Age < MinAge || *input.Age > MaxAge {
			errs = append(errs, models.FieldError{Field: "age", Message: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge)})
		}
	} else if isNew {
		errs = append(errs, models.FieldError{Field: "age", Message: "is required"})
	}

	if input.Gender != nil {
		if !matching.Gender(*input.Gender).Valid() {
			errs = append(errs, models.FieldError{Field: "gender", Message: genderChoicesText})
		}
	} else if isNew {
		errs = append(errs, models.FieldError{Field: "gender", Message: "is required"})
	}

	errs = append(errs, maxLength("bio", input.Bio, MaxBioLength)...)
	errs = append(errs, maxLength("instagram_handle", input.InstagramHandle, MaxHandleLength)...)
	errs = append(errs, maxLength("twitter_handle", input.TwitterHandle, MaxHandleLength)...)
	errs = append(errs, maxLength("phone_number", input.PhoneNumber, MaxPhoneLength)...)
	errs = append(errs, maxLength("profile_pic_url", input.ProfilePicURL, maxProfilePicURL)...)

	return errs
}

func maxLength(field string, value *string, limit int) []models.FieldError {
	if value == nil || utf8.RuneCountInString(strings.TrimSpace(*value)) <= limit {
		return nil
	}
	return []models.FieldError{{Field: field, Message: fmt.Sprintf("must be at most %d characters", limit)}}
}

// optional trims s and maps the empty string to nil.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// toAPIProfile converts a domain Profile to an API Profile.
func toAPIProfile(p *Profile) *models.Profile {
	return &models.Profile{
		PublicProfile: p.Public(),
		PhoneNumber:   p.PhoneNumber,
		CreatedAt:     models.Timestamp(p.CreatedAt),
		UpdatedAt:     models.Timestamp(p.UpdatedAt),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
