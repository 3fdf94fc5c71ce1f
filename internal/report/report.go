// Package report records user reports for moderation.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/metroconnect/metroconnect/internal/api/models"
)

// Errors.
var (
	ErrDuplicateReport = errors.New("a pending report against this user already exists")
)

// MaxDescriptionLength is the longest accepted report description.
const MaxDescriptionLength = 500

// StatusPending is the status of a report awaiting moderation.
const StatusPending = "pending"

// Report is a complaint filed by one user about another.
type Report struct {
	ID             string
	ReporterID     string
	ReportedUserID string
	Reason         models.ReportReason
	Description    *string
	Status         string
	CreatedAt      time.Time
}

// Repository defines the interface for report persistence.
type Repository interface {
	// HasPending reports whether reporterID already has a pending report against reportedID.
	HasPending(ctx context.Context, reporterID, reportedID string) (bool, error)

	// Create stores a new report.
	Create(ctx context.Context, r *Report) error
}

// Service files reports.
type Service struct {
	repo Repository
}

// NewService creates a new report service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// File records a report from userID.
func (s *Service) File(ctx context.Context, userID string, input *models.ReportCreateRequest) (*models.Report, error) {
	if fieldErrors := validate(userID, input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	pending, err := s.repo.HasPending(ctx, userID, input.ReportedUserID)
	if err != nil {
		return nil, fmt.Errorf("check pending reports: %w", err)
	}
	if pending {
		return nil, ErrDuplicateReport
	}

	var description *string
	if input.Description != nil {
		if d := strings.TrimSpace(*input.Description); d != "" {
			description = &d
		}
	}

	r := &Report{
		ID:             "rpt_" + uuid.New().String()[:22],
		ReporterID:     userID,
		ReportedUserID: input.ReportedUserID,
		Reason:         input.Reason,
		Description:    description,
		Status:         StatusPending,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	return &models.Report{
		ID:             r.ID,
		ReporterID:     r.ReporterID,
		ReportedUserID: r.ReportedUserID,
		Reason:         r.Reason,
		Description:    r.Description,
		Status:         r.Status,
		CreatedAt:      models.Timestamp(r.CreatedAt),
	}, nil
}

func validate(userID string, input *models.ReportCreateRequest) []models.FieldError {
	var errs []models.FieldError

	switch input.ReportedUserID {
	case "":
		errs = append(errs, models.FieldError{Field: "reported_user_id", Message: "is required"})
	case userID:
		errs = append(errs, models.FieldError{Field: "reported_user_id", Message: "cannot report yourself"})
	}

	switch input.Reason {
	case models.ReportReasonFakeProfile, models.ReportReasonHarassment, models.ReportReasonInappropriate,
		models.ReportReasonSpam, models.ReportReasonSafety, models.ReportReasonOther:
	case "":
		errs = append(errs, models.FieldError{Field: "reason", Message: "is required"})
	default:
		errs = append(errs, models.FieldError{
			Field:   "reason",
			Message: "must be one of fake_profile, harassment, inappropriate, spam, safety, other",
		})
	}

	if input.Description != nil && utf8.RuneCountInString(strings.TrimSpace(*input.Description)) > MaxDescriptionLength {
		errs = append(errs, models.FieldError{Field: "description", Message: fmt.Sprintf("must be at most %d characters", MaxDescriptionLength)})
	}

	return errs
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu      sync.RWMutex
	reports []*Report
}

// NewInMemoryRepository creates a new in-memory report repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// HasPending reports whether a pending report exists for the pair.
func (r *InMemoryRepository) HasPending(_ context.Context, reporterID, reportedID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rep := range r.reports {
		if rep.ReporterID == reporterID && rep.ReportedUserID == reportedID && rep.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}

// Create stores a new report.
func (r *InMemoryRepository) Create(_ context.Context, rep *Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *rep
	r.reports = append(r.reports, &cpy)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
