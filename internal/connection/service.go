package connection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/metroconnect/metroconnect/internal/api/models"
)

// Service errors.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNotRecipient    = errors.New("only the recipient can respond to a connection request")
	ErrNotPending      = errors.New("connection request is no longer pending")
	ErrNotAccepted     = errors.New("connection is not accepted")
	ErrNotAParticipant = errors.New("not a party of this connection")
)

// MaxMessageLength is the longest message, in characters, that can be sent.
const MaxMessageLength = 500

// ProfileDirectory looks up and searches user profiles.
type ProfileDirectory interface {
	PublicProfiles(ctx context.Context, ids []string) (map[string]models.PublicProfile, error)
	Search(ctx context.Context, userID, query string) ([]models.PublicProfile, error)
}

// Service provides connection and messaging operations.
type Service struct {
	repo     Repository
	profiles ProfileDirectory
}

// NewService creates a new connection service.
func NewService(repo Repository, profiles ProfileDirectory) *Service {
	return &Service{repo: repo, profiles: profiles}
}

// Overview returns the user's connections grouped into received requests,
// sent requests and accepted connections.
func (s *Service) Overview(ctx context.Context, userID string) (*models.ConnectionOverview, error) {
	conns, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profilesFor(ctx, conns)
	if err != nil {
		return nil, err
	}

	overview := &models.ConnectionOverview{
		Pending:  []models.Connection{},
		Sent:     []models.Connection{},
		Accepted: []models.Connection{},
	}
	for _, c := range conns {
		apiConn := toAPIConnection(c, profiles)
		switch {
		case c.Status == models.ConnectionStatusAccepted:
			overview.Accepted = append(overview.Accepted, apiConn)
		case c.Status == models.ConnectionStatusPending && c.RecipientID == userID:
			overview.Pending = append(overview.Pending, apiConn)
		case c.Status == models.ConnectionStatusPending:
			overview.Sent = append(overview.Sent, apiConn)
		}
	}
	overview.PendingCount = len(overview.Pending)

	return overview, nil
}

// Request sends a connection request from userID to the recipient.
func (s *Service) Request(ctx context.Context, userID string, input *models.ConnectionCreateRequest) (*models.Connection, error) {
	recipientID := strings.TrimSpace(input.RecipientID)
	if recipientID == "" {
		return nil, &ValidationError{Errors: []models.FieldError{{Field: "recipient_id", Message: "is required"}}}
	}
	if recipientID == userID {
		return nil, &ValidationError{Errors: []models.FieldError{{Field: "recipient_id", Message: "cannot connect with yourself"}}}
	}

	profiles, err := s.profiles.PublicProfiles(ctx, []string{userID, recipientID})
	if err != nil {
		return nil, err
	}
	if _, ok := profiles[recipientID]; !ok {
		return nil, ErrUserNotFound
	}

	if _, err := s.repo.FindBetween(ctx, userID, recipientID); err == nil {
		return nil, ErrConnectionExists
	} else if !errors.Is(err, ErrConnectionNotFound) {
		return nil, err
	}

	now := time.Now()
	c := &Connection{
		ID:          "con_" + uuid.New().String()[:22],
		RequesterID: userID,
		RecipientID: recipientID,
		Status:      models.ConnectionStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	result := toAPIConnection(c, profiles)
	return &result, nil
}

// Respond accepts or declines a pending request addressed to userID.
func (s *Service) Respond(ctx context.Context, userID, connectionID string, input *models.ConnectionUpdateRequest) (*models.Connection, error) {
	if input.Status != models.ConnectionStatusAccepted && input.Status != models.ConnectionStatusDeclined {
		return nil, &ValidationError{Errors: []models.FieldError{{Field: "status", Message: "must be accepted or declined"}}}
	}

	c, err := s.repo.Get(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if c.RecipientID != userID {
		return nil, ErrNotRecipient
	}
	if c.Status != models.ConnectionStatusPending {
		return nil, ErrNotPending
	}

	c.Status = input.Status
	c.UpdatedAt = time.Now()
	if err := s.repo.UpdateStatus(ctx, c.ID, c.Status, c.UpdatedAt); err != nil {
		return nil, err
	}

	profiles, err := s.profilesFor(ctx, []*Connection{c})
	if err != nil {
		return nil, err
	}
	result := toAPIConnection(c, profiles)
	return &result, nil
}

// AreConnected reports whether two users have an accepted connection.
func (s *Service) AreConnected(ctx context.Context, userA, userB string) (bool, error) {
	c, err := s.repo.FindBetween(ctx, userA, userB)
	if err != nil {
		if errors.Is(err, ErrConnectionNotFound) {
			return false, nil
		}
		return false, err
	}
	return c.Status == models.ConnectionStatusAccepted, nil
}

// SearchPeople finds other users by name and annotates each with the
// caller's connection to them.
func (s *Service) SearchPeople(ctx context.Context, userID, query string) (*models.PeopleList, error) {
	found, err := s.profiles.Search(ctx, userID, query)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(found))
	for _, p := range found {
		ids = append(ids, p.ID)
	}
	conns, err := s.repo.ListBetween(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	byOther := make(map[string]*Connection, len(conns))
	for _, c := range conns {
		byOther[c.Other(userID)] = c
	}

	items := make([]models.Person, 0, len(found))
	for _, p := range found {
		person := models.Person{PublicProfile: p, ConnectionStatus: models.ConnectionStatusNone}
		if c, ok := byOther[p.ID]; ok {
			id := c.ID
			person.ConnectionStatus = c.Status
			person.ConnectionID = &id
		}
		items = append(items, person)
	}

	return &models.PeopleList{Items: items}, nil
}

// Messages returns the chat history of an accepted connection the user is part of.
func (s *Service) Messages(ctx context.Context, userID, connectionID string) (*models.MessageList, error) {
	if _, err := s.chatConnection(ctx, userID, connectionID); err != nil {
		return nil, err
	}

	msgs, err := s.repo.ListMessages(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	items := make([]models.Message, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, toAPIMessage(m))
	}
	return &models.MessageList{Items: items}, nil
}

// SendMessage posts a message on an accepted connection the user is part of.
func (s *Service) SendMessage(ctx context.Context, userID, connectionID string, input *models.MessageCreateRequest) (*models.Message, error) {
	content := strings.TrimSpace(input.Content)
	switch {
	case content == "":
		return nil, &ValidationError{Errors: []models.FieldError{{Field: "content", Message: "is required"}}}
	case utf8.RuneCountInString(content) > MaxMessageLength:
		return nil, &ValidationError{Errors: []models.FieldError{{Field: "content", Message: fmt.Sprintf("must be at most %d characters", MaxMessageLength)}}}
	}

	if _, err := s.chatConnection(ctx, userID, connectionID); err != nil {
		return nil, err
	}

	m := &Message{
		ID:           "msg_" + uuid.New().String()[:22],
		ConnectionID: connectionID,
		SenderID:     userID,
		Content:      content,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	result := toAPIMessage(m)
	return &result, nil
}

// chatConnection loads a connection the user may chat on.
func (s *Service) chatConnection(ctx context.Context, userID, connectionID string) (*Connection, error) {
	c, err := s.repo.Get(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if !c.Involves(userID) {
		return nil, fmt.Errorf("%w: %w", ErrConnectionNotFound, ErrNotAParticipant)
	}
	if c.Status != models.ConnectionStatusAccepted {
		return nil, fmt.Errorf("%w: %w", ErrConnectionNotFound, ErrNotAccepted)
	}
	return c, nil
}

func (s *Service) profilesFor(ctx context.Context, conns []*Connection) (map[string]models.PublicProfile, error) {
	seen := make(map[string]struct{}, len(conns)*2)
	ids := make([]string, 0, len(conns)*2)
	for _, c := range conns {
		for _, id := range []string{c.RequesterID, c.RecipientID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return map[string]models.PublicProfile{}, nil
	}
	return s.profiles.PublicProfiles(ctx, ids)
}

func toAPIConnection(c *Connection, profiles map[string]models.PublicProfile) models.Connection {
	out := models.Connection{
		ID:          c.ID,
		RequesterID: c.RequesterID,
		RecipientID: c.RecipientID,
		Status:      c.Status,
		CreatedAt:   models.Timestamp(c.CreatedAt),
		UpdatedAt:   models.Timestamp(c.UpdatedAt),
	}
	if p, ok := profiles[c.RequesterID]; ok {
		out.Requester = &p
	}
	if p, ok := profiles[c.RecipientID]; ok {
		out.Recipient = &p
	}
	return out
}

func toAPIMessage(m *Message) models.Message {
	return models.Message{
		ID:           m.ID,
		ConnectionID: m.ConnectionID,
		SenderID:     m.SenderID,
		Content:      m.Content,
		CreatedAt:    models.Timestamp(m.CreatedAt),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
