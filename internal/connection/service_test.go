package connection_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metroconnect/metroconnect/internal/api/models"
	"github.com/metroconnect/metroconnect/internal/connection"
	"github.com/metroconnect/metroconnect/internal/profile"
)

func setup(t *testing.T, users ...string) *connection.Service {
	t.Helper()
	profiles := profile.NewService(profile.NewInMemoryRepository())
	for _, name := range users {
		age, gender := 28, "Other"
		_, err := profiles.Update(context.Background(), strings.ToLower(name), &models.ProfileInput{
			Name:   &name,
			Age:    &age,
			Gender: &gender,
		})
		require.NoError(t, err)
	}
	return connection.NewService(connection.NewInMemoryRepository(), profiles)
}

func request(t *testing.T, svc *connection.Service, from, to string) *models.Connection {
	t.Helper()
	c, err := svc.Request(context.Background(), from, &models.ConnectionCreateRequest{RecipientID: to})
	require.NoError(t, err)
	return c
}

func accept(t *testing.T, svc *connection.Service, recipient, connectionID string) {
	t.Helper()
	_, err := svc.Respond(context.Background(), recipient, connectionID, &models.ConnectionUpdateRequest{Status: models.ConnectionStatusAccepted})
	require.NoError(t, err)
}

func TestService_Request(t *testing.T) {
	svc := setup(t, "Anil", "Bina")

	c := request(t, svc, "anil", "bina")

	assert.Regexp(t, `^con_`, c.ID)
	assert.Equal(t, models.ConnectionStatusPending, c.Status)
	require.NotNil(t, c.Requester)
	require.NotNil(t, c.Recipient)
	assert.Equal(t, "Anil", c.Requester.Name)
	assert.Equal(t, "Bina", c.Recipient.Name)
}

func TestService_Request_Errors(t *testing.T) {
	svc := setup(t, "Anil", "Bina")
	ctx := context.Background()
	request(t, svc, "anil", "bina")

	var validationErr *connection.ValidationError

	_, err := svc.Request(ctx, "anil", &models.ConnectionCreateRequest{})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.Request(ctx, "anil", &models.ConnectionCreateRequest{RecipientID: "anil"})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.Request(ctx, "anil", &models.ConnectionCreateRequest{RecipientID: "nobody"})
	assert.ErrorIs(t, err, connection.ErrUserNotFound)

	// Either direction counts as existing.
	_, err = svc.Request(ctx, "anil", &models.ConnectionCreateRequest{RecipientID: "bina"})
	assert.ErrorIs(t, err, connection.ErrConnectionExists)
	_, err = svc.Request(ctx, "bina", &models.ConnectionCreateRequest{RecipientID: "anil"})
	assert.ErrorIs(t, err, connection.ErrConnectionExists)
}

func TestService_Respond(t *testing.T) {
	svc := setup(t, "Anil", "Bina")
	ctx := context.Background()
	c := request(t, svc, "anil", "bina")

	_, err := svc.Respond(ctx, "anil", c.ID, &models.ConnectionUpdateRequest{Status: models.ConnectionStatusAccepted})
	assert.ErrorIs(t, err, connection.ErrNotRecipient)

	var validationErr *connection.ValidationError
	_, err = svc.Respond(ctx, "bina", c.ID, &models.ConnectionUpdateRequest{Status: models.ConnectionStatusPending})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.Respond(ctx, "bina", "con_missing", &models.ConnectionUpdateRequest{Status: models.ConnectionStatusAccepted})
	assert.ErrorIs(t, err, connection.ErrConnectionNotFound)

	updated, err := svc.Respond(ctx, "bina", c.ID, &models.ConnectionUpdateRequest{Status: models.ConnectionStatusDeclined})
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusDeclined, updated.Status)

	_, err = svc.Respond(ctx, "bina", c.ID, &models.ConnectionUpdateRequest{Status: models.ConnectionStatusAccepted})
	assert.ErrorIs(t, err, connection.ErrNotPending)
}

func TestService_Overview(t *testing.T) {
	svc := setup(t, "Anil", "Bina", "Chetan", "Divya")
	ctx := context.Background()

	incoming := request(t, svc, "bina", "anil")
	outgoing := request(t, svc, "anil", "chetan")
	friend := request(t, svc, "divya", "anil")
	accept(t, svc, "anil", friend.ID)

	overview, err := svc.Overview(ctx, "anil")
	require.NoError(t, err)

	require.Len(t, overview.Pending, 1)
	assert.Equal(t, incoming.ID, overview.Pending[0].ID)
	require.Len(t, overview.Sent, 1)
	assert.Equal(t, outgoing.ID, overview.Sent[0].ID)
	require.Len(t, overview.Accepted, 1)
	assert.Equal(t, friend.ID, overview.Accepted[0].ID)
	assert.Equal(t, 1, overview.PendingCount)

	empty, err := svc.Overview(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty.Pending)
	assert.Zero(t, empty.PendingCount)
}

func TestService_AreConnected(t *testing.T) {
	svc := setup(t, "Anil", "Bina", "Chetan")
	ctx := context.Background()

	c := request(t, svc, "anil", "bina")
	request(t, svc, "anil", "chetan")

	ok, err := svc.AreConnected(ctx, "anil", "bina")
	require.NoError(t, err)
	assert.False(t, ok)

	accept(t, svc, "bina", c.ID)

	for _, pair := range [][2]string{{"anil", "bina"}, {"bina", "anil"}} {
		ok, err := svc.AreConnected(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err = svc.AreConnected(ctx, "anil", "chetan")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_SearchPeople(t *testing.T) {
	svc := setup(t, "Ravi", "Ravina", "Ravindra", "Kiran")
	ctx := context.Background()

	c := request(t, svc, "ravina", "ravi")

	people, err := svc.SearchPeople(ctx, "ravi", "rav")
	require.NoError(t, err)
	require.Len(t, people.Items, 2)

	assert.Equal(t, "Ravina", people.Items[0].Name)
	assert.Equal(t, models.ConnectionStatusPending, people.Items[0].ConnectionStatus)
	require.NotNil(t, people.Items[0].ConnectionID)
	assert.Equal(t, c.ID, *people.Items[0].ConnectionID)

	assert.Equal(t, "Ravindra", people.Items[1].Name)
	assert.Equal(t, models.ConnectionStatusNone, people.Items[1].ConnectionStatus)
	assert.Nil(t, people.Items[1].ConnectionID)

	_, err = svc.SearchPeople(ctx, "ravi", "r")
	var validationErr *profile.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestService_Messages(t *testing.T) {
	svc := setup(t, "Anil", "Bina", "Chetan")
	ctx := context.Background()
	c := request(t, svc, "anil", "bina")

	// Chat opens only once the request is accepted.
	_, err := svc.SendMessage(ctx, "anil", c.ID, &models.MessageCreateRequest{Content: "hi"})
	assert.ErrorIs(t, err, connection.ErrConnectionNotFound)
	assert.ErrorIs(t, err, connection.ErrNotAccepted)

	accept(t, svc, "bina", c.ID)

	first, err := svc.SendMessage(ctx, "anil", c.ID, &models.MessageCreateRequest{Content: "  Same coach tomorrow?  "})
	require.NoError(t, err)
	assert.Regexp(t, `^msg_`, first.ID)
	assert.Equal(t, "Same coach tomorrow?", first.Content)

	_, err = svc.SendMessage(ctx, "bina", c.ID, &models.MessageCreateRequest{Content: "Yes, 8:40 from Rajiv Chowk"})
	require.NoError(t, err)

	history, err := svc.Messages(ctx, "bina", c.ID)
	require.NoError(t, err)
	require.Len(t, history.Items, 2)
	assert.Equal(t, "anil", history.Items[0].SenderID)
	assert.Equal(t, "bina", history.Items[1].SenderID)

	_, err = svc.Messages(ctx, "chetan", c.ID)
	assert.ErrorIs(t, err, connection.ErrConnectionNotFound)
	assert.ErrorIs(t, err, connection.ErrNotAParticipant)
}

func TestService_SendMessage_Validation(t *testing.T) {
	svc := setup(t, "Anil", "Bina")
	ctx := context.Background()
	c := request(t, svc, "anil", "bina")
	accept(t, svc, "bina", c.ID)

	var validationErr *connection.ValidationError

	_, err := svc.SendMessage(ctx, "anil", c.ID, &models.MessageCreateRequest{Content: "   "})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.SendMessage(ctx, "anil", c.ID, &models.MessageCreateRequest{Content: strings.Repeat("x", connection.MaxMessageLength+1)})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.SendMessage(ctx, "anil", c.ID, &models.MessageCreateRequest{Content: strings.Repeat("x", connection.MaxMessageLength)})
	assert.NoError(t, err)
}
