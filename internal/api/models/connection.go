package models

// ConnectionStatus is the state of a connection between two users.
type ConnectionStatus string

const (
	ConnectionStatusNone     ConnectionStatus = "none"
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusDeclined ConnectionStatus = "declined"
)

// ConnectionRef is the caller's connection to another user, as seen from people search.
type ConnectionRef struct {
	ID     string
	Status ConnectionStatus
}

// Connection is a request between two users.
type Connection struct {
	ID          string           `json:"id"`
	RequesterID string           `json:"requester_id"`
	RecipientID string           `json:"recipient_id"`
	Status      ConnectionStatus `json:"status"`
	CreatedAt   Timestamp        `json:"created_at"`
	UpdatedAt   Timestamp        `json:"updated_at"`
	Requester   *PublicProfile   `json:"requester,omitempty"`
	Recipient   *PublicProfile   `json:"recipient,omitempty"`
}

// ConnectionCreateRequest is the request body for sending a connection request.
type ConnectionCreateRequest struct {
	RecipientID string `json:"recipient_id"`
}

// ConnectionUpdateRequest is the request body for answering a connection request.
type ConnectionUpdateRequest struct {
	Status ConnectionStatus `json:"status"`
}

// ConnectionOverview groups the caller's connections.
type ConnectionOverview struct {
	Pending      []Connection `json:"pending"`
	Sent         []Connection `json:"sent"`
	Accepted     []Connection `json:"accepted"`
	PendingCount int          `json:"pending_count"`
}

// Message is one chat message on an accepted connection.
type Message struct {
	ID           string    `json:"id"`
	ConnectionID string    `json:"connection_id"`
	SenderID     string    `json:"sender_id"`
	Content      string    `json:"content"`
	CreatedAt    Timestamp `json:"created_at"`
}

// MessageCreateRequest is the request body for sending a message.
type MessageCreateRequest struct {
	Content string `json:"content"`
}

// MessageList wraps a connection's chat history, oldest first.
type MessageList struct {
	Items []Message `json:"items"`
}
