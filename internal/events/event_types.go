package events

import (
	"time"

	"github.com/epwerk/field-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketReceived  EventType = "ticket_received"
	EventTicketConverted EventType = "ticket_converted"
	EventProjectCreated  EventType = "project_created"
	EventProjectDeleted  EventType = "project_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID *string          `json:"user_id,omitempty"`
	Role   *domain.UserRole `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketReceivedPayload payload.
type TicketReceivedPayload struct {
	TicketID string                `json:"ticket_id"`
	Subject  string                `json:"subject"`
	Category string                `json:"category"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketConvertedPayload payload.
type TicketConvertedPayload struct {
	TicketID      string `json:"ticket_id"`
	ProjectID     string `json:"project_id"`
	ProjectNumber string `json:"project_number"`
	CustomerID    string `json:"customer_id"`
	StageCount    int    `json:"stage_count"`
}

// ProjectCreatedPayload payload.
type ProjectCreatedPayload struct {
	ProjectID     string               `json:"project_id"`
	ProjectNumber string               `json:"project_number"`
	Status        domain.ProjectStatus `json:"status"`
}

// ProjectDeletedPayload payload.
type ProjectDeletedPayload struct {
	ProjectID     string `json:"project_id"`
	ProjectNumber string `json:"project_number"`
}
