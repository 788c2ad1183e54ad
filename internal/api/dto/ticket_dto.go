package dto

import (
	"time"

	"github.com/epwerk/field-service/internal/domain"
)

// SubmitTicketRequest is the public intake payload.
type SubmitTicketRequest struct {
	Subject     string                `json:"subject"`
	Message     string                `json:"message"`
	SenderName  string                `json:"sender_name"`
	SenderEmail string                `json:"sender_email"`
	SenderPhone string                `json:"sender_phone"`
	Category    string                `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest is the staff mutation payload.
type UpdateTicketRequest struct {
	Status     *domain.TicketStatus   `json:"status"`
	Priority   *domain.TicketPriority `json:"priority"`
	AssigneeID *string                `json:"assignee_id"`
	Response   *string                `json:"response"`
	Category   *string                `json:"category"`
}

// TicketResponse represents a ticket.
type TicketResponse struct {
	ID          string                `json:"id"`
	Subject     string                `json:"subject"`
	Message     string                `json:"message"`
	SenderName  string                `json:"sender_name"`
	SenderEmail string                `json:"sender_email"`
	SenderPhone string                `json:"sender_phone"`
	Category    string                `json:"category"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	AssigneeID  *string               `json:"assignee_id"`
	Response    string                `json:"response,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}
