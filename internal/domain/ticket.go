package domain

import "time"

// TicketStatus enumerates lifecycle states for service requests.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "New"
	TicketStatusInProgress TicketStatus = "InProgress"
	TicketStatusAnswered   TicketStatus = "Answered"
	TicketStatusClosed     TicketStatus = "Closed"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// Ticket is an inbound service request submitted through the public intake
// form. Converting a ticket closes it and produces a Project.
type Ticket struct {
	ID          string
	Subject     string
	Message     string
	SenderName  string
	SenderEmail string
	SenderPhone string
	Category    string
	Status      TicketStatus
	Priority    TicketPriority
	AssigneeID  *string
	Response    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Convertible reports whether the ticket may still be turned into a project.
func (t *Ticket) Convertible() bool {
	return t.Status != TicketStatusClosed
}
