package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/events"
	"github.com/epwerk/field-service/internal/repository"
	apperrors "github.com/epwerk/field-service/pkg/util"
)

// TicketService coordinates ticket intake and staff workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// TicketIntakeInput describes the public intake payload.
type TicketIntakeInput struct {
	Subject     string
	Message     string
	SenderName  string
	SenderEmail string
	SenderPhone string
	Category    string
	Priority    domain.TicketPriority
}

// TicketUpdateInput describes staff mutations. Nil fields are untouched.
type TicketUpdateInput struct {
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
	AssigneeID *string
	Response   *string
	Category   *string
}

// SubmitTicket receives a public service request.
func (s *TicketService) SubmitTicket(ctx context.Context, input TicketIntakeInput) (*domain.Ticket, error) {
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if subject == "" || message == "" {
		return nil, apperrors.NewValidationError("subject and message required", nil)
	}

	ticket := &domain.Ticket{
		Subject:     subject,
		Message:     message,
		SenderName:  strings.TrimSpace(input.SenderName),
		SenderEmail: strings.TrimSpace(input.SenderEmail),
		SenderPhone: strings.TrimSpace(input.SenderPhone),
		Category:    strings.TrimSpace(input.Category),
		Status:      domain.TicketStatusNew,
		Priority:    input.Priority,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type: events.EventTicketReceived,
		Payload: events.TicketReceivedPayload{
			TicketID: ticket.ID,
			Subject:  ticket.Subject,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// GetTicket fetches a single ticket.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, err
	}
	return ticket, nil
}

// ListTickets returns tickets matching the filter.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, filter)
}

// UpdateTicket applies staff mutations. Closed tickets are immutable; they
// only ever close through conversion.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewValidationError("closed tickets cannot be modified", nil)
	}

	if input.Status != nil {
		if *input.Status == domain.TicketStatusClosed {
			return nil, apperrors.NewValidationError("tickets close only through conversion", nil)
		}
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}
	if input.AssigneeID != nil {
		ticket.AssigneeID = input.AssigneeID
	}
	if input.Response != nil {
		ticket.Response = *input.Response
		if input.Status == nil {
			ticket.Status = domain.TicketStatusAnswered
		}
	}
	if input.Category != nil {
		ticket.Category = strings.TrimSpace(*input.Category)
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
