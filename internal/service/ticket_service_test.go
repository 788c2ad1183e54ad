package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/events"
	apperrors "github.com/epwerk/field-service/pkg/util"
)

func newTicketFixture() (*memState, *TicketService, *[]events.Event) {
	state := newMemState()
	dispatcher := events.NewInMemoryDispatcher()
	var captured []events.Event
	dispatcher.Subscribe(events.EventTicketReceived, func(_ context.Context, event events.Event) error {
		captured = append(captured, event)
		return nil
	})
	svc := NewTicketService(&memTickets{state}, dispatcher)
	return state, svc, &captured
}

func TestSubmitTicket(t *testing.T) {
	state, svc, captured := newTicketFixture()

	ticket, err := svc.SubmitTicket(context.Background(), TicketIntakeInput{
		Subject:     "  Broken heating  ",
		Message:     "No heat since Monday.",
		SenderEmail: "tenant@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Broken heating", ticket.Subject)
	assert.Equal(t, domain.TicketStatusNew, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Len(t, state.tickets, 1)

	require.Len(t, *captured, 1)
	payload := (*captured)[0].Payload.(events.TicketReceivedPayload)
	assert.Equal(t, ticket.ID, payload.TicketID)
}

func TestSubmitTicketRequiresSubjectAndMessage(t *testing.T) {
	_, svc, _ := newTicketFixture()

	_, err := svc.SubmitTicket(context.Background(), TicketIntakeInput{Subject: "x"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.SubmitTicket(context.Background(), TicketIntakeInput{Message: "x"})
	require.Error(t, err)
}

func TestUpdateTicketCannotClose(t *testing.T) {
	state, svc, _ := newTicketFixture()
	ticket := state.addTicket(domain.Ticket{Subject: "s", Message: "m"})

	closed := domain.TicketStatusClosed
	_, err := svc.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{Status: &closed})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Equal(t, domain.TicketStatusNew, state.tickets[ticket.ID].Status)
}

func TestUpdateClosedTicketRejected(t *testing.T) {
	state, svc, _ := newTicketFixture()
	ticket := state.addTicket(domain.Ticket{Subject: "s", Message: "m", Status: domain.TicketStatusClosed})

	high := domain.TicketPriorityHigh
	_, err := svc.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{Priority: &high})
	require.Error(t, err)
}

func TestUpdateTicketResponseMarksAnswered(t *testing.T) {
	state, svc, _ := newTicketFixture()
	ticket := state.addTicket(domain.Ticket{Subject: "s", Message: "m"})

	response := "We will visit on Friday."
	updated, err := svc.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{Response: &response})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusAnswered, updated.Status)
	assert.Equal(t, response, state.tickets[ticket.ID].Response)
}

func TestUpdateUnknownTicket(t *testing.T) {
	_, svc, _ := newTicketFixture()
	_, err := svc.UpdateTicket(context.Background(), "missing", TicketUpdateInput{})
	assert.True(t, apperrors.IsNotFound(err))
}
