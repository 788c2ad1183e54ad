package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/events"
	"github.com/epwerk/field-service/internal/observability"
	apperrors "github.com/epwerk/field-service/pkg/util"
)

func newConversionFixture() (*memState, *ConversionService, events.Dispatcher, *observability.Metrics) {
	state := newMemState()
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	svc := NewConversionService(&memUnitOfWork{state: state}, dispatcher, metrics, zap.NewNop())
	return state, svc, dispatcher, metrics
}

func TestConvertCreatesProjectFromTicket(t *testing.T) {
	state, svc, dispatcher, metrics := newConversionFixture()

	state.addCategory(domain.Category{
		Name: "Electrical",
		StageTemplate: []byte(`{"stages":[
			{"name":"Site survey","order":1},
			{"name":"Installation","status":"Planned","order":2},
			{"name":"Acceptance","order":3}
		]}`),
	})
	ticket := state.addTicket(domain.Ticket{
		Subject:     "Fuse box replacement",
		Message:     "The fuse box in the basement trips daily.",
		SenderName:  "Jo Fischer",
		SenderEmail: "jo.fischer@example.com",
		Category:    "Electrical",
	})

	var converted events.TicketConvertedPayload
	dispatcher.Subscribe(events.EventTicketConverted, func(_ context.Context, event events.Event) error {
		converted = event.Payload.(events.TicketConvertedPayload)
		return nil
	})

	project, err := svc.Convert(context.Background(), ticket.ID, &domain.User{ID: "u1", Role: domain.RoleOffice})
	require.NoError(t, err)

	assert.Equal(t, "EP-1000", project.Number)
	assert.Equal(t, "Fuse box replacement", project.Name)
	assert.Equal(t, domain.ProjectStatusPlanned, project.Status)
	require.NotNil(t, project.CustomerID)
	require.NotNil(t, project.CategoryID)

	require.Len(t, project.Stages, 3)
	assert.Equal(t, "Site survey", project.Stages[0].Name)
	assert.Equal(t, "Installation", project.Stages[1].Name)
	assert.Equal(t, "Acceptance", project.Stages[2].Name)
	for _, stage := range project.Stages {
		assert.Equal(t, domain.StageStatusPlanned, stage.Status)
		assert.Equal(t, project.ID, stage.ProjectID)
	}

	stored := state.tickets[ticket.ID]
	assert.Equal(t, domain.TicketStatusClosed, stored.Status)
	assert.Contains(t, stored.Response, "EP-1000")

	require.Len(t, state.customers, 1)
	customer := state.customers[*project.CustomerID]
	assert.Equal(t, "jo.fischer@example.com", customer.Email)
	assert.Equal(t, domain.CustomerTypePrivate, customer.Type)

	assert.Equal(t, ticket.ID, converted.TicketID)
	assert.Equal(t, "EP-1000", converted.ProjectNumber)
	assert.Equal(t, 3, converted.StageCount)
	assert.Equal(t, int64(1), metrics.Conversions())
}

func TestConvertUnknownTicket(t *testing.T) {
	_, svc, _, _ := newConversionFixture()

	_, err := svc.Convert(context.Background(), "missing", nil)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestConvertClosedTicketRejected(t *testing.T) {
	state, svc, _, _ := newConversionFixture()
	ticket := state.addTicket(domain.Ticket{
		Subject:     "Already handled",
		Message:     "done",
		SenderEmail: "a@example.com",
		Status:      domain.TicketStatusClosed,
	})

	_, err := svc.Convert(context.Background(), ticket.ID, nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Empty(t, state.projects)
}

func TestConvertWithoutSenderEmail(t *testing.T) {
	state, svc, _, metrics := newConversionFixture()
	ticket := state.addTicket(domain.Ticket{
		Subject: "Anonymous request",
		Message: "no contact data",
	})

	_, err := svc.Convert(context.Background(), ticket.ID, nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	assert.Empty(t, state.projects)
	assert.Empty(t, state.customers)
	assert.Equal(t, domain.TicketStatusNew, state.tickets[ticket.ID].Status)
	assert.Equal(t, int64(0), metrics.Conversions())
}

func TestConvertReusesCustomerByEmail(t *testing.T) {
	state, svc, _, _ := newConversionFixture()
	existing := state.addCustomer(domain.Customer{
		Type:  domain.CustomerTypeCompany,
		Email: "office@acme.example",
	})
	ticket := state.addTicket(domain.Ticket{
		Subject:     "Maintenance",
		Message:     "annual check",
		SenderEmail: "Office@ACME.example",
	})

	project, err := svc.Convert(context.Background(), ticket.ID, nil)
	require.NoError(t, err)

	require.NotNil(t, project.CustomerID)
	assert.Equal(t, existing.ID, *project.CustomerID)
	require.Len(t, state.customers, 1)
	// An existing record is linked as-is, never mutated by intake data.
	assert.Equal(t, domain.CustomerTypeCompany, state.customers[existing.ID].Type)
}

func TestConvertWithoutCategoryMatch(t *testing.T) {
	state, svc, _, _ := newConversionFixture()
	ticket := state.addTicket(domain.Ticket{
		Subject:     "Odd request",
		Message:     "something unusual",
		SenderEmail: "odd@example.com",
		Category:    "Unmapped",
	})

	project, err := svc.Convert(context.Background(), ticket.ID, nil)
	require.NoError(t, err)

	assert.Nil(t, project.CategoryID)
	assert.Empty(t, project.Stages)
	assert.Equal(t, domain.TicketStatusClosed, state.tickets[ticket.ID].Status)
}

func TestConvertRetriesAfterCustomerRace(t *testing.T) {
	state, svc, _, _ := newConversionFixture()
	ticket := state.addTicket(domain.Ticket{
		Subject:     "Race",
		Message:     "two tickets, one customer",
		SenderEmail: "race@example.com",
	})
	state.customerCreateErr = &pgconn.PgError{Code: "23505", ConstraintName: "customers_email_unique"}

	project, err := svc.Convert(context.Background(), ticket.ID, nil)
	require.NoError(t, err)

	// The first attempt burned EP-1000; the retry allocated the next number.
	assert.Equal(t, "EP-1001", project.Number)
	require.Len(t, state.customers, 1)
	assert.Equal(t, domain.TicketStatusClosed, state.tickets[ticket.ID].Status)
}

func TestConvertRollsBackOnStageFailure(t *testing.T) {
	state, svc, _, metrics := newConversionFixture()
	state.addCategory(domain.Category{
		Name:          "Plumbing",
		StageTemplate: []byte(`{"stages":[{"name":"Inspection","order":1}]}`),
	})
	ticket := state.addTicket(domain.Ticket{
		Subject:     "Leak",
		Message:     "water damage",
		SenderEmail: "leak@example.com",
		Category:    "Plumbing",
	})
	state.stageCreateErr = errors.New("disk full")

	_, err := svc.Convert(context.Background(), ticket.ID, nil)
	require.Error(t, err)

	assert.Empty(t, state.projects)
	assert.Empty(t, state.stages)
	assert.Empty(t, state.customers)
	assert.Equal(t, domain.TicketStatusNew, state.tickets[ticket.ID].Status)
	assert.Equal(t, int64(0), metrics.Conversions())
}

func TestConvertSameEmailYieldsOneCustomer(t *testing.T) {
	state, svc, _, _ := newConversionFixture()
	first := state.addTicket(domain.Ticket{
		Subject:     "First visit",
		Message:     "initial work",
		SenderEmail: "shared@example.com",
	})
	second := state.addTicket(domain.Ticket{
		Subject:     "Second visit",
		Message:     "follow-up work",
		SenderEmail: "SHARED@example.com",
	})

	p1, err := svc.Convert(context.Background(), first.ID, nil)
	require.NoError(t, err)
	p2, err := svc.Convert(context.Background(), second.ID, nil)
	require.NoError(t, err)

	require.Len(t, state.customers, 1)
	assert.Equal(t, *p1.CustomerID, *p2.CustomerID)
}

func TestConvertRollsBackNewCustomerOnProjectFailure(t *testing.T) {
	state, svc, _, _ := newConversionFixture()
	ticket := state.addTicket(domain.Ticket{
		Subject:     "Partial",
		Message:     "customer must not survive alone",
		SenderEmail: "partial@example.com",
	})
	state.projectCreateErr = errors.New("write failed")

	_, err := svc.Convert(context.Background(), ticket.ID, nil)
	require.Error(t, err)
	assert.Empty(t, state.customers)
	assert.Empty(t, state.projects)
	assert.Equal(t, domain.TicketStatusNew, state.tickets[ticket.ID].Status)

	// The retry after recovery must not find a stray duplicate either.
	state.projectCreateErr = nil
	_, err = svc.Convert(context.Background(), ticket.ID, nil)
	require.NoError(t, err)
	assert.Len(t, state.customers, 1)
}

func TestConvertAllocatesUniqueNumbers(t *testing.T) {
	state, svc, _, _ := newConversionFixture()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		ticket := state.addTicket(domain.Ticket{
			Subject:     fmt.Sprintf("Request %d", i),
			Message:     "work",
			SenderEmail: fmt.Sprintf("customer%d@example.com", i),
		})
		project, err := svc.Convert(context.Background(), ticket.ID, nil)
		require.NoError(t, err)
		assert.False(t, seen[project.Number], "number %s handed out twice", project.Number)
		seen[project.Number] = true
	}
	assert.True(t, seen["EP-1000"])
	assert.True(t, seen["EP-1004"])
}
