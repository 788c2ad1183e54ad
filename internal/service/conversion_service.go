package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/events"
	"github.com/epwerk/field-service/internal/observability"
	"github.com/epwerk/field-service/internal/repository"
	apperrors "github.com/epwerk/field-service/pkg/util"
)

// conversionMaxRetries bounds internal retries when an allocation or
// identity race is lost.
const conversionMaxRetries = 3

// ConversionService turns an inbound ticket into a tracked project: resolve
// or create the owning customer, allocate the next EP number, create the
// project, seed its stages from the category template, and close the ticket.
// All of it happens in one transaction; the caller observes either full
// success or no change.
type ConversionService struct {
	uow        repository.UnitOfWork
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewConversionService constructs the service.
func NewConversionService(uow repository.UnitOfWork, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *ConversionService {
	return &ConversionService{uow: uow, dispatcher: dispatcher, metrics: metrics, logger: logger}
}

// Convert executes the ticket→project transition for the given actor.
// Returns the created project with its stages loaded.
func (s *ConversionService) Convert(ctx context.Context, ticketID string, actor *domain.User) (*domain.Project, error) {
	var (
		project  *domain.Project
		customer *domain.Customer
		lastErr  error
	)

	for attempt := 0; attempt <= conversionMaxRetries; attempt++ {
		project = nil
		customer = nil
		err := s.uow.InTransaction(ctx, func(ctx context.Context, stores repository.Stores) error {
			var txErr error
			project, customer, txErr = s.convertInTx(ctx, stores, ticketID)
			return txErr
		})
		if err == nil {
			lastErr = nil
			break
		}
		lastErr = err
		if !apperrors.IsConflict(err) {
			return nil, err
		}
		s.logger.Warn("conversion lost a race, retrying",
			zap.String("ticket_id", ticketID),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	if lastErr != nil {
		// Conflicts are an internal concern; after the retry budget the
		// caller sees a retryable storage failure.
		return nil, apperrors.NewUnavailable("conversion could not be committed", lastErr)
	}

	if s.metrics != nil {
		s.metrics.RecordConversion()
	}
	s.publishConverted(ctx, ticketID, project, customer, actor)
	return project, nil
}

// convertInTx performs steps 2-6 of the conversion against one transaction.
func (s *ConversionService) convertInTx(ctx context.Context, stores repository.Stores, ticketID string) (*domain.Project, *domain.Customer, error) {
	ticket, err := stores.Tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, nil, err
	}
	if !ticket.Convertible() {
		return nil, nil, apperrors.NewValidationError("ticket is already closed", nil)
	}
	if strings.TrimSpace(ticket.SenderEmail) == "" {
		return nil, nil, apperrors.NewValidationError("ticket has no sender email", nil)
	}

	customer, err := resolveCustomerByEmail(ctx, stores.Customers, ticket.SenderEmail, ticket.SenderName, ticket.SenderPhone)
	if err != nil {
		return nil, nil, err
	}

	number, err := stores.Sequences.NextProjectNumber(ctx)
	if err != nil {
		return nil, nil, err
	}

	category, err := s.matchCategory(ctx, stores.Categories, ticket.Category)
	if err != nil {
		return nil, nil, err
	}

	project := &domain.Project{
		Number:      number,
		Name:        projectName(ticket),
		Description: ticket.Message,
		Status:      domain.ProjectStatusPlanned,
		CustomerID:  &customer.ID,
	}
	if category != nil {
		project.CategoryID = &category.ID
	}
	if err := stores.Projects.Create(ctx, project); err != nil {
		return nil, nil, apperrors.MapStorageError("project", err)
	}

	// Stages reference the project id the insert just returned; they are
	// never written before the project row exists.
	for _, blueprint := range ExpandStageTemplate(category) {
		stage := &domain.ProjectStage{
			ProjectID: project.ID,
			Name:      blueprint.Name,
			Status:    blueprint.Status,
			SortOrder: blueprint.SortOrder,
		}
		if err := stores.Stages.Create(ctx, stage); err != nil {
			return nil, nil, err
		}
		project.Stages = append(project.Stages, *stage)
	}

	ticket.Status = domain.TicketStatusClosed
	ticket.Response = fmt.Sprintf("Your request has been accepted as project %s.", number)
	if err := stores.Tickets.Update(ctx, ticket); err != nil {
		return nil, nil, err
	}

	return project, customer, nil
}

func (s *ConversionService) matchCategory(ctx context.Context, categories repository.CategoryRepository, label string) (*domain.Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	category, err := categories.GetByName(ctx, label)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return category, nil
}

func projectName(ticket *domain.Ticket) string {
	if subject := strings.TrimSpace(ticket.Subject); subject != "" {
		return subject
	}
	return fmt.Sprintf("Service request %s", ticket.ID)
}

func (s *ConversionService) publishConverted(ctx context.Context, ticketID string, project *domain.Project, customer *domain.Customer, actor *domain.User) {
	if s.dispatcher == nil || project == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketConverted,
		Timestamp: time.Now(),
		Payload: events.TicketConvertedPayload{
			TicketID:      ticketID,
			ProjectID:     project.ID,
			ProjectNumber: project.Number,
			CustomerID:    customer.ID,
			StageCount:    len(project.Stages),
		},
	}
	if actor != nil {
		event.Actor = events.Actor{UserID: &actor.ID, Role: &actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
