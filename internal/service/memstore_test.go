package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/repository"
)

// memState is an in-memory stand-in for the database. The fake unit of work
// snapshots it before each transaction and restores it on failure, so tests
// can observe rollback behavior.
type memState struct {
	mu         sync.Mutex
	tickets    map[string]domain.Ticket
	customers  map[string]domain.Customer
	categories map[string]domain.Category
	projects   map[string]domain.Project
	stages     map[string]domain.ProjectStage
	nextSeq    int64

	customerCreateErr error
	projectCreateErr  error
	stageCreateErr    error
}

func newMemState() *memState {
	return &memState{
		tickets:    map[string]domain.Ticket{},
		customers:  map[string]domain.Customer{},
		categories: map[string]domain.Category{},
		projects:   map[string]domain.Project{},
		stages:     map[string]domain.ProjectStage{},
	}
}

func (s *memState) stores() repository.Stores {
	return repository.Stores{
		Tickets:    &memTickets{s},
		Customers:  &memCustomers{s},
		Categories: &memCategories{s},
		Projects:   &memProjects{s},
		Stages:     &memStages{s},
		Sequences:  &memSequences{s},
	}
}

func (s *memState) snapshot() *memState {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := newMemState()
	for k, v := range s.tickets {
		clone.tickets[k] = v
	}
	for k, v := range s.customers {
		clone.customers[k] = v
	}
	for k, v := range s.categories {
		clone.categories[k] = v
	}
	for k, v := range s.projects {
		clone.projects[k] = v
	}
	for k, v := range s.stages {
		clone.stages[k] = v
	}
	clone.nextSeq = s.nextSeq
	return clone
}

func (s *memState) restore(snap *memState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = snap.tickets
	s.customers = snap.customers
	s.categories = snap.categories
	s.projects = snap.projects
	s.stages = snap.stages
	// The sequence counter is not restored: numbers handed out inside a
	// failed transaction stay burned, matching the real allocator.
}

func (s *memState) addTicket(ticket domain.Ticket) domain.Ticket {
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	if ticket.Status == "" {
		ticket.Status = domain.TicketStatusNew
	}
	s.tickets[ticket.ID] = ticket
	return ticket
}

func (s *memState) addCustomer(customer domain.Customer) domain.Customer {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	s.customers[customer.ID] = customer
	return customer
}

func (s *memState) addCategory(category domain.Category) domain.Category {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	s.categories[category.ID] = category
	return category
}

// memUnitOfWork mimics transactional semantics over memState.
type memUnitOfWork struct {
	state *memState
}

func (u *memUnitOfWork) InTransaction(ctx context.Context, fn func(ctx context.Context, stores repository.Stores) error) error {
	snap := u.state.snapshot()
	if err := fn(ctx, u.state.stores()); err != nil {
		u.state.restore(snap)
		return err
	}
	return nil
}

type memTickets struct{ state *memState }

func (m *memTickets) Create(_ context.Context, ticket *domain.Ticket) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	m.state.tickets[ticket.ID] = *ticket
	return nil
}

func (m *memTickets) Update(_ context.Context, ticket *domain.Ticket) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.state.tickets[ticket.ID] = *ticket
	return nil
}

func (m *memTickets) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	ticket, ok := m.state.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (m *memTickets) ListWithFilter(_ context.Context, _ repository.TicketFilter) ([]domain.Ticket, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	result := make([]domain.Ticket, 0, len(m.state.tickets))
	for _, ticket := range m.state.tickets {
		result = append(result, ticket)
	}
	return result, nil
}

type memCustomers struct{ state *memState }

func (m *memCustomers) Create(_ context.Context, customer *domain.Customer) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if err := m.state.customerCreateErr; err != nil {
		m.state.customerCreateErr = nil
		return err
	}
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	m.state.customers[customer.ID] = *customer
	return nil
}

func (m *memCustomers) Update(_ context.Context, customer *domain.Customer) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.state.customers[customer.ID] = *customer
	return nil
}

func (m *memCustomers) Delete(_ context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.customers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.state.customers, id)
	return nil
}

func (m *memCustomers) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	customer, ok := m.state.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &customer, nil
}

func (m *memCustomers) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	for _, customer := range m.state.customers {
		if strings.EqualFold(customer.Email, email) {
			found := customer
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memCustomers) List(_ context.Context, _ string, _, _ int) ([]domain.Customer, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	result := make([]domain.Customer, 0, len(m.state.customers))
	for _, customer := range m.state.customers {
		result = append(result, customer)
	}
	return result, nil
}

type memCategories struct{ state *memState }

func (m *memCategories) Create(_ context.Context, category *domain.Category) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	m.state.categories[category.ID] = *category
	return nil
}

func (m *memCategories) Update(_ context.Context, category *domain.Category) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.state.categories[category.ID] = *category
	return nil
}

func (m *memCategories) Delete(_ context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.state.categories, id)
	return nil
}

func (m *memCategories) GetByID(_ context.Context, id string) (*domain.Category, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	category, ok := m.state.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &category, nil
}

func (m *memCategories) GetByName(_ context.Context, name string) (*domain.Category, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	for _, category := range m.state.categories {
		if category.Name == name {
			found := category
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memCategories) List(_ context.Context) ([]domain.Category, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	result := make([]domain.Category, 0, len(m.state.categories))
	for _, category := range m.state.categories {
		result = append(result, category)
	}
	return result, nil
}

type memProjects struct{ state *memState }

func (m *memProjects) Create(_ context.Context, project *domain.Project) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if err := m.state.projectCreateErr; err != nil {
		return err
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	stored := *project
	stored.Stages = nil
	m.state.projects[project.ID] = stored
	return nil
}

func (m *memProjects) Update(_ context.Context, project *domain.Project) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.projects[project.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *project
	stored.Stages = nil
	m.state.projects[project.ID] = stored
	return nil
}

func (m *memProjects) Delete(_ context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.projects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.state.projects, id)
	return nil
}

func (m *memProjects) GetByID(_ context.Context, id string) (*domain.Project, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	project, ok := m.state.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &project, nil
}

func (m *memProjects) ListWithFilter(_ context.Context, _ repository.ProjectFilter) ([]domain.Project, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	result := make([]domain.Project, 0, len(m.state.projects))
	for _, project := range m.state.projects {
		result = append(result, project)
	}
	return result, nil
}

func (m *memProjects) ListMembers(_ context.Context, projectID string) ([]domain.ProjectMember, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	project, ok := m.state.projects[projectID]
	if !ok {
		return nil, nil
	}
	return project.Members, nil
}

func (m *memProjects) AddMember(_ context.Context, member *domain.ProjectMember) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	project, ok := m.state.projects[member.ProjectID]
	if !ok {
		return pgx.ErrNoRows
	}
	for _, existing := range project.Members {
		if existing.UserID == member.UserID && existing.Role == member.Role {
			return nil
		}
	}
	project.Members = append(project.Members, *member)
	m.state.projects[member.ProjectID] = project
	return nil
}

func (m *memProjects) RemoveMember(_ context.Context, projectID, userID string, role domain.ProjectMemberRole) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	project, ok := m.state.projects[projectID]
	if !ok {
		return pgx.ErrNoRows
	}
	for i, member := range project.Members {
		if member.UserID == userID && member.Role == role {
			project.Members = append(project.Members[:i], project.Members[i+1:]...)
			m.state.projects[projectID] = project
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memProjects) Stats(_ context.Context) (repository.ProjectStats, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	stats := repository.ProjectStats{}
	for _, project := range m.state.projects {
		stats.Total++
		switch project.Status {
		case domain.ProjectStatusInProgress:
			stats.InProgress++
		case domain.ProjectStatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}

type memStages struct{ state *memState }

func (m *memStages) Create(_ context.Context, stage *domain.ProjectStage) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if err := m.state.stageCreateErr; err != nil {
		return err
	}
	if stage.ID == "" {
		stage.ID = uuid.NewString()
	}
	m.state.stages[stage.ID] = *stage
	return nil
}

func (m *memStages) Update(_ context.Context, stage *domain.ProjectStage) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.stages[stage.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.state.stages[stage.ID] = *stage
	return nil
}

func (m *memStages) Delete(_ context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.stages[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.state.stages, id)
	return nil
}

func (m *memStages) GetByID(_ context.Context, id string) (*domain.ProjectStage, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	stage, ok := m.state.stages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &stage, nil
}

func (m *memStages) ListByProject(_ context.Context, projectID string) ([]domain.ProjectStage, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	var result []domain.ProjectStage
	for _, stage := range m.state.stages {
		if stage.ProjectID == projectID {
			result = append(result, stage)
		}
	}
	return result, nil
}

type memSequences struct{ state *memState }

func (m *memSequences) NextProjectNumber(_ context.Context) (string, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if m.state.nextSeq == 0 {
		m.state.nextSeq = 1000
	} else {
		m.state.nextSeq++
	}
	return repository.FormatProjectNumber(m.state.nextSeq), nil
}
