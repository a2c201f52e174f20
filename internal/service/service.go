package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type IdentityVerifier interface {
	Verify(token string) (entity.Identity, error)
}

type UserStore interface {
	RoleByEmail(ctx context.Context, email string) (entity.Role, error)
	Users(ctx context.Context) ([]entity.UserRecord, error)
	CountUsers(ctx context.Context) (int, error)
	UpdateUserRole(ctx context.Context, userID uuid.UUID, role entity.Role, updatedAt time.Time) (entity.UserRecord, error)
}

// RoleCache returns entity.ErrNotFound on a miss.
type RoleCache interface {
	Role(ctx context.Context, email string) (entity.Role, error)
	SetRole(ctx context.Context, email string, role entity.Role, ttl time.Duration) error
	DeleteRole(ctx context.Context, email string) error
}

type EmployeeStore interface {
	EmployeeByEmail(ctx context.Context, email string) (entity.Employee, error)
	EmployeeByID(ctx context.Context, id uuid.UUID) (entity.Employee, error)
	Employees(ctx context.Context) ([]entity.Employee, error)
	CountEmployees(ctx context.Context) (int, error)
}

type TicketStore interface {
	CreateTicket(ctx context.Context, ticket entity.Ticket) error
	TicketByID(ctx context.Context, id uuid.UUID) (entity.Ticket, error)
	Tickets(ctx context.Context, filter entity.TicketFilter) ([]entity.Ticket, error)
	UpdateTicket(ctx context.Context, ticket entity.Ticket) error
	DeleteTicket(ctx context.Context, id uuid.UUID) error
	TicketCounts(ctx context.Context) ([]entity.TicketCount, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment entity.TicketComment) error
	CommentsByTicketID(ctx context.Context, ticketID uuid.UUID) ([]entity.TicketComment, error)
	ProbeComments(ctx context.Context) error
}

type EventPublisher interface {
	PublishTicketEvent(ctx context.Context, event entity.TicketEvent)
}

type Assistant interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Service struct {
	identity  IdentityVerifier
	users     UserStore
	employees EmployeeStore
	tickets   TicketStore
	comments  CommentStore
	assistant Assistant

	roleCache    RoleCache
	roleCacheTTL time.Duration
	events       EventPublisher
	mailer       Mailer

	now func() time.Time
}

func New(
	identity IdentityVerifier,
	users UserStore,
	employees EmployeeStore,
	tickets TicketStore,
	comments CommentStore,
	assistant Assistant,
) *Service {
	return &Service{
		identity:  identity,
		users:     users,
		employees: employees,
		tickets:   tickets,
		comments:  comments,
		assistant: assistant,
		now:       time.Now,
	}
}

// WithRoleCache enables caching of resolved roles. Pass only a non-nil cache.
func (s *Service) WithRoleCache(cache RoleCache, ttl time.Duration) *Service {
	s.roleCache = cache
	s.roleCacheTTL = ttl

	return s
}

func (s *Service) WithEvents(events EventPublisher) *Service {
	s.events = events
	return s
}

func (s *Service) WithMailer(mailer Mailer) *Service {
	s.mailer = mailer
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) publish(ctx context.Context, event entity.TicketEvent) {
	if s.events == nil {
		return
	}

	event.OccurredAt = s.now()
	s.events.PublishTicketEvent(ctx, event)
}
