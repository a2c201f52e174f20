package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

func (s *Service) CreateTicket(ctx context.Context, session entity.Session, n entity.NewTicket) (entity.Ticket, error) {
	err := authorize(session, entity.ModuleTickets, entity.ActionCreate)
	if err != nil {
		return entity.Ticket{}, err
	}

	err = n.Validate()
	if err != nil {
		return entity.Ticket{}, err
	}

	if n.AssignedTo != nil && !session.HasPermission(entity.ModuleTickets, entity.ActionUpdate) {
		return entity.Ticket{}, fmt.Errorf("%w: assigning tickets requires tickets.update", entity.ErrPermissionDenied)
	}

	creator, err := s.employees.EmployeeByEmail(ctx, session.Identity().Email)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("get creator employee: %w", err)
	}

	ticket := n.Build(uuid.Must(uuid.NewV4()), creator.ID, s.now())

	err = s.tickets.CreateTicket(ctx, ticket)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}

	slog.InfoContext(ctx, "ticket created", "ticket_id", ticket.ID, "status", ticket.Status)

	s.publish(ctx, ticketEvent(entity.TicketCreated, ticket, session))

	return ticket, nil
}

func (s *Service) GetTicket(ctx context.Context, session entity.Session, id uuid.UUID) (entity.Ticket, error) {
	err := authorize(session, entity.ModuleTickets, entity.ActionRead)
	if err != nil {
		return entity.Ticket{}, err
	}

	ticket, err := s.tickets.TicketByID(ctx, id)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}

	return ticket, nil
}

func (s *Service) ListTickets(ctx context.Context, session entity.Session, filter entity.TicketFilter) ([]entity.Ticket, error) {
	err := authorize(session, entity.ModuleTickets, entity.ActionRead)
	if err != nil {
		return nil, err
	}

	err = filter.Normalize()
	if err != nil {
		return nil, err
	}

	tickets, err := s.tickets.Tickets(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	return tickets, nil
}

// UpdateTicket applies a partial update. Holders of tickets.update may change
// anything; the ticket creator may edit its content but not status or
// assignment. Concurrent updates are not reconciled: the last write wins.
func (s *Service) UpdateTicket(ctx context.Context, session entity.Session, id uuid.UUID, u entity.TicketUpdate) (entity.Ticket, error) {
	if !session.IsReady() {
		return entity.Ticket{}, entity.ErrUnauthorized
	}

	err := u.Validate()
	if err != nil {
		return entity.Ticket{}, err
	}

	canUpdate := session.HasPermission(entity.ModuleTickets, entity.ActionUpdate)

	if !canUpdate && (u.Status != nil || u.AssignedTo != nil || u.ClearAssignedTo) {
		return entity.Ticket{}, fmt.Errorf("%w: tickets.update", entity.ErrPermissionDenied)
	}

	ticket, err := s.tickets.TicketByID(ctx, id)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}

	if !canUpdate {
		err = s.authorizeCreator(ctx, session, ticket)
		if err != nil {
			return entity.Ticket{}, err
		}
	}

	updated := ticket.Apply(u, s.now())

	err = s.tickets.UpdateTicket(ctx, updated)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("update ticket: %w", err)
	}

	if updated.Status != ticket.Status {
		slog.InfoContext(ctx, "ticket status changed", "ticket_id", id, "from", ticket.Status, "to", updated.Status)
		s.publish(ctx, ticketEvent(entity.TicketStatusChanged, updated, session))
	}

	if !sameAssignee(ticket.AssignedTo, updated.AssignedTo) {
		s.publish(ctx, ticketEvent(entity.TicketAssigned, updated, session))
	}

	return updated, nil
}

func (s *Service) authorizeCreator(ctx context.Context, session entity.Session, ticket entity.Ticket) error {
	caller, err := s.employees.EmployeeByEmail(ctx, session.Identity().Email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("%w: caller has no employee record", entity.ErrPermissionDenied)
		}

		return fmt.Errorf("get caller employee: %w", err)
	}

	if caller.ID != ticket.CreatedBy {
		return fmt.Errorf("%w: not the ticket creator", entity.ErrPermissionDenied)
	}

	return nil
}

// DeleteTicket removes the ticket and its comments for good.
func (s *Service) DeleteTicket(ctx context.Context, session entity.Session, id uuid.UUID) error {
	err := authorize(session, entity.ModuleTickets, entity.ActionDelete)
	if err != nil {
		return err
	}

	ticket, err := s.tickets.TicketByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get ticket: %w", err)
	}

	err = s.tickets.DeleteTicket(ctx, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}

	slog.InfoContext(ctx, "ticket deleted", "ticket_id", id)

	s.publish(ctx, ticketEvent(entity.TicketDeleted, ticket, session))

	return nil
}

func ticketEvent(t entity.TicketEventType, ticket entity.Ticket, session entity.Session) entity.TicketEvent {
	return entity.TicketEvent{
		Type:       t,
		TicketID:   ticket.ID,
		Title:      ticket.Title,
		Status:     ticket.Status,
		CreatedBy:  ticket.CreatedBy,
		AssignedTo: ticket.AssignedTo,
		ActorEmail: session.Identity().Email,
	}
}

func sameAssignee(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
