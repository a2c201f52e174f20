package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

// HandleIdentityEvent keeps the role cache in step with the identity provider.
func (s *Service) HandleIdentityEvent(ctx context.Context, event entity.IdentityEvent) error {
	switch event.Type {
	case entity.IdentitySignedIn, entity.IdentitySignedOut, entity.IdentityRoleChanged:
		s.InvalidateRole(ctx, event.Email)
		slog.DebugContext(ctx, "role cache invalidated", "event", event.Type)

		return nil
	}

	return fmt.Errorf("%w: unknown identity event %q", entity.ErrValidation, event.Type)
}

// HandleTicketEvent notifies the ticket creator by email once the ticket is
// closed. Other events are ignored.
func (s *Service) HandleTicketEvent(ctx context.Context, event entity.TicketEvent) error {
	if s.mailer == nil {
		return nil
	}

	if event.Type != entity.TicketStatusChanged || event.Status != entity.TicketStatusClosed {
		return nil
	}

	creator, err := s.employees.EmployeeByID(ctx, event.CreatedBy)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			slog.WarnContext(ctx, "ticket creator not found, skipping notification", "ticket_id", event.TicketID)
			return nil
		}

		return fmt.Errorf("get ticket creator: %w", err)
	}

	subject := fmt.Sprintf("Ticket cerrado: %s", event.Title)
	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>El ticket <b>%s</b> ha sido cerrado.</p><p>ID: %s</p>",
		html.EscapeString(creator.Name), html.EscapeString(event.Title), event.TicketID,
	)

	err = s.mailer.Send(ctx, creator.Email, subject, body)
	if err != nil {
		return fmt.Errorf("send ticket closed email: %w", err)
	}

	return nil
}
