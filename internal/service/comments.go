package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
	"github.com/samandr77/microservices/helpdesk/pkg/metrics"
)

// AddComment stores a new comment. Closed tickets reject comments from every
// role and the comment store is not touched in that case.
func (s *Service) AddComment(
	ctx context.Context,
	session entity.Session,
	ticketID uuid.UUID,
	n entity.NewTicketComment,
) (entity.TicketComment, error) {
	err := authorize(session, entity.ModuleTickets, entity.ActionAddComments)
	if err != nil {
		return entity.TicketComment{}, err
	}

	err = n.Validate()
	if err != nil {
		return entity.TicketComment{}, err
	}

	if n.IsInternal && !session.HasPermission(entity.ModuleTickets, entity.ActionViewInternal) {
		return entity.TicketComment{}, fmt.Errorf("%w: internal comments require tickets.viewInternal", entity.ErrPermissionDenied)
	}

	ticket, err := s.tickets.TicketByID(ctx, ticketID)
	if err != nil {
		return entity.TicketComment{}, fmt.Errorf("get ticket: %w", err)
	}

	if !entity.CanAddComment(ticket) {
		return entity.TicketComment{}, entity.ErrTicketClosed
	}

	comment := entity.TicketComment{
		ID:          uuid.Must(uuid.NewV4()),
		TicketID:    ticketID,
		Comment:     n.Comment,
		CommentType: n.CommentType,
		IsInternal:  n.IsInternal,
		CreatedAt:   s.now(),
	}
	comment.UpdatedAt = comment.CreatedAt

	author, err := s.employees.EmployeeByEmail(ctx, session.Identity().Email)
	if err == nil {
		comment.AuthorID = &author.ID
		comment.AuthorName = author.Name
	} else {
		slog.WarnContext(ctx, "comment author has no employee record", "error", err)
	}

	err = s.comments.CreateComment(ctx, comment)
	if err != nil {
		return entity.TicketComment{}, fmt.Errorf("create comment: %w", err)
	}

	event := ticketEvent(entity.TicketCommentAdded, ticket, session)
	event.Comment = comment.Comment
	event.IsInternal = comment.IsInternal
	s.publish(ctx, event)

	return comment, nil
}

// TicketComments returns the comments visible to the caller, oldest first.
// showInternal only matters for callers holding tickets.viewInternal; nil
// means the default, which is to show them.
func (s *Service) TicketComments(
	ctx context.Context,
	session entity.Session,
	ticketID uuid.UUID,
	showInternal *bool,
) ([]entity.TicketComment, error) {
	err := authorize(session, entity.ModuleTickets, entity.ActionRead)
	if err != nil {
		return nil, err
	}

	_, err = s.tickets.TicketByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}

	comments, err := s.comments.CommentsByTicketID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}

	show := true
	if showInternal != nil {
		show = *showInternal
	}

	canViewInternal := session.HasPermission(entity.ModuleTickets, entity.ActionViewInternal)

	return entity.VisibleComments(comments, canViewInternal, show), nil
}

func (s *Service) CommentsSummary(ctx context.Context, session entity.Session, ticketID uuid.UUID) (entity.CommentsSummary, error) {
	visible, err := s.TicketComments(ctx, session, ticketID, nil)
	if err != nil {
		return entity.CommentsSummary{}, err
	}

	return entity.SummarizeComments(ticketID, visible), nil
}

// CommentsReadiness reports entity.ErrStoreNotProvisioned when the comment
// table is missing, which needs a migration rather than a retry.
func (s *Service) CommentsReadiness(ctx context.Context) error {
	err := s.comments.ProbeComments(ctx)
	if err != nil {
		metrics.CommentsStoreReady.Set(0)
		return fmt.Errorf("probe comments: %w", err)
	}

	metrics.CommentsStoreReady.Set(1)

	return nil
}
