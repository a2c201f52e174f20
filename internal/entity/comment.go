package entity

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// CommentType labels a comment. It never drives the ticket status.
type CommentType string

const (
	CommentTypeComment      CommentType = "comment"
	CommentTypeStatusChange CommentType = "status_change"
	CommentTypeAssignment   CommentType = "assignment"
	CommentTypeResolution   CommentType = "resolution"
)

func (c CommentType) IsValid() bool {
	switch c {
	case CommentTypeComment, CommentTypeStatusChange, CommentTypeAssignment, CommentTypeResolution:
		return true
	}

	return false
}

type TicketComment struct {
	ID          uuid.UUID   `json:"id"`
	TicketID    uuid.UUID   `json:"ticket_id"`
	AuthorID    *uuid.UUID  `json:"author_id,omitempty"`
	AuthorName  string      `json:"author_name,omitempty"`
	Comment     string      `json:"comment"`
	CommentType CommentType `json:"comment_type"`
	IsInternal  bool        `json:"is_internal"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type NewTicketComment struct {
	Comment     string      `json:"comment"`
	CommentType CommentType `json:"comment_type"`
	IsInternal  bool        `json:"is_internal"`
}

func (n *NewTicketComment) Validate() error {
	n.Comment = strings.TrimSpace(n.Comment)
	if n.Comment == "" {
		return fmt.Errorf("%w: comment is required", ErrValidation)
	}

	if n.CommentType == "" {
		n.CommentType = CommentTypeComment
	}

	if !n.CommentType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCommentType, n.CommentType)
	}

	return nil
}

// CanAddComment reports whether the ticket accepts new comments.
// Only closed tickets are locked; cancelled ones stay open for comments.
func CanAddComment(t Ticket) bool {
	return !t.IsClosed()
}

// VisibleComments filters comments by internal visibility and orders the result
// oldest first. The input slice is not modified.
func VisibleComments(comments []TicketComment, canViewInternal, showInternal bool) []TicketComment {
	includeInternal := canViewInternal && showInternal

	visible := make([]TicketComment, 0, len(comments))

	for _, c := range comments {
		if c.IsInternal && !includeInternal {
			continue
		}

		visible = append(visible, c)
	}

	slices.SortStableFunc(visible, func(a, b TicketComment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return visible
}

type CommentDigest struct {
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
	IsInternal bool      `json:"is_internal"`
}

type CommentsSummary struct {
	TicketID    uuid.UUID      `json:"ticket_id"`
	Total       int            `json:"total"`
	LastComment *CommentDigest `json:"last_comment,omitempty"`
}

// SummarizeComments expects comments already filtered by VisibleComments.
func SummarizeComments(ticketID uuid.UUID, visible []TicketComment) CommentsSummary {
	summary := CommentsSummary{
		TicketID: ticketID,
		Total:    len(visible),
	}

	if len(visible) == 0 {
		return summary
	}

	last := visible[len(visible)-1]
	summary.LastComment = &CommentDigest{
		AuthorName: last.AuthorName,
		CreatedAt:  last.CreatedAt,
		IsInternal: last.IsInternal,
	}

	return summary
}
