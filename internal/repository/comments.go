package repository

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

func (r *Repository) CreateComment(ctx context.Context, c entity.TicketComment) error {
	sqlQuery :=
		`INSERT INTO ticket_comments (id, ticket_id, author_id, comment, comment_type, is_internal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, sqlQuery,
		c.ID,
		c.TicketID,
		c.AuthorID,
		c.Comment,
		c.CommentType,
		c.IsInternal,
		c.CreatedAt,
		c.UpdatedAt,
	)

	return mapErr(err, entity.ErrTicketNotFound)
}

// CommentsByTicketID returns every comment of the ticket, internal ones
// included, oldest first. Visibility is applied by the caller.
func (r *Repository) CommentsByTicketID(ctx context.Context, ticketID uuid.UUID) ([]entity.TicketComment, error) {
	sqlQuery :=
		`SELECT c.id, c.ticket_id, c.author_id, coalesce(e.name, ''), c.comment, c.comment_type,
			c.is_internal, c.created_at, c.updated_at
		FROM ticket_comments c
		LEFT JOIN employees e ON e.id = c.author_id
		WHERE c.ticket_id = $1
		ORDER BY c.created_at ASC, c.id`

	rows, err := r.db.Query(ctx, sqlQuery, ticketID)
	if err != nil {
		return nil, mapErr(err, entity.ErrTicketNotFound)
	}
	defer rows.Close()

	comments := make([]entity.TicketComment, 0)

	for rows.Next() {
		var c entity.TicketComment

		err = rows.Scan(
			&c.ID,
			&c.TicketID,
			&c.AuthorID,
			&c.AuthorName,
			&c.Comment,
			&c.CommentType,
			&c.IsInternal,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		comments = append(comments, c)
	}

	return comments, rows.Err()
}

// ProbeComments checks that the comment table exists.
func (r *Repository) ProbeComments(ctx context.Context) error {
	var id uuid.UUID

	err := r.db.QueryRow(ctx, `SELECT id FROM ticket_comments LIMIT 1`).Scan(&id)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return mapErr(err, entity.ErrNotFound)
	}

	return nil
}
