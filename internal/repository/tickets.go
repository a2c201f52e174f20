package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

var ticketColumns = []string{
	"id",
	"title",
	"description",
	"priority",
	"status",
	"created_by",
	"assigned_to",
	"equipment_id",
	"service_station_id",
	"observations",
	"created_at",
	"updated_at",
	"closed_at",
}

func scanTicket(row pgx.Row) (entity.Ticket, error) {
	var t entity.Ticket

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Priority,
		&t.Status,
		&t.CreatedBy,
		&t.AssignedTo,
		&t.EquipmentID,
		&t.ServiceStationID,
		&t.Observations,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.ClosedAt,
	)

	return t, err
}

func (r *Repository) CreateTicket(ctx context.Context, t entity.Ticket) error {
	sqlQuery, args, err := sq.Insert("tickets").
		Columns(ticketColumns...).
		Values(
			t.ID,
			t.Title,
			t.Description,
			t.Priority,
			t.Status,
			t.CreatedBy,
			t.AssignedTo,
			t.EquipmentID,
			t.ServiceStationID,
			t.Observations,
			t.CreatedAt,
			t.UpdatedAt,
			t.ClosedAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sqlQuery, args...)

	return mapErr(err, entity.ErrTicketNotFound)
}

func (r *Repository) TicketByID(ctx context.Context, id uuid.UUID) (entity.Ticket, error) {
	sqlQuery, args, err := sq.Select(ticketColumns...).
		From("tickets").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return entity.Ticket{}, err
	}

	t, err := scanTicket(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		return entity.Ticket{}, mapErr(err, entity.ErrTicketNotFound)
	}

	return t, nil
}

func (r *Repository) Tickets(ctx context.Context, filter entity.TicketFilter) ([]entity.Ticket, error) {
	stmt := sq.Select(ticketColumns...).From("tickets").PlaceholderFormat(sq.Dollar)

	if filter.Status != nil {
		stmt = stmt.Where(sq.Eq{"status": *filter.Status})
	}

	if filter.Priority != nil {
		stmt = stmt.Where(sq.Eq{"priority": *filter.Priority})
	}

	if filter.AssignedTo != nil {
		stmt = stmt.Where(sq.Eq{"assigned_to": *filter.AssignedTo})
	}

	sqlQuery, args, err := stmt.
		OrderBy("created_at DESC", "id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, mapErr(err, entity.ErrTicketNotFound)
	}
	defer rows.Close()

	tickets := make([]entity.Ticket, 0, filter.Limit)

	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, t)
	}

	return tickets, rows.Err()
}

// UpdateTicket writes every mutable column of t. There is no version check,
// so concurrent writers overwrite each other.
func (r *Repository) UpdateTicket(ctx context.Context, t entity.Ticket) error {
	sqlQuery, args, err := sq.Update("tickets").
		SetMap(map[string]any{
			"title":        t.Title,
			"description":  t.Description,
			"priority":     t.Priority,
			"status":       t.Status,
			"assigned_to":  t.AssignedTo,
			"observations": t.Observations,
			"updated_at":   t.UpdatedAt,
			"closed_at":    t.ClosedAt,
		}).
		Where(sq.Eq{"id": t.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		return mapErr(err, entity.ErrTicketNotFound)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrTicketNotFound
	}

	return nil
}

func (r *Repository) DeleteTicket(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return mapErr(err, entity.ErrTicketNotFound)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrTicketNotFound
	}

	return nil
}

// TicketCounts groups tickets by status and priority.
func (r *Repository) TicketCounts(ctx context.Context) ([]entity.TicketCount, error) {
	sqlQuery, args, err := sq.Select("status", "priority", "count(*)").
		From("tickets").
		GroupBy("status", "priority").
		OrderBy("status", "priority").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, mapErr(err, entity.ErrTicketNotFound)
	}
	defer rows.Close()

	counts := make([]entity.TicketCount, 0)

	for rows.Next() {
		var c entity.TicketCount

		err = rows.Scan(&c.Status, &c.Priority, &c.Count)
		if err != nil {
			return nil, err
		}

		counts = append(counts, c)
	}

	return counts, rows.Err()
}
