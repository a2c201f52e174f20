package entity_test

import (
	"math"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

func TestTicket_ApplyStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	ticket := entity.Ticket{Status: entity.TicketStatusOpen}

	ticket.ApplyStatus(entity.TicketStatusInProgress, now)
	require.Nil(t, ticket.ClosedAt)

	ticket.ApplyStatus(entity.TicketStatusClosed, now)
	require.Equal(t, entity.TicketStatusClosed, ticket.Status)
	require.NotNil(t, ticket.ClosedAt)
	require.Equal(t, now, *ticket.ClosedAt)

	ticket.ApplyStatus(entity.TicketStatusClosed, later)
	require.Equal(t, now, *ticket.ClosedAt, "closing a closed ticket keeps closed_at")

	ticket.ApplyStatus(entity.TicketStatusOpen, later)
	require.Equal(t, entity.TicketStatusOpen, ticket.Status)
	require.Nil(t, ticket.ClosedAt)
}

func TestTicket_ClosedAtInvariant(t *testing.T) {
	t.Parallel()

	statuses := []entity.TicketStatus{
		entity.TicketStatusOpen, entity.TicketStatusInProgress, entity.TicketStatusClosed, entity.TicketStatusCancelled,
	}
	now := time.Now()

	for _, from := range statuses {
		for _, to := range statuses {
			ticket := entity.Ticket{}
			ticket.ApplyStatus(from, now)
			ticket.ApplyStatus(to, now)

			require.Equal(t, ticket.Status == entity.TicketStatusClosed, ticket.ClosedAt != nil, "%s -> %s", from, to)
		}
	}
}

func TestTicket_CloseRoundTrip(t *testing.T) {
	t.Parallel()

	assignee := uuid.Must(uuid.NewV4())
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	original := entity.Ticket{
		ID:           uuid.Must(uuid.NewV4()),
		Title:        "Printer jam",
		Description:  "Second floor printer",
		Priority:     entity.TicketPriorityHigh,
		Status:       entity.TicketStatusInProgress,
		CreatedBy:    uuid.Must(uuid.NewV4()),
		AssignedTo:   &assignee,
		Observations: "toner low",
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	closed := entity.StatusUpdate(entity.TicketStatusClosed)
	reopened := entity.StatusUpdate(entity.TicketStatusInProgress)

	got := original.Apply(closed, created.Add(time.Hour)).Apply(reopened, created.Add(2*time.Hour))

	require.Nil(t, got.ClosedAt)
	require.Equal(t, created.Add(2*time.Hour), got.UpdatedAt)

	got.UpdatedAt = original.UpdatedAt
	require.Equal(t, original, got)
}

func TestTicket_Apply(t *testing.T) {
	t.Parallel()

	now := time.Now()
	assignee := uuid.Must(uuid.NewV4())
	title := "  New title  "
	priority := entity.TicketPriorityLow

	ticket := entity.Ticket{Title: "Old", Status: entity.TicketStatusOpen, Priority: entity.TicketPriorityHigh}

	got := ticket.Apply(entity.TicketUpdate{Title: &title, Priority: &priority, AssignedTo: &assignee}, now)
	require.Equal(t, "New title", got.Title)
	require.Equal(t, entity.TicketPriorityLow, got.Priority)
	require.Equal(t, &assignee, got.AssignedTo)
	require.Equal(t, entity.TicketStatusOpen, got.Status)
	require.Equal(t, "Old", ticket.Title, "receiver is not modified")

	got = got.Apply(entity.TicketUpdate{ClearAssignedTo: true}, now)
	require.Nil(t, got.AssignedTo)
}

func TestTicketUpdate_Validate(t *testing.T) {
	t.Parallel()

	empty := " "
	badStatus := entity.TicketStatus("resolved")
	badPriority := entity.TicketPriority("urgent")
	assignee := uuid.Must(uuid.NewV4())

	require.ErrorIs(t, entity.TicketUpdate{Title: &empty}.Validate(), entity.ErrValidation)
	require.ErrorIs(t, entity.TicketUpdate{Status: &badStatus}.Validate(), entity.ErrInvalidStatus)
	require.ErrorIs(t, entity.TicketUpdate{Priority: &badPriority}.Validate(), entity.ErrInvalidPriority)
	require.ErrorIs(t, entity.TicketUpdate{AssignedTo: &assignee, ClearAssignedTo: true}.Validate(), entity.ErrValidation)
	require.NoError(t, entity.StatusUpdate(entity.TicketStatusCancelled).Validate())
}

func TestNewTicket_ValidateAndBuild(t *testing.T) {
	t.Parallel()

	n := entity.NewTicket{Title: " Broken monitor "}
	require.NoError(t, n.Validate())
	require.Equal(t, "Broken monitor", n.Title)
	require.Equal(t, entity.TicketPriorityMedium, n.Priority)
	require.Equal(t, entity.TicketStatusOpen, n.Status)

	require.ErrorIs(t, (&entity.NewTicket{}).Validate(), entity.ErrValidation)
	require.ErrorIs(t, (&entity.NewTicket{Title: "x", Status: "done"}).Validate(), entity.ErrInvalidStatus)

	now := time.Now()
	closed := entity.NewTicket{Title: "Already fixed", Status: entity.TicketStatusClosed}
	require.NoError(t, closed.Validate())

	ticket := closed.Build(uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), now)
	require.NotNil(t, ticket.ClosedAt)
	require.Equal(t, now, ticket.CreatedAt)
}

func TestTicketFilter_Normalize(t *testing.T) {
	t.Parallel()

	f := entity.TicketFilter{}
	require.NoError(t, f.Normalize())
	require.EqualValues(t, entity.DefaultTicketLimit, f.Limit)

	f = entity.TicketFilter{Limit: 10_000}
	require.NoError(t, f.Normalize())
	require.EqualValues(t, entity.MaxTicketLimit, f.Limit)

	status := entity.TicketStatus("archived")
	f = entity.TicketFilter{Status: &status}
	require.ErrorIs(t, f.Normalize(), entity.ErrInvalidStatus)

	f = entity.TicketFilter{Offset: entity.MaxTicketOffset}
	require.NoError(t, f.Normalize())

	f = entity.TicketFilter{Offset: math.MaxUint64}
	require.ErrorIs(t, f.Normalize(), entity.ErrValidation)
}
