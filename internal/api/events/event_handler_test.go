package events_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/helpdesk/internal/api/events"
	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

type recorder struct {
	identity []entity.IdentityEvent
	tickets  []entity.TicketEvent
}

func (r *recorder) HandleIdentityEvent(_ context.Context, event entity.IdentityEvent) error {
	r.identity = append(r.identity, event)
	return nil
}

func (r *recorder) HandleTicketEvent(_ context.Context, event entity.TicketEvent) error {
	r.tickets = append(r.tickets, event)
	return nil
}

func TestEventHandler_OnIdentityEvent(t *testing.T) {
	rec := &recorder{}
	h := events.NewEventHandler(rec)

	err := h.OnIdentityEvent(context.Background(), kafka.Message{
		Value: []byte(`{"type":"role_changed","email":"ana@example.com"}`),
	})
	require.NoError(t, err)
	require.Len(t, rec.identity, 1)
	assert.Equal(t, entity.IdentityRoleChanged, rec.identity[0].Type)
	assert.Equal(t, "ana@example.com", rec.identity[0].Email)

	err = h.OnIdentityEvent(context.Background(), kafka.Message{Value: []byte(`{"type":"signed_in"}`)})
	require.NoError(t, err)
	assert.Len(t, rec.identity, 1)

	err = h.OnIdentityEvent(context.Background(), kafka.Message{Value: []byte(`{`)})
	require.Error(t, err)
}

func TestEventHandler_OnTicketEvent(t *testing.T) {
	rec := &recorder{}
	h := events.NewEventHandler(rec)

	id := uuid.Must(uuid.NewV4())

	err := h.OnTicketEvent(context.Background(), kafka.Message{
		Value: []byte(`{"type":"status_changed","ticket_id":"` + id.String() + `","status":"closed"}`),
	})
	require.NoError(t, err)
	require.Len(t, rec.tickets, 1)
	assert.Equal(t, id, rec.tickets[0].TicketID)
	assert.Equal(t, entity.TicketStatusClosed, rec.tickets[0].Status)
}
