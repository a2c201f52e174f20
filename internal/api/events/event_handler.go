package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

type Service interface {
	HandleIdentityEvent(ctx context.Context, event entity.IdentityEvent) error
	HandleTicketEvent(ctx context.Context, event entity.TicketEvent) error
}

type EventHandler struct {
	s Service
}

func NewEventHandler(s Service) *EventHandler {
	return &EventHandler{s: s}
}

func (h *EventHandler) OnIdentityEvent(ctx context.Context, msg kafka.Message) error {
	var event entity.IdentityEvent

	err := json.Unmarshal(msg.Value, &event)
	if err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	if event.Email == "" {
		return nil
	}

	err = h.s.HandleIdentityEvent(ctx, event)
	if err != nil {
		return fmt.Errorf("handle identity event: %w", err)
	}

	return nil
}

func (h *EventHandler) OnTicketEvent(ctx context.Context, msg kafka.Message) error {
	var event entity.TicketEvent

	err := json.Unmarshal(msg.Value, &event)
	if err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	err = h.s.HandleTicketEvent(ctx, event)
	if err != nil {
		return fmt.Errorf("handle ticket event: %w", err)
	}

	return nil
}
