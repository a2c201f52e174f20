package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

type Producer struct {
	l                 *slog.Logger
	w                 *kafka.Writer
	ticketEventsTopic string
}

func NewProducer(l *slog.Logger, brokers []string, ticketEventsTopic string) *Producer {
	l = l.WithGroup("kafka").With("topic", ticketEventsTopic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		Async:                  true,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:                 l,
		w:                 w,
		ticketEventsTopic: ticketEventsTopic,
	}
}

// PublishTicketEvent is fire and forget: the writer is async and failures are
// only logged. Events of one ticket share a partition.
func (p *Producer) PublishTicketEvent(ctx context.Context, event entity.TicketEvent) {
	b, err := json.Marshal(event)
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.TicketID.String()),
		Value: b,
		Topic: p.ticketEventsTopic,
	})
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}
