package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type IdentityEventType string

const (
	IdentitySignedIn    IdentityEventType = "signed_in"
	IdentitySignedOut   IdentityEventType = "signed_out"
	IdentityRoleChanged IdentityEventType = "role_changed"
)

type IdentityEvent struct {
	Type  IdentityEventType `json:"type"`
	Email string            `json:"email"`
}

type TicketEventType string

const (
	TicketCreated       TicketEventType = "created"
	TicketStatusChanged TicketEventType = "status_changed"
	TicketAssigned      TicketEventType = "assigned"
	TicketCommentAdded  TicketEventType = "comment_added"
	TicketDeleted       TicketEventType = "deleted"
)

type TicketEvent struct {
	Type       TicketEventType `json:"type"`
	TicketID   uuid.UUID       `json:"ticket_id"`
	Title      string          `json:"title"`
	Status     TicketStatus    `json:"status"`
	CreatedBy  uuid.UUID       `json:"created_by"`
	AssignedTo *uuid.UUID      `json:"assigned_to,omitempty"`
	Comment    string          `json:"comment,omitempty"`
	IsInternal bool            `json:"is_internal,omitempty"`
	ActorEmail string          `json:"actor_email"`
	OccurredAt time.Time       `json:"occurred_at"`
}
