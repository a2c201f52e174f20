package entity

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
	TicketStatusCancelled  TicketStatus = "cancelled"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed, TicketStatusCancelled:
		return true
	}

	return false
}

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

func (p TicketPriority) IsValid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}

	return false
}

type Ticket struct {
	ID               uuid.UUID      `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Priority         TicketPriority `json:"priority"`
	Status           TicketStatus   `json:"status"`
	CreatedBy        uuid.UUID      `json:"created_by"`
	AssignedTo       *uuid.UUID     `json:"assigned_to,omitempty"`
	EquipmentID      *uuid.UUID     `json:"equipment_id,omitempty"`
	ServiceStationID *uuid.UUID     `json:"service_station_id,omitempty"`
	Observations     string         `json:"observations"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	ClosedAt         *time.Time     `json:"closed_at,omitempty"`
}

// ApplyStatus moves the ticket to next and keeps ClosedAt set exactly while the
// ticket is closed. Any status is reachable from any other.
func (t *Ticket) ApplyStatus(next TicketStatus, now time.Time) {
	switch {
	case next == TicketStatusClosed && t.ClosedAt == nil:
		closedAt := now
		t.ClosedAt = &closedAt
	case next != TicketStatusClosed && t.ClosedAt != nil:
		t.ClosedAt = nil
	}

	t.Status = next
}

func (t Ticket) IsClosed() bool {
	return t.Status == TicketStatusClosed
}

type NewTicket struct {
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Priority         TicketPriority `json:"priority"`
	Status           TicketStatus   `json:"status"`
	AssignedTo       *uuid.UUID     `json:"assigned_to"`
	EquipmentID      *uuid.UUID     `json:"equipment_id"`
	ServiceStationID *uuid.UUID     `json:"service_station_id"`
	Observations     string         `json:"observations"`
}

func (n *NewTicket) Validate() error {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}

	if n.Priority == "" {
		n.Priority = TicketPriorityMedium
	}

	if !n.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, n.Priority)
	}

	if n.Status == "" {
		n.Status = TicketStatusOpen
	}

	if !n.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, n.Status)
	}

	return nil
}

// Build materializes a ticket created by createdBy at now.
func (n NewTicket) Build(id, createdBy uuid.UUID, now time.Time) Ticket {
	t := Ticket{
		ID:               id,
		Title:            n.Title,
		Description:      n.Description,
		Priority:         n.Priority,
		CreatedBy:        createdBy,
		AssignedTo:       n.AssignedTo,
		EquipmentID:      n.EquipmentID,
		ServiceStationID: n.ServiceStationID,
		Observations:     n.Observations,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	t.ApplyStatus(n.Status, now)

	return t
}

// TicketUpdate is a partial update. Nil fields are left as they are.
type TicketUpdate struct {
	Title           *string         `json:"title"`
	Description     *string         `json:"description"`
	Priority        *TicketPriority `json:"priority"`
	Status          *TicketStatus   `json:"status"`
	AssignedTo      *uuid.UUID      `json:"assigned_to"`
	ClearAssignedTo bool            `json:"clear_assigned_to"`
	Observations    *string         `json:"observations"`
}

func (u TicketUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}

	if u.Priority != nil && !u.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *u.Priority)
	}

	if u.Status != nil && !u.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *u.Status)
	}

	if u.ClearAssignedTo && u.AssignedTo != nil {
		return fmt.Errorf("%w: assigned_to and clear_assigned_to are exclusive", ErrValidation)
	}

	return nil
}

// Apply returns a copy of t with u applied and UpdatedAt set to now.
func (t Ticket) Apply(u TicketUpdate, now time.Time) Ticket {
	if u.Title != nil {
		t.Title = strings.TrimSpace(*u.Title)
	}

	if u.Description != nil {
		t.Description = *u.Description
	}

	if u.Priority != nil {
		t.Priority = *u.Priority
	}

	if u.Observations != nil {
		t.Observations = *u.Observations
	}

	switch {
	case u.ClearAssignedTo:
		t.AssignedTo = nil
	case u.AssignedTo != nil:
		assignee := *u.AssignedTo
		t.AssignedTo = &assignee
	}

	if u.Status != nil {
		t.ApplyStatus(*u.Status, now)
	}

	t.UpdatedAt = now

	return t
}

const (
	DefaultTicketLimit = 50
	MaxTicketLimit     = 200
	MaxTicketOffset    = math.MaxInt32
)

type TicketFilter struct {
	Status     *TicketStatus
	Priority   *TicketPriority
	AssignedTo *uuid.UUID
	Limit      uint64
	Offset     uint64
}

func (f *TicketFilter) Normalize() error {
	if f.Status != nil && !f.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *f.Status)
	}

	if f.Priority != nil && !f.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *f.Priority)
	}

	if f.Offset > MaxTicketOffset {
		return fmt.Errorf("%w: offset exceeds %d", ErrValidation, MaxTicketOffset)
	}

	switch {
	case f.Limit == 0:
		f.Limit = DefaultTicketLimit
	case f.Limit > MaxTicketLimit:
		f.Limit = MaxTicketLimit
	}

	return nil
}

// StatusUpdate is a TicketUpdate that only changes the status.
func StatusUpdate(status TicketStatus) TicketUpdate {
	return TicketUpdate{Status: &status}
}
