package events

import (
	"context"
	"time"

	"github.com/civicpulse/backend/internal/models"
)

// EventType names a ticket lifecycle event.
type EventType string

const (
	TicketSubmitted EventType = "ticket.submitted"
	TicketAssigned  EventType = "ticket.assigned"
	TicketCompleted EventType = "ticket.completed"
	TicketApproved  EventType = "ticket.approved"
	TicketRejected  EventType = "ticket.rejected"
	TicketJoined    EventType = "ticket.joined"
)

// TicketEvent is pushed to live views whenever a transition commits.
type TicketEvent struct {
	Type           EventType           `json:"type"`
	TicketID       string              `json:"ticket_id"`
	MunicipalityID string              `json:"municipality_id"`
	ReporterID     string              `json:"reporter_id,omitempty"`
	SupervisorID   string              `json:"supervisor_id,omitempty"`
	Status         models.TicketStatus `json:"status"`
	At             time.Time           `json:"at"`
}

// Bus fans ticket events out to live subscribers.
type Bus interface {
	Publish(ctx context.Context, ev TicketEvent) error
	// Subscribe returns a channel of events and a cancel func that releases
	// the subscription. The channel closes after cancel.
	Subscribe(ctx context.Context) (<-chan TicketEvent, func(), error)
}
