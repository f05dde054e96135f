package notifier

import (
	"loanerdesk/internal/usecase/queries"
)

// Action identifies which lifecycle operation produced a broadcast.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// EventReservationUpdate is the single broadcast event name. Consumers treat
// incoming messages as "something changed, refetch or merge", not as an
// authoritative diff.
const EventReservationUpdate = "reservation_update"

type Message struct {
	Event  string                  `json:"event"`
	Action Action                  `json:"action"`
	Data   *queries.ReservationView `json:"data"`
}

// Publisher fans a lifecycle event out to all subscribed viewers.
// Fire-and-forget: implementations must never return delivery errors to the
// caller, and callers only publish after their transaction has committed.
type Publisher interface {
	Publish(action Action, view *queries.ReservationView)
}
