// Package orderlog defines the order transition log: an append-only audit
// trail of every status change an order goes through.
//
// Each row is a point-in-time snapshot, so the log answers both "where is
// order X now" (latest row) and "how did it get there" (full history). The
// in-memory order store remains the source of truth; the log is a durable
// side-channel that survives restarts.
package orderlog

import "time"

// Entry is a single row in the order_transitions table.
type Entry struct {
	// OrderID is the numeric order identifier.
	OrderID int

	// OrderNumber is the human-facing order number, duplicated here so the
	// log can be queried without joining against in-memory state.
	OrderNumber string

	// Status is the order status after this transition.
	Status string

	// PaymentStatus is the payment status after this transition.
	PaymentStatus string

	// TrackingCode is set from the confirmation transition onward.
	TrackingCode string

	// Note is a free-form annotation, e.g. "settlement" or "user cancel".
	Note string

	// OccurredAt is the wall-clock time of the transition.
	OccurredAt time.Time
}
