package gateway

import (
	"context"
	"encoding/json"
)

// ChangeKind represents the kind of row change delivered by a subscription.
type ChangeKind string

const (
	// ChangeInsert is a newly created row.
	ChangeInsert ChangeKind = "insert"
	// ChangeUpdate is a modified row.
	ChangeUpdate ChangeKind = "update"
	// ChangeDelete is a removed row.
	ChangeDelete ChangeKind = "delete"
)

// Change is one row-change event delivered by the gateway.
type Change struct {
	Kind  ChangeKind
	Table string
	// Row is the new row for inserts and updates.
	Row json.RawMessage
	// OldRow is the previous row for updates and deletes. Deletes may carry
	// only the row id.
	OldRow json.RawMessage
}

// ChangeHandler receives change events. Handlers are invoked sequentially in
// delivery order for a given subscription.
type ChangeHandler func(Change)

// Subscription is an active change-event stream, terminated by the subscriber.
type Subscription interface {
	Close() error
}

// Realtime is the change-event subscription interface. Multiple independent
// subscriptions may be active concurrently, one per table of interest.
type Realtime interface {
	// Subscribe starts delivering change events for the given table. The
	// optional filter restricts events to matching rows, in
	// "column=eq.value" form. An empty filter delivers all row changes.
	Subscribe(ctx context.Context, table, filter string, handler ChangeHandler) (Subscription, error)
}
