package dashboard

import (
	"encoding/json"
	"fmt"

	"github.com/travelops/console-service/internal/core/gateway"
	"github.com/travelops/console-service/internal/store"
)

// rowID is the minimal view of a change row needed for validation.
type rowID struct {
	ID string `json:"id"`
}

// decodeChange converts a raw gateway change into a validated store event.
// It rejects payloads without a usable row id.
func decodeChange(entity store.EntityKind, ch gateway.Change) (store.Event, error) {
	ev := store.Event{
		Kind:   store.ChangeKind(ch.Kind),
		Entity: entity,
	}

	switch ch.Kind {
	case gateway.ChangeDelete:
		// Deletes may carry only the old row, and the old row may carry
		// only the id.
		id, err := extractID(ch.OldRow)
		if err != nil {
			id, err = extractID(ch.Row)
		}
		if err != nil {
			return store.Event{}, err
		}
		ev.ID = id
		return ev, nil

	case gateway.ChangeInsert, gateway.ChangeUpdate:
		if len(ch.Row) == 0 {
			return store.Event{}, fmt.Errorf("change event has no row")
		}
		switch entity {
		case store.EntityConversation:
			if err := json.Unmarshal(ch.Row, &ev.Conversation); err != nil {
				return store.Event{}, fmt.Errorf("undecodable conversation row: %w", err)
			}
			ev.ID = ev.Conversation.ID
		case store.EntityFeedback:
			if err := json.Unmarshal(ch.Row, &ev.Feedback); err != nil {
				return store.Event{}, fmt.Errorf("undecodable feedback row: %w", err)
			}
			ev.ID = ev.Feedback.ID
		case store.EntityTraveler:
			if err := json.Unmarshal(ch.Row, &ev.Traveler); err != nil {
				return store.Event{}, fmt.Errorf("undecodable traveler row: %w", err)
			}
			ev.ID = ev.Traveler.ID
		default:
			return store.Event{}, fmt.Errorf("unknown entity kind %q", entity)
		}
		if ev.ID == "" {
			return store.Event{}, fmt.Errorf("change row is missing an id")
		}
		return ev, nil

	default:
		return store.Event{}, fmt.Errorf("unknown change kind %q", ch.Kind)
	}
}

// extractID pulls the row id out of a raw change row.
func extractID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("change event has no row")
	}
	var row rowID
	if err := json.Unmarshal(raw, &row); err != nil {
		return "", fmt.Errorf("undecodable change row: %w", err)
	}
	if row.ID == "" {
		return "", fmt.Errorf("change row is missing an id")
	}
	return row.ID, nil
}
