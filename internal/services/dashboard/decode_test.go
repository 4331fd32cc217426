package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelops/console-service/internal/core/gateway"
	"github.com/travelops/console-service/internal/store"
)

func TestDecodeChange_Insert(t *testing.T) {
	ev, err := decodeChange(store.EntityConversation, gateway.Change{
		Kind: gateway.ChangeInsert,
		Row:  []byte(`{"id":"c1","status":"escalated","priority":"high"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, store.ChangeInsert, ev.Kind)
	assert.Equal(t, "c1", ev.ID)
	require.NotNil(t, ev.Conversation)
	assert.Equal(t, "c1", ev.Conversation.ID)
}

func TestDecodeChange_DeleteUsesOldRow(t *testing.T) {
	ev, err := decodeChange(store.EntityFeedback, gateway.Change{
		Kind:   gateway.ChangeDelete,
		OldRow: []byte(`{"id":"f1"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, store.ChangeDelete, ev.Kind)
	assert.Equal(t, "f1", ev.ID)
	assert.Nil(t, ev.Feedback)
}

func TestDecodeChange_DeleteFallsBackToRow(t *testing.T) {
	ev, err := decodeChange(store.EntityFeedback, gateway.Change{
		Kind: gateway.ChangeDelete,
		Row:  []byte(`{"id":"f2"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, "f2", ev.ID)
}

func TestDecodeChange_MissingID(t *testing.T) {
	_, err := decodeChange(store.EntityConversation, gateway.Change{
		Kind: gateway.ChangeInsert,
		Row:  []byte(`{"status":"active"}`),
	})
	assert.Error(t, err)

	_, err = decodeChange(store.EntityConversation, gateway.Change{
		Kind: gateway.ChangeDelete,
	})
	assert.Error(t, err)
}

func TestDecodeChange_UndecodableRow(t *testing.T) {
	_, err := decodeChange(store.EntityTraveler, gateway.Change{
		Kind: gateway.ChangeUpdate,
		Row:  []byte(`{not json`),
	})
	assert.Error(t, err)
}

func TestDecodeChange_UnknownKind(t *testing.T) {
	_, err := decodeChange(store.EntityTraveler, gateway.Change{
		Kind: gateway.ChangeKind("truncate"),
		Row:  []byte(`{"id":"t1"}`),
	})
	assert.Error(t, err)
}
