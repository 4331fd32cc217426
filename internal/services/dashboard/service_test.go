package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/travelops/console-service/internal/core/gateway"
	"github.com/travelops/console-service/internal/domain/models"
	"github.com/travelops/console-service/internal/mocks"
	"github.com/travelops/console-service/internal/services/dashboard"
	"github.com/travelops/console-service/internal/services/directory"
	"github.com/travelops/console-service/internal/store"
)

type fixture struct {
	store    *store.Store
	gateway  *mocks.MockStore
	realtime *mocks.MockRealtime
	service  *dashboard.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mockGateway := &mocks.MockStore{}
	mockRealtime := &mocks.MockRealtime{}
	st := store.New()

	dir, err := directory.NewService(&directory.Config{
		Store: mockGateway,
		MetricsDefaults: directory.MetricsDefaults{
			AvgResponseTime:     2.3,
			SatisfactionScore:   4.7,
			IssueResolutionRate: 94.2,
		},
	})
	require.NoError(t, err)

	svc, err := dashboard.NewService(&dashboard.Config{
		Store:     st,
		Directory: dir,
		Realtime:  mockRealtime,
	})
	require.NoError(t, err)

	return &fixture{
		store:    st,
		gateway:  mockGateway,
		realtime: mockRealtime,
		service:  svc,
	}
}

// stubLoads satisfies the four sub-loads with fixed collections.
func (f *fixture) stubLoads() {
	f.gateway.On("Select", mock.Anything, mock.MatchedBy(func(q gateway.Query) bool {
		return q.Table == directory.TableTravelers
	}), mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(2).(*[]models.Traveler)
		*dest = []models.Traveler{{ID: "t1", Name: "Ada"}}
	}).Return(nil)

	f.gateway.On("Select", mock.Anything, mock.MatchedBy(func(q gateway.Query) bool {
		return q.Table == directory.TableConversations
	}), mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(2).(*[]models.Conversation)
		*dest = []models.Conversation{{ID: "c1"}}
	}).Return(nil)

	f.gateway.On("Select", mock.Anything, mock.MatchedBy(func(q gateway.Query) bool {
		return q.Table == directory.TableFeedback
	}), mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(2).(*[]models.Feedback)
		*dest = []models.Feedback{{ID: "f1"}}
	}).Return(nil)

	f.gateway.On("Count", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(1), nil)
}

func (f *fixture) stubSubscriptions() (*mocks.MockSubscription, *mocks.MockSubscription) {
	convSub := &mocks.MockSubscription{}
	fbSub := &mocks.MockSubscription{}
	f.realtime.On("Subscribe", mock.Anything, directory.TableConversations, "", mock.Anything).
		Return(convSub, nil)
	f.realtime.On("Subscribe", mock.Anything, directory.TableFeedback, "", mock.Anything).
		Return(fbSub, nil)
	return convSub, fbSub
}

func TestLoadAll_PopulatesAllCollections(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.stubLoads()
	f.stubSubscriptions()

	// Act
	f.service.LoadAll(context.Background())

	// Assert
	snap := f.store.Snapshot()
	assert.Len(t, snap.Travelers, 1)
	assert.Len(t, snap.Conversations, 1)
	assert.Len(t, snap.Feedback, 1)
	require.NotNil(t, snap.Metrics)
	assert.Equal(t, int64(1), snap.Metrics.ActiveConversations)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.LastError)
	f.realtime.AssertExpectations(t)
}

func TestLoadAll_PartialFailureKeepsOtherCollections(t *testing.T) {
	// Arrange: travelers fail, the rest succeed
	f := newFixture(t)

	f.gateway.On("Select", mock.Anything, mock.MatchedBy(func(q gateway.Query) bool {
		return q.Table == directory.TableTravelers
	}), mock.Anything).Return(errors.New("connection reset"))

	f.gateway.On("Select", mock.Anything, mock.MatchedBy(func(q gateway.Query) bool {
		return q.Table == directory.TableConversations
	}), mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(2).(*[]models.Conversation)
		*dest = []models.Conversation{{ID: "c1"}}
	}).Return(nil)

	f.gateway.On("Select", mock.Anything, mock.MatchedBy(func(q gateway.Query) bool {
		return q.Table == directory.TableFeedback
	}), mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(2).(*[]models.Feedback)
		*dest = []models.Feedback{{ID: "f1"}}
	}).Return(nil)

	f.gateway.On("Count", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), nil)

	f.stubSubscriptions()

	// Act
	f.service.LoadAll(context.Background())

	// Assert: the failure lands in the error slot, the others still apply
	snap := f.store.Snapshot()
	assert.Empty(t, snap.Travelers)
	assert.Len(t, snap.Conversations, 1)
	assert.Len(t, snap.Feedback, 1)
	assert.Contains(t, snap.LastError, "connection reset")
}

func TestLoadAll_InsertEventPrependsConversation(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.stubLoads()
	f.stubSubscriptions()
	f.service.LoadAll(context.Background())

	// Act: the gateway notifies a new conversation
	f.realtime.Emit(directory.TableConversations, gateway.Change{
		Kind:  gateway.ChangeInsert,
		Table: directory.TableConversations,
		Row:   []byte(`{"id":"c2","status":"active"}`),
	})

	// Assert
	snap := f.store.Snapshot()
	require.Len(t, snap.Conversations, 2)
	assert.Equal(t, "c2", snap.Conversations[0].ID)
	assert.Equal(t, "c1", snap.Conversations[1].ID)
}

func TestLoadAll_DeleteEventRemovesFeedback(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.stubLoads()
	f.stubSubscriptions()
	f.service.LoadAll(context.Background())

	// Act: delete carries only the old row id
	f.realtime.Emit(directory.TableFeedback, gateway.Change{
		Kind:   gateway.ChangeDelete,
		Table:  directory.TableFeedback,
		OldRow: []byte(`{"id":"f1"}`),
	})

	// Assert
	assert.Empty(t, f.store.Snapshot().Feedback)
}

func TestLoadAll_MalformedEventDropped(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.stubLoads()
	f.stubSubscriptions()
	f.service.LoadAll(context.Background())

	// Act: a row without an id is undeliverable
	f.realtime.Emit(directory.TableConversations, gateway.Change{
		Kind:  gateway.ChangeInsert,
		Table: directory.TableConversations,
		Row:   []byte(`{"status":"active"}`),
	})

	// Assert: state untouched
	assert.Len(t, f.store.Snapshot().Conversations, 1)
}

func TestLoadAll_EventAfterClearAllDiscarded(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.stubLoads()
	convSub, fbSub := f.stubSubscriptions()
	convSub.On("Close").Return(nil)
	fbSub.On("Close").Return(nil)

	f.service.LoadAll(context.Background())

	// Act: sign-out resets the cache, then a late event arrives on the old
	// handler
	f.store.ClearAll()
	f.realtime.Emit(directory.TableConversations, gateway.Change{
		Kind:  gateway.ChangeInsert,
		Table: directory.TableConversations,
		Row:   []byte(`{"id":"c9","status":"active"}`),
	})

	// Assert: the event is discarded and the subscriptions were closed
	assert.Empty(t, f.store.Snapshot().Conversations)
	convSub.AssertCalled(t, "Close")
	fbSub.AssertCalled(t, "Close")
}

func TestLoadAll_SubscribeFailureLandsInErrorSlot(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.stubLoads()
	f.realtime.On("Subscribe", mock.Anything, directory.TableConversations, "", mock.Anything).
		Return(nil, errors.New("socket refused"))
	fbSub := &mocks.MockSubscription{}
	f.realtime.On("Subscribe", mock.Anything, directory.TableFeedback, "", mock.Anything).
		Return(fbSub, nil)

	// Act
	f.service.LoadAll(context.Background())

	// Assert: data loaded, failure recorded, the surviving subscription works
	snap := f.store.Snapshot()
	assert.Len(t, snap.Conversations, 1)
	assert.Contains(t, snap.LastError, "socket refused")

	f.realtime.Emit(directory.TableFeedback, gateway.Change{
		Kind:  gateway.ChangeInsert,
		Table: directory.TableFeedback,
		Row:   []byte(`{"id":"f2"}`),
	})
	assert.Len(t, f.store.Snapshot().Feedback, 2)
}

func TestNewService_Validation(t *testing.T) {
	svc, err := dashboard.NewService(nil)
	assert.Error(t, err)
	assert.Nil(t, svc)

	svc, err = dashboard.NewService(&dashboard.Config{})
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestSubscribeMessages_DeliversInsertsForConversation(t *testing.T) {
	// Arrange
	f := newFixture(t)
	msgSub := &mocks.MockSubscription{}
	f.realtime.On("Subscribe", mock.Anything, directory.TableMessages, "conversation_id=eq.c1", mock.Anything).
		Return(msgSub, nil)

	var received []models.Message
	sub, err := f.service.SubscribeMessages(context.Background(), "c1", func(msg models.Message) {
		received = append(received, msg)
	})
	require.NoError(t, err)
	assert.Same(t, msgSub, sub)

	// Act
	f.realtime.Emit(directory.TableMessages, gateway.Change{
		Kind:  gateway.ChangeInsert,
		Table: directory.TableMessages,
		Row:   []byte(`{"id":"m1","conversation_id":"c1","content":"hi","sender_type":"traveler"}`),
	})

	// Assert
	require.Len(t, received, 1)
	assert.Equal(t, "m1", received[0].ID)
	assert.Equal(t, models.SenderTraveler, received[0].SenderType)
	f.realtime.AssertExpectations(t)
}

func TestSubscribeMessages_IgnoresNonInsertAndMalformedEvents(t *testing.T) {
	// Arrange
	f := newFixture(t)
	msgSub := &mocks.MockSubscription{}
	f.realtime.On("Subscribe", mock.Anything, directory.TableMessages, "conversation_id=eq.c1", mock.Anything).
		Return(msgSub, nil)

	var received []models.Message
	_, err := f.service.SubscribeMessages(context.Background(), "c1", func(msg models.Message) {
		received = append(received, msg)
	})
	require.NoError(t, err)

	// Act: an update, an undecodable insert, and an insert with no id
	f.realtime.Emit(directory.TableMessages, gateway.Change{
		Kind: gateway.ChangeUpdate,
		Row:  []byte(`{"id":"m1"}`),
	})
	f.realtime.Emit(directory.TableMessages, gateway.Change{
		Kind: gateway.ChangeInsert,
		Row:  []byte(`not-json`),
	})
	f.realtime.Emit(directory.TableMessages, gateway.Change{
		Kind: gateway.ChangeInsert,
		Row:  []byte(`{"content":"orphan"}`),
	})

	// Assert
	assert.Empty(t, received)
}

func TestLoadAll_ResetDuringSubscribeClosesSubscriptions(t *testing.T) {
	// Arrange: a sign-out lands while the second subscribe is in flight,
	// so the established connections must be closed, not attached to the
	// post-reset state
	f := newFixture(t)
	f.stubLoads()

	convSub := &mocks.MockSubscription{}
	convSub.On("Close").Return(nil).Once()
	fbSub := &mocks.MockSubscription{}
	fbSub.On("Close").Return(nil).Once()

	f.realtime.On("Subscribe", mock.Anything, directory.TableConversations, "", mock.Anything).
		Return(convSub, nil)
	f.realtime.On("Subscribe", mock.Anything, directory.TableFeedback, "", mock.Anything).
		Run(func(mock.Arguments) {
			f.store.ClearAll()
		}).
		Return(fbSub, nil)

	// Act
	f.service.LoadAll(context.Background())

	// Assert: both subscriptions closed, no teardown left behind
	convSub.AssertExpectations(t)
	fbSub.AssertExpectations(t)
	f.store.CloseSubscriptions()
	convSub.AssertNumberOfCalls(t, "Close", 1)
	fbSub.AssertNumberOfCalls(t, "Close", 1)
}
