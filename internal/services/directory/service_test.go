package directory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/travelops/console-service/internal/core/gateway"
	domainerrors "github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/domain/models"
	"github.com/travelops/console-service/internal/mocks"
	"github.com/travelops/console-service/internal/services/directory"
)

func newService(t *testing.T, store *mocks.MockStore) *directory.Service {
	t.Helper()

	svc, err := directory.NewService(&directory.Config{
		Store: store,
		MetricsDefaults: directory.MetricsDefaults{
			AvgResponseTime:     2.3,
			SatisfactionScore:   4.7,
			IssueResolutionRate: 94.2,
		},
	})
	require.NoError(t, err)
	return svc
}

func TestNewService_NilConfig(t *testing.T) {
	// Act
	svc, err := directory.NewService(nil)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestNewService_NilStore(t *testing.T) {
	// Act
	svc, err := directory.NewService(&directory.Config{})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "gateway store is required")
}

func TestListTravelers_Success(t *testing.T) {
	// Arrange
	mockStore := &mocks.MockStore{}
	svc := newService(t, mockStore)

	mockStore.On("Select", mock.Anything, mock.MatchedBy(func(q gateway.Query) bool {
		return q.Table == directory.TableTravelers &&
			q.Order != nil && q.Order.Column == "created_at" && q.Order.Descending
	}), mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(2).(*[]models.Traveler)
		*dest = []models.Traveler{{ID: "t1", Name: "Ada"}}
	}).Return(nil)

	// Act
	travelers, err := svc.ListTravelers(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, travelers, 1)
	assert.Equal(t, "Ada", travelers[0].Name)
	mockStore.AssertExpectations(t)
}

func TestListTravelers_GatewayError(t *testing.T) {
	// Arrange
	mockStore := &mocks.MockStore{}
	svc := newService(t, mockStore)

	mockStore.On("Select", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection refused"))

	// Act
	travelers, err := svc.ListTravelers(context.Background())

	// Assert
	require.Error(t, err)
	assert.Nil(t, travelers)

	domainErr, ok := domainerrors.GetDomainError(err)
	require.True(t, ok)
	assert.Equal(t, domainerrors.ErrCodeGateway, domainErr.Code)
}

func TestSearchTravelers_OrPredicateAcrossThreeColumns(t *testing.T) {
	// Arrange
	mockStore := &mocks.MockStore{}
	svc := newService(t, mockStore)

	mockStore.On("Select", mock.Anything, mock.MatchedBy(func(q gateway.Query) bool {
		if q.Table != directory.TableTravelers || len(q.Or) != 3 {
			return false
		}
		columns := map[string]bool{}
		for _, f := range q.Or {
			if f.Op != gateway.OpILike || f.Value != "*paris*" {
				return false
			}
			columns[f.Column] = true
		}
		return columns["name"] && columns["email"] && columns["destination"]
	}), mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(2).(*[]models.Traveler)
		*dest = []models.Traveler{{ID: "t1", Destination: "Paris"}}
	}).Return(nil)

	// Act
	travelers, err := svc.SearchTravelers(context.Background(), "paris")

	// Assert
	require.NoError(t, err)
	assert.Len(t, travelers, 1)
	mockStore.AssertExpectations(t)
}

func TestSearchTravelers_StripsOrExpressionDelimiters(t *testing.T) {
	// Arrange: commas and parentheses in the query must not survive into
	// the OR patterns, where they would split the predicate
	mockStore := &mocks.MockStore{}
	svc := newService(t, mockStore)

	mockStore.On("Select", mock.Anything, mock.MatchedBy(func(q gateway.Query) bool {
		if len(q.Or) != 3 {
			return false
		}
		for _, f := range q.Or {
			if f.Value != "*smith  rome *" {
				return false
			}
		}
		return true
	}), mock.Anything).Return(nil)

	// Act
	_, err := svc.SearchTravelers(context.Background(), "smith, rome)")

	// Assert
	require.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestGetTraveler_SingleRowQuery(t *testing.T) {
	// Arrange
	mockStore := &mocks.MockStore{}
	svc := newService(t, mockStore)

	mockStore.On("Select", mock.Anything, mock.MatchedBy(func(q gateway.Query) bool {
		return q.Single &&
			len(q.Filters) == 1 &&
			q.Filters[0].Column == "id" &&
			q.Filters[0].Value == "t1"
	}), mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(2).(*models.Traveler)
		*dest = models.Traveler{ID: "t1", Name: "Ada"}
	}).Return(nil)

	// Act
	traveler, err := svc.GetTraveler(context.Background(), "t1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ada", traveler.Name)
}

func TestListConversations_JoinsTravelerSummary(t *testing.T) {
	// Arrange
	mockStore := &mocks.MockStore{}
	svc := newService(t, mockStore)

	mockStore.On("Select", mock.Anything, mock.MatchedBy(func(q gateway.Query) bool {
		return q.Table == directory.TableConversations &&
			q.Select == "*,travelers(id,name,email,destination)"
	}), mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(2).(*[]models.Conversation)
		*dest = []models.Conversation{{
			ID:       "c1",
			Traveler: &models.TravelerSummary{ID: "t1", Name: "Ada"},
		}}
	}).Return(nil)

	// Act
	conversations, err := svc.ListConversations(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	require.NotNil(t, conversations[0].Traveler)
	assert.Equal(t, "Ada", conversations[0].Traveler.Name)
}

func TestGetMetrics_CombinesCountsAndDefaults(t *testing.T) {
	// Arrange
	mockStore := &mocks.MockStore{}
	svc := newService(t, mockStore)

	// Active conversations
	mockStore.On("Count", mock.Anything, directory.TableConversations,
		mock.MatchedBy(func(filters []gateway.Filter) bool {
			return len(filters) == 1 && filters[0].Column == "status" &&
				filters[0].Value == string(models.ConversationActive)
		})).Return(int64(5), nil).Once()

	// Today's messages
	mockStore.On("Count", mock.Anything, directory.TableMessages,
		mock.MatchedBy(func(filters []gateway.Filter) bool {
			return len(filters) == 2 &&
				filters[0].Op == gateway.OpGte && filters[1].Op == gateway.OpLt
		})).Return(int64(42), nil).Once()

	// Total conversations
	mockStore.On("Count", mock.Anything, directory.TableConversations,
		mock.MatchedBy(func(filters []gateway.Filter) bool {
			return filters == nil
		})).Return(int64(10), nil).Once()

	// Escalated conversations
	mockStore.On("Count", mock.Anything, directory.TableConversations,
		mock.MatchedBy(func(filters []gateway.Filter) bool {
			return len(filters) == 1 &&
				filters[0].Value == string(models.ConversationEscalated)
		})).Return(int64(3), nil).Once()

	// Act
	metrics, err := svc.GetMetrics(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(5), metrics.ActiveConversations)
	assert.Equal(t, int64(42), metrics.TodayInteractions)
	assert.InDelta(t, 30.0, metrics.EscalationRate, 0.001)
	assert.InDelta(t, 2.3, metrics.AvgResponseTime, 0.001)
	assert.InDelta(t, 4.7, metrics.SatisfactionScore, 0.001)
	assert.InDelta(t, 94.2, metrics.IssueResolutionRate, 0.001)
	mockStore.AssertExpectations(t)
}

func TestGetMetrics_CountFailure(t *testing.T) {
	// Arrange
	mockStore := &mocks.MockStore{}
	svc := newService(t, mockStore)

	mockStore.On("Count", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("timeout"))

	// Act
	metrics, err := svc.GetMetrics(context.Background())

	// Assert
	require.Error(t, err)
	assert.Nil(t, metrics)
}

func TestEscalationRate(t *testing.T) {
	assert.Equal(t, 0.0, directory.EscalationRate(0, 0))
	assert.Equal(t, 0.0, directory.EscalationRate(5, 0))
	assert.InDelta(t, 30.0, directory.EscalationRate(3, 10), 0.001)
	assert.InDelta(t, 100.0, directory.EscalationRate(7, 7), 0.001)
}

func TestUpdateFeedback_PassesPartialUpdate(t *testing.T) {
	// Arrange
	mockStore := &mocks.MockStore{}
	svc := newService(t, mockStore)

	updates := map[string]interface{}{"status": "resolved"}
	mockStore.On("Update", mock.Anything, directory.TableFeedback, "f1", updates, mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(4).(*models.Feedback)
			*dest = models.Feedback{ID: "f1", Status: models.FeedbackResolved}
		}).Return(nil)

	// Act
	feedback, err := svc.UpdateFeedback(context.Background(), "f1", updates)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackResolved, feedback.Status)
	mockStore.AssertExpectations(t)
}
