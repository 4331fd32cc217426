package directory

import (
	"context"

	"github.com/travelops/console-service/internal/core/gateway"
	domainerrors "github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/domain/models"
)

// CreateConversationParams holds the fields for creating a conversation.
type CreateConversationParams struct {
	TravelerID     string                    `json:"traveler_id"`
	AgentID        string                    `json:"agent_id,omitempty"`
	Status         models.ConversationStatus `json:"status"`
	Priority       models.Priority           `json:"priority"`
	SentimentScore float64                   `json:"sentiment_score"`
}

// ListConversations returns all conversations with the traveler summary
// joined, ordered by last message time descending.
func (s *Service) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := s.store.Select(ctx, gateway.Query{
		Table:  TableConversations,
		Select: travelerJoin,
		Order:  &gateway.Order{Column: "last_message_at", Descending: true},
	}, &conversations)
	if err != nil {
		return nil, domainerrors.NewGatewayError("list conversations", err)
	}
	return conversations, nil
}

// GetConversation returns the conversation with the given id, traveler
// summary joined.
func (s *Service) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := s.store.Select(ctx, gateway.Query{
		Table:   TableConversations,
		Select:  travelerJoin,
		Filters: []gateway.Filter{{Column: "id", Op: gateway.OpEq, Value: id}},
		Single:  true,
	}, &conversation)
	if err != nil {
		return nil, domainerrors.NewGatewayError("get conversation", err)
	}
	return &conversation, nil
}

// CreateConversation creates a conversation and returns the created row.
func (s *Service) CreateConversation(ctx context.Context, params CreateConversationParams) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.store.Insert(ctx, TableConversations, params, &conversation); err != nil {
		return nil, domainerrors.NewGatewayError("create conversation", err)
	}
	return &conversation, nil
}

// UpdateConversation applies a partial update to the conversation with the
// given id and returns the updated row.
func (s *Service) UpdateConversation(ctx context.Context, id string, updates map[string]interface{}) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.store.Update(ctx, TableConversations, id, updates, &conversation); err != nil {
		return nil, domainerrors.NewGatewayError("update conversation", err)
	}
	return &conversation, nil
}
