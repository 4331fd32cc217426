package directory

import (
	"context"

	"github.com/travelops/console-service/internal/core/gateway"
	domainerrors "github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/domain/models"
)

// CreateMessageParams holds the fields for creating a message.
type CreateMessageParams struct {
	ConversationID    string            `json:"conversation_id"`
	Content           string            `json:"content"`
	SenderType        models.SenderType `json:"sender_type"`
	SenderID          string            `json:"sender_id"`
	ConfidenceScore   *float64          `json:"confidence_score,omitempty"`
	RequiresAttention bool              `json:"requires_attention"`
}

// ListMessages returns the messages of a conversation ordered by creation
// time ascending.
func (s *Service) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.store.Select(ctx, gateway.Query{
		Table:   TableMessages,
		Filters: []gateway.Filter{{Column: "conversation_id", Op: gateway.OpEq, Value: conversationID}},
		Order:   &gateway.Order{Column: "created_at", Descending: false},
	}, &messages)
	if err != nil {
		return nil, domainerrors.NewGatewayError("list messages", err)
	}
	return messages, nil
}

// CreateMessage creates a message and returns the created row.
func (s *Service) CreateMessage(ctx context.Context, params CreateMessageParams) (*models.Message, error) {
	var message models.Message
	if err := s.store.Insert(ctx, TableMessages, params, &message); err != nil {
		return nil, domainerrors.NewGatewayError("create message", err)
	}
	return &message, nil
}
