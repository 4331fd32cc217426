package directory

import (
	"context"

	"github.com/travelops/console-service/internal/core/gateway"
	domainerrors "github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/domain/models"
)

// CreateFeedbackParams holds the fields for creating a feedback item.
type CreateFeedbackParams struct {
	TravelerID     string                `json:"traveler_id"`
	Type           models.FeedbackType   `json:"type"`
	Subject        string                `json:"subject"`
	Content        string                `json:"content"`
	Priority       models.Priority       `json:"priority"`
	Status         models.FeedbackStatus `json:"status"`
	SentimentScore float64               `json:"sentiment_score"`
	AssignedTo     string                `json:"assigned_to,omitempty"`
}

// ListFeedback returns all feedback items with the traveler summary joined,
// ordered by creation time descending.
func (s *Service) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := s.store.Select(ctx, gateway.Query{
		Table:  TableFeedback,
		Select: travelerJoin,
		Order:  &gateway.Order{Column: "created_at", Descending: true},
	}, &feedback)
	if err != nil {
		return nil, domainerrors.NewGatewayError("list feedback", err)
	}
	return feedback, nil
}

// CreateFeedback creates a feedback item and returns the created row.
func (s *Service) CreateFeedback(ctx context.Context, params CreateFeedbackParams) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := s.store.Insert(ctx, TableFeedback, params, &feedback); err != nil {
		return nil, domainerrors.NewGatewayError("create feedback", err)
	}
	return &feedback, nil
}

// UpdateFeedback applies a partial update to the feedback item with the given
// id and returns the updated row.
func (s *Service) UpdateFeedback(ctx context.Context, id string, updates map[string]interface{}) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := s.store.Update(ctx, TableFeedback, id, updates, &feedback); err != nil {
		return nil, domainerrors.NewGatewayError("update feedback", err)
	}
	return &feedback, nil
}
