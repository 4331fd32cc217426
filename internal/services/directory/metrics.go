package directory

import (
	"context"
	"time"

	"github.com/travelops/console-service/internal/core/gateway"
	domainerrors "github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/domain/models"
)

// GetMetrics computes the dashboard metrics snapshot from four counting
// queries, paired with the configured presentation defaults.
func (s *Service) GetMetrics(ctx context.Context) (*models.Metrics, error) {
	active, err := s.store.Count(ctx, TableConversations, []gateway.Filter{
		{Column: "status", Op: gateway.OpEq, Value: string(models.ConversationActive)},
	})
	if err != nil {
		return nil, domainerrors.NewGatewayError("count active conversations", err)
	}

	dayStart, dayEnd := utcDayBounds(time.Now())
	today, err := s.store.Count(ctx, TableMessages, []gateway.Filter{
		{Column: "created_at", Op: gateway.OpGte, Value: dayStart},
		{Column: "created_at", Op: gateway.OpLt, Value: dayEnd},
	})
	if err != nil {
		return nil, domainerrors.NewGatewayError("count today's messages", err)
	}

	total, err := s.store.Count(ctx, TableConversations, nil)
	if err != nil {
		return nil, domainerrors.NewGatewayError("count conversations", err)
	}

	escalated, err := s.store.Count(ctx, TableConversations, []gateway.Filter{
		{Column: "status", Op: gateway.OpEq, Value: string(models.ConversationEscalated)},
	})
	if err != nil {
		return nil, domainerrors.NewGatewayError("count escalated conversations", err)
	}

	return &models.Metrics{
		ActiveConversations: active,
		AvgResponseTime:     s.defaults.AvgResponseTime,
		SatisfactionScore:   s.defaults.SatisfactionScore,
		IssueResolutionRate: s.defaults.IssueResolutionRate,
		TodayInteractions:   today,
		EscalationRate:      EscalationRate(escalated, total),
	}, nil
}

// EscalationRate returns escalated/total as a percentage, 0 when total is 0.
func EscalationRate(escalated, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(escalated) / float64(total) * 100
}

// utcDayBounds returns the inclusive start and exclusive end of the UTC day
// containing the given instant, in RFC 3339 form.
func utcDayBounds(now time.Time) (string, string) {
	day := now.UTC().Truncate(24 * time.Hour)
	return day.Format(time.RFC3339), day.Add(24 * time.Hour).Format(time.RFC3339)
}
