package models

// Metrics is the dashboard metrics snapshot. It is recomputed wholesale on each
// load and never reconciled incrementally.
type Metrics struct {
	ActiveConversations int64 `json:"active_conversations"`
	// AvgResponseTime and SatisfactionScore are configured presentation
	// defaults, not derived from stored data.
	AvgResponseTime     float64 `json:"avg_response_time"`
	SatisfactionScore   float64 `json:"satisfaction_score"`
	IssueResolutionRate float64 `json:"issue_resolution_rate"`
	TodayInteractions   int64   `json:"today_interactions"`
	EscalationRate      float64 `json:"escalation_rate"`
}
