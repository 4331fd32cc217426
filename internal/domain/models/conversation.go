package models

import "time"

// ConversationStatus represents the handling state of an AI conversation.
type ConversationStatus string

const (
	// ConversationActive means the AI is currently handling the conversation.
	ConversationActive ConversationStatus = "active"
	// ConversationEscalated means the conversation was handed to a human agent.
	ConversationEscalated ConversationStatus = "escalated"
	// ConversationResolved means the conversation is closed.
	ConversationResolved ConversationStatus = "resolved"
)

// Priority represents the urgency of a conversation or feedback item.
type Priority string

const (
	// PriorityLow is the lowest urgency.
	PriorityLow Priority = "low"
	// PriorityMedium is the default urgency.
	PriorityMedium Priority = "medium"
	// PriorityHigh is elevated urgency.
	PriorityHigh Priority = "high"
	// PriorityUrgent requires immediate attention.
	PriorityUrgent Priority = "urgent"
)

// Conversation represents an AI-assisted support conversation with a traveler.
type Conversation struct {
	ID             string             `json:"id"`
	TravelerID     string             `json:"traveler_id"`
	AgentID        string             `json:"agent_id,omitempty"`
	Status         ConversationStatus `json:"status"`
	Priority       Priority           `json:"priority"`
	SentimentScore float64            `json:"sentiment_score"`
	LastMessageAt  time.Time          `json:"last_message_at"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	// Traveler is the joined traveler summary, present on list and get reads.
	Traveler *TravelerSummary `json:"travelers,omitempty"`
}
