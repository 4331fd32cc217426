package models

import "time"

// SenderType represents who authored a message.
type SenderType string

const (
	// SenderAI represents a message generated by the AI assistant.
	SenderAI SenderType = "ai"
	// SenderTraveler represents a message written by the traveler.
	SenderTraveler SenderType = "traveler"
	// SenderAgent represents a message written by a human agent.
	SenderAgent SenderType = "agent"
)

// Message represents a single message within a conversation.
type Message struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id"`
	Content        string     `json:"content"`
	SenderType     SenderType `json:"sender_type"`
	SenderID       string     `json:"sender_id"`
	// ConfidenceScore is set only on AI messages.
	ConfidenceScore   *float64  `json:"confidence_score,omitempty"`
	RequiresAttention bool      `json:"requires_attention"`
	CreatedAt         time.Time `json:"created_at"`
}
