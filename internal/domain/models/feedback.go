package models

import "time"

// FeedbackType represents the category of a feedback item.
type FeedbackType string

const (
	// FeedbackComplaint is a complaint about the service or trip.
	FeedbackComplaint FeedbackType = "complaint"
	// FeedbackSuggestion is a suggestion for improvement.
	FeedbackSuggestion FeedbackType = "suggestion"
	// FeedbackTicket is a support ticket requiring follow-up.
	FeedbackTicket FeedbackType = "ticket"
	// FeedbackCompliment is positive feedback.
	FeedbackCompliment FeedbackType = "compliment"
)

// FeedbackStatus represents the handling state of a feedback item.
type FeedbackStatus string

const (
	// FeedbackOpen means the item has not been picked up yet.
	FeedbackOpen FeedbackStatus = "open"
	// FeedbackInProgress means an agent is working on the item.
	FeedbackInProgress FeedbackStatus = "in_progress"
	// FeedbackResolved means the item was resolved.
	FeedbackResolved FeedbackStatus = "resolved"
	// FeedbackClosed means the item was closed without further action.
	FeedbackClosed FeedbackStatus = "closed"
)

// Feedback represents a feedback ticket filed by or for a traveler.
type Feedback struct {
	ID             string         `json:"id"`
	TravelerID     string         `json:"traveler_id"`
	Type           FeedbackType   `json:"type"`
	Subject        string         `json:"subject"`
	Content        string         `json:"content"`
	Priority       Priority       `json:"priority"`
	Status         FeedbackStatus `json:"status"`
	SentimentScore float64        `json:"sentiment_score"`
	AssignedTo     string         `json:"assigned_to,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	// Traveler is the joined traveler summary, present on list reads.
	Traveler *TravelerSummary `json:"travelers,omitempty"`
}
