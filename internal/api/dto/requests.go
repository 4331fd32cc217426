// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// SignInRequest represents the request body for signing in.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SignUpRequest represents the request body for creating a staff account.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin agent"`
}

// ResetPasswordRequest represents the request body for a password reset email.
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdatePasswordRequest represents the request body for setting a new password.
type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// SelectTravelerRequest represents the request body for selecting a traveler.
// An empty TravelerID clears the selection.
type SelectTravelerRequest struct {
	TravelerID string `json:"travelerId"`
}

// CreateTravelerRequest represents the request body for registering a traveler.
type CreateTravelerRequest struct {
	Name        string            `json:"name" binding:"required"`
	Email       string            `json:"email" binding:"required,email"`
	Phone       string            `json:"phone"`
	BookingID   string            `json:"bookingId" binding:"required"`
	Destination string            `json:"destination" binding:"required"`
	Departure   string            `json:"departure" binding:"required"`
	Return      string            `json:"return" binding:"required"`
	Status      string            `json:"status" binding:"omitempty,oneof=pre_departure traveling completed"`
	Preferences map[string]string `json:"preferences"`
}

// UpdateTravelerRequest represents the request body for updating a traveler.
// Only the provided fields are written.
type UpdateTravelerRequest struct {
	Name        *string           `json:"name"`
	Email       *string           `json:"email"`
	Phone       *string           `json:"phone"`
	Destination *string           `json:"destination"`
	Status      *string           `json:"status" binding:"omitempty,oneof=pre_departure traveling completed"`
	Preferences map[string]string `json:"preferences"`
}

// UpdateConversationRequest represents the request body for updating a
// conversation's triage fields.
type UpdateConversationRequest struct {
	Status   *string `json:"status" binding:"omitempty,oneof=active escalated resolved"`
	Priority *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

// CreateConversationRequest represents the request body for opening a
// conversation on behalf of a traveler.
type CreateConversationRequest struct {
	TravelerID     string  `json:"travelerId" binding:"required"`
	AgentID        string  `json:"agentId"`
	Status         string  `json:"status" binding:"omitempty,oneof=active escalated resolved"`
	Priority       string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	SentimentScore float64 `json:"sentimentScore"`
}

// CreateFeedbackRequest represents the request body for filing a feedback
// item for a traveler.
type CreateFeedbackRequest struct {
	TravelerID     string  `json:"travelerId" binding:"required"`
	Type           string  `json:"type" binding:"required,oneof=complaint suggestion ticket compliment"`
	Subject        string  `json:"subject" binding:"required,min=1,max=500"`
	Content        string  `json:"content" binding:"required,min=1,max=32000"`
	Priority       string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	SentimentScore float64 `json:"sentimentScore"`
	AssignedTo     string  `json:"assignedTo"`
}

// CreateMessageRequest represents the request body for appending a message
// to a conversation.
type CreateMessageRequest struct {
	Content         string   `json:"content" binding:"required,min=1,max=32000"`
	SenderType      string   `json:"senderType" binding:"required,oneof=traveler ai agent"`
	SenderID        string   `json:"senderId"`
	ConfidenceScore *float64 `json:"confidenceScore"`
}

// UpdateFeedbackRequest represents the request body for updating a feedback
// item's workflow fields.
type UpdateFeedbackRequest struct {
	Status     *string `json:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
	AssignedTo *string `json:"assignedTo"`
}

// UpdateProfileRequest represents the request body for updating the
// signed-in staff member's profile.
type UpdateProfileRequest struct {
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
}
