package dto

import "github.com/travelops/console-service/internal/domain/models"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// IdentityResponse represents the signed-in staff member.
type IdentityResponse struct {
	Identity *models.Identity `json:"identity"`
	Profile  *models.Profile  `json:"profile"`
}

// StateResponse represents the full dashboard state snapshot.
type StateResponse struct {
	Epoch              uint64                `json:"epoch"`
	Authenticated      bool                  `json:"authenticated"`
	Identity           *models.Identity      `json:"identity,omitempty"`
	Profile            *models.Profile       `json:"profile,omitempty"`
	Metrics            *models.Metrics       `json:"metrics,omitempty"`
	Travelers          []models.Traveler     `json:"travelers"`
	Conversations      []models.Conversation `json:"conversations"`
	Feedback           []models.Feedback     `json:"feedback"`
	SelectedTravelerID string                `json:"selectedTravelerId,omitempty"`
	LastError          string                `json:"lastError,omitempty"`
	Loading            bool                  `json:"loading"`
}

// ListResponse represents a collection response with its size.
type ListResponse struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
}

// AuditListResponse represents a page of audit trail entries.
type AuditListResponse struct {
	Entries []*models.AuditEntry `json:"entries"`
	Total   int                  `json:"total"`
}
