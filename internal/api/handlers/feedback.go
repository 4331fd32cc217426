package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelops/console-service/internal/api/dto"
	"github.com/travelops/console-service/internal/api/middleware"
	"github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/domain/models"
	"github.com/travelops/console-service/internal/services/directory"
)

// FeedbackHandler handles feedback workflow endpoints.
type FeedbackHandler struct {
	directory *directory.Service
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(svc *directory.Service) *FeedbackHandler {
	return &FeedbackHandler{
		directory: svc,
	}
}

// List handles GET /feedback
// @Summary List feedback
// @Description Returns all feedback items with the traveler summary joined, newest first
// @Tags Feedback
// @Produce json
// @Success 200 {object} dto.ListResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	feedback, err := h.directory.ListFeedback(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Data:  feedback,
		Total: len(feedback),
	})
}

// Create handles POST /feedback
// @Summary File a feedback item
// @Description Files a feedback item for a traveler, defaulting to open status and medium priority
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body dto.CreateFeedbackRequest true "Feedback fields"
// @Success 201 {object} models.Feedback
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /feedback [post]
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	priority := models.Priority(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}

	feedback, err := h.directory.CreateFeedback(c.Request.Context(), directory.CreateFeedbackParams{
		TravelerID:     req.TravelerID,
		Type:           models.FeedbackType(req.Type),
		Subject:        req.Subject,
		Content:        req.Content,
		Priority:       priority,
		Status:         models.FeedbackOpen,
		SentimentScore: req.SentimentScore,
		AssignedTo:     req.AssignedTo,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// Update handles PATCH /feedback/:feedbackId
// @Summary Update a feedback item
// @Description Updates the workflow status or assignee of a feedback item
// @Tags Feedback
// @Accept json
// @Produce json
// @Param feedbackId path string true "Feedback ID"
// @Param request body dto.UpdateFeedbackRequest true "Changed fields"
// @Success 200 {object} models.Feedback
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /feedback/{feedbackId} [patch]
func (h *FeedbackHandler) Update(c *gin.Context) {
	var req dto.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = *req.AssignedTo
	}
	if len(updates) == 0 {
		middleware.HandleError(c, errors.NewValidationError("no fields to update", ""))
		return
	}

	feedback, err := h.directory.UpdateFeedback(c.Request.Context(), c.Param("feedbackId"), updates)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}
