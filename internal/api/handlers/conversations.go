package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/travelops/console-service/internal/api/dto"
	"github.com/travelops/console-service/internal/api/middleware"
	"github.com/travelops/console-service/internal/api/sse"
	"github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/domain/models"
	"github.com/travelops/console-service/internal/services/dashboard"
	"github.com/travelops/console-service/internal/services/directory"
)

// ConversationsHandler handles conversation and message endpoints.
type ConversationsHandler struct {
	directory *directory.Service
	dashboard *dashboard.Service
}

// NewConversationsHandler creates a new ConversationsHandler.
func NewConversationsHandler(svc *directory.Service, dash *dashboard.Service) *ConversationsHandler {
	return &ConversationsHandler{
		directory: svc,
		dashboard: dash,
	}
}

// List handles GET /conversations
// @Summary List conversations
// @Description Returns all conversations with the traveler summary joined, most recent first
// @Tags Conversations
// @Produce json
// @Success 200 {object} dto.ListResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /conversations [get]
func (h *ConversationsHandler) List(c *gin.Context) {
	conversations, err := h.directory.ListConversations(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Data:  conversations,
		Total: len(conversations),
	})
}

// Create handles POST /conversations
// @Summary Open a conversation
// @Description Opens a conversation for a traveler, defaulting to active status and medium priority
// @Tags Conversations
// @Accept json
// @Produce json
// @Param request body dto.CreateConversationRequest true "Conversation fields"
// @Success 201 {object} models.Conversation
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /conversations [post]
func (h *ConversationsHandler) Create(c *gin.Context) {
	var req dto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	status := models.ConversationStatus(req.Status)
	if status == "" {
		status = models.ConversationActive
	}
	priority := models.Priority(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}

	conversation, err := h.directory.CreateConversation(c.Request.Context(), directory.CreateConversationParams{
		TravelerID:     req.TravelerID,
		AgentID:        req.AgentID,
		Status:         status,
		Priority:       priority,
		SentimentScore: req.SentimentScore,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, conversation)
}

// Get handles GET /conversations/:conversationId
// @Summary Get a conversation
// @Tags Conversations
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} models.Conversation
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /conversations/{conversationId} [get]
func (h *ConversationsHandler) Get(c *gin.Context) {
	conversation, err := h.directory.GetConversation(c.Request.Context(), c.Param("conversationId"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversation)
}

// Update handles PATCH /conversations/:conversationId
// @Summary Update a conversation
// @Description Updates the status or priority of a conversation
// @Tags Conversations
// @Accept json
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Param request body dto.UpdateConversationRequest true "Changed fields"
// @Success 200 {object} models.Conversation
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /conversations/{conversationId} [patch]
func (h *ConversationsHandler) Update(c *gin.Context) {
	var req dto.UpdateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if len(updates) == 0 {
		middleware.HandleError(c, errors.NewValidationError("no fields to update", ""))
		return
	}

	conversation, err := h.directory.UpdateConversation(c.Request.Context(), c.Param("conversationId"), updates)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversation)
}

// ListMessages handles GET /conversations/:conversationId/messages
// @Summary List messages
// @Description Returns the messages of a conversation in chronological order
// @Tags Conversations
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} dto.ListResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /conversations/{conversationId}/messages [get]
func (h *ConversationsHandler) ListMessages(c *gin.Context) {
	messages, err := h.directory.ListMessages(c.Request.Context(), c.Param("conversationId"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Data:  messages,
		Total: len(messages),
	})
}

// CreateMessage handles POST /conversations/:conversationId/messages
// @Summary Append a message
// @Description Appends a message to a conversation on behalf of an agent
// @Tags Conversations
// @Accept json
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Param request body dto.CreateMessageRequest true "Message content"
// @Success 201 {object} models.Message
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /conversations/{conversationId}/messages [post]
func (h *ConversationsHandler) CreateMessage(c *gin.Context) {
	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	message, err := h.directory.CreateMessage(c.Request.Context(), directory.CreateMessageParams{
		ConversationID:  c.Param("conversationId"),
		Content:         req.Content,
		SenderType:      models.SenderType(req.SenderType),
		SenderID:        req.SenderID,
		ConfidenceScore: req.ConfidenceScore,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// StreamMessages handles GET /conversations/:conversationId/messages/stream
// @Summary Stream new messages
// @Description Delivers new messages of a conversation as Server-Sent Events until the client disconnects
// @Tags Conversations
// @Produce text/event-stream
// @Param conversationId path string true "Conversation ID"
// @Success 200 {string} string "SSE stream"
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /conversations/{conversationId}/messages/stream [get]
func (h *ConversationsHandler) StreamMessages(c *gin.Context) {
	writer, err := sse.NewWriter(c.Writer)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("streaming not supported", err))
		return
	}

	ctx := c.Request.Context()
	conversationID := c.Param("conversationId")

	// Buffered so a slow client never blocks event delivery.
	events := make(chan models.Message, 32)
	sub, err := h.dashboard.SubscribeMessages(ctx, conversationID, func(msg models.Message) {
		select {
		case events <- msg:
		default:
		}
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer sub.Close()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-events:
			if err := writer.WriteJSONWithID(sse.EventMessage, msg.ID, msg); err != nil {
				return
			}
		case <-heartbeat.C:
			if err := writer.WritePing(); err != nil {
				return
			}
		}
	}
}
