package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/travelops/console-service/internal/api/dto"
	"github.com/travelops/console-service/internal/api/middleware"
	"github.com/travelops/console-service/internal/core/audit"
	"github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/domain/models"
)

// AuditHandler handles audit trail endpoints.
type AuditHandler struct {
	recorder audit.Recorder
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(recorder audit.Recorder) *AuditHandler {
	return &AuditHandler{
		recorder: recorder,
	}
}

// List handles GET /audit
// @Summary List audit entries
// @Description Returns the most recent audit trail entries, newest first
// @Tags Audit
// @Produce json
// @Param limit query int false "Maximum number of entries" default(100) minimum(1) maximum(500)
// @Success 200 {object} dto.AuditListResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /audit [get]
func (h *AuditHandler) List(c *gin.Context) {
	if h.recorder == nil {
		middleware.HandleError(c, errors.NewServiceUnavailableError("audit trail", nil))
		return
	}

	limit := int64(100)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 || parsed > 500 {
			middleware.HandleError(c, errors.NewValidationError("invalid limit", raw))
			return
		}
		limit = parsed
	}

	entries, err := h.recorder.List(c.Request.Context(), limit)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to list audit entries", err))
		return
	}

	out := make([]*models.AuditEntry, len(entries))
	for i := range entries {
		out[i] = &entries[i]
	}

	c.JSON(http.StatusOK, dto.AuditListResponse{
		Entries: out,
		Total:   len(out),
	})
}
