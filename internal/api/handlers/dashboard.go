package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelops/console-service/internal/api/dto"
	"github.com/travelops/console-service/internal/api/middleware"
	"github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/services/dashboard"
	"github.com/travelops/console-service/internal/store"
)

// DashboardHandler exposes the reactive dashboard state.
type DashboardHandler struct {
	store     *store.Store
	dashboard *dashboard.Service
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(st *store.Store, svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{
		store:     st,
		dashboard: svc,
	}
}

// State handles GET /dashboard/state
// @Summary Dashboard state
// @Description Returns a consistent snapshot of the cached dashboard state
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Security BearerAuth
// @Router /dashboard/state [get]
func (h *DashboardHandler) State(c *gin.Context) {
	snap := h.store.Snapshot()

	c.JSON(http.StatusOK, dto.StateResponse{
		Epoch:              snap.Epoch,
		Authenticated:      snap.Identity != nil,
		Identity:           snap.Identity,
		Profile:            snap.Profile,
		Metrics:            snap.Metrics,
		Travelers:          snap.Travelers,
		Conversations:      snap.Conversations,
		Feedback:           snap.Feedback,
		SelectedTravelerID: snap.SelectedTravelerID,
		LastError:          snap.LastError,
		Loading:            snap.Loading,
	})
}

// Refresh handles POST /dashboard/refresh
// @Summary Reload dashboard data
// @Description Re-fetches all collections from the gateway and resubscribes to changes
// @Tags Dashboard
// @Produce json
// @Success 202 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c *gin.Context) {
	h.dashboard.LoadAll(c.Request.Context())

	c.JSON(http.StatusAccepted, gin.H{
		"status": "reloading",
	})
}

// SelectTraveler handles PUT /dashboard/selected-traveler
// @Summary Select a traveler
// @Description Records the traveler the operator is focused on; empty ID clears the selection
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body dto.SelectTravelerRequest true "Traveler selection"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/selected-traveler [put]
func (h *DashboardHandler) SelectTraveler(c *gin.Context) {
	var req dto.SelectTravelerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	// The ID is not validated against the traveler list; selection and data
	// loading are independent concerns.
	h.store.SelectTraveler(req.TravelerID)

	c.JSON(http.StatusOK, gin.H{
		"selectedTravelerId": req.TravelerID,
	})
}

// ClearError handles DELETE /dashboard/error
// @Summary Clear the dashboard error
// @Description Clears the shared error slot
// @Tags Dashboard
// @Produce json
// @Success 204
// @Security BearerAuth
// @Router /dashboard/error [delete]
func (h *DashboardHandler) ClearError(c *gin.Context) {
	h.store.ClearError()
	c.Status(http.StatusNoContent)
}
