package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelops/console-service/internal/api/dto"
	"github.com/travelops/console-service/internal/api/middleware"
	"github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/services/directory"
	"github.com/travelops/console-service/internal/store"
)

// ProfileHandler handles the signed-in staff member's profile endpoints.
type ProfileHandler struct {
	store     *store.Store
	directory *directory.Service
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(st *store.Store, svc *directory.Service) *ProfileHandler {
	return &ProfileHandler{
		store:     st,
		directory: svc,
	}
}

// Get handles GET /profile
// @Summary Current identity and profile
// @Tags Profile
// @Produce json
// @Success 200 {object} dto.IdentityResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	snap := h.store.Snapshot()
	if snap.Identity == nil {
		middleware.HandleError(c, errors.NewUnauthorizedError("not signed in"))
		return
	}

	c.JSON(http.StatusOK, dto.IdentityResponse{
		Identity: snap.Identity,
		Profile:  snap.Profile,
	})
}

// Update handles PATCH /profile
// @Summary Update the staff profile
// @Description Writes the provided fields and refreshes the cached profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Changed fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /profile [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	snap := h.store.Snapshot()
	if snap.Identity == nil {
		middleware.HandleError(c, errors.NewUnauthorizedError("not signed in"))
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if len(updates) == 0 {
		middleware.HandleError(c, errors.NewValidationError("no fields to update", ""))
		return
	}

	profile, err := h.directory.UpdateProfile(c.Request.Context(), snap.Identity.UserID, updates)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Keep the cached pair in step with the written row.
	h.store.SetIdentity(snap.Identity, profile)

	c.JSON(http.StatusOK, profile)
}
