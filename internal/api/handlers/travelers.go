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

// TravelersHandler handles traveler directory endpoints.
type TravelersHandler struct {
	directory *directory.Service
}

// NewTravelersHandler creates a new TravelersHandler.
func NewTravelersHandler(svc *directory.Service) *TravelersHandler {
	return &TravelersHandler{
		directory: svc,
	}
}

// List handles GET /travelers
// @Summary List travelers
// @Description Returns all travelers, newest first. Supports search and destination filters.
// @Tags Travelers
// @Produce json
// @Param q query string false "Substring matched against name, email or destination"
// @Param destination query string false "Exact destination filter"
// @Success 200 {object} dto.ListResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /travelers [get]
func (h *TravelersHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		travelers []models.Traveler
		err       error
	)
	switch {
	case c.Query("q") != "":
		travelers, err = h.directory.SearchTravelers(ctx, c.Query("q"))
	case c.Query("destination") != "":
		travelers, err = h.directory.TravelersByDestination(ctx, c.Query("destination"))
	default:
		travelers, err = h.directory.ListTravelers(ctx)
	}
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Data:  travelers,
		Total: len(travelers),
	})
}

// Get handles GET /travelers/:travelerId
// @Summary Get a traveler
// @Tags Travelers
// @Produce json
// @Param travelerId path string true "Traveler ID"
// @Success 200 {object} models.Traveler
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /travelers/{travelerId} [get]
func (h *TravelersHandler) Get(c *gin.Context) {
	traveler, err := h.directory.GetTraveler(c.Request.Context(), c.Param("travelerId"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, traveler)
}

// Create handles POST /travelers
// @Summary Register a traveler
// @Tags Travelers
// @Accept json
// @Produce json
// @Param request body dto.CreateTravelerRequest true "New traveler"
// @Success 201 {object} models.Traveler
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /travelers [post]
func (h *TravelersHandler) Create(c *gin.Context) {
	var req dto.CreateTravelerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	status := models.TravelerStatus(req.Status)
	if status == "" {
		status = models.TravelerPreDeparture
	}

	traveler, err := h.directory.CreateTraveler(c.Request.Context(), directory.CreateTravelerParams{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		BookingID:   req.BookingID,
		Destination: req.Destination,
		TravelDates: models.TravelDates{
			Departure: req.Departure,
			Return:    req.Return,
		},
		Status:      status,
		Preferences: req.Preferences,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, traveler)
}

// Update handles PATCH /travelers/:travelerId
// @Summary Update a traveler
// @Description Writes only the provided fields
// @Tags Travelers
// @Accept json
// @Produce json
// @Param travelerId path string true "Traveler ID"
// @Param request body dto.UpdateTravelerRequest true "Changed fields"
// @Success 200 {object} models.Traveler
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /travelers/{travelerId} [patch]
func (h *TravelersHandler) Update(c *gin.Context) {
	var req dto.UpdateTravelerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Destination != nil {
		updates["destination"] = *req.Destination
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Preferences != nil {
		updates["preferences"] = req.Preferences
	}
	if len(updates) == 0 {
		middleware.HandleError(c, errors.NewValidationError("no fields to update", ""))
		return
	}

	traveler, err := h.directory.UpdateTraveler(c.Request.Context(), c.Param("travelerId"), updates)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, traveler)
}
