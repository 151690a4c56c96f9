package handler

import (
	propertyapp "github.com/eyrie/backend/internal/application/property"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UnitHandler handles unit inventory endpoints
type UnitHandler struct {
	BaseHandler
	unitService *propertyapp.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *propertyapp.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// RegisterRoutes registers property routes
func (h *UnitHandler) RegisterRoutes(rg *gin.RouterGroup) {
	property := rg.Group("/property")
	{
		property.GET("/units", h.Listing)
		property.GET("/units/:id", h.Get)
		property.GET("/floors", h.Floors)
	}
}

// Listing returns every unit grouped by floor in building order.
// ?invalidate=true bypasses the cache and repopulates it.
func (h *UnitHandler) Listing(c *gin.Context) {
	forceRefresh := c.Query("invalidate") == "true"

	resp, err := h.unitService.Listing(c.Request.Context(), forceRefresh)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get retrieves one unit by ID
func (h *UnitHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	resp, err := h.unitService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Floors returns the floor IDs that have units, in building order
func (h *UnitHandler) Floors(c *gin.Context) {
	floors, err := h.unitService.Floors(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"floors": floors})
}
