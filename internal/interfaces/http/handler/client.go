package handler

import (
	clientapp "github.com/eyrie/backend/internal/application/client"
	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/eyrie/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler handles client and allocation API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *clientapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *clientapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// RegisterRoutes registers client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.POST("", h.Create)
		clients.GET("", h.List)
		clients.GET("/search", h.Search)
		clients.GET("/next-membership", h.NextMembership)
		clients.GET("/:membership", h.Get)
		clients.PUT("/:membership", h.Update)
		clients.DELETE("/:membership", h.Delete)
		clients.PUT("/:membership/units/:unit_id/notes", h.UpdateNotes)
	}
}

// Create registers a new client and allocates the requested units
func (h *ClientHandler) Create(c *gin.Context) {
	var req clientapp.CreateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get retrieves one client with its allocated units
func (h *ClientHandler) Get(c *gin.Context) {
	resp, err := h.clientService.Get(c.Request.Context(), c.Param("membership"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List retrieves clients page by page, newest first
func (h *ClientHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if !h.BindQuery(c, &req) {
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	responses, total, err := h.clientService.List(c.Request.Context(), shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, responses, total, req.Page, req.PageSize)
}

// Search finds clients matching a free-text query
func (h *ClientHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		h.BadRequest(c, "Query parameter 'q' is required")
		return
	}

	responses, err := h.clientService.Search(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// NextMembership previews the membership number the next client will get
func (h *ClientHandler) NextMembership(c *gin.Context) {
	next, err := h.clientService.NextMembership(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"membership_number": next})
}

// Update applies basic-field edits and apartment changes
func (h *ClientHandler) Update(c *gin.Context) {
	var req clientapp.UpdateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.clientService.Update(c.Request.Context(), c.Param("membership"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a client and releases its units
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clientService.Delete(c.Request.Context(), c.Param("membership")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateNotes replaces the statement notes on one allocation
func (h *ClientHandler) UpdateNotes(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("unit_id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	var req clientapp.UpdateNotesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.clientService.UpdateNotes(c.Request.Context(), c.Param("membership"), unitID, req.Notes); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
