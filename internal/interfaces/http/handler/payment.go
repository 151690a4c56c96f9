package handler

import (
	billingapp "github.com/eyrie/backend/internal/application/billing"
	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/eyrie/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles installment payment and statement endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers billing routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	billing := rg.Group("/billing")
	{
		billing.POST("/payments", h.Create)
		billing.GET("/payments", h.List)
		billing.GET("/clients/:membership/units/:unit_id/statement", h.Statement)
		billing.GET("/clients/:membership/units/:unit_id/progress", h.Progress)
	}
}

// Create records one installment payment against the cursor
func (h *PaymentHandler) Create(c *gin.Context) {
	var req billingapp.CreatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.paymentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List retrieves recorded payments, optionally filtered to one client
func (h *PaymentHandler) List(c *gin.Context) {
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

	unitID := uuid.Nil
	if raw := c.Query("unit_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid unit ID")
			return
		}
		unitID = parsed
	}

	responses, err := h.paymentService.List(c.Request.Context(), c.Query("client_membership"), unitID, shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// Statement builds the reconciled installment statement for one allocation
func (h *PaymentHandler) Statement(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("unit_id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	resp, err := h.paymentService.GetStatement(c.Request.Context(), c.Param("membership"), unitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Progress reports how much of one allocation's payable has been received
func (h *PaymentHandler) Progress(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("unit_id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	resp, err := h.paymentService.GetProgress(c.Request.Context(), c.Param("membership"), unitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
