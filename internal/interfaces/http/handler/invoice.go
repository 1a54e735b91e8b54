package handler

import (
	"context"
	"time"

	billingapp "github.com/fubble/backend/internal/application/billing"
	invoicingapp "github.com/fubble/backend/internal/application/invoicing"
	"github.com/fubble/backend/internal/domain/invoicing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice lifecycle and generation API endpoints
type InvoiceHandler struct {
	BaseHandler
	lifecycleService  *invoicingapp.InvoiceLifecycleService
	generationService *billingapp.InvoiceGenerationService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(
	lifecycleService *invoicingapp.InvoiceLifecycleService,
	generationService *billingapp.InvoiceGenerationService,
) *InvoiceHandler {
	return &InvoiceHandler{
		lifecycleService:  lifecycleService,
		generationService: generationService,
	}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.ListByStatus)
		invoices.POST("/generate", h.Generate)
		invoices.GET("/:id", h.GetByID)
		invoices.POST("/:id/items", h.AddItem)
		invoices.DELETE("/:id/items/:itemID", h.RemoveItem)
		invoices.POST("/:id/finalize", h.Finalize)
		invoices.POST("/:id/pay", h.MarkPaid)
		invoices.POST("/:id/fail", h.MarkFailed)
		invoices.POST("/:id/void", h.Void)
		invoices.PUT("/:id/status", h.SetStatus)
	}

	rg.GET("/customers/:id/invoices", h.ListByCustomer)
}

// Create creates a manual draft invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoicingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.lifecycleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, invoice)
}

// GenerateRequest controls one invoice generation run. All fields are
// optional: omitted dates derive the window from each plan's billing
// frequency, an omitted customer ID targets every subscribed customer.
type GenerateRequest struct {
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
}

// Generate runs invoice generation for a billing period
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	start, end := time.Time{}, time.Time{}
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}

	report, err := h.generationService.GenerateInvoices(c.Request.Context(), start, end, req.CustomerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, report)
}

// GetByID retrieves an invoice with its items
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.lifecycleService.Get(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// ListByStatus retrieves all invoices in the status given by the required
// "status" query parameter
func (h *InvoiceHandler) ListByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		h.BadRequest(c, "status query parameter is required")
		return
	}

	invoices, err := h.lifecycleService.ListByStatus(c.Request.Context(), invoicing.InvoiceStatus(status))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoices)
}

// ListByCustomer retrieves all invoices for a customer, newest first
func (h *InvoiceHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	invoices, err := h.lifecycleService.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoices)
}

// AddItem appends a line item to a draft invoice
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req invoicingapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.lifecycleService.AddItem(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// RemoveItem removes a line item from a draft invoice
func (h *InvoiceHandler) RemoveItem(c *gin.Context) {
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}
	itemID, ok := parseIDParam(c, "itemID")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	invoice, err := h.lifecycleService.RemoveItem(c.Request.Context(), invoiceID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Finalize moves a draft invoice to pending
func (h *InvoiceHandler) Finalize(c *gin.Context) {
	h.transition(c, h.lifecycleService.Finalize)
}

// MarkPaid records payment of a pending invoice
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.lifecycleService.MarkPaid)
}

// MarkFailed records a failed payment attempt on a pending invoice
func (h *InvoiceHandler) MarkFailed(c *gin.Context) {
	h.transition(c, h.lifecycleService.MarkFailed)
}

// VoidRequest carries the reason an invoice is voided
type VoidRequest struct {
	Reason string `json:"reason"`
}

// Void cancels an invoice. Paid invoices cannot be voided.
func (h *InvoiceHandler) Void(c *gin.Context) {
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req VoidRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.lifecycleService.Void(c.Request.Context(), invoiceID, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// SetStatusRequest carries the target status for an override
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus sets an invoice status directly, bypassing transition rules.
// The target status must still be a valid status value.
func (h *InvoiceHandler) SetStatus(c *gin.Context) {
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.lifecycleService.SetStatus(c.Request.Context(), invoiceID, invoicing.InvoiceStatus(req.Status))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// transition applies a single-argument lifecycle operation to the invoice
// identified in the path
func (h *InvoiceHandler) transition(
	c *gin.Context,
	op func(ctx context.Context, invoiceID uuid.UUID) (*invoicingapp.InvoiceResponse, error),
) {
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := op(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoice)
}
