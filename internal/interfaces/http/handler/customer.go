package handler

import (
	"time"

	partnerapp "github.com/fubble/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer and subscription API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.GetByID)
		customers.GET("/:id/subscriptions", h.ListSubscriptions)
	}

	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.POST("", h.Subscribe)
		subscriptions.POST("/:id/cancel", h.CancelSubscription)
	}
}

// Create creates a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetByID retrieves a customer by ID
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.Get(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, customer)
}

// List retrieves all customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, customers)
}

// ListSubscriptions retrieves all subscriptions for a customer
func (h *CustomerHandler) ListSubscriptions(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	subs, err := h.customerService.ListSubscriptions(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, subs)
}

// Subscribe creates a subscription linking a customer to a plan
func (h *CustomerHandler) Subscribe(c *gin.Context) {
	var req partnerapp.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sub, err := h.customerService.Subscribe(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, sub)
}

// CancelSubscriptionRequest optionally carries the cancellation time
type CancelSubscriptionRequest struct {
	At *time.Time `json:"at,omitempty"`
}

// CancelSubscription closes a subscription, defaulting the end time to now
func (h *CustomerHandler) CancelSubscription(c *gin.Context) {
	subscriptionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid subscription ID")
		return
	}

	var req CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	at := time.Time{}
	if req.At != nil {
		at = *req.At
	}

	sub, err := h.customerService.CancelSubscription(c.Request.Context(), subscriptionID, at)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, sub)
}
