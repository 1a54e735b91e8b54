package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound               = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists          = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput           = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrCustomerNotFound       = NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	ErrPlanNotFound           = NewDomainError("PLAN_NOT_FOUND", "Plan not found")
	ErrInvalidInvoiceState    = NewDomainError("INVALID_INVOICE_STATE", "Operation not allowed in current invoice status")
	ErrUnsupportedPricingType = NewDomainError("UNSUPPORTED_PRICING_TYPE", "Pricing type is not supported")
	ErrInvalidPricingConfig   = NewDomainError("INVALID_PRICING_CONFIG", "Pricing configuration is invalid")
)
