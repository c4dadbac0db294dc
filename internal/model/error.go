package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeCouponNotFound  = "COUPON_NOT_FOUND"
	ErrCodeCouponRejected  = "COUPON_REJECTED"
	ErrCodeCartEmpty       = "CART_EMPTY"
	ErrCodeOrderNotFound   = "ORDER_NOT_FOUND"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

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
	ErrCouponNotFound  = NewDomainError(ErrCodeCouponNotFound, "Coupon code not recognised")
	ErrCartEmpty       = NewDomainError(ErrCodeCartEmpty, "Cart has no items to check out")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity delta must be non-zero")
)
