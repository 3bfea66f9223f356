package model

// Standard error codes for API responses.
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeInvalidPayMethod  = "INVALID_PAY_METHOD"
	ErrCodeEmptyOrder        = "EMPTY_ORDER"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeAddressNotFound   = "ADDRESS_NOT_FOUND"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeCartEntryNotFound = "CART_ENTRY_NOT_FOUND"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeCommitFailed      = "ORDER_COMMIT_FAILED"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeOrderState        = "ORDER_STATE"
	ErrCodeGateway           = "GATEWAY_UNAVAILABLE"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business failure with a stable machine-readable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Validation and not-found errors are final; the
// caller must change the request. ErrOrderCommitFailed is the one failure
// a client may retry verbatim: the cart and inventory are untouched when
// it is returned.
var (
	ErrInvalidPayMethod   = NewDomainError(ErrCodeInvalidPayMethod, "Pay method must be cod, bank or gateway")
	ErrEmptyOrder         = NewDomainError(ErrCodeEmptyOrder, "Order must contain at least one product")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrAddressNotFound    = NewDomainError(ErrCodeAddressNotFound, "Address not found for this user")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrCartEntryNotFound  = NewDomainError(ErrCodeCartEntryNotFound, "Product is not in the cart")
	ErrInsufficientStock  = NewDomainError(ErrCodeInsufficientStock, "Not enough stock for the requested quantity")
	ErrOrderCommitFailed  = NewDomainError(ErrCodeCommitFailed, "Order failed after contention, please retry")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrOrderState         = NewDomainError(ErrCodeOrderState, "Order is not in a state that allows this operation")
	ErrGatewayUnavailable = NewDomainError(ErrCodeGateway, "Payment gateway is unreachable")
)
