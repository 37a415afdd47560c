package models

// ErrorResponse is the body of every structured error response.
type ErrorResponse struct {
	Error         string            `json:"error"`
	Message       string            `json:"message"`
	Errors        map[string]string `json:"errors,omitempty"`
	CorrelationID string            `json:"correlationId,omitempty"`
}

// Error codes returned to API clients.
const (
	ErrCodeInvalidBody       = "INVALID_BODY"
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeProductIDRequired = "PRODUCT_ID_REQUIRED"
	ErrCodeProductIDConflict = "PRODUCT_ID_CONFLICT"
	ErrCodeProductIDTaken    = "PRODUCT_ID_TAKEN"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeUserConflict      = "USER_CONFLICT"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a failure the service layer detected on purpose.
type DomainError struct {
	Code    string
	Message string
	Fields  map[string]string
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

// Common domain errors
var (
	ErrProductIDRequired = NewDomainError(ErrCodeProductIDRequired, "ProductId is required, Provide an appropriate ProductId")
	ErrProductIDConflict = NewDomainError(ErrCodeProductIDConflict, "Product with same ProductID already exists")
	ErrProductIDTaken    = NewDomainError(ErrCodeProductIDTaken, "Provide an appropriate ProductId, another product exists in this ProductID")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product doesn't exist")
	ErrMissingID         = NewDomainError(ErrCodeProductNotFound, "Please provide an id")
	ErrMissingProductID  = NewDomainError(ErrCodeProductNotFound, "Please provide a product id")
)
