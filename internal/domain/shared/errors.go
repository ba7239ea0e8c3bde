package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code, so wrapped
// instances created with NewDomainError still match the sentinels below.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
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
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrEmptyCart     = NewDomainError("EMPTY_CART", "Cart has no items")
	ErrCartFull      = NewDomainError("CART_FULL", "Cart has reached the maximum number of items")
	ErrNoLots        = NewDomainError("NO_LOTS_SELECTED", "At least one outstanding lot must be selected")
	ErrLotSettled    = NewDomainError("LOT_ALREADY_SETTLED", "Lot has already been settled")

	ErrConcurrentModification = NewDomainError("CONCURRENT_MODIFICATION", "The resource has been modified by another request")
)
