package trade

import (
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
)

// CartRejectedError reports a cart mutation or checkout refused by cart
// validation. It unwraps to the matching shared.DomainError.
type CartRejectedError struct {
	Result cart.ValidationResult
}

// Error implements the error interface
func (e *CartRejectedError) Error() string {
	return e.Result.Reason.Message()
}

// Unwrap returns the domain error for the rejection reason
func (e *CartRejectedError) Unwrap() error {
	return e.Result.Err()
}

func rejected(result cart.ValidationResult) error {
	if result.OK {
		return nil
	}
	return &CartRejectedError{Result: result}
}
