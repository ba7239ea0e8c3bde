package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	t.Run("message is the error string", func(t *testing.T) {
		err := NewDomainError("SOME_CODE", "something happened")
		assert.Equal(t, "something happened", err.Error())
	})

	t.Run("matches sentinel by code through wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading lot: %w", NewDomainError("NOT_FOUND", "Lot not found"))
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("errors.As extracts the code", func(t *testing.T) {
		err := fmt.Errorf("wrap: %w", ErrEmptyCart)
		var de *DomainError
		assert.True(t, errors.As(err, &de))
		assert.Equal(t, "EMPTY_CART", de.Code)
	})
}
