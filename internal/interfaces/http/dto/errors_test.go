package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeDuplicateCartItem, http.StatusUnprocessableEntity},
		{ErrCodeMixedQuantityKind, http.StatusUnprocessableEntity},
		{ErrCodeEmptyCart, http.StatusUnprocessableEntity},
		{ErrCodeNoLotsSelected, http.StatusUnprocessableEntity},
		{ErrCodeLotAlreadySettled, http.StatusConflict},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeInsufficientCrateQty, NormalizeErrorCode("INSUFFICIENT_CRATE_QUANTITY"))
	assert.Equal(t, ErrCodeCartItemNotFound, NormalizeErrorCode("CART_ITEM_NOT_FOUND"))
	assert.Equal(t, ErrCodeConflict, NormalizeErrorCode("CONCURRENT_MODIFICATION"))
	assert.Equal(t, ErrCodeInternal, NormalizeErrorCode(ErrCodeInternal))
	assert.Equal(t, "CUSTOM", NormalizeErrorCode("CUSTOM"))
}

func TestEveryDomainCodeHasStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "no status for %s", domainCode)
	}
}

func TestNewCartRejectionResponse(t *testing.T) {
	resp := NewCartRejectionResponse(ErrCodeDuplicateCartItem, "dup", "req-1", "p1", "o1")

	assert.False(t, resp.Success)
	assert.Equal(t, "p1", resp.Error.ItemID)
	assert.Equal(t, "o1", resp.Error.OwnerID)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("bad", "req-1", []ValidationDetail{{Field: "quantity_kind", Message: "x"}})

	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]string{"a", "b"}, 2)

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Meta.Total)
}
