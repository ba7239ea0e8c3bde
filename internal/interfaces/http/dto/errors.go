package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeInvalidSession  = "ERR_INVALID_SESSION"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Cart error codes. Rejections keep the reason in the code so clients can
// point at the offending field.
const (
	ErrCodeEmptyCart            = "ERR_EMPTY_CART"
	ErrCodeCartFull             = "ERR_CART_FULL"
	ErrCodeInsufficientCrateQty = "ERR_INSUFFICIENT_CRATE_QUANTITY"
	ErrCodeInsufficientBoxQty   = "ERR_INSUFFICIENT_BOX_QUANTITY"
	ErrCodeInsufficientPieceQty = "ERR_INSUFFICIENT_PIECE_QUANTITY"
	ErrCodeInvalidUnitCost      = "ERR_INVALID_UNIT_COST"
	ErrCodeMixedQuantityKind    = "ERR_MIXED_QUANTITY_KIND"
	ErrCodeDuplicateCartItem    = "ERR_DUPLICATE_CART_ITEM"
	ErrCodeCartItemNotFound     = "ERR_CART_ITEM_NOT_FOUND"
	ErrCodeInvalidQuantityKind  = "ERR_INVALID_QUANTITY_KIND"
	ErrCodeInvalidCartType      = "ERR_INVALID_CART_TYPE"
)

// Settlement error codes
const (
	ErrCodeInvalidState        = "ERR_INVALID_STATE"
	ErrCodeNoLotsSelected      = "ERR_NO_LOTS_SELECTED"
	ErrCodeLotAlreadySettled   = "ERR_LOT_ALREADY_SETTLED"
	ErrCodeLotSupplierMismatch = "ERR_LOT_SUPPLIER_MISMATCH"
	ErrCodeInvalidSupplier     = "ERR_INVALID_SUPPLIER"
	ErrCodeInvalidAmount       = "ERR_INVALID_AMOUNT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeInvalidSession:  http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeEmptyCart:            http.StatusUnprocessableEntity,
	ErrCodeCartFull:             http.StatusUnprocessableEntity,
	ErrCodeInsufficientCrateQty: http.StatusUnprocessableEntity,
	ErrCodeInsufficientBoxQty:   http.StatusUnprocessableEntity,
	ErrCodeInsufficientPieceQty: http.StatusUnprocessableEntity,
	ErrCodeInvalidUnitCost:      http.StatusUnprocessableEntity,
	ErrCodeMixedQuantityKind:    http.StatusUnprocessableEntity,
	ErrCodeDuplicateCartItem:    http.StatusUnprocessableEntity,
	ErrCodeCartItemNotFound:     http.StatusUnprocessableEntity,
	ErrCodeInvalidQuantityKind:  http.StatusUnprocessableEntity,
	ErrCodeInvalidCartType:      http.StatusUnprocessableEntity,
	ErrCodeInvalidState:         http.StatusUnprocessableEntity,
	ErrCodeNoLotsSelected:       http.StatusUnprocessableEntity,
	ErrCodeLotSupplierMismatch:  http.StatusUnprocessableEntity,
	ErrCodeInvalidSupplier:      http.StatusUnprocessableEntity,
	ErrCodeInvalidAmount:        http.StatusUnprocessableEntity,

	// A concurrent payment got there first
	ErrCodeLotAlreadySettled: http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                   ErrCodeNotFound,
	"ALREADY_EXISTS":              ErrCodeAlreadyExists,
	"INVALID_INPUT":               ErrCodeInvalidInput,
	"INVALID_STATE":               ErrCodeInvalidState,
	"INVALID_SESSION":             ErrCodeInvalidSession,
	"EMPTY_CART":                  ErrCodeEmptyCart,
	"CART_FULL":                   ErrCodeCartFull,
	"INSUFFICIENT_CRATE_QUANTITY": ErrCodeInsufficientCrateQty,
	"INSUFFICIENT_BOX_QUANTITY":   ErrCodeInsufficientBoxQty,
	"INSUFFICIENT_PIECE_QUANTITY": ErrCodeInsufficientPieceQty,
	"INVALID_UNIT_COST":           ErrCodeInvalidUnitCost,
	"MIXED_QUANTITY_KIND":         ErrCodeMixedQuantityKind,
	"DUPLICATE_CART_ITEM":         ErrCodeDuplicateCartItem,
	"CART_ITEM_NOT_FOUND":         ErrCodeCartItemNotFound,
	"INVALID_QUANTITY_KIND":       ErrCodeInvalidQuantityKind,
	"INVALID_CART_TYPE":           ErrCodeInvalidCartType,
	"NO_LOTS_SELECTED":            ErrCodeNoLotsSelected,
	"LOT_ALREADY_SETTLED":         ErrCodeLotAlreadySettled,
	"LOT_SUPPLIER_MISMATCH":       ErrCodeLotSupplierMismatch,
	"INVALID_SUPPLIER":            ErrCodeInvalidSupplier,
	"INVALID_AMOUNT":              ErrCodeInvalidAmount,
	"CONCURRENT_MODIFICATION":     ErrCodeConflict,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
