package cart

import "github.com/neyamat7/pos-inventory-sub000/internal/domain/shared"

// Reason identifies why a cart or cart mutation was rejected. Every reason
// is a user-correctable condition, reported back as form feedback.
type Reason string

const (
	ReasonInsufficientCrateQuantity Reason = "InsufficientCrateQuantity"
	ReasonInsufficientBoxQuantity   Reason = "InsufficientBoxQuantity"
	ReasonInsufficientPieceQuantity Reason = "InsufficientPieceQuantity"
	ReasonInvalidUnitCost           Reason = "InvalidUnitCost"
	ReasonMixedQuantityKind         Reason = "MixedQuantityKind"
	ReasonDuplicateCartItem         Reason = "DuplicateCartItem"
	ReasonItemNotFound              Reason = "CartItemNotFound"
	ReasonInvalidQuantityKind       Reason = "InvalidQuantityKind"
)

var reasonDetails = map[Reason]struct {
	code    string
	message string
}{
	ReasonInsufficientCrateQuantity: {"INSUFFICIENT_CRATE_QUANTITY", "At least one crate of either type is required"},
	ReasonInsufficientBoxQuantity:   {"INSUFFICIENT_BOX_QUANTITY", "Box quantity must be greater than zero"},
	ReasonInsufficientPieceQuantity: {"INSUFFICIENT_PIECE_QUANTITY", "Piece quantity must be greater than zero"},
	ReasonInvalidUnitCost:           {"INVALID_UNIT_COST", "Unit cost must be greater than zero"},
	ReasonMixedQuantityKind:         {"MIXED_QUANTITY_KIND", "Piece items cannot share a cart with box or crate items"},
	ReasonDuplicateCartItem:         {"DUPLICATE_CART_ITEM", "This product is already in the cart for the same owner"},
	ReasonItemNotFound:              {"CART_ITEM_NOT_FOUND", "Item is not in the cart"},
	ReasonInvalidQuantityKind:       {"INVALID_QUANTITY_KIND", "Quantity kind must be piece, box or crate"},
}

// Code returns the machine readable error code for the reason
func (r Reason) Code() string {
	if d, ok := reasonDetails[r]; ok {
		return d.code
	}
	return shared.ErrInvalidInput.Code
}

// Message returns a human readable description of the reason
func (r Reason) Message() string {
	if d, ok := reasonDetails[r]; ok {
		return d.message
	}
	return shared.ErrInvalidInput.Message
}

// ValidationResult is the outcome of a cart check or mutation. When OK is
// false, ProductID and OwnerID name the offending item.
type ValidationResult struct {
	OK        bool   `json:"ok"`
	ProductID string `json:"item_id,omitempty"`
	OwnerID   string `json:"owner_id,omitempty"`
	Reason    Reason `json:"reason,omitempty"`
}

// Valid returns a successful result
func Valid() ValidationResult {
	return ValidationResult{OK: true}
}

// Reject returns a failed result for key
func Reject(key ItemKey, reason Reason) ValidationResult {
	return ValidationResult{
		OK:        false,
		ProductID: key.ProductID,
		OwnerID:   key.OwnerID,
		Reason:    reason,
	}
}

// Err converts a failed result into a domain error, nil when OK
func (r ValidationResult) Err() error {
	if r.OK {
		return nil
	}
	return shared.NewDomainError(r.Reason.Code(), r.Reason.Message())
}

// ValidatePurchaseCart checks every item in cart order and reports the first
// violation. Quantity rules depend on the item's kind; a positive unit cost
// is always required.
func ValidatePurchaseCart(items []CartItem) ValidationResult {
	for _, item := range items {
		if reason, ok := checkItem(item); !ok {
			return Reject(item.Key(), reason)
		}
	}
	return Valid()
}

func checkItem(item CartItem) (Reason, bool) {
	switch item.QuantityKind {
	case QuantityKindCrate:
		if item.CrateType1Quantity <= 0 && item.CrateType2Quantity <= 0 {
			return ReasonInsufficientCrateQuantity, false
		}
	case QuantityKindBox:
		if item.BoxQuantity <= 0 {
			return ReasonInsufficientBoxQuantity, false
		}
	case QuantityKindPiece:
		if item.PieceQuantity <= 0 {
			return ReasonInsufficientPieceQuantity, false
		}
	default:
		return ReasonInvalidQuantityKind, false
	}

	if !item.UnitCost.IsPositive() {
		return ReasonInvalidUnitCost, false
	}
	return "", true
}
