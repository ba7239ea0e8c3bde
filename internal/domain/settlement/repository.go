package settlement

import (
	"context"

	"github.com/google/uuid"
)

// LotRepository defines the interface for lot persistence
type LotRepository interface {
	// FindOutstandingBySupplier lists unsettled lots of a supplier, oldest first
	FindOutstandingBySupplier(ctx context.Context, supplierID string) ([]*Lot, error)

	// FindByIDs loads the supplier's lots with the given ids. Ids that do
	// not exist or belong to another supplier are skipped.
	FindByIDs(ctx context.Context, supplierID string, ids []uuid.UUID) ([]*Lot, error)

	// Save creates or updates a lot
	Save(ctx context.Context, lot *Lot) error

	// MarkSettled persists the settlement recorded on lots by Lot.MarkSettled.
	// Only outstanding lots of supplierID are updated; it returns how many were.
	MarkSettled(ctx context.Context, supplierID string, lots []*Lot) (int64, error)
}

// PaymentRepository defines the interface for supplier payment persistence
type PaymentRepository interface {
	// Save stores a new payment
	Save(ctx context.Context, payment *SupplierPayment) error

	// FindBySupplier lists a supplier's payments, newest first
	FindBySupplier(ctx context.Context, supplierID string) ([]*SupplierPayment, error)
}

// Store commits a payment together with the lot updates it settles
type Store interface {
	// CommitPayment saves payment and persists the settlement of lots, already
	// marked by Lot.MarkSettled, in one transaction. It fails with
	// ErrLotSettled when any lot was settled concurrently.
	CommitPayment(ctx context.Context, payment *SupplierPayment, lots []*Lot) error
}
