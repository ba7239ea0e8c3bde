package persistence

import (
	"context"

	"github.com/neyamat7/pos-inventory-sub000/internal/domain/settlement"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSettlementStore implements settlement.Store using GORM
type GormSettlementStore struct {
	db *gorm.DB
}

// NewGormSettlementStore creates a new GormSettlementStore
func NewGormSettlementStore(db *gorm.DB) *GormSettlementStore {
	return &GormSettlementStore{db: db}
}

// CommitPayment saves payment and settles its lots atomically
func (s *GormSettlementStore) CommitPayment(ctx context.Context, payment *settlement.SupplierPayment, lots []*settlement.Lot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewGormPaymentRepository(tx).Save(ctx, payment); err != nil {
			return err
		}

		affected, err := NewGormLotRepository(tx).MarkSettled(ctx, payment.SupplierID, lots)
		if err != nil {
			return err
		}
		if affected != int64(len(lots)) {
			return shared.ErrLotSettled
		}
		return nil
	})
}

var _ settlement.Store = (*GormSettlementStore)(nil)
