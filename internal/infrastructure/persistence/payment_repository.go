package persistence

import (
	"context"

	"github.com/neyamat7/pos-inventory-sub000/internal/domain/settlement"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentRepository implements settlement.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Save stores a new payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *settlement.SupplierPayment) error {
	return r.db.WithContext(ctx).Create(models.SupplierPaymentModelFromDomain(payment)).Error
}

// FindBySupplier lists a supplier's payments, newest first
func (r *GormPaymentRepository) FindBySupplier(ctx context.Context, supplierID string) ([]*settlement.SupplierPayment, error) {
	var rows []models.SupplierPaymentModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	payments := make([]*settlement.SupplierPayment, len(rows))
	for i := range rows {
		payments[i] = rows[i].ToDomain()
	}
	return payments, nil
}

var _ settlement.PaymentRepository = (*GormPaymentRepository)(nil)
