package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/settlement"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLotRepository implements settlement.LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// FindOutstandingBySupplier lists unsettled lots of a supplier, oldest first
func (r *GormLotRepository) FindOutstandingBySupplier(ctx context.Context, supplierID string) ([]*settlement.Lot, error) {
	var rows []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND settled = ?", supplierID, false).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return lotsToDomain(rows), nil
}

// FindByIDs loads the supplier's lots with the given ids
func (r *GormLotRepository) FindByIDs(ctx context.Context, supplierID string, ids []uuid.UUID) ([]*settlement.Lot, error) {
	if len(ids) == 0 {
		return []*settlement.Lot{}, nil
	}
	var rows []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND id IN ?", supplierID, ids).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return lotsToDomain(rows), nil
}

// Save creates or updates a lot
func (r *GormLotRepository) Save(ctx context.Context, lot *settlement.Lot) error {
	return r.db.WithContext(ctx).Save(models.LotModelFromDomain(lot)).Error
}

// MarkSettled writes the settlement recorded on each lot. Rows already
// settled or owned by another supplier are left untouched and not counted.
func (r *GormLotRepository) MarkSettled(ctx context.Context, supplierID string, lots []*settlement.Lot) (int64, error) {
	var affected int64
	for _, lot := range lots {
		if !lot.Settled || lot.PaymentID == nil || lot.SettledAt == nil {
			return affected, fmt.Errorf("lot %s carries no settlement", lot.ID)
		}
		result := r.db.WithContext(ctx).
			Model(&models.LotModel{}).
			Where("id = ? AND supplier_id = ? AND settled = ?", lot.ID, supplierID, false).
			Updates(map[string]any{
				"settled":    true,
				"settled_at": *lot.SettledAt,
				"payment_id": *lot.PaymentID,
				"updated_at": lot.UpdatedAt,
			})
		if result.Error != nil {
			return affected, result.Error
		}
		affected += result.RowsAffected
	}
	return affected, nil
}

func lotsToDomain(rows []models.LotModel) []*settlement.Lot {
	lots := make([]*settlement.Lot, len(rows))
	for i := range rows {
		lots[i] = rows[i].ToDomain()
	}
	return lots
}

var _ settlement.LotRepository = (*GormLotRepository)(nil)
