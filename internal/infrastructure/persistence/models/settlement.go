package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// LotModel is the persistence model for supplier lots
type LotModel struct {
	BaseModel
	SupplierID     string          `gorm:"type:varchar(100);not null;index:idx_lots_supplier_settled,priority:1"`
	ProductID      string          `gorm:"type:varchar(100)"`
	LotName        string          `gorm:"type:varchar(200)"`
	TotalSell      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalExpense   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExtraExpense   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OriginalProfit decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Settled        bool            `gorm:"not null;default:false;index:idx_lots_supplier_settled,priority:2"`
	SettledAt      *time.Time
	PaymentID      *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (LotModel) TableName() string {
	return "lots"
}

// ToDomain converts the persistence model to a domain Lot
func (m *LotModel) ToDomain() *settlement.Lot {
	return &settlement.Lot{
		BaseEntity:     m.BaseModel.ToDomain(),
		SupplierID:     m.SupplierID,
		ProductID:      m.ProductID,
		LotName:        m.LotName,
		TotalSell:      m.TotalSell,
		TotalExpense:   m.TotalExpense,
		ExtraExpense:   m.ExtraExpense,
		OriginalProfit: m.OriginalProfit,
		Settled:        m.Settled,
		SettledAt:      m.SettledAt,
		PaymentID:      m.PaymentID,
	}
}

// FromDomain populates the persistence model from a domain Lot
func (m *LotModel) FromDomain(l *settlement.Lot) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.SupplierID = l.SupplierID
	m.ProductID = l.ProductID
	m.LotName = l.LotName
	m.TotalSell = l.TotalSell
	m.TotalExpense = l.TotalExpense
	m.ExtraExpense = l.ExtraExpense
	m.OriginalProfit = l.OriginalProfit
	m.Settled = l.Settled
	m.SettledAt = l.SettledAt
	m.PaymentID = l.PaymentID
}

// LotModelFromDomain creates a new persistence model from a domain Lot
func LotModelFromDomain(l *settlement.Lot) *LotModel {
	m := &LotModel{}
	m.FromDomain(l)
	return m
}

// LotIDs stores the settled lot ids as a json array
type LotIDs []uuid.UUID

// Value implements driver.Valuer
func (ids LotIDs) Value() (driver.Value, error) {
	if ids == nil {
		ids = LotIDs{}
	}
	return jsonValue([]uuid.UUID(ids))
}

// Scan implements sql.Scanner
func (ids *LotIDs) Scan(src any) error {
	var out []uuid.UUID
	if err := jsonScan(src, &out); err != nil {
		return err
	}
	*ids = out
	return nil
}

// SupplierPaymentModel is the persistence model for supplier payments
type SupplierPaymentModel struct {
	BaseModel
	SupplierID         string          `gorm:"type:varchar(100);not null;index"`
	LotIDs             LotIDs          `gorm:"type:jsonb;not null"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	AmountFromBalance  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PayableAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalProfit        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalLotsExpense   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DueAmount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Note               string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SupplierPaymentModel) TableName() string {
	return "supplier_payments"
}

// ToDomain converts the persistence model to a domain SupplierPayment
func (m *SupplierPaymentModel) ToDomain() *settlement.SupplierPayment {
	return &settlement.SupplierPayment{
		BaseEntity:         m.BaseModel.ToDomain(),
		SupplierID:         m.SupplierID,
		LotIDs:             []uuid.UUID(m.LotIDs),
		DiscountPercentage: m.DiscountPercentage,
		AmountFromBalance:  m.AmountFromBalance,
		PaidAmount:         m.PaidAmount,
		PayableAmount:      m.PayableAmount,
		TotalProfit:        m.TotalProfit,
		TotalLotsExpense:   m.TotalLotsExpense,
		DueAmount:          m.DueAmount,
		Note:               m.Note,
	}
}

// FromDomain populates the persistence model from a domain SupplierPayment
func (m *SupplierPaymentModel) FromDomain(p *settlement.SupplierPayment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SupplierID = p.SupplierID
	m.LotIDs = LotIDs(p.LotIDs)
	m.DiscountPercentage = p.DiscountPercentage
	m.AmountFromBalance = p.AmountFromBalance
	m.PaidAmount = p.PaidAmount
	m.PayableAmount = p.PayableAmount
	m.TotalProfit = p.TotalProfit
	m.TotalLotsExpense = p.TotalLotsExpense
	m.DueAmount = p.DueAmount
	m.Note = p.Note
}

// SupplierPaymentModelFromDomain creates a new persistence model from a domain SupplierPayment
func SupplierPaymentModelFromDomain(p *settlement.SupplierPayment) *SupplierPaymentModel {
	m := &SupplierPaymentModel{}
	m.FromDomain(p)
	return m
}

// All lists every model for AutoMigrate
func All() []any {
	return []any{&OrderModel{}, &LotModel{}, &SupplierPaymentModel{}}
}
