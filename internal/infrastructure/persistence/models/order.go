package models

import (
	"database/sql/driver"

	"github.com/neyamat7/pos-inventory-sub000/internal/domain/expense"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderPayload stores the grouped checkout payload as json
type OrderPayload expense.Payload

// Value implements driver.Valuer
func (p OrderPayload) Value() (driver.Value, error) {
	return jsonValue(expense.Payload(p))
}

// Scan implements sql.Scanner
func (p *OrderPayload) Scan(src any) error {
	var payload expense.Payload
	if err := jsonScan(src, &payload); err != nil {
		return err
	}
	*p = OrderPayload(payload)
	return nil
}

// OrderModel is the persistence model for committed carts
type OrderModel struct {
	BaseModel
	Type          string          `gorm:"type:varchar(20);not null;index"`
	SessionID     string          `gorm:"type:varchar(100);not null;index"`
	Payload       OrderPayload    `gorm:"type:jsonb;not null"`
	ItemCount     int             `gorm:"not null"`
	TotalExpenses decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Note          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *trade.Order {
	return &trade.Order{
		BaseEntity:    m.BaseModel.ToDomain(),
		Type:          trade.CartType(m.Type),
		SessionID:     m.SessionID,
		Payload:       expense.Payload(m.Payload),
		ItemCount:     m.ItemCount,
		TotalExpenses: m.TotalExpenses,
		GrandTotal:    m.GrandTotal,
		Note:          m.Note,
	}
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Type = string(o.Type)
	m.SessionID = o.SessionID
	m.Payload = OrderPayload(o.Payload)
	m.ItemCount = o.ItemCount
	m.TotalExpenses = o.TotalExpenses
	m.GrandTotal = o.GrandTotal
	m.Note = o.Note
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
