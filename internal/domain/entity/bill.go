package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medcore/medstock-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Bill represents one completed sale. Rows are append-only: once created a
// bill is never updated or deleted, and bill_no is unique and strictly
// increasing across the ledger.
type Bill struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	BillNo           int64            `gorm:"uniqueIndex;not null" json:"-"`
	PatientID        string           `gorm:"size:100;not null;index" json:"patient_id"`
	TotalAmount      int64            `gorm:"not null" json:"-"` // Gross, in cents
	DiscountPct      float64          `gorm:"not null;default:0" json:"discount_pct"`
	DiscountedAmount int64            `gorm:"not null" json:"-"` // Net, in cents
	AmountAccepted   int64            `gorm:"not null" json:"-"` // Tendered, in cents
	ChangeDue        int64            `gorm:"not null" json:"-"` // In cents
	PaymentMode      enum.PaymentMode `gorm:"size:20;not null;default:'cash'" json:"payment_mode"`
	TransactionTime  time.Time        `gorm:"not null;index" json:"transaction_time"`
	CreatedAt        time.Time        `json:"created_at"`

	Items []BillItem `gorm:"foreignKey:BillID" json:"medicines,omitempty"`
}

// FormattedNo returns the external bill identifier, e.g. "BILL-42"
func (b *Bill) FormattedNo() string {
	return fmt.Sprintf("BILL-%d", b.BillNo)
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		BillNumber       string  `json:"bill_number"`
		TotalAmount      float64 `json:"total_amount"`
		DiscountedAmount float64 `json:"total_discounted_amount"`
		AmountAccepted   float64 `json:"amount_accepted"`
		ChangeDue        float64 `json:"change"`
	}{
		Alias:            Alias(b),
		BillNumber:       b.FormattedNo(),
		TotalAmount:      float64(b.TotalAmount) / 100,
		DiscountedAmount: float64(b.DiscountedAmount) / 100,
		AmountAccepted:   float64(b.AmountAccepted) / 100,
		ChangeDue:        float64(b.ChangeDue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillItem represents a line item in a bill
type BillItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BillID       uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	MedicineName string    `gorm:"size:255;not null" json:"medicine_name"`
	QtySold      int       `gorm:"not null" json:"qty_sold"`
	MRP          int64     `gorm:"not null" json:"-"` // Unit price at time of sale, in cents
	Amount       int64     `gorm:"not null" json:"-"` // MRP * QtySold, in cents
	QtyRemaining int       `gorm:"not null" json:"qty_remaining"`
	CreatedAt    time.Time `json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (bi BillItem) MarshalJSON() ([]byte, error) {
	type Alias BillItem
	return json.Marshal(&struct {
		Alias
		MRP    float64 `json:"mrp"`
		Amount float64 `json:"bill_amount"`
	}{
		Alias:  Alias(bi),
		MRP:    float64(bi.MRP) / 100,
		Amount: float64(bi.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
