package entity

import "time"

// DefaultBillSequence is the counter row backing bill number issuance
const DefaultBillSequence = "bill_no"

// BillSequence is a durable named counter. Bill numbers are issued by bumping
// the row atomically, never by scanning the last bill, so concurrent callers
// can't observe the same value and restarts can't reuse one.
type BillSequence struct {
	Name      string    `gorm:"size:50;primaryKey"`
	Value     int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// TableName returns the table name for the BillSequence model
func (BillSequence) TableName() string {
	return "bill_sequences"
}
