package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Medicine represents one stock ledger record. The name is the business key,
// stored upper-cased so lookups are case-insensitive. Records are never
// deleted; quantity only moves through intake and billing decrements.
type Medicine struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name       string    `gorm:"size:255;unique;not null" json:"product_name"`
	Quantity   int       `gorm:"not null;default:0;check:quantity >= 0" json:"qty"`
	MRP        int64     `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	BatchNo    string    `gorm:"size:100" json:"batch_no"`
	ExpiryDate time.Time `gorm:"type:date" json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NormalizeMedicineName upper-cases and trims a product name for keyed lookups
func NormalizeMedicineName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (m Medicine) MarshalJSON() ([]byte, error) {
	type Alias Medicine
	return json.Marshal(&struct {
		Alias
		MRP float64 `json:"mrp"`
	}{
		Alias: Alias(m),
		MRP:   float64(m.MRP) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new medicine
func (m *Medicine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Medicine model
func (Medicine) TableName() string {
	return "medicines"
}

// GetMRPDecimal returns the unit price as a decimal (for display)
func (m *Medicine) GetMRPDecimal() float64 {
	return float64(m.MRP) / 100
}

// SetMRPFromDecimal sets the unit price from a decimal value, rounding to the
// nearest cent so prices like 4.35 survive the float round-trip intact
func (m *Medicine) SetMRPFromDecimal(price float64) {
	m.MRP = decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
