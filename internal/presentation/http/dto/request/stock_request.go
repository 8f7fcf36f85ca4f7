package request

import (
	"time"

	"github.com/medcore/medstock-api/internal/application/service"
	"github.com/medcore/medstock-api/pkg/apperror"
)

// IntakeStockRequest represents a stock intake request
type IntakeStockRequest struct {
	ProductName string  `json:"product_name" binding:"required,min=1,max=255"`
	Qty         int     `json:"qty" binding:"min=0"`
	MRP         float64 `json:"mrp" binding:"min=0"`
	BatchNo     string  `json:"batch_no" binding:"omitempty,max=100"`
	ExpiryDate  string  `json:"expiry_date" binding:"omitempty"`
}

// ToInput converts the wire request into a typed service input
func (r *IntakeStockRequest) ToInput() (*service.IntakeStockInput, error) {
	var expiry time.Time
	if r.ExpiryDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", r.ExpiryDate, time.UTC)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid expiry_date, expected YYYY-MM-DD")
		}
		expiry = parsed
	}

	return &service.IntakeStockInput{
		Name:       r.ProductName,
		Quantity:   r.Qty,
		MRP:        r.MRP,
		BatchNo:    r.BatchNo,
		ExpiryDate: expiry,
	}, nil
}
