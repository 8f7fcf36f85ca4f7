package request

import (
	"encoding/json"

	"github.com/medcore/medstock-api/internal/application/service"
	"github.com/medcore/medstock-api/internal/domain/enum"
	"github.com/medcore/medstock-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// BillingLineRequest represents one requested line item. Quantity is decoded
// as json.Number so a fractional value fails typed conversion instead of
// being truncated.
type BillingLineRequest struct {
	MedicineName string      `json:"medicine_name"`
	QtySold      json.Number `json:"qty_sold"`
}

// SubmitBillRequest represents a billing request
type SubmitBillRequest struct {
	PatientID      string               `json:"patient_id"`
	Medicines      []BillingLineRequest `json:"medicines"`
	Discount       json.Number          `json:"discount"`
	AmountAccepted json.Number          `json:"amount_accepted"`
	PaymentMode    string               `json:"payment_mode"`
}

// ToInput converts the wire request into a typed service input, surfacing
// conversion failures as field-level validation errors
func (r *SubmitBillRequest) ToInput() (*service.SubmitBillInput, error) {
	lines := make([]service.BillLineInput, len(r.Medicines))
	for i, line := range r.Medicines {
		if line.QtySold == "" {
			return nil, apperror.NewMissingFieldError("qty_sold")
		}
		qty, err := line.QtySold.Int64()
		if err != nil {
			return nil, apperror.NewInvalidQuantityError(line.MedicineName)
		}
		lines[i] = service.BillLineInput{
			MedicineName: line.MedicineName,
			QtySold:      int(qty),
		}
	}

	var discount float64
	if r.Discount != "" {
		var err error
		discount, err = r.Discount.Float64()
		if err != nil {
			return nil, apperror.NewBadRequestError("Discount must be numeric")
		}
	}

	var accepted int64
	if r.AmountAccepted != "" {
		amount, err := decimal.NewFromString(r.AmountAccepted.String())
		if err != nil {
			return nil, apperror.NewBadRequestError("Amount accepted must be numeric")
		}
		// Round to cents; a bare float multiply truncates 19.99 to 1998
		accepted = amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	}

	return &service.SubmitBillInput{
		PatientID:      r.PatientID,
		Lines:          lines,
		DiscountPct:    discount,
		AmountAccepted: accepted,
		PaymentMode:    enum.PaymentMode(r.PaymentMode),
	}, nil
}
