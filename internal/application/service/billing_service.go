package service

import (
	"context"
	"time"

	"github.com/medcore/medstock-api/internal/domain/entity"
	"github.com/medcore/medstock-api/internal/domain/enum"
	"github.com/medcore/medstock-api/internal/domain/repository"
	"github.com/medcore/medstock-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// BillingService applies multi-line sales against the stock ledger. A bill
// either consumes stock for every line and lands in the transaction ledger,
// or leaves both exactly as they were.
type BillingService struct {
	medicineRepo repository.MedicineRepository
	billRepo     repository.BillRepository
	sequenceRepo repository.BillSequenceRepository
}

// NewBillingService creates a new billing service
func NewBillingService(
	medicineRepo repository.MedicineRepository,
	billRepo repository.BillRepository,
	sequenceRepo repository.BillSequenceRepository,
) *BillingService {
	return &BillingService{
		medicineRepo: medicineRepo,
		billRepo:     billRepo,
		sequenceRepo: sequenceRepo,
	}
}

// BillLineInput represents one requested line of a bill
type BillLineInput struct {
	MedicineName string
	QtySold      int
}

// SubmitBillInput represents the submit bill input. AmountAccepted is in
// cents; zero means the customer paid the exact net amount.
type SubmitBillInput struct {
	PatientID      string
	Lines          []BillLineInput
	DiscountPct    float64
	AmountAccepted int64
	PaymentMode    enum.PaymentMode
}

// SubmitBill validates and atomically applies a multi-line sale.
//
// The check phase verifies every line against current stock without writing
// anything, so most rejections cost no mutation at all. The commit phase then
// applies one conditional decrement per line; if a later line loses a race
// and fails, every decrement already applied is compensated before returning.
func (s *BillingService) SubmitBill(ctx context.Context, input *SubmitBillInput) (*entity.Bill, error) {
	if input.PatientID == "" {
		return nil, apperror.NewMissingFieldError("patient_id")
	}
	if len(input.Lines) == 0 {
		return nil, apperror.NewMissingFieldError("medicines")
	}
	if input.DiscountPct < 0 || input.DiscountPct > 100 {
		return nil, apperror.NewBadRequestError("Discount must be between 0 and 100")
	}
	if input.AmountAccepted < 0 {
		return nil, apperror.NewBadRequestError("Amount accepted must not be negative")
	}

	mode := input.PaymentMode
	if mode == "" {
		mode = enum.PaymentModeCash
	}
	if !mode.IsValid() {
		return nil, apperror.NewBadRequestError("Payment mode must be 'cash' or 'online'")
	}

	// Check phase: validate every line and verify sufficiency read-only
	lines := make([]BillLineInput, len(input.Lines))
	for i, line := range input.Lines {
		name := entity.NormalizeMedicineName(line.MedicineName)
		if name == "" {
			return nil, apperror.NewMissingFieldError("medicine_name")
		}
		if line.QtySold <= 0 {
			return nil, apperror.NewInvalidQuantityError(name)
		}

		medicine, err := s.medicineRepo.GetByName(ctx, name)
		if err != nil {
			return nil, apperror.NewTransientError(err)
		}
		if medicine == nil {
			return nil, apperror.NewProductNotFoundError(name)
		}
		if medicine.Quantity < line.QtySold {
			return nil, apperror.NewInsufficientStockError(name, line.QtySold, medicine.Quantity)
		}
		lines[i] = BillLineInput{MedicineName: name, QtySold: line.QtySold}
	}

	// Commit phase: one conditional decrement per line, compensating every
	// applied decrement if a later line fails
	items := make([]entity.BillItem, 0, len(lines))
	applied := make([]BillLineInput, 0, len(lines))
	for _, line := range lines {
		medicine, err := s.medicineRepo.GetByName(ctx, line.MedicineName)
		if err != nil {
			s.rollbackDecrements(ctx, applied)
			return nil, apperror.NewTransientError(err)
		}
		if medicine == nil {
			s.rollbackDecrements(ctx, applied)
			return nil, apperror.NewProductNotFoundError(line.MedicineName)
		}

		remaining, ok, err := s.medicineRepo.AtomicDecrementQuantity(ctx, line.MedicineName, line.QtySold)
		if err != nil {
			s.rollbackDecrements(ctx, applied)
			return nil, apperror.NewTransientError(err)
		}
		if !ok {
			// Lost a race since the check phase. Re-read so the error reports
			// the availability the decrement saw, not the earlier stale read.
			available := medicine.Quantity
			if fresh, ferr := s.medicineRepo.GetByName(ctx, line.MedicineName); ferr == nil && fresh != nil {
				available = fresh.Quantity
			}
			s.rollbackDecrements(ctx, applied)
			return nil, apperror.NewInsufficientStockError(line.MedicineName, line.QtySold, available)
		}
		applied = append(applied, line)

		items = append(items, entity.BillItem{
			MedicineName: line.MedicineName,
			QtySold:      line.QtySold,
			MRP:          medicine.MRP,
			Amount:       medicine.MRP * int64(line.QtySold),
			QtyRemaining: remaining,
		})
	}

	var gross int64
	for _, item := range items {
		gross += item.Amount
	}
	net := applyDiscount(gross, input.DiscountPct)

	accepted := input.AmountAccepted
	if accepted == 0 {
		accepted = net
	}
	change := accepted - net

	billNo, err := s.sequenceRepo.Next(ctx, entity.DefaultBillSequence)
	if err != nil {
		s.rollbackDecrements(ctx, applied)
		return nil, apperror.NewTransientError(err)
	}

	bill := &entity.Bill{
		BillNo:           billNo,
		PatientID:        input.PatientID,
		Items:            items,
		TotalAmount:      gross,
		DiscountPct:      input.DiscountPct,
		DiscountedAmount: net,
		AmountAccepted:   accepted,
		ChangeDue:        change,
		PaymentMode:      mode,
		TransactionTime:  time.Now().UTC(),
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		// Stock was already decremented; restore it before surfacing the error
		s.rollbackDecrements(ctx, applied)
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewTransientError(err)
	}

	return bill, nil
}

// GetBill retrieves a bill from the ledger by its number
func (s *BillingService) GetBill(ctx context.Context, billNo int64) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

func (s *BillingService) rollbackDecrements(ctx context.Context, applied []BillLineInput) {
	for _, line := range applied {
		if err := s.medicineRepo.AtomicIncrementQuantity(ctx, line.MedicineName, line.QtySold); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"medicine": line.MedicineName,
				"qty":      line.QtySold,
			}).Error("Failed to restore stock for rejected bill")
		}
	}
}

// applyDiscount computes the net amount in cents, rounded half-up
func applyDiscount(gross int64, discountPct float64) int64 {
	if discountPct == 0 {
		return gross
	}
	net := decimal.NewFromInt(gross).
		Mul(decimal.NewFromFloat(100 - discountPct)).
		Div(decimal.NewFromInt(100)).
		Round(0)
	return net.IntPart()
}
