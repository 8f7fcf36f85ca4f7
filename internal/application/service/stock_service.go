package service

import (
	"context"
	"time"

	"github.com/medcore/medstock-api/internal/domain/entity"
	"github.com/medcore/medstock-api/internal/domain/repository"
	"github.com/medcore/medstock-api/pkg/apperror"
)

// StockService handles stock ledger operations
type StockService struct {
	medicineRepo repository.MedicineRepository
}

// NewStockService creates a new stock service
func NewStockService(medicineRepo repository.MedicineRepository) *StockService {
	return &StockService{medicineRepo: medicineRepo}
}

// IntakeStockInput represents a stock intake (insert or replace)
type IntakeStockInput struct {
	Name       string
	Quantity   int
	MRP        float64
	BatchNo    string
	ExpiryDate time.Time
}

// Intake inserts a stock record or replaces the existing one for the same
// medicine. This is the only increment path besides bill compensation.
func (s *StockService) Intake(ctx context.Context, input *IntakeStockInput) (*entity.Medicine, error) {
	name := entity.NormalizeMedicineName(input.Name)
	if name == "" {
		return nil, apperror.NewMissingFieldError("product_name")
	}
	if input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity must not be negative")
	}
	if input.MRP < 0 {
		return nil, apperror.NewBadRequestError("MRP must not be negative")
	}

	medicine := &entity.Medicine{
		Name:       name,
		Quantity:   input.Quantity,
		BatchNo:    input.BatchNo,
		ExpiryDate: input.ExpiryDate,
	}
	medicine.SetMRPFromDecimal(input.MRP)

	if err := s.medicineRepo.Upsert(ctx, medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

// List returns every stock record
func (s *StockService) List(ctx context.Context) ([]entity.Medicine, error) {
	return s.medicineRepo.List(ctx)
}

// ListNames returns the distinct medicine names held in stock
func (s *StockService) ListNames(ctx context.Context) ([]string, error) {
	return s.medicineRepo.ListNames(ctx)
}

// GetByName returns a single stock record
func (s *StockService) GetByName(ctx context.Context, name string) (*entity.Medicine, error) {
	normalized := entity.NormalizeMedicineName(name)
	if normalized == "" {
		return nil, apperror.NewMissingFieldError("name")
	}

	medicine, err := s.medicineRepo.GetByName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, apperror.NewNotFoundError("Medicine")
	}
	return medicine, nil
}
