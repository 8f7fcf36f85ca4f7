package repository

import (
	"context"

	"github.com/medcore/medstock-api/internal/domain/entity"
)

// MedicineRepository defines the store capability behind the stock ledger.
// Names passed in must already be normalized (see entity.NormalizeMedicineName).
type MedicineRepository interface {
	// GetByName returns the stock record for a medicine, or nil when unknown
	GetByName(ctx context.Context, name string) (*entity.Medicine, error)
	// Upsert inserts a stock record or replaces the existing one for the same name
	Upsert(ctx context.Context, medicine *entity.Medicine) error
	// List returns every stock record ordered by name
	List(ctx context.Context) ([]entity.Medicine, error)
	// ListNames returns the distinct medicine names in stock
	ListNames(ctx context.Context) ([]string, error)
	// AtomicDecrementQuantity decrements stock only if sufficient, in a single
	// conditional write. Returns the remaining quantity and true on success,
	// or (_, false, nil) when stock is insufficient or the medicine is unknown.
	AtomicDecrementQuantity(ctx context.Context, name string, amount int) (remaining int, ok bool, err error)
	// AtomicIncrementQuantity restores stock (compensation for a rolled-back bill)
	AtomicIncrementQuantity(ctx context.Context, name string, amount int) error
}
