package repository

import (
	"context"
	"fmt"

	domainRepo "github.com/medcore/medstock-api/internal/domain/repository"
	"gorm.io/gorm"
)

type billSequenceRepository struct {
	db *gorm.DB
}

// NewBillSequenceRepository creates a new bill sequence repository
func NewBillSequenceRepository(db *gorm.DB) domainRepo.BillSequenceRepository {
	return &billSequenceRepository{db: db}
}

// Next bumps the named counter row in a single statement. The upsert takes a
// row lock, so concurrent callers serialize and each sees a distinct value;
// the row is durable, so restarts never reissue a number.
func (r *billSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO bill_sequences (name, value, updated_at) VALUES (?, 1, NOW())
		ON CONFLICT (name) DO UPDATE
		SET value = bill_sequences.value + 1, updated_at = NOW()
		RETURNING value
	`, name).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("failed to advance bill sequence %q: %w", name, err)
	}
	return value, nil
}
