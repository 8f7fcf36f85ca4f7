package repository

import (
	"context"
	"errors"

	"github.com/medcore/medstock-api/internal/domain/entity"
	domainRepo "github.com/medcore/medstock-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type medicineRepository struct {
	db *gorm.DB
}

// NewMedicineRepository creates a new medicine repository
func NewMedicineRepository(db *gorm.DB) domainRepo.MedicineRepository {
	return &medicineRepository{db: db}
}

func (r *medicineRepository) GetByName(ctx context.Context, name string) (*entity.Medicine, error) {
	var medicine entity.Medicine
	err := r.db.WithContext(ctx).First(&medicine, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &medicine, err
}

func (r *medicineRepository) Upsert(ctx context.Context, medicine *entity.Medicine) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "mrp", "batch_no", "expiry_date", "updated_at"}),
	}).Create(medicine).Error
}

func (r *medicineRepository) List(ctx context.Context) ([]entity.Medicine, error) {
	var medicines []entity.Medicine
	err := r.db.WithContext(ctx).Order("name ASC").Find(&medicines).Error
	return medicines, err
}

func (r *medicineRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&entity.Medicine{}).
		Distinct("name").Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

// AtomicDecrementQuantity decrements stock only if sufficient quantity exists.
// Uses: UPDATE medicines SET quantity = quantity - amount
//
//	WHERE name = ? AND quantity >= amount RETURNING quantity
func (r *medicineRepository) AtomicDecrementQuantity(ctx context.Context, name string, amount int) (int, bool, error) {
	var remaining []int
	err := r.db.WithContext(ctx).Raw(`
		UPDATE medicines
		SET quantity = quantity - ?, updated_at = NOW()
		WHERE name = ? AND quantity >= ?
		RETURNING quantity
	`, amount, name, amount).Scan(&remaining).Error
	if err != nil {
		return 0, false, err
	}

	// No row returned means unknown medicine or insufficient stock
	if len(remaining) == 0 {
		return 0, false, nil
	}
	return remaining[0], true, nil
}

func (r *medicineRepository) AtomicIncrementQuantity(ctx context.Context, name string, amount int) error {
	return r.db.WithContext(ctx).Model(&entity.Medicine{}).
		Where("name = ?", name).
		Update("quantity", gorm.Expr("quantity + ?", amount)).Error
}
