package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/medcore/medstock-api/internal/domain/entity"
	domainRepo "github.com/medcore/medstock-api/internal/domain/repository"
	"github.com/medcore/medstock-api/pkg/apperror"
	"github.com/medcore/medstock-api/pkg/pagination"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

// Create appends a bill with its items in one transaction. The unique index
// on bill_no rejects duplicates, which surfaces as a conflict.
func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := bill.Items
		bill.Items = nil
		if err := tx.Create(bill).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].BillID = bill.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		bill.Items = items
		return nil
	})

	if err != nil && isDuplicateKey(err) {
		return apperror.NewConflictError("Bill number already recorded")
	}
	return err
}

func (r *billRepository) GetByBillNo(ctx context.Context, billNo int64) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&bill, "bill_no = ?", billNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) ScanRange(ctx context.Context, start, end time.Time) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Where("transaction_time >= ? AND transaction_time < ?", start, end).
		Preload("Items").
		Order("transaction_time ASC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Items").
		Order("bill_no DESC").
		Find(&bills).Error

	return bills, total, err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// pgx surfaces unique violations as SQLSTATE 23505
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
