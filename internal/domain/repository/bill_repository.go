package repository

import (
	"context"
	"time"

	"github.com/medcore/medstock-api/internal/domain/entity"
	"github.com/medcore/medstock-api/pkg/pagination"
)

// BillRepository defines the append-only transaction ledger. There is
// deliberately no update or delete operation.
type BillRepository interface {
	// Create appends a completed bill with its items. A duplicate bill number
	// is a conflict; the ledger is never partially written.
	Create(ctx context.Context, bill *entity.Bill) error
	// GetByBillNo returns a bill with its items, or nil when unknown
	GetByBillNo(ctx context.Context, billNo int64) (*entity.Bill, error)
	// ScanRange returns bills with transaction_time in [start, end), ordered
	// by transaction_time ascending
	ScanRange(ctx context.Context, start, end time.Time) ([]entity.Bill, error)
	// List returns bills newest-first for ledger browsing
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Bill, int64, error)
}
