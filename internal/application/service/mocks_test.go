package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/medcore/medstock-api/internal/domain/entity"
	"github.com/medcore/medstock-api/pkg/apperror"
	"github.com/medcore/medstock-api/pkg/pagination"
)

// In-memory repository fakes. The mutex stands in for the store's atomic
// conditional write, so concurrency tests exercise the same invariants the
// real conditional update enforces.

type memMedicineRepo struct {
	mu        sync.Mutex
	medicines map[string]*entity.Medicine
}

func newMemMedicineRepo(medicines ...entity.Medicine) *memMedicineRepo {
	repo := &memMedicineRepo{medicines: make(map[string]*entity.Medicine)}
	for i := range medicines {
		m := medicines[i]
		repo.medicines[m.Name] = &m
	}
	return repo
}

func (r *memMedicineRepo) GetByName(ctx context.Context, name string) (*entity.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.medicines[name]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (r *memMedicineRepo) Upsert(ctx context.Context, medicine *entity.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *medicine
	r.medicines[medicine.Name] = &copied
	return nil
}

func (r *memMedicineRepo) List(ctx context.Context) ([]entity.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.medicines))
	for name := range r.medicines {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]entity.Medicine, 0, len(names))
	for _, name := range names {
		out = append(out, *r.medicines[name])
	}
	return out, nil
}

func (r *memMedicineRepo) ListNames(ctx context.Context) ([]string, error) {
	medicines, _ := r.List(ctx)
	names := make([]string, len(medicines))
	for i, m := range medicines {
		names[i] = m.Name
	}
	return names, nil
}

func (r *memMedicineRepo) AtomicDecrementQuantity(ctx context.Context, name string, amount int) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.medicines[name]
	if !ok || m.Quantity < amount {
		return 0, false, nil
	}
	m.Quantity -= amount
	return m.Quantity, true, nil
}

func (r *memMedicineRepo) AtomicIncrementQuantity(ctx context.Context, name string, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.medicines[name]; ok {
		m.Quantity += amount
	}
	return nil
}

func (r *memMedicineRepo) quantity(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.medicines[name]; ok {
		return m.Quantity
	}
	return -1
}

type memBillRepo struct {
	mu         sync.Mutex
	bills      []entity.Bill
	byNo       map[int64]bool
	failCreate bool
}

func newMemBillRepo() *memBillRepo {
	return &memBillRepo{byNo: make(map[int64]bool)}
}

func (r *memBillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return apperror.NewTransientError(errLedgerDown)
	}
	if r.byNo[bill.BillNo] {
		return apperror.NewConflictError("Bill number already recorded")
	}
	r.byNo[bill.BillNo] = true
	r.bills = append(r.bills, *bill)
	return nil
}

func (r *memBillRepo) GetByBillNo(ctx context.Context, billNo int64) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bills {
		if r.bills[i].BillNo == billNo {
			copied := r.bills[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memBillRepo) ScanRange(ctx context.Context, start, end time.Time) ([]entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Bill
	for _, b := range r.bills {
		if !b.TransactionTime.Before(start) && b.TransactionTime.Before(end) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TransactionTime.Before(out[j].TransactionTime)
	})
	return out, nil
}

func (r *memBillRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Bill, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	params.Validate()
	out := make([]entity.Bill, len(r.bills))
	copy(out, r.bills)
	sort.Slice(out, func(i, j int) bool { return out[i].BillNo > out[j].BillNo })

	total := int64(len(out))
	offset := params.Offset()
	if offset >= len(out) {
		return []entity.Bill{}, total, nil
	}
	limit := offset + params.PerPage
	if limit > len(out) {
		limit = len(out)
	}
	return out[offset:limit], total, nil
}

func (r *memBillRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bills)
}

type memSequenceRepo struct {
	mu    sync.Mutex
	value int64
}

func (r *memSequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value++
	return r.value, nil
}
