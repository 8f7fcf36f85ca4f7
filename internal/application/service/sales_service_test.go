package service

import (
	"context"
	"testing"
	"time"

	"github.com/medcore/medstock-api/internal/domain/entity"
	"github.com/medcore/medstock-api/internal/domain/enum"
	"github.com/medcore/medstock-api/pkg/apperror"
	"github.com/medcore/medstock-api/pkg/pagination"
)

func seedBill(t *testing.T, repo *memBillRepo, billNo int64, at time.Time, mode enum.PaymentMode, net, tendered int64) {
	t.Helper()
	err := repo.Create(context.Background(), &entity.Bill{
		BillNo:           billNo,
		PatientID:        "P-SEED",
		TotalAmount:      net,
		DiscountedAmount: net,
		AmountAccepted:   tendered,
		PaymentMode:      mode,
		TransactionTime:  at,
	})
	if err != nil {
		t.Fatalf("seed bill %d: %v", billNo, err)
	}
}

func TestReport_TotalsAndModeSubtotals(t *testing.T) {
	billRepo := newMemBillRepo()
	day := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	seedBill(t, billRepo, 1, day, enum.PaymentModeCash, 5000, 6000)
	seedBill(t, billRepo, 2, day.Add(time.Hour), enum.PaymentModeOnline, 3000, 3000)
	seedBill(t, billRepo, 3, day.Add(2*time.Hour), enum.PaymentModeCash, 2000, 2000)

	svc := NewSalesService(billRepo)
	report, err := svc.Report(context.Background(), "2024-03-10", "2024-03-10")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if len(report.Sales) != 3 {
		t.Errorf("sales = %d, want 3", len(report.Sales))
	}
	if report.TotalEarnings != 10000 {
		t.Errorf("total earnings = %d, want 10000", report.TotalEarnings)
	}
	if report.AmountInHandCash != 7000 {
		t.Errorf("cash earnings = %d, want 7000", report.AmountInHandCash)
	}
	if report.AmountInHandOnline != 3000 {
		t.Errorf("online earnings = %d, want 3000", report.AmountInHandOnline)
	}
	if report.TenderedCash != 8000 {
		t.Errorf("cash tendered = %d, want 8000", report.TenderedCash)
	}
	if report.TenderedOnline != 3000 {
		t.Errorf("online tendered = %d, want 3000", report.TenderedOnline)
	}
}

// The end date is inclusive of its whole calendar day: a bill at 23:59:59 on
// the end date is in range, a bill at exactly midnight the day after is not.
func TestReport_DayBoundaries(t *testing.T) {
	billRepo := newMemBillRepo()
	seedBill(t, billRepo, 1, time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC), enum.PaymentModeCash, 1000, 1000)  // before range
	seedBill(t, billRepo, 2, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), enum.PaymentModeCash, 2000, 2000)    // first instant
	seedBill(t, billRepo, 3, time.Date(2024, 3, 11, 23, 59, 59, 0, time.UTC), enum.PaymentModeCash, 4000, 4000) // last second
	seedBill(t, billRepo, 4, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), enum.PaymentModeCash, 8000, 8000)    // midnight after, excluded

	svc := NewSalesService(billRepo)
	report, err := svc.Report(context.Background(), "2024-03-10", "2024-03-11")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if len(report.Sales) != 2 {
		t.Fatalf("sales = %d, want 2", len(report.Sales))
	}
	if report.TotalEarnings != 6000 {
		t.Errorf("total earnings = %d, want 6000", report.TotalEarnings)
	}
	// Ordered by transaction time
	if report.Sales[0].BillNo != 2 || report.Sales[1].BillNo != 3 {
		t.Errorf("unexpected order: %d, %d", report.Sales[0].BillNo, report.Sales[1].BillNo)
	}
}

func TestReport_EmptyRangeIsZeroedNotError(t *testing.T) {
	svc := NewSalesService(newMemBillRepo())

	report, err := svc.Report(context.Background(), "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if report.Sales == nil || len(report.Sales) != 0 {
		t.Errorf("sales = %v, want empty slice", report.Sales)
	}
	if report.TotalEarnings != 0 || report.AmountInHandCash != 0 || report.AmountInHandOnline != 0 {
		t.Error("expected zeroed totals for empty range")
	}
}

func TestReport_InvalidDateRange(t *testing.T) {
	svc := NewSalesService(newMemBillRepo())

	tests := []struct {
		name       string
		start, end string
	}{
		{"missing start", "", "2024-01-31"},
		{"missing end", "2024-01-01", ""},
		{"unparsable start", "01-01-2024", "2024-01-31"},
		{"unparsable end", "2024-01-01", "soon"},
		{"end before start", "2024-02-01", "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Report(context.Background(), tt.start, tt.end)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if appErr := apperror.GetAppError(err); appErr.Code != 400 {
				t.Errorf("status = %d, want 400", appErr.Code)
			}
		})
	}
}

func TestListBills_NewestFirst(t *testing.T) {
	billRepo := newMemBillRepo()
	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 5; i++ {
		seedBill(t, billRepo, i, base.Add(time.Duration(i)*time.Minute), enum.PaymentModeCash, 1000, 1000)
	}

	svc := NewSalesService(billRepo)
	result, err := svc.ListBills(context.Background(), &pagination.PaginationParams{Page: 1, PerPage: 3})
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}

	if len(result.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(result.Items))
	}
	if result.Items[0].BillNo != 5 {
		t.Errorf("first bill = %d, want 5 (newest first)", result.Items[0].BillNo)
	}
	if result.Pagination.Total != 5 || !result.Pagination.HasNext {
		t.Errorf("unexpected pagination: %+v", result.Pagination)
	}
}
