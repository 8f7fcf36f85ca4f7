package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/medcore/medstock-api/internal/domain/entity"
	"github.com/medcore/medstock-api/internal/domain/enum"
	"github.com/medcore/medstock-api/internal/domain/repository"
	"github.com/medcore/medstock-api/pkg/apperror"
	"github.com/medcore/medstock-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// SalesService aggregates the transaction ledger for reporting
type SalesService struct {
	billRepo repository.BillRepository
}

// NewSalesService creates a new sales service
func NewSalesService(billRepo repository.BillRepository) *SalesService {
	return &SalesService{billRepo: billRepo}
}

// SalesReport holds a date-range aggregation. Money fields are in cents and
// marshaled as decimals.
type SalesReport struct {
	Sales              []entity.Bill
	TotalEarnings      int64
	AmountInHandCash   int64
	AmountInHandOnline int64
	TenderedCash       int64
	TenderedOnline     int64
}

// MarshalJSON converts cent totals to decimals for API responses
func (r SalesReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Sales              []entity.Bill `json:"sales"`
		TotalEarnings      float64       `json:"total_earnings"`
		AmountInHandCash   float64       `json:"amount_in_hand_cash"`
		AmountInHandOnline float64       `json:"amount_in_hand_online"`
		TenderedCash       float64       `json:"tendered_cash"`
		TenderedOnline     float64       `json:"tendered_online"`
	}{
		Sales:              r.Sales,
		TotalEarnings:      float64(r.TotalEarnings) / 100,
		AmountInHandCash:   float64(r.AmountInHandCash) / 100,
		AmountInHandOnline: float64(r.AmountInHandOnline) / 100,
		TenderedCash:       float64(r.TenderedCash) / 100,
		TenderedOnline:     float64(r.TenderedOnline) / 100,
	})
}

// Report aggregates bills with transaction_time in [start, end + 1 day); the
// end date is inclusive of its whole calendar day. An empty range is not an
// error and produces zeroed totals.
func (s *SalesService) Report(ctx context.Context, startDate, endDate string) (*SalesReport, error) {
	if startDate == "" || endDate == "" {
		return nil, apperror.NewBadRequestError("Start date and end date are required")
	}

	start, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid start_date, expected YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.UTC)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid end_date, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, apperror.NewBadRequestError("end_date must not be before start_date")
	}

	bills, err := s.billRepo.ScanRange(ctx, start, end.Add(24*time.Hour))
	if err != nil {
		return nil, apperror.NewTransientError(err)
	}
	if bills == nil {
		bills = []entity.Bill{}
	}

	report := &SalesReport{Sales: bills}
	for _, bill := range bills {
		report.TotalEarnings += bill.DiscountedAmount
		switch bill.PaymentMode {
		case enum.PaymentModeOnline:
			report.AmountInHandOnline += bill.DiscountedAmount
			report.TenderedOnline += bill.AmountAccepted
		default:
			report.AmountInHandCash += bill.DiscountedAmount
			report.TenderedCash += bill.AmountAccepted
		}
	}
	return report, nil
}

// ListBills returns ledger entries newest-first for browsing
func (s *SalesService) ListBills(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Bill], error) {
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}
