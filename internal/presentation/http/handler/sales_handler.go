package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medcore/medstock-api/internal/application/service"
	"github.com/medcore/medstock-api/internal/presentation/http/dto/response"
	"github.com/medcore/medstock-api/pkg/pagination"
)

// SalesHandler handles sales reporting HTTP requests
type SalesHandler struct {
	salesService *service.SalesService
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(salesService *service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// Report handles GET /sales?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *SalesHandler) Report(c *gin.Context) {
	report, err := h.salesService.Report(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales retrieved successfully", report)
}

// ListBills handles GET /bills
func (h *SalesHandler) ListBills(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.salesService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}
