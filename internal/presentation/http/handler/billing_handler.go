package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/medcore/medstock-api/internal/application/service"
	"github.com/medcore/medstock-api/internal/presentation/http/dto/request"
	"github.com/medcore/medstock-api/internal/presentation/http/dto/response"
)

// BillingHandler handles billing HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Submit handles POST /billing
func (h *BillingHandler) Submit(c *gin.Context) {
	var req request.SubmitBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	bill, err := h.billingService.SubmitBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill generated successfully", bill)
}

// Get handles GET /bills/:bill_no
func (h *BillingHandler) Get(c *gin.Context) {
	// Accept both "42" and "BILL-42"
	raw := strings.TrimPrefix(c.Param("bill_no"), "BILL-")
	billNo, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid bill number")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), billNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}
