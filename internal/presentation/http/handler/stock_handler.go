package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/medcore/medstock-api/internal/application/service"
	"github.com/medcore/medstock-api/internal/presentation/http/dto/request"
	"github.com/medcore/medstock-api/internal/presentation/http/dto/response"
)

// StockHandler handles stock ledger HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// List handles GET /stock
func (h *StockHandler) List(c *gin.Context) {
	medicines, err := h.stockService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock retrieved successfully", medicines)
}

// Intake handles POST /stock
func (h *StockHandler) Intake(c *gin.Context) {
	var req request.IntakeStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	medicine, err := h.stockService.Intake(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock added successfully", medicine)
}

// ListNames handles GET /medicines
func (h *StockHandler) ListNames(c *gin.Context) {
	names, err := h.stockService.ListNames(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medicines retrieved successfully", gin.H{"medicines": names})
}

// GetDetails handles GET /medicine_details?name=
func (h *StockHandler) GetDetails(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.BadRequest(c, "Medicine name is required")
		return
	}

	medicine, err := h.stockService.GetByName(c.Request.Context(), name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medicine retrieved successfully", medicine)
}
