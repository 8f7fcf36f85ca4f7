package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medcore/medstock-api/internal/config"
	domainRepo "github.com/medcore/medstock-api/internal/domain/repository"
	"github.com/medcore/medstock-api/internal/presentation/http/handler"
	"github.com/medcore/medstock-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Stock   *handler.StockHandler
	Billing *handler.BillingHandler
	Sales   *handler.SalesHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Stock ledger
	router.GET("/stock", h.Stock.List)
	router.POST("/stock", h.Stock.Intake)
	router.GET("/medicines", h.Stock.ListNames)
	router.GET("/medicine_details", h.Stock.GetDetails)

	// Billing: idempotency middleware replays duplicate submissions
	router.POST("/billing", middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}), h.Billing.Submit)

	// Transaction ledger and reporting
	router.GET("/sales", h.Sales.Report)
	router.GET("/bills", h.Sales.ListBills)
	router.GET("/bills/:bill_no", h.Billing.Get)

	return router
}
