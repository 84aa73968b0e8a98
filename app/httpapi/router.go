package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are rendered as JSON numbers, e.g. "late_fee": 15.
	decimal.MarshalJSONWithoutQuotes = true
}

const maxWebhookPayloadBytes = 1 << 20

// RouterConfig configures the middleware chain of NewRouter.
type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigin  string
	RateLimitRPS   float64
	RateLimitBurst int
	Clock          func() time.Time
}

type api struct {
	h   Handlers
	now func() time.Time
}

// NewRouter registers all routes on a new gin engine.
func NewRouter(h Handlers, cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}

	a := api{h: h, now: cfg.Clock}

	router := gin.New()
	router.Use(
		requestID(),
		accessLog(cfg.Logger),
		recovery(cfg.Logger),
		cors(cfg.AllowedOrigin),
		rateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	router.GET("/healthz", a.health)

	loans := router.Group("/loans")
	{
		loans.GET("", a.listLoans)
		loans.POST("", a.issueLoan)
		loans.GET("/:id", a.getLoan)
		loans.POST("/:id/return", a.returnLoan)
		loans.DELETE("/:id", a.deleteLoan)
	}

	payments := router.Group("/payments")
	{
		payments.POST("/create-checkout-session", a.createCheckoutSession)
		payments.GET("/user/:userId", a.userPayments)
	}

	router.POST("/webhooks/payment-provider", a.paymentNotification)

	authors := router.Group("/authors")
	{
		authors.GET("", a.listAuthors)
		authors.POST("", a.addAuthor)
		authors.GET("/:id", a.getAuthor)
		authors.PUT("/:id", a.updateAuthor)
		authors.DELETE("/:id", a.removeAuthor)
	}

	books := router.Group("/books")
	{
		books.GET("", a.listBooks)
		books.POST("", a.addBook)
		books.GET("/:id", a.getBook)
		books.PUT("/:id", a.updateBook)
		books.DELETE("/:id", a.removeBook)
	}

	users := router.Group("/users")
	{
		users.GET("", a.listUsers)
		users.POST("", a.registerUser)
		users.GET("/:id", a.getUser)
		users.PUT("/:id", a.updateUser)
		users.DELETE("/:id", a.removeUser)
	}

	return router
}

func (a api) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if a.h.Health == nil || a.h.Health.Ping(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// pathID parses the :name path parameter. It answers 400 and returns false if it is not a UUID.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id := parseUUIDOrNil(c.Param(name))
	if id == uuid.Nil {
		respondInvalidInput(c, "ID inválido")
		return id, false
	}

	return id, true
}

// bindJSON answers 400 and returns false if the body is not valid JSON for target.
func bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		_ = c.Error(err)
		respondInvalidInput(c, "Datos inválidos")
		return false
	}

	return true
}
