package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"orderdesk/internal/cart"
	"orderdesk/internal/models"
	"orderdesk/internal/monitoring"
	"orderdesk/internal/notify"
	"orderdesk/internal/register"
	"orderdesk/internal/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options wires the API's collaborators
type Options struct {
	Catalog      *models.Catalog
	Hub          *notify.Hub
	Metrics      *monitoring.Metrics
	Logger       *zap.Logger
	OrderNumbers wizard.OrderNumbers
	AutoDismiss  time.Duration
}

// POSAPI represents the HTTP front end for point-of-sale sessions
type POSAPI struct {
	Router      *gin.Engine
	sessions    *SessionStore
	catalog     *models.Catalog
	hub         *notify.Hub
	metrics     *monitoring.Metrics
	logger      *zap.Logger
	numbers     wizard.OrderNumbers
	autoDismiss time.Duration
}

// NewPOSAPI creates a new API instance
func NewPOSAPI(opts Options) *POSAPI {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Hub == nil {
		opts.Hub = notify.NewHub(opts.Logger)
	}
	if opts.Metrics == nil {
		opts.Metrics = monitoring.NewMetrics(nil)
	}
	if opts.OrderNumbers == nil {
		opts.OrderNumbers = wizard.NewRandomOrderNumbers(nil)
	}
	if opts.AutoDismiss == 0 {
		opts.AutoDismiss = notify.DefaultAutoDismiss
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(opts.Logger))

	api := &POSAPI{
		Router:      router,
		sessions:    NewSessionStore(),
		catalog:     opts.Catalog,
		hub:         opts.Hub,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		numbers:     opts.OrderNumbers,
		autoDismiss: opts.AutoDismiss,
	}
	api.metrics.Monitor().RecordMetric("catalog_size", len(opts.Catalog.Products()))

	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (a *POSAPI) setupRoutes() {
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "orderdesk API is running"})
	})

	a.Router.GET("/api/metrics", a.GetMetrics)

	v1 := a.Router.Group("/api/v1")
	{
		// Catalog
		v1.GET("/categories", a.ListCategories)
		v1.GET("/catalog", a.ListProducts)

		// Order sessions
		v1.POST("/sessions", a.CreateSession)
		v1.GET("/sessions/:id", a.GetSession)
		v1.DELETE("/sessions/:id", a.DeleteSession)
		v1.GET("/sessions/:id/events", a.StreamEvents)

		// Cart
		v1.POST("/sessions/:id/cart/items", a.AddItem)
		v1.POST("/sessions/:id/cart/items/:product/decrement", a.DecrementItem)
		v1.DELETE("/sessions/:id/cart/items/:product", a.DeleteItem)

		// Wizard
		v1.PUT("/sessions/:id/customer", a.UpdateCustomer)
		v1.POST("/sessions/:id/payment", a.ChoosePayment)
		v1.PUT("/sessions/:id/amount", a.UpdateAmount)
		v1.POST("/sessions/:id/advance", a.Advance)
		v1.POST("/sessions/:id/retreat", a.Retreat)
		v1.POST("/sessions/:id/reset", a.Reset)
		v1.GET("/sessions/:id/receipt", a.GetReceipt)
	}
}

// Catalog handlers

func (a *POSAPI) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Categories())
}

func (a *POSAPI) ListProducts(c *gin.Context) {
	category := models.Category(c.DefaultQuery("category", string(models.CategoryAll)))
	if category != models.CategoryAll && !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category: " + string(category)})
		return
	}
	c.JSON(http.StatusOK, a.catalog.Filter(category, c.Query("search")))
}

func (a *POSAPI) GetMetrics(c *gin.Context) {
	metrics := a.metrics.Monitor().GetMetrics()
	metrics["open_sessions"] = a.sessions.Len()
	c.JSON(http.StatusOK, metrics)
}

// Session handlers

func (a *POSAPI) CreateSession(c *gin.Context) {
	s := a.sessions.Create(a.newSession)
	a.metrics.SessionOpened()
	a.logger.Info("session opened", zap.String("session_id", s.id))

	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusCreated, s.view())
}

func (a *POSAPI) GetSession(c *gin.Context) {
	a.withSession(c, func(s *posSession) error { return nil })
}

func (a *POSAPI) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if !a.sessions.Delete(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	a.hub.Close(id)
	a.metrics.SessionClosed()
	a.logger.Info("session closed", zap.String("session_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}

func (a *POSAPI) newSession(id string) *posSession {
	board := notify.NewBoard()
	hub := a.hub
	reg := register.New(a.catalog,
		register.WithSink(notify.Multi(board, hub.Sink(id))),
		register.WithRenderer(register.ReceiptRendererFunc(func(r wizard.Receipt) {
			hub.Publish(id, notify.Event{Type: notify.EventReceipt, Payload: r})
		})),
		register.WithOrderNumbers(a.numbers),
		register.WithLogger(a.logger.With(zap.String("session_id", id))),
		register.WithRecorder(a.metrics),
		register.WithAutoDismiss(a.autoDismiss),
	)
	return &posSession{
		id:        id,
		register:  reg,
		board:     board,
		createdAt: time.Now(),
	}
}

// Cart handlers

type addItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
}

func (a *POSAPI) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.withSession(c, func(s *posSession) error {
		return s.register.AddItem(req.ProductID)
	})
}

func (a *POSAPI) DecrementItem(c *gin.Context) {
	productID, ok := productParam(c)
	if !ok {
		return
	}
	a.withSession(c, func(s *posSession) error {
		return s.register.DecrementItem(productID)
	})
}

func (a *POSAPI) DeleteItem(c *gin.Context) {
	productID, ok := productParam(c)
	if !ok {
		return
	}
	a.withSession(c, func(s *posSession) error {
		return s.register.DeleteItem(productID)
	})
}

// Wizard handlers

type customerRequest struct {
	CustomerName *string           `json:"customer_name"`
	OrderType    *wizard.OrderType `json:"order_type"`
}

func (a *POSAPI) UpdateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.withSession(c, func(s *posSession) error {
		if req.OrderType != nil {
			if err := s.register.SetOrderType(*req.OrderType); err != nil {
				return err
			}
		}
		if req.CustomerName != nil {
			return s.register.SetCustomerName(*req.CustomerName)
		}
		return nil
	})
}

type paymentRequest struct {
	PaymentOption wizard.PaymentOption `json:"payment_option" binding:"required"`
}

func (a *POSAPI) ChoosePayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.withSession(c, func(s *posSession) error {
		return s.register.ChoosePayment(req.PaymentOption)
	})
}

type amountRequest struct {
	AmountReceived string `json:"amount_received"`
}

func (a *POSAPI) UpdateAmount(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.withSession(c, func(s *posSession) error {
		return s.register.SetAmount(req.AmountReceived)
	})
}

func (a *POSAPI) Advance(c *gin.Context) {
	a.withSession(c, func(s *posSession) error {
		_, err := s.register.Advance()
		return err
	})
}

func (a *POSAPI) Retreat(c *gin.Context) {
	a.withSession(c, func(s *posSession) error {
		return s.register.Retreat()
	})
}

func (a *POSAPI) Reset(c *gin.Context) {
	a.withSession(c, func(s *posSession) error {
		return s.register.Reset()
	})
}

func (a *POSAPI) GetReceipt(c *gin.Context) {
	s, ok := a.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	s.mu.Lock()
	receipt, ok := s.register.Receipt()
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not completed"})
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// Private helper methods

// withSession runs fn under the session lock and answers with the
// session view, or with the mapped error.
func (a *POSAPI) withSession(c *gin.Context, fn func(s *posSession) error) {
	s, ok := a.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s); err != nil {
		a.writeError(c, s, err)
		return
	}
	c.JSON(http.StatusOK, s.view())
}

func (a *POSAPI) writeError(c *gin.Context, s *posSession, err error) {
	var v *wizard.ValidationError
	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   v.Message,
			"code":    v.Code,
			"prompt":  v.Prompt,
			"session": s.view(),
		})
	case errors.Is(err, wizard.ErrInvalidTransition), errors.Is(err, wizard.ErrOrderCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, register.ErrUnknownProduct), errors.Is(err, cart.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, wizard.ErrUnknownOrderType), errors.Is(err, wizard.ErrUnknownPaymentOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		a.logger.Error("session action failed", zap.String("session_id", s.id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func productParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("product"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id: " + c.Param("product")})
		return 0, false
	}
	return id, true
}
