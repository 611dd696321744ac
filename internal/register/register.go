// Package register drives one operator's order session. It applies the pure
// wizard transitions and turns their outcomes into notifications, receipts
// and metrics.
package register

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/models"
	"orderdesk/internal/monitoring"
	"orderdesk/internal/notify"
	"orderdesk/internal/wizard"

	"go.uber.org/zap"
)

// ErrUnknownProduct is returned for product ids missing from the catalog.
var ErrUnknownProduct = errors.New("unknown product")

// ReceiptRenderer displays a completed order.
type ReceiptRenderer interface {
	RenderReceipt(r wizard.Receipt)
}

// ReceiptRendererFunc adapts a function to ReceiptRenderer.
type ReceiptRendererFunc func(wizard.Receipt)

func (f ReceiptRendererFunc) RenderReceipt(r wizard.Receipt) { f(r) }

// Register holds one order session. It is not safe for concurrent use;
// callers serialise actions.
type Register struct {
	catalog     *models.Catalog
	session     wizard.Session
	receipt     *wizard.Receipt
	sink        notify.Sink
	renderer    ReceiptRenderer
	numbers     wizard.OrderNumbers
	logger      *zap.Logger
	recorder    monitoring.Recorder
	autoDismiss time.Duration
	now         func() time.Time
}

// Option configures a Register.
type Option func(*Register)

func WithSink(s notify.Sink) Option {
	return func(r *Register) { r.sink = s }
}

func WithRenderer(rr ReceiptRenderer) Option {
	return func(r *Register) { r.renderer = rr }
}

func WithOrderNumbers(n wizard.OrderNumbers) Option {
	return func(r *Register) { r.numbers = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Register) { r.logger = l }
}

func WithRecorder(rec monitoring.Recorder) Option {
	return func(r *Register) { r.recorder = rec }
}

// WithAutoDismiss sets how long toasts stay up.
func WithAutoDismiss(d time.Duration) Option {
	return func(r *Register) { r.autoDismiss = d }
}

func WithClock(now func() time.Time) Option {
	return func(r *Register) { r.now = now }
}

// New creates a register over catalog with a fresh session.
func New(catalog *models.Catalog, opts ...Option) *Register {
	r := &Register{
		catalog:     catalog,
		session:     wizard.New(),
		sink:        notify.Discard,
		renderer:    ReceiptRendererFunc(func(wizard.Receipt) {}),
		logger:      zap.NewNop(),
		recorder:    monitoring.Nop,
		autoDismiss: notify.DefaultAutoDismiss,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.numbers == nil {
		r.numbers = wizard.NewRandomOrderNumbers(nil)
	}
	return r
}

// Session returns a snapshot of the current order session.
func (r *Register) Session() wizard.Session {
	return r.session
}

// Receipt returns the receipt of the completed order, if the session is
// completed.
func (r *Register) Receipt() (wizard.Receipt, bool) {
	if r.receipt == nil {
		return wizard.Receipt{}, false
	}
	return *r.receipt, true
}

// ChangeDue is the change owed for the amount typed so far.
func (r *Register) ChangeDue() string {
	return r.session.ChangeDue()
}

// Catalog returns the product catalog this register sells from.
func (r *Register) Catalog() *models.Catalog {
	return r.catalog
}

// Products lists catalog entries for the category tab and search text.
func (r *Register) Products(category models.Category, search string) []models.Product {
	return r.catalog.Filter(category, search)
}

// AddItem puts one unit of the product in the cart.
func (r *Register) AddItem(productID int) error {
	p, ok := r.catalog.Product(productID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownProduct, productID)
	}
	s, err := wizard.AddItem(r.session, p)
	if err != nil {
		return err
	}
	r.session = s
	r.recorder.ItemAdded(string(p.Category))
	r.logger.Debug("item added", zap.Int("product_id", p.ID), zap.String("name", p.Name))
	r.notify(fmt.Sprintf("%s added to cart", p.Name), notify.SeveritySuccess)
	return nil
}

// DecrementItem takes one unit of the product out of the cart.
func (r *Register) DecrementItem(productID int) error {
	return r.apply(func(s wizard.Session) (wizard.Session, error) {
		return wizard.DecrementItem(s, productID)
	})
}

// DeleteItem removes the product from the cart.
func (r *Register) DeleteItem(productID int) error {
	return r.apply(func(s wizard.Session) (wizard.Session, error) {
		return wizard.DeleteItem(s, productID)
	})
}

func (r *Register) SetCustomerName(name string) error {
	return r.apply(func(s wizard.Session) (wizard.Session, error) {
		return wizard.SetCustomerName(s, name)
	})
}

func (r *Register) SetOrderType(t wizard.OrderType) error {
	return r.apply(func(s wizard.Session) (wizard.Session, error) {
		return wizard.SetOrderType(s, t)
	})
}

// TypeAmount feeds one keystroke to the amount-received field.
func (r *Register) TypeAmount(key string) error {
	return r.apply(func(s wizard.Session) (wizard.Session, error) {
		return wizard.TypeAmount(s, key)
	})
}

func (r *Register) BackspaceAmount() error {
	return r.apply(wizard.BackspaceAmount)
}

// SetAmount replaces the amount-received field; malformed text is ignored.
func (r *Register) SetAmount(text string) error {
	return r.apply(func(s wizard.Session) (wizard.Session, error) {
		return wizard.SetAmount(s, text)
	})
}

// ChoosePayment picks pay-now or pay-later and moves on to payment.
func (r *Register) ChoosePayment(option wizard.PaymentOption) error {
	s, err := wizard.ChoosePayment(r.session, option)
	if err != nil {
		return r.reject(err)
	}
	r.session = s
	return nil
}

// Advance moves to the next step. On completion the receipt is returned,
// announced and handed to the renderer.
func (r *Register) Advance() (*wizard.Receipt, error) {
	s, receipt, err := wizard.Advance(r.session, r.numbers)
	if err != nil {
		return nil, r.reject(err)
	}
	r.session = s
	if receipt == nil {
		return nil, nil
	}

	receipt.CompletedAt = r.now()
	r.receipt = receipt
	r.recorder.OrderCompleted(string(receipt.OrderType), string(receipt.PaymentOption), int64(receipt.Total))
	r.logger.Info("order completed",
		zap.Int("order_number", receipt.OrderNumber),
		zap.String("payment_option", string(receipt.PaymentOption)),
		zap.String("total", receipt.Total.String()))
	r.notify(receipt.Title(), notify.SeveritySuccess)
	r.renderer.RenderReceipt(*receipt)

	out := *receipt
	return &out, nil
}

// Retreat goes back one step.
func (r *Register) Retreat() error {
	return r.apply(wizard.Retreat)
}

// Reset starts the next order once the current one is completed.
func (r *Register) Reset() error {
	if err := r.apply(wizard.Reset); err != nil {
		return err
	}
	r.receipt = nil
	return nil
}

func (r *Register) apply(fn func(wizard.Session) (wizard.Session, error)) error {
	s, err := fn(r.session)
	if err != nil {
		return r.reject(err)
	}
	r.session = s
	return nil
}

// reject surfaces validation failures to the operator; other errors are
// returned untouched.
func (r *Register) reject(err error) error {
	var v *wizard.ValidationError
	if errors.As(err, &v) {
		r.recorder.ValidationFailed(r.session.Step.String(), v.Code)
		r.logger.Info("transition blocked",
			zap.String("step", r.session.Step.String()),
			zap.String("code", v.Code))
		r.notify(v.Prompt, notify.SeverityError)
	}
	return err
}

func (r *Register) notify(message string, severity notify.Severity) {
	n := notify.New(message, severity, r.autoDismiss)
	n.CreatedAt = r.now()
	r.sink.Notify(n)
}
