package register

import (
	"testing"
	"time"

	"orderdesk/internal/cart"
	"orderdesk/internal/models"
	"orderdesk/internal/monitoring"
	"orderdesk/internal/notify"
	"orderdesk/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type capture struct {
	notes    []notify.Notification
	receipts []wizard.Receipt
}

func newTestRegister(t *testing.T, opts ...Option) (*Register, *capture) {
	t.Helper()
	catalog, err := models.NewCatalog(models.DefaultCatalog())
	require.NoError(t, err)

	c := &capture{}
	base := []Option{
		WithLogger(zaptest.NewLogger(t)),
		WithSink(notify.SinkFunc(func(n notify.Notification) { c.notes = append(c.notes, n) })),
		WithRenderer(ReceiptRendererFunc(func(r wizard.Receipt) { c.receipts = append(c.receipts, r) })),
		WithOrderNumbers(wizard.OrderNumberFunc(func() int { return 4242 })),
	}
	return New(catalog, append(base, opts...)...), c
}

func (c *capture) last() notify.Notification {
	return c.notes[len(c.notes)-1]
}

func TestAddItem_NotifiesWithProductName(t *testing.T) {
	r, c := newTestRegister(t)

	require.NoError(t, r.AddItem(1))
	require.NoError(t, r.AddItem(1))

	s := r.Session()
	assert.Equal(t, 2, s.Cart.ItemCount())
	require.Len(t, c.notes, 2)
	assert.Equal(t, "Burger added to cart", c.last().Message)
	assert.Equal(t, notify.SeveritySuccess, c.last().Severity)
	assert.Equal(t, notify.DefaultAutoDismiss, c.last().AutoDismiss)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	r, c := newTestRegister(t)

	err := r.AddItem(99)

	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Empty(t, c.notes)
}

func TestDecrementItem_MissingLineIsNotAToast(t *testing.T) {
	r, c := newTestRegister(t)

	err := r.DecrementItem(1)

	assert.ErrorIs(t, err, cart.ErrLineNotFound)
	assert.Empty(t, c.notes)
}

func TestAdvance_EmptyCartShowsError(t *testing.T) {
	r, c := newTestRegister(t)

	receipt, err := r.Advance()

	assert.ErrorIs(t, err, wizard.ErrCartEmpty)
	assert.Nil(t, receipt)
	assert.Equal(t, wizard.StepSelecting, r.Session().Step)
	require.Len(t, c.notes, 1)
	assert.Equal(t, "Please add at least one product to the cart", c.last().Message)
	assert.Equal(t, notify.SeverityError, c.last().Severity)
}

func TestFullPayNowOrder(t *testing.T) {
	completedAt := time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)
	metrics := monitoring.NewMetrics(nil)
	r, c := newTestRegister(t, WithClock(func() time.Time { return completedAt }), WithRecorder(metrics))

	require.NoError(t, r.AddItem(1))
	_, err := r.Advance()
	require.NoError(t, err)

	err = r.ChoosePayment(wizard.PaymentPayNow)
	assert.ErrorIs(t, err, wizard.ErrCustomerNameRequired)
	assert.Equal(t, "Please enter customer name", c.last().Message)

	require.NoError(t, r.SetCustomerName("Alice"))
	require.NoError(t, r.SetOrderType(wizard.OrderTypeTakeOut))
	require.NoError(t, r.ChoosePayment(wizard.PaymentPayNow))
	assert.Equal(t, wizard.StepPayment, r.Session().Step)

	for _, key := range []string{"5"} {
		require.NoError(t, r.TypeAmount(key))
	}
	_, err = r.Advance()
	assert.ErrorIs(t, err, wizard.ErrInvalidAmount)
	assert.Equal(t, "Please enter a valid amount", c.last().Message)

	require.NoError(t, r.BackspaceAmount())
	require.NoError(t, r.TypeAmount("1"))
	require.NoError(t, r.TypeAmount("0"))
	assert.Equal(t, "1.01", r.ChangeDue())

	receipt, err := r.Advance()
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, 4242, receipt.OrderNumber)
	assert.Equal(t, "10", receipt.AmountReceived)
	assert.Equal(t, "1.01", receipt.ChangeDue)
	assert.Equal(t, wizard.OrderTypeTakeOut, receipt.OrderType)
	assert.Equal(t, completedAt, receipt.CompletedAt)

	require.Len(t, c.receipts, 1)
	assert.Equal(t, *receipt, c.receipts[0])
	assert.Equal(t, "Payment Successful!", c.last().Message)

	stored, ok := r.Receipt()
	require.True(t, ok)
	assert.Equal(t, 4242, stored.OrderNumber)

	snapshot := metrics.Monitor().GetMetrics()
	assert.Equal(t, int64(1), snapshot["orders_completed"])
	assert.Equal(t, int64(2), snapshot["validation_failures"])

	require.NoError(t, r.Reset())
	assert.Equal(t, wizard.New(), r.Session())
	_, ok = r.Receipt()
	assert.False(t, ok)
}

func TestPayLaterOrder(t *testing.T) {
	r, c := newTestRegister(t)

	require.NoError(t, r.AddItem(5))
	_, err := r.Advance()
	require.NoError(t, err)
	require.NoError(t, r.SetCustomerName("Bob"))
	require.NoError(t, r.ChoosePayment(wizard.PaymentPayLater))

	receipt, err := r.Advance()
	require.NoError(t, err)
	assert.Equal(t, wizard.PaymentPayLater, receipt.PaymentOption)
	assert.Equal(t, "Order Saved Successfully!", c.last().Message)
}

func TestEditsAfterCompletionAreRejected(t *testing.T) {
	r, _ := newTestRegister(t)
	require.NoError(t, r.AddItem(5))
	_, _ = r.Advance()
	_ = r.SetCustomerName("Bob")
	_ = r.ChoosePayment(wizard.PaymentPayLater)
	_, err := r.Advance()
	require.NoError(t, err)

	assert.ErrorIs(t, r.AddItem(1), wizard.ErrOrderCompleted)
	assert.ErrorIs(t, r.Retreat(), wizard.ErrInvalidTransition)
}

func TestResetBeforeCompletion(t *testing.T) {
	r, c := newTestRegister(t)

	assert.ErrorIs(t, r.Reset(), wizard.ErrInvalidTransition)
	assert.Empty(t, c.notes)
}

func TestProducts(t *testing.T) {
	r, _ := newTestRegister(t)

	got := r.Products(models.CategoryDrinks, "")

	require.Len(t, got, 2)
	assert.Equal(t, "Cola", got[0].Name)
	assert.Equal(t, "Milkshake", got[1].Name)
}
