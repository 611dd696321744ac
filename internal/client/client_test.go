package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"orderdesk/internal/api"
	"orderdesk/internal/models"
	"orderdesk/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := models.NewCatalog(models.DefaultCatalog())
	require.NoError(t, err)

	server := httptest.NewServer(api.NewPOSAPI(api.Options{
		Catalog:      catalog,
		Logger:       zaptest.NewLogger(t),
		OrderNumbers: wizard.OrderNumberFunc(func() int { return 5150 }),
	}).Router)
	t.Cleanup(server.Close)

	return New(server.URL)
}

func TestCatalogQueries(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.CheckHealth(ctx))

	categories, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Categories(), categories)

	products, err := c.Products(ctx, models.CategoryDrinks, "shake")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Milkshake", products[0].Name)
	assert.Equal(t, models.Money(599), products[0].Price)

	_, err = c.Products(ctx, "tools", "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestPayLaterRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	s, err := c.CreateSession(ctx)
	require.NoError(t, err)
	id := s.ID
	assert.Equal(t, wizard.StepSelecting, s.Step)

	_, err = c.Advance(ctx, id)
	assert.True(t, errors.Is(err, wizard.ErrCartEmpty))

	s, err = c.AddItem(ctx, id, 2)
	require.NoError(t, err)
	s, err = c.AddItem(ctx, id, 5)
	require.NoError(t, err)
	assert.Equal(t, models.Money(1598), s.Cart.Total())
	assert.Equal(t, "15.98", s.Total)
	require.NotNil(t, s.Notification)
	assert.Equal(t, "Cola added to cart", s.Notification.Message)

	s, err = c.Advance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepDetails, s.Step)

	_, err = c.ChoosePayment(ctx, id, wizard.PaymentPayLater)
	assert.True(t, errors.Is(err, wizard.ErrCustomerNameRequired))
	assert.False(t, errors.Is(err, wizard.ErrCartEmpty))

	s, err = c.UpdateCustomer(ctx, id, "Linus", wizard.OrderTypeDineIn)
	require.NoError(t, err)
	assert.Equal(t, "Linus", s.CustomerName)

	s, err = c.ChoosePayment(ctx, id, wizard.PaymentPayLater)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepPayment, s.Step)

	s, err = c.Advance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepCompleted, s.Step)
	assert.Equal(t, 5150, s.OrderNumber)

	r, err := c.Receipt(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Order Saved Successfully!", r.Title())
	assert.Equal(t, models.Money(1598), r.Total)
	assert.Empty(t, r.ChangeDue)

	s, err = c.Reset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepSelecting, s.Step)
	assert.True(t, s.Cart.IsEmpty())

	require.NoError(t, c.CloseSession(ctx, id))
	_, err = c.GetSession(ctx, id)
	require.ErrorAs(t, err, new(*APIError))
}

func TestCartEditsAndRetreat(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	s, err := c.CreateSession(ctx)
	require.NoError(t, err)
	id := s.ID

	_, err = c.AddItem(ctx, id, 3)
	require.NoError(t, err)
	_, err = c.AddItem(ctx, id, 3)
	require.NoError(t, err)
	s, err = c.DecrementItem(ctx, id, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, s.ItemCount)

	_, err = c.DeleteItem(ctx, id, 8)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	_, err = c.Advance(ctx, id)
	require.NoError(t, err)
	_, err = c.UpdateCustomer(ctx, id, "Ken", wizard.OrderTypeTakeOut)
	require.NoError(t, err)
	_, err = c.ChoosePayment(ctx, id, wizard.PaymentPayNow)
	require.NoError(t, err)

	s, err = c.SetAmount(ctx, id, "5")
	require.NoError(t, err)
	assert.Equal(t, "0.01", s.ChangeDue)

	s, err = c.Retreat(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepDetails, s.Step)
	assert.Equal(t, wizard.PaymentPayNow, s.PaymentOption)

	_, err = c.Reset(ctx, id)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}
