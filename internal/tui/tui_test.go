package tui

import (
	"testing"

	"orderdesk/internal/models"
	"orderdesk/internal/wizard"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	catalog, err := models.NewCatalog(models.DefaultCatalog())
	require.NoError(t, err)
	return New(catalog, Options{
		Logger:       zaptest.NewLogger(t),
		OrderNumbers: wizard.OrderNumberFunc(func() int { return 777 }),
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func toastMessage(t *testing.T, m Model) string {
	t.Helper()
	n, ok := m.Toast()
	require.True(t, ok, "expected a toast")
	return n.Message
}

func TestAdvanceWithEmptyCartShowsToast(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("n"))

	assert.Equal(t, wizard.StepSelecting, m.Session().Step)
	assert.Equal(t, "Please add at least one product to the cart", toastMessage(t, m))
	assert.Contains(t, m.View(), "Please add at least one product to the cart")
}

func TestSelectingKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("+"), key(tea.KeyEnter))
	assert.Equal(t, 2, m.Session().Cart.ItemCount())
	assert.Equal(t, "Burger added to cart", toastMessage(t, m))

	m = press(t, m, key(tea.KeyDown), key(tea.KeyDown), runes("+"))
	lines := m.Session().Cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Fries", lines[1].Name)

	m = press(t, m, runes("-"))
	assert.False(t, m.Session().Cart.Contains(3))

	// Removing something that is not in the cart is a no-op.
	m = press(t, m, runes("-"))
	assert.Equal(t, 2, m.Session().Cart.ItemCount())

	assert.Contains(t, m.View(), "Cart: 2 items  Total: $17.98")

	m = press(t, m, key(tea.KeyUp), key(tea.KeyUp), runes("x"))
	assert.True(t, m.Session().Cart.IsEmpty())
	assert.NotContains(t, m.View(), "Cart:")
}

func TestCategoryTabsAndSearch(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, key(tea.KeyRight))
	names := func() []string {
		var out []string
		for _, p := range m.products {
			out = append(out, p.Name)
		}
		return out
	}
	assert.Equal(t, []string{"Burger", "Pizza", "Salad", "Chicken Wings"}, names())

	m = press(t, m, key(tea.KeyLeft), key(tea.KeyLeft))
	assert.Equal(t, []string{"Ice Cream"}, names())

	m = press(t, m, key(tea.KeyRight), runes("/"), runes("co"), key(tea.KeyEnter))
	assert.False(t, m.search.Focused())
	assert.Equal(t, []string{"Cola"}, names())

	// Typing while the search box is blurred does not reach it.
	m = press(t, m, runes("+"))
	assert.Equal(t, "co", m.search.Value())
	assert.True(t, m.Session().Cart.Contains(5))

	m = press(t, m, runes("/"), runes("zzz"), key(tea.KeyEsc))
	assert.Empty(t, names())
	assert.Contains(t, m.View(), "No products found")

	m = press(t, m, runes("+"))
	assert.Equal(t, 1, m.Session().Cart.ItemCount())
}

func TestPayNowOrderFromKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m,
		runes("+"),
		key(tea.KeyDown), key(tea.KeyDown), runes("+"),
		runes("n"),
	)
	require.Equal(t, wizard.StepDetails, m.Session().Step)
	assert.True(t, m.nameInput.Focused())

	m = press(t, m, runes("Ada"), key(tea.KeyTab), key(tea.KeyEnter), runes("p"))
	s := m.Session()
	require.Equal(t, wizard.StepPayment, s.Step)
	assert.Equal(t, "Ada", s.CustomerName)
	assert.Equal(t, wizard.OrderTypeTakeOut, s.OrderType)
	assert.Equal(t, wizard.PaymentPayNow, s.PaymentOption)

	// Malformed keystrokes are dropped.
	m = press(t, m, runes("1"), runes("a"), runes("0"), runes("."), runes("."))
	assert.Equal(t, "10.", m.Session().AmountReceived)

	m = press(t, m, key(tea.KeyEnter))
	assert.Equal(t, wizard.StepPayment, m.Session().Step)
	assert.Equal(t, "Please enter a valid amount", toastMessage(t, m))

	m = press(t, m, key(tea.KeyBackspace), key(tea.KeyBackspace), key(tea.KeyBackspace), runes("20"))
	assert.Equal(t, "20", m.Session().AmountReceived)
	assert.Contains(t, m.View(), "Change: $6.02")

	m = press(t, m, key(tea.KeyEnter))
	require.Equal(t, wizard.StepCompleted, m.Session().Step)
	require.NotNil(t, m.receipt)
	assert.Equal(t, 777, m.receipt.OrderNumber)
	assert.Equal(t, "Payment Successful!", toastMessage(t, m))

	view := m.View()
	assert.Contains(t, view, "Order #777")
	assert.Contains(t, view, "Take Out")
	assert.Contains(t, view, "Change: $6.02")

	m = press(t, m, key(tea.KeyEnter))
	assert.Equal(t, wizard.New(), m.Session())
	assert.Nil(t, m.receipt)
	assert.Empty(t, m.nameInput.Value())
}

func TestPayLaterOrderFromKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("+"), runes("n"), key(tea.KeyEnter), runes("l"))
	assert.Equal(t, wizard.StepDetails, m.Session().Step)
	assert.Equal(t, "Please enter customer name", toastMessage(t, m))

	m = press(t, m, runes("i"), runes("Grace"), key(tea.KeyEnter), runes("l"))
	require.Equal(t, wizard.StepPayment, m.Session().Step)

	// Amount keys are ignored when paying later.
	m = press(t, m, runes("5"))
	assert.Empty(t, m.Session().AmountReceived)

	m = press(t, m, key(tea.KeyEnter))
	require.Equal(t, wizard.StepCompleted, m.Session().Step)
	view := m.View()
	assert.Contains(t, view, "Order Saved Successfully!")
	assert.Contains(t, view, "Remind the customer that payment is pending.")
}

func TestEscGoesBack(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("+"), runes("n"), runes("Bo"), key(tea.KeyEnter), runes("p"))
	require.Equal(t, wizard.StepPayment, m.Session().Step)

	m = press(t, m, key(tea.KeyEsc))
	assert.Equal(t, wizard.StepDetails, m.Session().Step)

	m = press(t, m, key(tea.KeyEsc))
	assert.Equal(t, wizard.StepSelecting, m.Session().Step)
	assert.Equal(t, 1, m.Session().Cart.ItemCount())
}

func TestToastDismissal(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(runes("+"))
	m = next.(Model)
	assert.NotNil(t, cmd)

	n, ok := m.Toast()
	require.True(t, ok)

	m = press(t, m, dismissMsg{id: "someone-else"})
	_, ok = m.Toast()
	assert.True(t, ok)

	m = press(t, m, dismissMsg{id: n.ID})
	_, ok = m.Toast()
	assert.False(t, ok)
}
