// Package tui is the terminal front end of the register: one screen that
// walks an operator through product selection, customer details, payment
// and the receipt.
package tui

import (
	"errors"
	"time"

	"orderdesk/internal/cart"
	"orderdesk/internal/models"
	"orderdesk/internal/monitoring"
	"orderdesk/internal/notify"
	"orderdesk/internal/register"
	"orderdesk/internal/wizard"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Options configures the terminal register
type Options struct {
	Logger         *zap.Logger
	Recorder       monitoring.Recorder
	OrderNumbers   wizard.OrderNumbers
	AutoDismiss    time.Duration
	CurrencySymbol string
}

// inbox collects what the register emits between two updates. It is shared
// by every copy of the Model.
type inbox struct {
	notes   []notify.Notification
	receipt *wizard.Receipt
}

func (in *inbox) Notify(n notify.Notification) {
	in.notes = append(in.notes, n)
}

func (in *inbox) RenderReceipt(r wizard.Receipt) {
	in.receipt = &r
}

// Model defines the application state
type Model struct {
	register   *register.Register
	inbox      *inbox
	logger     *zap.Logger
	categories []models.Category
	category   int
	products   []models.Product
	productTbl table.Model
	search     textinput.Model
	nameInput  textinput.Model
	toast      *notify.Notification
	receipt    *wizard.Receipt
	currency   string
}

// dismissMsg clears the toast with the given id once its time is up
type dismissMsg struct {
	id string
}

// New builds the model around a fresh register for catalog.
func New(catalog *models.Catalog, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "$"
	}

	in := &inbox{}
	regOpts := []register.Option{
		register.WithSink(in),
		register.WithRenderer(in),
		register.WithLogger(opts.Logger),
	}
	if opts.Recorder != nil {
		regOpts = append(regOpts, register.WithRecorder(opts.Recorder))
	}
	if opts.OrderNumbers != nil {
		regOpts = append(regOpts, register.WithOrderNumbers(opts.OrderNumbers))
	}
	if opts.AutoDismiss > 0 {
		regOpts = append(regOpts, register.WithAutoDismiss(opts.AutoDismiss))
	}

	search := textinput.New()
	search.Placeholder = "Search products..."
	search.Prompt = "/ "
	search.CharLimit = 40
	search.Width = 30

	name := textinput.New()
	name.Placeholder = "Customer name"
	name.CharLimit = 60
	name.Width = 30

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Product", Width: 18},
			{Title: "Category", Width: 10},
			{Title: "Price", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	m := Model{
		register:   register.New(catalog, regOpts...),
		inbox:      in,
		logger:     opts.Logger,
		categories: models.Categories(),
		productTbl: tbl,
		search:     search,
		nameInput:  name,
		currency:   opts.CurrencySymbol,
	}
	m.refreshProducts()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Session exposes the register state, mostly for tests.
func (m Model) Session() wizard.Session {
	return m.register.Session()
}

// Toast is the notification currently on screen.
func (m Model) Toast() (notify.Notification, bool) {
	if m.toast == nil {
		return notify.Notification{}, false
	}
	return *m.toast, true
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		switch m.register.Session().Step {
		case wizard.StepSelecting:
			m, cmd = m.updateSelecting(msg)
		case wizard.StepDetails:
			m, cmd = m.updateDetails(msg)
		case wizard.StepPayment:
			m = m.updatePayment(msg)
		case wizard.StepCompleted:
			m = m.updateCompleted(msg)
		}
		return m, tea.Batch(cmd, m.drain())

	case dismissMsg:
		if m.toast != nil && m.toast.ID == msg.id {
			m.toast = nil
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateSelecting(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.search.Focused() {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.refreshProducts()
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		cmd := m.search.Focus()
		return m, cmd
	case "left":
		m.category = (m.category + len(m.categories) - 1) % len(m.categories)
		m.refreshProducts()
	case "right":
		m.category = (m.category + 1) % len(m.categories)
		m.refreshProducts()
	case "up":
		m.productTbl.MoveUp(1)
	case "down":
		m.productTbl.MoveDown(1)
	case "+", "enter":
		if p, ok := m.selectedProduct(); ok {
			m.act(m.register.AddItem(p.ID))
		}
	case "-":
		if p, ok := m.selectedProduct(); ok {
			m.act(m.register.DecrementItem(p.ID))
		}
	case "x":
		if p, ok := m.selectedProduct(); ok {
			m.act(m.register.DeleteItem(p.ID))
		}
	case "n":
		if _, err := m.register.Advance(); err != nil {
			m.act(err)
			return m, nil
		}
		m.nameInput.SetValue(m.register.Session().CustomerName)
		cmd := m.nameInput.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateDetails(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyTab {
		m.act(m.register.SetOrderType(toggle(m.register.Session().OrderType)))
		return m, nil
	}

	if m.nameInput.Focused() {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.nameInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.act(m.register.SetCustomerName(m.nameInput.Value()))
		return m, cmd
	}

	switch msg.String() {
	case "i", "e":
		cmd := m.nameInput.Focus()
		return m, cmd
	case "p":
		m.act(m.register.ChoosePayment(wizard.PaymentPayNow))
	case "l":
		m.act(m.register.ChoosePayment(wizard.PaymentPayLater))
	case "esc":
		m.act(m.register.Retreat())
	}
	return m, nil
}

func (m Model) updatePayment(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.act(m.register.Retreat())
		if m.register.Session().Step == wizard.StepDetails {
			m.nameInput.Blur()
		}
	case tea.KeyEnter:
		_, err := m.register.Advance()
		m.act(err)
	case tea.KeyBackspace:
		if m.register.Session().PaymentOption == wizard.PaymentPayNow {
			m.act(m.register.BackspaceAmount())
		}
	case tea.KeyRunes:
		if m.register.Session().PaymentOption == wizard.PaymentPayNow {
			for _, r := range msg.Runes {
				m.act(m.register.TypeAmount(string(r)))
			}
		}
	}
	return m
}

func (m Model) updateCompleted(msg tea.KeyMsg) Model {
	if msg.Type == tea.KeyEnter {
		m.act(m.register.Reset())
		m.receipt = nil
		m.nameInput.SetValue("")
		m.search.SetValue("")
		m.category = 0
		m.refreshProducts()
	}
	return m
}

// act logs errors the operator cannot fix from the keyboard. Validation
// failures already reached the toast line through the register.
func (m *Model) act(err error) {
	if err == nil || wizard.IsValidation(err) {
		return
	}
	if errors.Is(err, cart.ErrLineNotFound) {
		return
	}
	m.logger.Debug("key action rejected", zap.Error(err))
}

// drain moves whatever the register emitted onto the screen. Only the
// newest toast is shown; it schedules its own dismissal.
func (m *Model) drain() tea.Cmd {
	if m.inbox.receipt != nil {
		m.receipt = m.inbox.receipt
		m.inbox.receipt = nil
	}
	if len(m.inbox.notes) == 0 {
		return nil
	}
	n := m.inbox.notes[len(m.inbox.notes)-1]
	m.inbox.notes = m.inbox.notes[:0]
	m.toast = &n

	if n.AutoDismiss <= 0 {
		return nil
	}
	id := n.ID
	return tea.Tick(n.AutoDismiss, func(time.Time) tea.Msg {
		return dismissMsg{id: id}
	})
}

func (m *Model) refreshProducts() {
	m.products = m.register.Products(m.categories[m.category], m.search.Value())
	rows := make([]table.Row, len(m.products))
	for i, p := range m.products {
		rows[i] = table.Row{p.Name, string(p.Category), m.money(p.Price)}
	}
	m.productTbl.SetRows(rows)
	m.productTbl.SetCursor(m.productTbl.Cursor())
}

func (m Model) selectedProduct() (models.Product, bool) {
	i := m.productTbl.Cursor()
	if i < 0 || i >= len(m.products) {
		return models.Product{}, false
	}
	return m.products[i], true
}

func (m Model) money(v models.Money) string {
	return m.currency + v.String()
}

func toggle(t wizard.OrderType) wizard.OrderType {
	if t == wizard.OrderTypeDineIn {
		return wizard.OrderTypeTakeOut
	}
	return wizard.OrderTypeDineIn
}
