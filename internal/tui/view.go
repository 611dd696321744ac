package tui

import (
	"fmt"
	"strings"

	"orderdesk/internal/notify"
	"orderdesk/internal/payment"
	"orderdesk/internal/wizard"
)

// View renders the UI
func (m Model) View() string {
	s := m.register.Session()

	var body string
	switch s.Step {
	case wizard.StepSelecting:
		body = m.selectingView(s)
	case wizard.StepDetails:
		body = m.detailsView(s)
	case wizard.StepPayment:
		body = m.paymentView(s)
	case wizard.StepCompleted:
		body = m.completedView()
	}

	view := titleStyle.Render("Order Desk") + "  " + helpStyle.Render(stepLabel(s.Step)) + "\n\n"
	view += body
	if m.toast != nil {
		view += "\n\n" + toastView(*m.toast)
	}
	return docStyle.Render(view)
}

func (m Model) selectingView(s wizard.Session) string {
	var tabs []string
	for i, c := range m.categories {
		label := string(c)
		if i == m.category {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	view := m.search.View() + "\n\n"
	view += strings.Join(tabs, " ") + "\n\n"
	if len(m.products) == 0 {
		view += "No products found\n"
	} else {
		view += m.productTbl.View() + "\n"
	}

	if !s.Cart.IsEmpty() {
		view += "\n" + cartBarStyle.Render(fmt.Sprintf("Cart: %d items  Total: %s", s.Cart.ItemCount(), m.money(s.Cart.Total())))
		for _, line := range s.Cart.Lines() {
			view += fmt.Sprintf("\n  %dx %s  %s", line.Quantity, line.Name, m.money(line.Subtotal()))
		}
		view += "\n"
	}

	view += "\n" + helpStyle.Render("←/→ category • ↑/↓ select • +/enter add • - remove one • x delete • / search • n next • q quit")
	return view
}

func (m Model) detailsView(s wizard.Session) string {
	view := "Customer Name\n" + m.nameInput.View() + "\n\n"

	view += "Order Type  "
	for _, t := range []wizard.OrderType{wizard.OrderTypeDineIn, wizard.OrderTypeTakeOut} {
		if t == s.OrderType {
			view += activeTabStyle.Render(t.Label()) + " "
		} else {
			view += tabStyle.Render(t.Label()) + " "
		}
	}

	view += "\n\n" + cartBarStyle.Render(fmt.Sprintf("Total: %s", m.money(s.Cart.Total())))
	view += "\n\n" + helpStyle.Render("enter done typing • i edit name • tab order type • p pay now • l pay later • esc back")
	return view
}

func (m Model) paymentView(s wizard.Session) string {
	view := fmt.Sprintf("Customer: %s\n", s.CustomerName)
	view += fmt.Sprintf("Order Type: %s\n", s.OrderType.Label())
	view += fmt.Sprintf("Payment: %s\n\n", s.PaymentOption.Label())
	for _, line := range s.Cart.Lines() {
		view += fmt.Sprintf("  %dx %-16s %s\n", line.Quantity, line.Name, m.money(line.Subtotal()))
	}
	view += "\n" + cartBarStyle.Render("Total: "+m.money(s.Cart.Total())) + "\n\n"

	if s.PaymentOption == wizard.PaymentPayNow {
		view += fmt.Sprintf("Amount Received: %s%s█\n", m.currency, s.AmountReceived)
		if payment.Covers(s.AmountReceived, s.Cart.Total()) {
			view += successStyle.Render("Change: "+m.currency+s.ChangeDue()) + "\n"
		}
	} else {
		view += infoStyle.Render("Payment will be collected later") + "\n"
	}

	view += "\n" + helpStyle.Render("enter complete order • esc back")
	return view
}

func (m Model) completedView() string {
	r := m.receipt
	if r == nil {
		if stored, ok := m.register.Receipt(); ok {
			r = &stored
		}
	}
	if r == nil {
		return helpStyle.Render("enter new order")
	}

	view := successStyle.Render(r.Title()) + "\n\n"
	view += fmt.Sprintf("Order #%d\n", r.OrderNumber)
	view += fmt.Sprintf("Customer: %s\n", r.CustomerName)
	view += fmt.Sprintf("Order Type: %s\n\n", r.OrderType.Label())
	for _, line := range r.Lines {
		view += fmt.Sprintf("  %dx %-16s %s\n", line.Quantity, line.Name, m.money(line.Subtotal))
	}
	view += fmt.Sprintf("\nTotal: %s\n", m.money(r.Total))
	if r.PaymentOption == wizard.PaymentPayNow {
		view += fmt.Sprintf("Received: %s%s\n", m.currency, r.AmountReceived)
		view += fmt.Sprintf("Change: %s%s\n", m.currency, r.ChangeDue)
	}
	if reminder := r.Reminder(); reminder != "" {
		view += "\n" + warningStyle.Render(reminder) + "\n"
	}

	return dialogStyle.Render(view) + "\n\n" + helpStyle.Render("enter new order")
}

func toastView(n notify.Notification) string {
	switch n.Severity {
	case notify.SeveritySuccess:
		return successStyle.Render(n.Message)
	case notify.SeverityWarning:
		return warningStyle.Render(n.Message)
	case notify.SeverityError:
		return errorStyle.Render(n.Message)
	default:
		return infoStyle.Render(n.Message)
	}
}

func stepLabel(step wizard.Step) string {
	switch step {
	case wizard.StepSelecting:
		return "1 Select Products"
	case wizard.StepDetails:
		return "2 Customer Details"
	case wizard.StepPayment:
		return "3 Payment"
	default:
		return "Order Complete"
	}
}
