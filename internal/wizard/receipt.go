package wizard

import (
	"time"

	"orderdesk/internal/models"
)

// ReceiptLine is a copied cart line on a receipt.
type ReceiptLine struct {
	ProductID int          `json:"product_id"`
	Name      string       `json:"name"`
	UnitPrice models.Money `json:"unit_price"`
	Quantity  int          `json:"quantity"`
	Subtotal  models.Money `json:"subtotal"`
}

// Receipt is the immutable snapshot of a completed order.
type Receipt struct {
	OrderNumber    int           `json:"order_number"`
	CustomerName   string        `json:"customer_name"`
	OrderType      OrderType     `json:"order_type"`
	PaymentOption  PaymentOption `json:"payment_option"`
	Lines          []ReceiptLine `json:"lines"`
	Total          models.Money  `json:"total"`
	AmountReceived string        `json:"amount_received,omitempty"`
	ChangeDue      string        `json:"change_due,omitempty"`
	CompletedAt    time.Time     `json:"completed_at"`
}

// NewReceipt snapshots s. Amount received and change are only recorded for
// pay-now orders.
func NewReceipt(s Session) Receipt {
	lines := s.Cart.Lines()
	r := Receipt{
		OrderNumber:   s.OrderNumber,
		CustomerName:  s.CustomerName,
		OrderType:     s.OrderType,
		PaymentOption: s.PaymentOption,
		Lines:         make([]ReceiptLine, len(lines)),
		Total:         s.Cart.Total(),
	}
	for i, l := range lines {
		r.Lines[i] = ReceiptLine{
			ProductID: l.ID,
			Name:      l.Name,
			UnitPrice: l.Price,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		}
	}
	if s.PaymentOption == PaymentPayNow {
		r.AmountReceived = s.AmountReceived
		r.ChangeDue = s.ChangeDue()
	}
	return r
}

// Title is the headline shown on the completion dialog.
func (r Receipt) Title() string {
	if r.PaymentOption == PaymentPayNow {
		return "Payment Successful!"
	}
	return "Order Saved Successfully!"
}

// Reminder is the extra note for orders that are not yet paid.
func (r Receipt) Reminder() string {
	if r.PaymentOption == PaymentPayLater {
		return "Remind the customer that payment is pending."
	}
	return ""
}
