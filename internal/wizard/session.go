package wizard

import (
	"fmt"

	"orderdesk/internal/cart"
	"orderdesk/internal/payment"
)

// Step is the wizard's position in the ordering flow.
type Step int

const (
	StepSelecting Step = iota
	StepDetails
	StepPayment
	StepCompleted
)

var stepNames = map[Step]string{
	StepSelecting: "selecting",
	StepDetails:   "details",
	StepPayment:   "payment",
	StepCompleted: "completed",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) MarshalText() ([]byte, error) {
	if _, ok := stepNames[s]; !ok {
		return nil, fmt.Errorf("unknown step %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Step) UnmarshalText(text []byte) error {
	for step, name := range stepNames {
		if name == string(text) {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("unknown step %q", text)
}

// OrderType is where the order will be eaten.
type OrderType string

const (
	OrderTypeDineIn  OrderType = "dine-in"
	OrderTypeTakeOut OrderType = "take-out"
)

// IsValid reports whether t is a known order type.
func (t OrderType) IsValid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeOut
}

// Label is the human-facing name.
func (t OrderType) Label() string {
	if t == OrderTypeTakeOut {
		return "Take Out"
	}
	return "Dine In"
}

// PaymentOption is how the customer settles the order. The zero value means
// no option has been chosen yet.
type PaymentOption string

const (
	PaymentUnset    PaymentOption = ""
	PaymentPayNow   PaymentOption = "pay-now"
	PaymentPayLater PaymentOption = "pay-later"
)

// IsValid reports whether p is a selectable payment option.
func (p PaymentOption) IsValid() bool {
	return p == PaymentPayNow || p == PaymentPayLater
}

// Label is the human-facing name.
func (p PaymentOption) Label() string {
	switch p {
	case PaymentPayNow:
		return "Pay Now"
	case PaymentPayLater:
		return "Pay Later"
	}
	return ""
}

// Session is the full state of one order in progress. It is a plain value:
// the transition functions in this package take a Session and return a new
// one without modifying their input.
type Session struct {
	Step           Step          `json:"step"`
	Cart           cart.Cart     `json:"cart"`
	CustomerName   string        `json:"customer_name"`
	OrderType      OrderType     `json:"order_type"`
	PaymentOption  PaymentOption `json:"payment_option"`
	AmountReceived string        `json:"amount_received"`
	OrderNumber    int           `json:"order_number,omitempty"`
}

// New returns the initial session: empty cart, dine-in, nothing chosen.
func New() Session {
	return Session{
		Step:      StepSelecting,
		OrderType: OrderTypeDineIn,
	}
}

// IsCompleted reports whether the order has been completed.
func (s Session) IsCompleted() bool {
	return s.Step == StepCompleted
}

// ChangeDue is the change owed for the current amount buffer.
func (s Session) ChangeDue() string {
	return payment.ChangeDue(s.AmountReceived, s.Cart.Total())
}
