// Package wizard implements the three-step ordering flow as pure transition
// functions over a Session value.
//
//	Selecting --advance--> Details --advance--> Payment --advance--> Completed
//	          <--retreat--         <--retreat--                        |
//	    ^------------------------------reset---------------------------'
//
// Every gate validates before anything is changed, so a rejected transition
// returns its input session unchanged.
package wizard

import (
	"strings"

	"orderdesk/internal/models"
	"orderdesk/internal/payment"
)

// Advance moves the session one step forward. Leaving the Payment step
// completes the order: an order number is drawn from numbers and the
// receipt snapshot is returned alongside the completed session.
func Advance(s Session, numbers OrderNumbers) (Session, *Receipt, error) {
	switch s.Step {
	case StepSelecting:
		if s.Cart.IsEmpty() {
			return s, nil, ErrCartEmpty
		}
		s.Step = StepDetails
		return s, nil, nil

	case StepDetails:
		if err := checkDetails(s); err != nil {
			return s, nil, err
		}
		s.Step = StepPayment
		return s, nil, nil

	case StepPayment:
		if err := checkPayment(s); err != nil {
			return s, nil, err
		}
		s.OrderNumber = numbers.Next()
		s.Step = StepCompleted
		receipt := NewReceipt(s)
		return s, &receipt, nil

	case StepCompleted:
		return s, nil, ErrOrderCompleted
	}
	return s, nil, ErrInvalidTransition
}

// ChoosePayment records the payment option and immediately runs the
// Details gate. It is only valid on the Details step; on rejection the
// option is not recorded.
func ChoosePayment(s Session, option PaymentOption) (Session, error) {
	if !option.IsValid() {
		return s, ErrUnknownPaymentOption
	}
	if s.Step != StepDetails {
		if s.Step == StepCompleted {
			return s, ErrOrderCompleted
		}
		return s, ErrInvalidTransition
	}
	if err := checkDetails(s); err != nil {
		return s, err
	}
	s.PaymentOption = option
	s.Step = StepPayment
	return s, nil
}

// Retreat moves back one step from Details or Payment.
func Retreat(s Session) (Session, error) {
	switch s.Step {
	case StepDetails, StepPayment:
		s.Step--
		return s, nil
	}
	return s, ErrInvalidTransition
}

// Reset starts a fresh order after completion.
func Reset(s Session) (Session, error) {
	if s.Step != StepCompleted {
		return s, ErrInvalidTransition
	}
	return New(), nil
}

// AddItem adds one unit of p to the cart.
func AddItem(s Session, p models.Product) (Session, error) {
	if s.IsCompleted() {
		return s, ErrOrderCompleted
	}
	s.Cart = s.Cart.Add(p)
	return s, nil
}

// DecrementItem removes one unit of product id from the cart.
func DecrementItem(s Session, id int) (Session, error) {
	if s.IsCompleted() {
		return s, ErrOrderCompleted
	}
	c, err := s.Cart.Decrement(id)
	if err != nil {
		return s, err
	}
	s.Cart = c
	return s, nil
}

// DeleteItem drops product id from the cart entirely.
func DeleteItem(s Session, id int) (Session, error) {
	if s.IsCompleted() {
		return s, ErrOrderCompleted
	}
	s.Cart = s.Cart.Delete(id)
	return s, nil
}

// SetCustomerName stores name as typed; trimming happens at the Details gate.
func SetCustomerName(s Session, name string) (Session, error) {
	if s.IsCompleted() {
		return s, ErrOrderCompleted
	}
	s.CustomerName = name
	return s, nil
}

// SetOrderType switches between dine-in and take-out.
func SetOrderType(s Session, t OrderType) (Session, error) {
	if !t.IsValid() {
		return s, ErrUnknownOrderType
	}
	if s.IsCompleted() {
		return s, ErrOrderCompleted
	}
	s.OrderType = t
	return s, nil
}

// TypeAmount applies one keystroke to the received-amount buffer. Keystrokes
// that would make the buffer malformed are dropped without error.
func TypeAmount(s Session, key string) (Session, error) {
	if s.IsCompleted() {
		return s, ErrOrderCompleted
	}
	s.AmountReceived = payment.AcceptKeystroke(s.AmountReceived, key)
	return s, nil
}

// BackspaceAmount deletes the last character of the received-amount buffer.
func BackspaceAmount(s Session) (Session, error) {
	if s.IsCompleted() {
		return s, ErrOrderCompleted
	}
	s.AmountReceived = payment.Backspace(s.AmountReceived)
	return s, nil
}

// SetAmount replaces the received-amount buffer, ignoring malformed text.
func SetAmount(s Session, text string) (Session, error) {
	if s.IsCompleted() {
		return s, ErrOrderCompleted
	}
	s.AmountReceived = payment.AcceptText(s.AmountReceived, text)
	return s, nil
}

func checkDetails(s Session) error {
	if strings.TrimSpace(s.CustomerName) == "" {
		return ErrCustomerNameRequired
	}
	return nil
}

func checkPayment(s Session) error {
	switch s.PaymentOption {
	case PaymentPayNow:
		if !payment.Covers(s.AmountReceived, s.Cart.Total()) {
			return ErrInvalidAmount
		}
	case PaymentPayLater:
	default:
		return ErrPaymentOptionRequired
	}
	return nil
}
