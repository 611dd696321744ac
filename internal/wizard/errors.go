package wizard

import "errors"

// ValidationError is a user-input failure that blocks a step transition.
// Message is the terse reason; Prompt is what the operator is shown.
type ValidationError struct {
	Code    string
	Message string
	Prompt  string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrCartEmpty = &ValidationError{
		Code:    "cart_empty",
		Message: "cart is empty",
		Prompt:  "Please add at least one product to the cart",
	}
	ErrCustomerNameRequired = &ValidationError{
		Code:    "customer_name_required",
		Message: "customer name required",
		Prompt:  "Please enter customer name",
	}
	ErrInvalidAmount = &ValidationError{
		Code:    "invalid_amount",
		Message: "invalid amount",
		Prompt:  "Please enter a valid amount",
	}
	ErrPaymentOptionRequired = &ValidationError{
		Code:    "payment_option_required",
		Message: "payment option required",
		Prompt:  "Please choose Pay Now or Pay Later",
	}
)

var (
	// ErrInvalidTransition is returned for retreat or reset from a step that
	// does not allow it.
	ErrInvalidTransition = errors.New("transition not allowed from current step")
	// ErrOrderCompleted is returned for edits after completion; only Reset is allowed.
	ErrOrderCompleted       = errors.New("order already completed")
	ErrUnknownOrderType     = errors.New("unknown order type")
	ErrUnknownPaymentOption = errors.New("unknown payment option")
)

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
