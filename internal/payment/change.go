// Package payment computes change due and guards the received-amount buffer.
package payment

import (
	"errors"
	"regexp"
	"unicode/utf8"

	"orderdesk/internal/models"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for received-amount text that is empty or
// malformed.
var ErrInvalidAmount = errors.New("invalid amount")

// amountPattern accepts digits, an optional single decimal point, and more
// digits. No sign, exponent, or thousands separators.
var amountPattern = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)

// ValidBuffer reports whether text is an acceptable state of the amount field.
func ValidBuffer(text string) bool {
	return amountPattern.MatchString(text)
}

// AcceptKeystroke appends input to buffer if the result is still a valid
// amount buffer; otherwise the keystroke is discarded and buffer returned.
func AcceptKeystroke(buffer, input string) string {
	return AcceptText(buffer, buffer+input)
}

// AcceptText replaces buffer with text when text is a valid amount buffer.
func AcceptText(buffer, text string) string {
	if !ValidBuffer(text) {
		return buffer
	}
	return text
}

// Backspace drops the last character of buffer.
func Backspace(buffer string) string {
	if buffer == "" {
		return buffer
	}
	_, size := utf8.DecodeLastRuneInString(buffer)
	return buffer[:len(buffer)-size]
}

// ParseReceived strictly parses a received amount. Cash is kept as a
// decimal rather than cents: it may carry more than two places and has no
// upper bound.
func ParseReceived(text string) (decimal.Decimal, error) {
	if text == "" || text == "." || !ValidBuffer(text) {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Change returns received minus total, floored at zero. Unparsable text
// counts as nothing received.
func Change(text string, total models.Money) decimal.Decimal {
	received, err := ParseReceived(text)
	if err != nil {
		return decimal.Zero
	}
	change := received.Sub(total.Decimal())
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}

// ChangeDue renders Change rounded to exactly two decimal places.
func ChangeDue(text string, total models.Money) string {
	return Change(text, total).StringFixed(2)
}

// Covers reports whether text parses to an amount of at least total.
func Covers(text string, total models.Money) bool {
	received, err := ParseReceived(text)
	return err == nil && received.GreaterThanOrEqual(total.Decimal())
}
