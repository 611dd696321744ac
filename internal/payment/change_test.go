package payment

import (
	"testing"

	"orderdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeDue(t *testing.T) {
	total := models.MustParseMoney("8.99")

	assert.Equal(t, "1.01", ChangeDue("10", total))
	assert.Equal(t, "0.00", ChangeDue("5", total))
	assert.Equal(t, "0.00", ChangeDue("8.99", total))
	assert.Equal(t, "0.00", ChangeDue("", total))
	assert.Equal(t, "0.00", ChangeDue("abc", total))
	assert.Equal(t, "11.01", ChangeDue("20.", total))
	assert.Equal(t, "0.00", ChangeDue("10", 1000))
}

func TestAcceptKeystroke(t *testing.T) {
	buf := ""
	for _, key := range []string{"1", "2", ".", "5", ".", "-", "e", "0", ","} {
		buf = AcceptKeystroke(buf, key)
	}
	assert.Equal(t, "12.50", buf)

	assert.Equal(t, ".", AcceptKeystroke("", "."))
	assert.Equal(t, "", AcceptKeystroke("", "+"))
}

func TestAcceptText(t *testing.T) {
	assert.Equal(t, "10.5", AcceptText("", "10.5"))
	assert.Equal(t, "10", AcceptText("10", "1,000"))
	assert.Equal(t, "10", AcceptText("10", "-3"))
	assert.Equal(t, "", AcceptText("10", ""))
}

func TestBackspace(t *testing.T) {
	assert.Equal(t, "12.", Backspace("12.5"))
	assert.Equal(t, "", Backspace(""))
}

func TestParseReceived(t *testing.T) {
	testCases := []struct {
		text string
		want string
	}{
		{"10", "10"},
		{".25", "0.25"},
		{"20.", "20"},
		{"10.005", "10.005"},
		{"99999999999999999999", "99999999999999999999"},
	}

	for _, tc := range testCases {
		d, err := ParseReceived(tc.text)
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.want, d.String(), tc.text)
	}

	for _, bad := range []string{"", ".", "1e3", "-1", "1.2.3"} {
		_, err := ParseReceived(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

func TestSubCentAmounts(t *testing.T) {
	assert.True(t, Covers("10.005", 899))
	assert.True(t, Covers("8.991", 899))
	assert.False(t, Covers("8.989", 899))
	assert.Equal(t, "1.02", ChangeDue("10.005", 899))
	assert.Equal(t, "0.00", ChangeDue("8.989", 899))
}

func TestLargeAmountsDoNotWrap(t *testing.T) {
	assert.True(t, Covers("99999999999999999999", 899))
	assert.Equal(t, "99999999999999999990.01", ChangeDue("99999999999999999999", 899))

	// One cent past the int64 range of Money.
	assert.True(t, Covers("92233720368547758.08", 899))
	assert.Equal(t, "92233720368547749.09", ChangeDue("92233720368547758.08", 899))
}

func TestCovers(t *testing.T) {
	assert.True(t, Covers("8.99", 899))
	assert.True(t, Covers("10", 899))
	assert.False(t, Covers("5", 899))
	assert.False(t, Covers("", 0))
}
