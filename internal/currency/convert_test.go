package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	assert.Equal(t, 100.0, Convert(100, "SAR", "SAR", 3.75), "identity case ignores the rate")
	assert.Equal(t, 100.0, Convert(100, "sar", "SAR", 3.75), "currency codes compare case-insensitively")
	assert.Equal(t, 100.0, Convert(100, "USD", "SAR", 0), "zero rate returns input unchanged")
	assert.Equal(t, 100.0, Convert(100, "USD", "SAR", -1), "negative rate returns input unchanged")
	assert.InDelta(t, 375.0, Convert(100, "USD", "SAR", 3.75), 1e-9)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1250.50", FormatAmount(1250.5))
	assert.Equal(t, "0.00", FormatAmount(0))
}

func TestFormatWithCode(t *testing.T) {
	assert.Equal(t, "1,250.50 SAR", FormatWithCode(1250.5, "sar"))
	assert.Equal(t, "1,000,000.00 USD", FormatWithCode(1e6, "USD"))
	assert.Equal(t, "-12,345.68", FormatWithCode(-12345.678, ""))
	assert.Equal(t, "999.99 EUR", FormatWithCode(999.99, " EUR "))
}
