package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vanshrane27/electrohub-showcase/internal/cart"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/product"
)

func TestCalculateSingleLine(t *testing.T) {
	items := []cart.Item{{Product: &product.Product{ID: "a", Price: 1000}, Quantity: 2}}
	s := Calculate(items)

	assert.True(t, s.Subtotal.Equal(decimal.NewFromInt(2000)))
	assert.True(t, s.Tax.Equal(decimal.NewFromInt(360)))
	assert.True(t, s.Total.Equal(decimal.NewFromInt(2360)))
	assert.Equal(t, Display{Subtotal: "₹2,000", Tax: "₹360", Total: "₹2,360"}, s.Display())
}

func TestCalculateKeepsFractionalTax(t *testing.T) {
	items := []cart.Item{
		{Product: &product.Product{ID: "a", Price: 999}, Quantity: 1},
		{Product: &product.Product{ID: "b", Price: 1}, Quantity: 3},
	}
	s := Calculate(items)

	assert.Equal(t, "1002", s.Subtotal.String())
	assert.Equal(t, "180.36", s.Tax.String())
	assert.Equal(t, "1182.36", s.Total.String())
	// 展示取整，但不改变原值
	assert.Equal(t, "₹1,182", FormatINR(s.Total))
	assert.Equal(t, "1182.36", s.Total.String())
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	assert.True(t, s.Total.IsZero())
	assert.Equal(t, "₹0", FormatINR(s.Total))
}

func TestFormatINRGrouping(t *testing.T) {
	cases := map[int64]string{
		0:         "₹0",
		999:       "₹999",
		1000:      "₹1,000",
		24999:     "₹24,999",
		149999:    "₹1,49,999",
		1234567:   "₹12,34,567",
		123456789: "₹12,34,56,789",
		-45000:    "-₹45,000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatRupees(in), "input %d", in)
	}
	assert.Equal(t, "₹1,001", FormatINR(decimal.RequireFromString("1000.5")))
}
