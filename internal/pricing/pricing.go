package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/vanshrane27/electrohub-showcase/internal/cart"
)

// TaxRate 固定 18% 税率
var TaxRate = decimal.RequireFromString("0.18")

// Summary 结算金额，数值不做舍入，展示时再取整
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Display 展示用的卢比字符串
type Display struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// Calculate 计算小计、税额与总额
func Calculate(items []cart.Item) Summary {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Subtotal())
	}
	return FromSubtotal(subtotal)
}

// FromSubtotal 由小计推出税额与总额
func FromSubtotal(subtotal decimal.Decimal) Summary {
	tax := subtotal.Mul(TaxRate)
	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// Display 格式化为卢比
func (s Summary) Display() Display {
	return Display{
		Subtotal: FormatINR(s.Subtotal),
		Tax:      FormatINR(s.Tax),
		Total:    FormatINR(s.Total),
	}
}
