package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

const rupeeSign = "₹"

// FormatINR 取整到卢比并按印度数字分组，如 ₹1,49,999
func FormatINR(v decimal.Decimal) string {
	rounded := v.Round(0)
	neg := rounded.IsNegative()
	digits := rounded.Abs().String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(rupeeSign)
	b.WriteString(groupIndian(digits))
	return b.String()
}

// FormatRupees 整数卢比的便捷写法
func FormatRupees(v int64) string {
	return FormatINR(decimal.NewFromInt(v))
}

// groupIndian 末三位一组，其余两位一组
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
