package support

import (
	"strings"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/issue"
)

// keywordRule 一个分类及其关键字，按表中顺序匹配，先命中者胜出
type keywordRule struct {
	category issue.Category
	keywords []string
}

var categoryRules = []keywordRule{
	{issue.CategoryWarranty, []string{"warranty", "guarantee", "expired", "coverage", "repair warranty", "product warranty"}},
	{issue.CategoryBooking, []string{"book", "booking", "slot", "service", "appointment", "schedule", "technician", "visit"}},
	{issue.CategoryOrder, []string{"order", "delivery", "shipping", "track", "purchase", "bought", "payment", "refund"}},
}

// DetectCategory 根据关键字推断工单分类，没有命中时为 general
func DetectCategory(message string) issue.Category {
	lower := strings.ToLower(message)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return issue.CategoryGeneral
}
