package support

import (
	"regexp"
	"strings"
	"time"
)

// MaxTextLength 自由文本的最大长度（按字符计）
const MaxTextLength = 5000

// DateLayout 严格的 YYYY-MM-DD
const DateLayout = "2006-01-02"

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	specialPattern = regexp.MustCompile(`[<>"'&]`)
	phoneSeparator = regexp.MustCompile(`[\s\-\(\)]`)
	phonePattern   = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	datePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// SanitizeText 去掉 HTML 标签与特殊字符，去首尾空白并截断
func SanitizeText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = specialPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > MaxTextLength {
		s = string(r[:MaxTextLength])
	}
	return s
}

// CleanPhone 去掉空白、横线与括号
func CleanPhone(s string) string {
	return phoneSeparator.ReplaceAllString(s, "")
}

// ValidPhone 清洗后是否符合 E.164 风格
func ValidPhone(s string) bool {
	return phonePattern.MatchString(CleanPhone(s))
}

// ParseDate 严格解析 YYYY-MM-DD，不合法的日历日期同样拒绝
func ParseDate(s string) (time.Time, bool) {
	if !datePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidDate 是否为合法日期
func ValidDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// ValidEmail 简单邮箱格式校验
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// AbsentFields 返回值为空串的字段名；只含空白的值视为已提供，清洗交给 SanitizeText
func AbsentFields(fields ...[2]string) []string {
	var missing []string
	for _, f := range fields {
		if f[1] == "" {
			missing = append(missing, f[0])
		}
	}
	return missing
}

// MissingFields 返回值为空白的字段名，保持传入顺序
func MissingFields(fields ...[2]string) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			missing = append(missing, f[0])
		}
	}
	return missing
}
