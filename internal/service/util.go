package service

import (
	"fmt"
	"time"
)

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// isoLayout 毫秒精度的 UTC 时间，与浏览器 toISOString 一致
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func isoTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// Clock 可替换的时间源，测试里固定时间
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
