// Package memory 进程内仓储实现，database.driver 为 memory 时使用，也供 HTTP 测试使用。
// 行按插入顺序保存，读写都复制结构体，调用方拿到的指针不会影响已存数据。
package memory

import (
	"sync"
	"time"
)

// table 一张内存表
type table[T any] struct {
	mu   sync.RWMutex
	rows []*T
	now  func() time.Time
}

func newTable[T any]() *table[T] {
	return &table[T]{now: time.Now}
}

func (t *table[T]) insert(v *T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cp := *v
	t.rows = append(t.rows, &cp)
}

// first 正序查找第一条
func (t *table[T]) first(match func(*T) bool) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.rows {
		if match(r) {
			cp := *r
			return &cp
		}
	}
	return nil
}

// latest 倒序查找第一条
func (t *table[T]) latest(match func(*T) bool) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.rows) - 1; i >= 0; i-- {
		if match(t.rows[i]) {
			cp := *t.rows[i]
			return &cp
		}
	}
	return nil
}

// newestFirst 按插入倒序返回匹配行，match 为 nil 表示全部
func (t *table[T]) newestFirst(match func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*T, 0, len(t.rows))
	for i := len(t.rows) - 1; i >= 0; i-- {
		if match == nil || match(t.rows[i]) {
			cp := *t.rows[i]
			out = append(out, &cp)
		}
	}
	return out
}

// update 修改第一条匹配行并返回副本，没有匹配时返回 nil
func (t *table[T]) update(match func(*T) bool, mutate func(*T)) *T {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.rows {
		if match(r) {
			mutate(r)
			cp := *r
			return &cp
		}
	}
	return nil
}

// replace 覆盖匹配行，没有则追加
func (t *table[T]) replace(match func(*T) bool, v *T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cp := *v
	for i, r := range t.rows {
		if match(r) {
			t.rows[i] = &cp
			return
		}
	}
	t.rows = append(t.rows, &cp)
}

func (t *table[T]) remove(match func(*T) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.rows[:0]
	for _, r := range t.rows {
		if !match(r) {
			kept = append(kept, r)
		}
	}
	t.rows = kept
}

func (t *table[T]) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

func (t *table[T]) stamp(ts *time.Time) {
	if ts.IsZero() {
		*ts = t.now()
	}
}
