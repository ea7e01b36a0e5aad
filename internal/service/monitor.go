package service

import (
	"sync"
	"time"
)

// Monitor 进程内计数器，后台 /api/monitor 读取
type Monitor struct {
	mu sync.RWMutex

	RedisErrors  int64
	MQErrors     int64
	DBErrors     int64
	SheetsErrors int64

	CheckoutRequests int64
	CheckoutSuccess  int64
	SupportRequests  int64
	WorkerProcessed  int64
	WorkerFailed     int64

	LastRedisError  time.Time
	LastMQError     time.Time
	LastDBError     time.Time
	LastSheetsError time.Time
	LastCheckout    time.Time
	LastWorkerTime  time.Time
}

var globalMonitor = &Monitor{}

// GetMonitor 获取全局监控实例
func GetMonitor() *Monitor {
	return globalMonitor
}

func (m *Monitor) RecordRedisError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RedisErrors++
	m.LastRedisError = time.Now()
}

func (m *Monitor) RecordMQError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MQErrors++
	m.LastMQError = time.Now()
}

func (m *Monitor) RecordDBError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DBErrors++
	m.LastDBError = time.Now()
}

func (m *Monitor) RecordSheetsError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SheetsErrors++
	m.LastSheetsError = time.Now()
}

// RecordCheckout 记录一次下单请求及结果
func (m *Monitor) RecordCheckout(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckoutRequests++
	if ok {
		m.CheckoutSuccess++
	}
	m.LastCheckout = time.Now()
}

func (m *Monitor) RecordSupportRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SupportRequests++
}

func (m *Monitor) RecordWorkerProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WorkerProcessed++
	m.LastWorkerTime = time.Now()
}

func (m *Monitor) RecordWorkerFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WorkerFailed++
	m.LastWorkerTime = time.Now()
}

func rate(ok, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(ok) / float64(total) * 100
}

// GetStats 获取统计信息
func (m *Monitor) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"errors": map[string]interface{}{
			"redis":  m.RedisErrors,
			"mq":     m.MQErrors,
			"db":     m.DBErrors,
			"sheets": m.SheetsErrors,
		},
		"traffic": map[string]interface{}{
			"checkout_requests":     m.CheckoutRequests,
			"checkout_success":      m.CheckoutSuccess,
			"checkout_success_rate": rate(m.CheckoutSuccess, m.CheckoutRequests),
			"support_requests":      m.SupportRequests,
			"worker_processed":      m.WorkerProcessed,
			"worker_failed":         m.WorkerFailed,
			"worker_success_rate":   rate(m.WorkerProcessed, m.WorkerProcessed+m.WorkerFailed),
		},
		"last_events": map[string]interface{}{
			"redis_error":   m.LastRedisError,
			"mq_error":      m.LastMQError,
			"db_error":      m.LastDBError,
			"sheets_error":  m.LastSheetsError,
			"last_checkout": m.LastCheckout,
			"last_worker":   m.LastWorkerTime,
		},
	}
}

// Reset 重置统计
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RedisErrors, m.MQErrors, m.DBErrors, m.SheetsErrors = 0, 0, 0, 0
	m.CheckoutRequests, m.CheckoutSuccess, m.SupportRequests = 0, 0, 0
	m.WorkerProcessed, m.WorkerFailed = 0, 0
}
