package service

import (
	"sync"
	"time"
)

// Monitor 监控服务，用于统计错误和业务指标
type Monitor struct {
	mu sync.RWMutex

	// 错误统计
	StoreErrors   int64
	CacheErrors   int64
	PublishErrors int64

	// 业务统计
	CartAdds       int64
	CartMerges     int64
	CacheHits      int64
	CacheMisses    int64
	PromotionRuns  int64
	OrdersPromoted int64

	// 时间统计
	LastStoreError   time.Time
	LastPublishError time.Time
	LastCartAdd      time.Time
	LastPromotion    time.Time
}

var globalMonitor = &Monitor{}

// GetMonitor 获取全局监控实例
func GetMonitor() *Monitor {
	return globalMonitor
}

// RecordStoreError 记录存储层错误
func (m *Monitor) RecordStoreError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreErrors++
	m.LastStoreError = time.Now()
}

// RecordCacheError 记录缓存错误
func (m *Monitor) RecordCacheError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheErrors++
}

// RecordPublishError 记录 MQ 发布失败
func (m *Monitor) RecordPublishError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishErrors++
	m.LastPublishError = time.Now()
}

// RecordCartAdd 记录加购，created 为 false 表示合并到已有明细
func (m *Monitor) RecordCartAdd(created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if created {
		m.CartAdds++
	} else {
		m.CartMerges++
	}
	m.LastCartAdd = time.Now()
}

// RecordCacheLookup 记录缓存命中情况
func (m *Monitor) RecordCacheLookup(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.CacheHits++
	} else {
		m.CacheMisses++
	}
}

// RecordPromotion 记录一次批量状态更新
func (m *Monitor) RecordPromotion(updated int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PromotionRuns++
	m.OrdersPromoted += updated
	m.LastPromotion = time.Now()
}

// GetStats 获取统计信息
func (m *Monitor) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hitRate := float64(0)
	lookups := m.CacheHits + m.CacheMisses
	if lookups > 0 {
		hitRate = float64(m.CacheHits) / float64(lookups) * 100
	}

	return map[string]interface{}{
		"errors": map[string]interface{}{
			"store":   m.StoreErrors,
			"cache":   m.CacheErrors,
			"publish": m.PublishErrors,
		},
		"cart": map[string]interface{}{
			"created": m.CartAdds,
			"merged":  m.CartMerges,
		},
		"cache": map[string]interface{}{
			"hits":     m.CacheHits,
			"misses":   m.CacheMisses,
			"hit_rate": hitRate,
		},
		"orders": map[string]interface{}{
			"promotion_runs":  m.PromotionRuns,
			"orders_promoted": m.OrdersPromoted,
		},
		"last_events": map[string]interface{}{
			"store_error":   m.LastStoreError,
			"publish_error": m.LastPublishError,
			"cart_add":      m.LastCartAdd,
			"promotion":     m.LastPromotion,
		},
	}
}

// Reset 重置统计（用于测试或定期清理）
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreErrors = 0
	m.CacheErrors = 0
	m.PublishErrors = 0
	m.CartAdds = 0
	m.CartMerges = 0
	m.CacheHits = 0
	m.CacheMisses = 0
	m.PromotionRuns = 0
	m.OrdersPromoted = 0
	m.LastStoreError = time.Time{}
	m.LastPublishError = time.Time{}
	m.LastCartAdd = time.Time{}
	m.LastPromotion = time.Time{}
}
