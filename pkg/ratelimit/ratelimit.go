package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Group API 端点分组。每组有独立的调用预算，互不影响。
type Group string

const (
	GroupAccount   Group = "account"
	GroupTrade     Group = "trade"
	GroupMarket    Group = "market"
	GroupMember    Group = "member"
	GroupUtility   Group = "utility"
	GroupWatchlist Group = "watchlist"
)

// SlidingWindow 滑动窗口速率限制器。
// 内部状态是一份有序的调用时间戳历史，由互斥锁保护；生命周期与进程
// 相同，只随时间滚动复位，没有显式 reset。
type SlidingWindow struct {
	limit  int           // 窗口内允许的调用数
	window time.Duration // 窗口大小
	calls  []time.Time   // 调用时间戳（升序）
	mu     sync.Mutex
}

// NewSlidingWindow 创建滑动窗口限制器
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		limit:  limit,
		window: window,
		calls:  make([]time.Time, 0, limit),
	}
}

// Allow 尝试立即准入：窗口内仍有余量则记录本次调用并返回 true
func (sw *SlidingWindow) Allow() bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	sw.evict(now)

	if len(sw.calls) >= sw.limit {
		return false
	}
	sw.calls = append(sw.calls, now)
	return true
}

// Wait 阻塞式准入：没有余量时挂起调用方，直到窗口里最老的一次调用
// 过期，再重试。这是准入闸门，不是排队器；同组单调用方时天然 FIFO。
func (sw *SlidingWindow) Wait(ctx context.Context) error {
	for {
		if sw.Allow() {
			return nil
		}

		sw.mu.Lock()
		wait := 100 * time.Millisecond
		if len(sw.calls) > 0 {
			wait = sw.window - time.Since(sw.calls[0])
		}
		sw.mu.Unlock()

		if wait <= 0 {
			wait = time.Millisecond
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Remaining 返回窗口内剩余的调用余量
func (sw *SlidingWindow) Remaining() int {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.evict(time.Now())
	if n := sw.limit - len(sw.calls); n > 0 {
		return n
	}
	return 0
}

// ResetTime 返回窗口里最老一次调用的过期时刻
func (sw *SlidingWindow) ResetTime() time.Time {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if len(sw.calls) == 0 {
		return time.Now()
	}
	return sw.calls[0].Add(sw.window)
}

// evict 丢掉窗口之外的时间戳，调用方必须已持锁
func (sw *SlidingWindow) evict(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for i < len(sw.calls) && !sw.calls[i].After(cutoff) {
		i++
	}
	if i > 0 {
		sw.calls = append(sw.calls[:0], sw.calls[i:]...)
	}
}

// Manager 按端点分组持有限制器。
// 预算对应券商公布的每分钟调用上限：交易组最紧，工具组最松。
type Manager struct {
	limiters map[Group]*SlidingWindow
	mu       sync.RWMutex
}

// NewManager 创建带默认分组预算的管理器
func NewManager() *Manager {
	window := time.Minute
	return &Manager{
		limiters: map[Group]*SlidingWindow{
			GroupAccount:   NewSlidingWindow(180, window),
			GroupTrade:     NewSlidingWindow(40, window),
			GroupMarket:    NewSlidingWindow(60, window),
			GroupMember:    NewSlidingWindow(180, window),
			GroupUtility:   NewSlidingWindow(300, window),
			GroupWatchlist: NewSlidingWindow(180, window),
		},
	}
}

// Limiter 返回分组的限制器；未知分组退回账户组预算
func (m *Manager) Limiter(group Group) *SlidingWindow {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if sw, ok := m.limiters[group]; ok {
		return sw
	}
	return m.limiters[GroupAccount]
}

// Wait 阻塞直到该分组允许下一次调用
func (m *Manager) Wait(ctx context.Context, group Group) error {
	return m.Limiter(group).Wait(ctx)
}

// Remaining 返回该分组窗口内剩余余量
func (m *Manager) Remaining(group Group) int {
	return m.Limiter(group).Remaining()
}

// ResetTime 返回该分组最近的窗口复位时刻
func (m *Manager) ResetTime(group Group) time.Time {
	return m.Limiter(group).ResetTime()
}

// Groups 返回全部分组（固定顺序），供状态页遍历
func Groups() []Group {
	return []Group{GroupAccount, GroupTrade, GroupMarket, GroupMember, GroupUtility, GroupWatchlist}
}
