package ratelimit

import (
	"context"
	"testing"
	"time"
)

// TestSlidingWindowAllow 窗口内余量用完后立即准入失败，窗口滚过后恢复
func TestSlidingWindowAllow(t *testing.T) {
	sw := NewSlidingWindow(2, 150*time.Millisecond)

	if !sw.Allow() || !sw.Allow() {
		t.Fatal("前两次调用应立即准入")
	}
	if sw.Allow() {
		t.Fatal("第三次调用应被拒绝")
	}
	if sw.Remaining() != 0 {
		t.Errorf("Remaining() = %d, 期望 0", sw.Remaining())
	}

	time.Sleep(160 * time.Millisecond)
	if !sw.Allow() {
		t.Error("窗口滚过后应恢复准入")
	}
}

// TestSlidingWindowWaitBlocks 没有余量时 Wait 挂起，直到最老的调用过期
func TestSlidingWindowWaitBlocks(t *testing.T) {
	window := 200 * time.Millisecond
	sw := NewSlidingWindow(2, window)
	ctx := context.Background()

	start := time.Now()
	if err := sw.Wait(ctx); err != nil {
		t.Fatalf("Wait 报错: %v", err)
	}
	if err := sw.Wait(ctx); err != nil {
		t.Fatalf("Wait 报错: %v", err)
	}
	if since := time.Since(start); since > 50*time.Millisecond {
		t.Fatalf("前两次 Wait 不应阻塞，耗时 %v", since)
	}

	if err := sw.Wait(ctx); err != nil {
		t.Fatalf("Wait 报错: %v", err)
	}
	if since := time.Since(start); since < window {
		t.Errorf("第三次 Wait 应阻塞到窗口滚过，实际只等了 %v", since)
	}
}

// TestSlidingWindowWaitCancel 上下文取消时 Wait 立即返回错误
func TestSlidingWindowWaitCancel(t *testing.T) {
	sw := NewSlidingWindow(1, time.Minute)
	if !sw.Allow() {
		t.Fatal("首次调用应准入")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := sw.Wait(ctx); err == nil {
		t.Error("取消后 Wait 应返回错误")
	}
}

// TestManagerGroupsIndependent 各分组预算独立，互不影响
func TestManagerGroupsIndependent(t *testing.T) {
	m := NewManager()

	trade := m.Limiter(GroupTrade)
	for i := 0; i < 40; i++ {
		if !trade.Allow() {
			t.Fatalf("交易组第 %d 次调用应准入", i+1)
		}
	}
	if trade.Allow() {
		t.Error("交易组超出预算应被拒绝")
	}

	if m.Remaining(GroupMarket) != 60 {
		t.Errorf("行情组余量 = %d, 期望 60", m.Remaining(GroupMarket))
	}
	if m.Remaining(GroupUtility) != 300 {
		t.Errorf("工具组余量 = %d, 期望 300", m.Remaining(GroupUtility))
	}

	// 未知分组退回账户组预算
	if m.Limiter(Group("bogus")) != m.Limiter(GroupAccount) {
		t.Error("未知分组应退回账户组限制器")
	}
}

// TestResetTime 复位时刻等于最老一次调用加窗口大小
func TestResetTime(t *testing.T) {
	window := time.Minute
	sw := NewSlidingWindow(3, window)

	before := time.Now()
	sw.Allow()
	after := time.Now()

	reset := sw.ResetTime()
	if reset.Before(before.Add(window)) || reset.After(after.Add(window)) {
		t.Errorf("ResetTime() = %v, 超出期望区间", reset)
	}
}
