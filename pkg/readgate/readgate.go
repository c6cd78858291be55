// Package readgate 实现阅读计数的客户端门限：
// 只有「读到文末」与「停留满指定时长」两个条件都满足才触发一次上报，
// 且同一会话内每篇文章至多上报一次
package readgate

import (
	"context"
	"sync"
	"time"

	"github.com/keykomi/webblog/pkg/kvstore"
)

// 会话标记键前缀，与前端 sessionStorage 的键保持一致
const sessionKeyPrefix = "read_"

// Gate 单篇文章的一次性阅读门限。
// 两个触发源（滚动回调与停留计时器）可以以任意顺序到达，
// 上报动作至多执行一次
type Gate struct {
	sessionKey string
	session    kvstore.Store
	action     func() error

	mu       sync.Mutex
	scrolled bool
	dwelled  bool
	fired    bool
}

// New 创建阅读门限，action 为满足条件后执行的上报动作
func New(session kvstore.Store, articleID string, action func() error) *Gate {
	g := &Gate{
		sessionKey: sessionKeyPrefix + articleID,
		session:    session,
		action:     action,
	}
	// 会话内已经上报过的文章不再触发
	if _, ok, _ := session.Get(g.sessionKey); ok {
		g.fired = true
	}
	return g
}

// MarkScrolledToEnd 标记已读到文末
func (g *Gate) MarkScrolledToEnd() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.scrolled = true
	return g.maybeFire()
}

// MarkDwellElapsed 标记已停留满时长
func (g *Gate) MarkDwellElapsed() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.dwelled = true
	return g.maybeFire()
}

// WaitDwell 阻塞等待停留时长后标记；ctx 取消则直接返回
func (g *Gate) WaitDwell(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return g.MarkDwellElapsed()
	}
}

// Fired 是否已触发上报
func (g *Gate) Fired() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fired
}

// 双条件检查：任一触发源都会调用，条件齐备且会话内未上报时执行动作。
// 调用方需持有锁
func (g *Gate) maybeFire() error {
	if g.fired || !g.scrolled || !g.dwelled {
		return nil
	}
	if _, ok, _ := g.session.Get(g.sessionKey); ok {
		g.fired = true
		return nil
	}

	if err := g.action(); err != nil {
		// 上报失败不置会话标记，后续触发源到达时还有机会重试
		return err
	}
	g.fired = true
	return g.session.Set(g.sessionKey, []byte("true"))
}
