package eventbus

import (
	"context"
	"sync"
	"time"
)

// 事件类型（供 SSE 前端订阅刷新）
const (
	EventActivityLogged  = "activity_logged"
	EventStatsUpdated    = "stats_updated"
	EventSettingsUpdated = "settings_updated"
)

// Event 广播事件
type Event struct {
	Type      string         `json:"type"`
	UserID    string         `json:"user_id,omitempty"`
	Timestamp int64          `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// Hub 进程内事件广播器
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// NewHub 创建广播器
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Publish 广播事件，慢消费者直接丢弃
func (h *Hub) Publish(evt Event) {
	if h == nil {
		return
	}
	if evt.Timestamp == 0 {
		evt.Timestamp = time.Now().UnixMilli()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
			// 丢弃，避免阻塞写入链路
		}
	}
}

// Subscribe 订阅事件，ctx 结束时自动退订
func (h *Hub) Subscribe(ctx context.Context, buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}()

	return ch
}
