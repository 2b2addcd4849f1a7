package notify

import (
	"sync"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// CountFunc 查询用户未读通知数
type CountFunc func(userId int64) (int64, error)

// Hub 未读通知推送中心
//
// 推送为 fire-and-forget：投递到协程池后立即返回，
// 推送失败只记日志，绝不影响触发它的请求
type Hub struct {
	mu        sync.RWMutex
	subs      map[int64]map[chan int64]struct{}
	pool      *ants.Pool
	countFunc CountFunc
}

// NewHub 创建推送中心
func NewHub(poolSize int, countFunc CountFunc) (*Hub, error) {
	if poolSize <= 0 {
		poolSize = 64
	}
	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &Hub{
		subs:      make(map[int64]map[chan int64]struct{}),
		pool:      pool,
		countFunc: countFunc,
	}, nil
}

// Subscribe 订阅某用户的未读数推送，返回取消函数
func (h *Hub) Subscribe(userId int64) (<-chan int64, func()) {
	ch := make(chan int64, 8)

	h.mu.Lock()
	if h.subs[userId] == nil {
		h.subs[userId] = make(map[chan int64]struct{})
	}
	h.subs[userId][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[userId]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, userId)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// PushUnreadCount 异步推送最新未读数给该用户的所有在线连接
func (h *Hub) PushUnreadCount(userId int64) {
	err := h.pool.Submit(func() {
		count, err := h.countFunc(userId)
		if err != nil {
			logger.Error("Failed to count unread notifications for user %d: %v", userId, err)
			return
		}
		h.broadcast(userId, count)
	})
	if err != nil {
		// 池满直接丢弃，推送属尽力而为
		logger.Warn("Unread push dropped for user %d: %v", userId, err)
	}
}

func (h *Hub) broadcast(userId int64, count int64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[userId] {
		select {
		case ch <- count:
		default:
			// 接收方迟滞时丢弃本次推送
		}
	}
}

// Release 关闭协程池
func (h *Hub) Release() {
	h.pool.Release()
}
