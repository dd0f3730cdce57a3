package websocket

import (
	"sync"
)

// Hub 维护所有在线的通知连接
// 通知按员工工号路由,同一员工可能在多端同时在线,
// 连接集合按工号索引,推送时送达该员工的每一条连接
type Hub struct {
	// 按工号索引的连接集合
	connections map[string]map[*Client]bool

	// 注册新连接
	Register chan *Client

	// 注销连接
	Unregister chan *Client

	// 互斥锁,保护 connections
	mu sync.RWMutex
}

// NewHub 创建新的 Hub
func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]map[*Client]bool),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
	}
}

// Run 运行 Hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			conns := h.connections[client.UserID]
			if conns == nil {
				conns = make(map[*Client]bool)
				h.connections[client.UserID] = conns
			}
			conns[client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if conns, ok := h.connections[client.UserID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					if len(conns) == 0 {
						delete(h.connections, client.UserID)
					}
					close(client.Send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToUser 向特定员工的所有连接推送消息
// 发送缓冲满的连接跳过,由 ping/pong 超时机制负责清理
func (h *Hub) BroadcastToUser(userID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.connections[userID] {
		select {
		case client.Send <- message:
		default:
		}
	}
}

// HasClient 检查某连接是否在线
func (h *Hub) HasClient(clientID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conns := range h.connections {
		for client := range conns {
			if client.ID == clientID {
				return true
			}
		}
	}
	return false
}

// GetClientCount 获取在线连接数
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, conns := range h.connections {
		count += len(conns)
	}
	return count
}
