package app

import (
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
)

const (
	// WebSocketPingInterval 服务端 Ping 间隔（秒）
	WebSocketPingInterval = 25
	// WebSocketPingWait 客户端 Pong 超时（秒）
	WebSocketPingWait = 40
)

// WebSocketEvent 推送给客户端的事件消息
type WebSocketEvent struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
	Time    int64       `json:"time"`
}

// WebSocketHub broadcasts note and link change events to every connected
// client. It implements the publisher interface consumed by the service
// layer; a hub with zero connections drops events silently.
// WebSocketHub 向所有已连接客户端广播笔记与链接变更事件。
// 无连接时事件被静默丢弃。
type WebSocketHub struct {
	upgrader *gws.Upgrader
	logger   *zap.Logger

	mu    sync.RWMutex
	conns map[*gws.Conn]struct{}
}

func NewWebSocketHub(logger *zap.Logger) *WebSocketHub {
	hub := &WebSocketHub{
		logger: logger,
		conns:  make(map[*gws.Conn]struct{}),
	}
	hub.upgrader = gws.NewUpgrader(hub, &gws.ServerOption{
		ParallelEnabled:   true,
		Recovery:          gws.Recovery,
		PermessageDeflate: gws.PermessageDeflate{Enabled: true},
	})
	return hub
}

// Serve upgrades the request and runs the connection read loop.
// Serve 升级请求并运行连接读取循环
func (h *WebSocketHub) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	go conn.ReadLoop()
}

// Publish serializes the event and broadcasts it to every connection.
// Publish 序列化事件并广播到所有连接
func (h *WebSocketHub) Publish(event string, payload interface{}) {
	body, err := sonic.Marshal(WebSocketEvent{
		Event:   event,
		Payload: payload,
		Time:    time.Now().Unix(),
	})
	if err != nil {
		h.logger.Error("websocket event marshal failed", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	conns := make([]*gws.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(gws.OpcodeText, body); err != nil {
			h.logger.Warn("websocket event write failed", zap.String("event", event), zap.Error(err))
		}
	}
}

// ConnCount 当前连接数
func (h *WebSocketHub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close 关闭所有连接，优雅退出时调用
func (h *WebSocketHub) Close() {
	h.mu.Lock()
	conns := make([]*gws.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[*gws.Conn]struct{})
	h.mu.Unlock()

	for _, conn := range conns {
		conn.WriteClose(1000, nil)
	}
}

func (h *WebSocketHub) OnOpen(conn *gws.Conn) {
	_ = conn.SetDeadline(time.Now().Add(WebSocketPingWait * time.Second))
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("websocket client connected", zap.Int("conns", h.ConnCount()))
}

func (h *WebSocketHub) OnClose(conn *gws.Conn, err error) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	if err != nil {
		h.logger.Info("websocket client closed", zap.Error(err))
	}
}

func (h *WebSocketHub) OnPing(conn *gws.Conn, payload []byte) {
	_ = conn.SetDeadline(time.Now().Add(WebSocketPingWait * time.Second))
	_ = conn.WritePong(payload)
}

func (h *WebSocketHub) OnPong(conn *gws.Conn, payload []byte) {
	_ = conn.SetDeadline(time.Now().Add(WebSocketPingWait * time.Second))
}

// OnMessage 事件通道是单向的，客户端消息仅作为保活处理
func (h *WebSocketHub) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	_ = conn.SetDeadline(time.Now().Add(WebSocketPingWait * time.Second))
}
