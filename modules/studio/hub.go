package studio

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lithammer/shortuuid/v4"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/account"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/auth"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/workspace"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// 메시지 타입
const (
	MessageSnapshot = "snapshot"
	MessagePing     = "ping"
	MessagePong     = "pong"
	MessageRefresh  = "refresh"
)

// Message - 웹소켓 메시지
type Message struct {
	Type     string              `json:"type"`
	ClientID string              `json:"clientId,omitempty"`
	Snapshot *workspace.Snapshot `json:"snapshot,omitempty"`
}

// Hub - 오너별 워크스페이스 상태를 연결된 클라이언트에 푸시
type Hub struct {
	upgrader websocket.Upgrader
	registry *account.Registry

	mu      sync.RWMutex
	clients map[string]*wsClient

	log logger.Logger
}

type wsClient struct {
	id    string
	owner string
	conn  *websocket.Conn
	send  chan []byte

	mu          sync.Mutex
	closed      bool
	closeOnce   sync.Once
	unsubscribe func()
	acct        *account.Context
}

func NewHub(registry *account.Registry, log logger.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// 인증은 Authenticate 미들웨어에서 처리
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		registry: registry,
		clients:  make(map[string]*wsClient),
		log:      log,
	}
}

// ServeHTTP - /ws 업그레이드. 접속 직후 모든 워크스페이스 스냅샷 전송
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.OwnerFromContext(r.Context())
	if !ok {
		writeError(w, r, auth.ErrMissingToken)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("⚠️ [Hub] WebSocket upgrade failed")
		return
	}

	acct := h.registry.Get(r.Context(), owner)
	acct.Retain()

	c := &wsClient{
		id:    shortuuid.New(),
		owner: owner.Key(),
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		acct:  acct,
	}
	h.add(c)

	c.push(Message{Type: MessageRefresh, ClientID: c.id}, h.log)
	h.sendSnapshots(c)
	c.unsubscribe = acct.Workspaces.Subscribe(func(snap workspace.Snapshot) {
		c.push(Message{Type: MessageSnapshot, Snapshot: &snap}, h.log)
	})

	go h.writePump(c)
	go h.readPump(c)
}

// Len - 연결 수
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close - 모든 연결 종료 (서버 종료 시)
func (h *Hub) Close() {
	h.mu.Lock()
	all := h.clients
	h.clients = make(map[string]*wsClient)
	h.mu.Unlock()

	for _, c := range all {
		h.release(c)
	}
}

func (h *Hub) add(c *wsClient) {
	h.mu.Lock()
	h.clients[c.id] = c
	count := len(h.clients)
	h.mu.Unlock()
	h.log.Info().Str("client", c.id).Str("owner", c.owner).Int("clients", count).Msg("👤 [Hub] Client connected")
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	delete(h.clients, c.id)
	count := len(h.clients)
	h.mu.Unlock()
	h.release(c)
	h.log.Info().Str("client", c.id).Str("owner", c.owner).Int("clients", count).Msg("👋 [Hub] Client disconnected")
}

// release - 구독 해제, 채널 닫기 (한 번만)
func (h *Hub) release(c *wsClient) {
	c.closeOnce.Do(func() {
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
		c.acct.Release()
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
	})
}

func (h *Hub) sendSnapshots(c *wsClient) {
	for _, snap := range c.acct.Workspaces.Snapshots() {
		c.push(Message{Type: MessageSnapshot, Snapshot: &snap}, h.log)
	}
}

// push - 막히지 않게. 버퍼가 가득 차면 버린다
func (c *wsClient) push(msg Message, log logger.Logger) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("❌ [Hub] Failed to marshal message")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Warn().Str("client", c.id).Msg("⚠️ [Hub] Send buffer full, dropping message")
	}
}

func (h *Hub) readPump(c *wsClient) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn().Err(err).Str("client", c.id).Msg("⚠️ [Hub] WebSocket error")
			}
			return
		}

		switch msg.Type {
		case MessagePing:
			c.push(Message{Type: MessagePong}, h.log)
		case MessageRefresh:
			h.sendSnapshots(c)
		default:
			h.log.Debug().Str("client", c.id).Str("type", msg.Type).Msg("🔍 [Hub] Ignoring message")
		}
	}
}

func (h *Hub) writePump(c *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.log.Warn().Err(err).Str("client", c.id).Msg("⚠️ [Hub] WebSocket write error")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
