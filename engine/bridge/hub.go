package bridge

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	defaultQueueSize    = 64
	defaultWriteTimeout = 5 * time.Second
	closeGracePeriod    = time.Second
)

type hubClient struct {
	id    string
	conn  *websocket.Conn
	queue chan Envelope
	once  sync.Once
	done  chan struct{}
}

// close sends a normal-closure frame so the peer sees a clean shutdown, then drops the connection.
func (c *hubClient) close() {
	c.once.Do(func() {
		close(c.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGracePeriod))
		_ = c.conn.Close()
	})
}

type hubImpl struct {
	upgrader     websocket.Upgrader
	clients      map[string]*hubClient
	queueSize    int
	writeTimeout time.Duration
	logger       *zap.Logger
	mu           *sync.Mutex
}

// Hub is a Channel that fans commands out to UI surfaces connected over websocket.
// Each connected client has its own ordered write queue; a client whose queue overflows
// or whose connection fails is dropped without affecting the others.
type Hub interface {
	Channel
	http.Handler

	// ClientCount returns the number of currently connected UI surfaces.
	//
	// Returns:
	//   - int: the number of connected clients
	ClientCount() int

	// Close disconnects every client.
	Close()
}

var _ Hub = &hubImpl{}

// NewHub creates a websocket hub. Mount it on an http.ServeMux at the bridge path.
//
// Parameters:
//   - options: functional options to configure the hub
//
// Returns:
//   - Hub: the hub
func NewHub(options ...HubBuilderOption) Hub {
	h := &hubImpl{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients:      make(map[string]*hubClient),
		queueSize:    defaultQueueSize,
		writeTimeout: defaultWriteTimeout,
		logger:       zap.NewNop(),
		mu:           &sync.Mutex{},
	}
	for _, option := range options {
		option(h)
	}
	return h
}

func (h *hubImpl) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &hubClient{
		id:    uuid.NewString(),
		conn:  conn,
		queue: make(chan Envelope, h.queueSize),
		done:  make(chan struct{}),
	}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.logger.Info("ui surface connected", zap.String("client", c.id), zap.String("remote", conn.RemoteAddr().String()))

	go h.writeLoop(c)
	h.readLoop(c)
}

// readLoop only watches for the peer going away; the UI surface sends nothing the console needs.
func (h *hubImpl) readLoop(c *hubClient) {
	defer h.drop(c, nil)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *hubImpl) writeLoop(c *hubClient) {
	for {
		select {
		case <-c.done:
			return
		case env := <-c.queue:
			if h.writeTimeout > 0 {
				_ = c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			}
			if err := c.conn.WriteJSON(env); err != nil {
				h.drop(c, err)
				return
			}
		}
	}
}

func (h *hubImpl) drop(c *hubClient, cause error) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()

	c.close()
	if !ok {
		return
	}
	if cause != nil {
		h.logger.Warn("ui surface dropped", zap.String("client", c.id), zap.Error(cause))
		return
	}
	h.logger.Info("ui surface disconnected", zap.String("client", c.id))
}

func (h *hubImpl) Post(cmd Command) error {
	if !cmd.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	env := NewEnvelope(cmd)

	h.mu.Lock()
	var overflow []*hubClient
	for _, c := range h.clients {
		select {
		case c.queue <- env:
		default:
			overflow = append(overflow, c)
		}
	}
	h.mu.Unlock()

	for _, c := range overflow {
		h.drop(c, fmt.Errorf("write queue full (%d)", h.queueSize))
	}
	return nil
}

func (h *hubImpl) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hubImpl) Close() {
	h.mu.Lock()
	clients := make([]*hubClient, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.drop(c, nil)
	}
}
