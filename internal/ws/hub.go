package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/octoboard/octoboard/internal/blocks"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// writeTimeout bounds a single push so one stalled listener cannot block the
// goroutine that persisted the change.
const writeTimeout = 10 * time.Second

type listener struct {
	conn *websocket.Conn

	// connLock serializes writes; broadcasts arrive from concurrent request
	// handler goroutines and the connection allows one writer at a time.
	connLock sync.Mutex

	mu       sync.Mutex
	blockIDs map[string]struct{}
}

func (l *listener) push(message UpdateMessage) error {
	l.connLock.Lock()
	defer l.connLock.Unlock()
	l.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return l.conn.WriteJSON(message)
}

func (l *listener) subscribed(ids ...string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.blockIDs) == 0 {
		return true
	}
	for _, id := range ids {
		if _, ok := l.blockIDs[id]; ok {
			return true
		}
	}
	return false
}

func (l *listener) update(action string, ids []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range ids {
		if action == ActionSubscribe {
			l.blockIDs[id] = struct{}{}
		} else {
			delete(l.blockIDs, id)
		}
	}
}

// Hub fans persisted block changes out to websocket listeners.
type Hub struct {
	logger *slog.Logger

	mu        sync.Mutex
	listeners map[*listener]struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:    logger,
		listeners: map[*listener]struct{}{},
	}
}

// ServeHTTP upgrades the request and serves the subscription loop until the
// client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &listener{conn: conn, blockIDs: map[string]struct{}{}}
	h.mu.Lock()
	h.listeners[client] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("websocket listener connected", "remote", conn.RemoteAddr())

	defer func() {
		h.mu.Lock()
		delete(h.listeners, client)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.logger.Debug("websocket listener disconnected", "error", err)
			return
		}
		var command CommandMessage
		if err := json.Unmarshal(data, &command); err != nil {
			h.logger.Error("invalid websocket command", "error", err)
			continue
		}
		switch command.Action {
		case ActionSubscribe, ActionUnsubscribe:
			client.update(command.Action, command.BlockIDs)
		default:
			h.logger.Error("unknown websocket action", "action", command.Action)
		}
	}
}

// BroadcastChanges pushes one changed-block batch to every listener whose
// subscription matches any block in the batch by id, parent or root.
func (h *Hub) BroadcastChanges(changed []blocks.Block) {
	if len(changed) == 0 {
		return
	}
	matchIDs := make([]string, 0, len(changed)*3)
	for _, b := range changed {
		matchIDs = append(matchIDs, b.ID, b.ParentID, b.RootID)
	}
	message := UpdateMessage{Action: ActionUpdateBlocks, Blocks: changed}

	h.mu.Lock()
	targets := make([]*listener, 0, len(h.listeners))
	for client := range h.listeners {
		if client.subscribed(matchIDs...) {
			targets = append(targets, client)
		}
	}
	h.mu.Unlock()

	for _, client := range targets {
		if err := client.push(message); err != nil {
			h.logger.Error("websocket write failed", "error", err)
		}
	}
}
