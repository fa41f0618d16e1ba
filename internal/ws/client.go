package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/octoboard/octoboard/internal/blocks"
)

// UpdateHandler receives each changed-block batch pushed by the server.
type UpdateHandler func(changed []blocks.Block)

// Listener is a client connection to a server's change socket. It runs a
// read loop in the background and invokes the handler for every batch.
type Listener struct {
	conn    *websocket.Conn
	handler UpdateHandler
	logger  *slog.Logger

	connLock  sync.Mutex
	closeOnce sync.Once
	closed    chan struct{}
}

// Dial connects to the change socket at url (a ws:// or wss:// endpoint) and
// starts delivering batches to handler until Close is called or the
// connection drops.
func Dial(ctx context.Context, url string, handler UpdateHandler, logger *slog.Logger) (*Listener, error) {
	conn, res, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}
	if res != nil && res.Body != nil {
		res.Body.Close()
	}

	l := &Listener{
		conn:    conn,
		handler: handler,
		logger:  logger,
		closed:  make(chan struct{}),
	}
	go l.readPump()
	return l, nil
}

// Subscribe narrows the listener to the given block ids. Without a
// subscription the server pushes every change.
func (l *Listener) Subscribe(blockIDs ...string) error {
	return l.send(CommandMessage{Action: ActionSubscribe, BlockIDs: blockIDs})
}

// Unsubscribe removes block ids from the subscription.
func (l *Listener) Unsubscribe(blockIDs ...string) error {
	return l.send(CommandMessage{Action: ActionUnsubscribe, BlockIDs: blockIDs})
}

func (l *Listener) send(command CommandMessage) error {
	select {
	case <-l.closed:
		return errors.New("listener is closed")
	default:
	}
	l.connLock.Lock()
	defer l.connLock.Unlock()
	if err := l.conn.WriteJSON(command); err != nil {
		return fmt.Errorf("failed to send %s command: %w", command.Action, err)
	}
	return nil
}

// Close stops the read loop and closes the connection.
func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.closed)
		l.connLock.Lock()
		defer l.connLock.Unlock()
		err = l.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		closeErr := l.conn.Close()
		if err == nil {
			err = closeErr
		}
	})
	return err
}

func (l *Listener) readPump() {
	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			select {
			case <-l.closed:
			default:
				l.logger.Error("change socket read failed", "error", err)
			}
			return
		}
		var update UpdateMessage
		if err := json.Unmarshal(data, &update); err != nil {
			l.logger.Error("invalid change message", "error", err)
			continue
		}
		if update.Action != ActionUpdateBlocks || len(update.Blocks) == 0 {
			continue
		}
		l.handler(update.Blocks)
	}
}
