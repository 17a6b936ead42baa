package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/coder/websocket"

	"github.com/pagewright/pagewright/internal/logging"
)

// hub tracks connected preview clients and pushes reload notifications.
type hub struct {
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
	logger  logging.Logger
}

func newHub(logger logging.Logger) *hub {
	return &hub{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger.WithComponent("websocket"),
	}
}

// handle upgrades the request and parks the connection until the client
// goes away. Clients never send anything meaningful; the socket exists for
// server push only.
func (h *hub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		h.logger.Warn(r.Context(), err, "websocket accept failed")
		return
	}

	h.mutex.Lock()
	h.clients[conn] = struct{}{}
	h.mutex.Unlock()

	defer func() {
		h.mutex.Lock()
		delete(h.clients, conn)
		h.mutex.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	// block until the peer closes or the request context ends
	ctx := r.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

// broadcast sends a text message to every connected client, dropping
// connections that fail to accept it.
func (h *hub) broadcast(ctx context.Context, message string) {
	h.mutex.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mutex.Unlock()

	for _, conn := range conns {
		if err := conn.Write(ctx, websocket.MessageText, []byte(message)); err != nil {
			h.mutex.Lock()
			delete(h.clients, conn)
			h.mutex.Unlock()
			conn.Close(websocket.StatusNormalClosure, "")
		}
	}
}

// count returns the number of connected clients.
func (h *hub) count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// closeAll disconnects every client, used during shutdown.
func (h *hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		conn.Close(websocket.StatusServiceRestart, "server shutting down")
	}
	h.clients = make(map[*websocket.Conn]struct{})
}
