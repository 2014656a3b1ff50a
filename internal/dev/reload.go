package dev

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	ReloadTypeFull  ReloadMessageType = "reload"
	ReloadTypeError ReloadMessageType = "error"
	ReloadTypeClear ReloadMessageType = "clear"
)

// ReloadMessage is sent to browsers via WebSocket.
type ReloadMessage struct {
	Type   ReloadMessageType `json:"type"`
	Error  string            `json:"error,omitempty"`
	File   string            `json:"file,omitempty"`
	Client string            `json:"client,omitempty"`
}

// ReloadServer manages WebSocket connections for live reload. Each client
// gets a random id which is sent back in a hello message.
type ReloadServer struct {
	clients  map[string]*reloadClient
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewReloadServer creates a new reload server.
func NewReloadServer(logger *slog.Logger) *ReloadServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReloadServer{
		clients: make(map[string]*reloadClient),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in preview
			},
		},
		logger: logger.With("component", "reload"),
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (r *ReloadServer) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	id := uuid.NewString()
	client := &reloadClient{conn: conn}

	r.mu.Lock()
	r.clients[id] = client
	r.mu.Unlock()
	r.logger.Debug("client connected", "client", id)

	hello, _ := json.Marshal(ReloadMessage{Type: ReloadTypeClear, Client: id})
	if err := client.send(hello); err != nil {
		r.drop(id, client)
		return
	}

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	r.drop(id, client)
	r.logger.Debug("client disconnected", "client", id)
}

// reloadClient serializes writes to one connection.
type reloadClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *reloadClient) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (r *ReloadServer) drop(id string, c *reloadClient) {
	r.mu.Lock()
	if r.clients[id] == c {
		delete(r.clients, id)
	}
	r.mu.Unlock()
	c.conn.Close()
}

// NotifyReload sends a full page reload message to all clients.
func (r *ReloadServer) NotifyReload(file string) {
	r.broadcast(ReloadMessage{Type: ReloadTypeFull, File: file})
}

// NotifyError sends an error message to all clients.
func (r *ReloadServer) NotifyError(errMsg string) {
	r.broadcast(ReloadMessage{Type: ReloadTypeError, Error: errMsg})
}

// ClearError clears the error overlay on all clients.
func (r *ReloadServer) ClearError() {
	r.broadcast(ReloadMessage{Type: ReloadTypeClear})
}

// broadcast sends a message to all connected clients.
func (r *ReloadServer) broadcast(msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	r.mu.RLock()
	clients := make(map[string]*reloadClient, len(r.clients))
	for id, client := range r.clients {
		clients[id] = client
	}
	r.mu.RUnlock()

	for id, client := range clients {
		if err := client.send(data); err != nil {
			r.drop(id, client)
		}
	}
}

// ClientCount returns the number of connected clients.
func (r *ReloadServer) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Close closes all client connections.
func (r *ReloadServer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, client := range r.clients {
		client.conn.Close()
		delete(r.clients, id)
	}
}

// ClientScript is injected before </body> of the previewed document.
const ClientScript = `
<script>
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/ws');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }

            switch (msg.type) {
                case 'reload':
                    location.reload();
                    break;
                case 'error':
                    showErrorOverlay(msg.error);
                    break;
                case 'clear':
                    clearErrorOverlay();
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    function showErrorOverlay(error) {
        clearErrorOverlay();
        var overlay = document.createElement('pre');
        overlay.id = 'forge-error-overlay';
        overlay.style.cssText = 'position:fixed;inset:0;margin:0;background:rgba(0,0,0,0.9);color:#ff5555;font-family:monospace;padding:20px;white-space:pre-wrap;z-index:999999;';
        overlay.textContent = error;
        document.body.appendChild(overlay);
    }

    function clearErrorOverlay() {
        var overlay = document.getElementById('forge-error-overlay');
        if (overlay) {
            overlay.remove();
        }
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
</script>
`
