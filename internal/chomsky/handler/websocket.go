package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	mdwerror "github.com/msto63/minilang/foundation/core/error"
	"github.com/msto63/minilang/foundation/lang"
	"github.com/msto63/minilang/internal/chomsky/service"
	"github.com/msto63/minilang/pkg/core/logging"
)

// Checker is the part of the analysis service the handler needs
type Checker interface {
	Check(ctx context.Context, req *service.CheckRequest) (*service.CheckResponse, error)
}

// WebSocket upgrader with permissive settings for local development
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	readTimeout = 120 * time.Second

	// envelopeAllowance covers message type, name and field names
	envelopeAllowance = 64 << 10
)

// ReadLimit returns the largest message accepted for sources of up to
// maxInput bytes. JSON escaping takes at most six bytes per source byte.
func ReadLimit(maxInput int) int64 {
	if maxInput <= 0 {
		maxInput = lang.DefaultMaxInputLength
	}
	return 6*int64(maxInput) + envelopeAllowance
}

// WebSocketHandler checks programs sent over a WebSocket connection
type WebSocketHandler struct {
	checker   Checker
	logger    *logging.Logger
	timeout   time.Duration
	readLimit int64
}

// NewWebSocketHandler creates a new WebSocket handler. The read limit follows
// the checker's MaxInputLength when it has one.
func NewWebSocketHandler(checker Checker, logger *logging.Logger) *WebSocketHandler {
	if logger == nil {
		logger = logging.New("chomsky-websocket")
	}
	maxInput := 0
	if l, ok := checker.(interface{ MaxInputLength() int }); ok {
		maxInput = l.MaxInputLength()
	}
	return &WebSocketHandler{
		checker:   checker,
		logger:    logger,
		timeout:   30 * time.Second,
		readLimit: ReadLimit(maxInput),
	}
}

// WithReadLimit overrides the largest accepted message size in bytes
func (h *WebSocketHandler) WithReadLimit(n int64) *WebSocketHandler {
	h.readLimit = n
	return h
}

// WSMessage represents an incoming WebSocket message
type WSMessage struct {
	Type    string          `json:"type"`    // "check", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSCheckPayload is the payload of a "check" message
type WSCheckPayload struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	IncludeTree bool   `json:"include_tree,omitempty"`
}

// WSResponse represents an outgoing WebSocket message
type WSResponse struct {
	Type    string      `json:"type"` // "result", "error", "pong"
	Payload interface{} `json:"payload"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeHTTP handles the WebSocket upgrade and the connection
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

type wsConn struct {
	*websocket.Conn
	writeMu sync.Mutex
}

func (c *wsConn) send(resp WSResponse) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.WriteJSON(resp)
}

// handleConnection serves messages one at a time until the peer goes away
func (h *WebSocketHandler) handleConnection(ctx context.Context, raw *websocket.Conn) {
	conn := &wsConn{Conn: raw}
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	h.logger.Info("WebSocket connection established", "remote", remote)

	conn.SetReadLimit(h.readLimit)
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if errors.Is(err, websocket.ErrReadLimit) {
				h.logger.Warn("WebSocket message too large", "remote", remote, "limit", h.readLimit)
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "remote", remote, "error", err)
			} else {
				h.logger.Info("WebSocket connection closed", "remote", remote)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		switch msg.Type {
		case "ping":
			h.sendResponse(conn, WSResponse{Type: "pong"})

		case "check":
			var payload WSCheckPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				h.sendError(conn, "invalid_payload", "invalid check payload")
				continue
			}
			h.handleCheck(ctx, conn, payload)

		default:
			h.sendError(conn, "unknown_type", "unknown message type: "+msg.Type)
		}
	}
}

func (h *WebSocketHandler) handleCheck(ctx context.Context, conn *wsConn, payload WSCheckPayload) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp, err := h.checker.Check(ctx, &service.CheckRequest{
		Name:        payload.Name,
		Source:      payload.Source,
		IncludeTree: payload.IncludeTree,
	})
	if err != nil {
		h.sendError(conn, errorCode(err), mdwMessage(err))
		return
	}

	h.sendResponse(conn, WSResponse{Type: "result", Payload: resp})
}

func (h *WebSocketHandler) sendResponse(conn *wsConn, resp WSResponse) {
	if err := conn.send(resp); err != nil {
		h.logger.Error("WebSocket send error", "error", err)
	}
}

func (h *WebSocketHandler) sendError(conn *wsConn, code, message string) {
	h.sendResponse(conn, WSResponse{
		Type:    "error",
		Payload: WSErrorPayload{Code: code, Message: message},
	})
}

func errorCode(err error) string {
	switch mdwerror.GetCode(err) {
	case mdwerror.CodeInvalidInput:
		return "invalid_input"
	case mdwerror.CodeTimeout:
		return "timeout"
	case mdwerror.CodeDatabaseError, mdwerror.CodeServiceUnavailable:
		return "service_unavailable"
	default:
		return "internal"
	}
}

func mdwMessage(err error) string {
	var e *mdwerror.Error
	if errors.As(err, &e) {
		return e.Message()
	}
	return err.Error()
}
