// File: websocket.go
// Title: WebSocket Parse Endpoint
// Description: JSON messages over a WebSocket connection: parse and
//              tokens requests are answered in order, ping with pong.
// Author: msto63
// Version: v0.1.0
// Created: 2025-04-01
// Modified: 2025-04-14
//
// Change History:
// - 2025-04-01 v0.1.0: Initial endpoint
// - 2025-04-14 v0.1.0: Message size bounded by the parser input limit

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/smython/foundation/core/error"
	mdwlog "github.com/msto63/smython/foundation/core/log"
)

// Message types
const (
	TypeParse  = "parse"
	TypeTokens = "tokens"
	TypePing   = "ping"
	TypeResult = "result"
	TypeError  = "error"
	TypePong   = "pong"
)

const readTimeout = 120 * time.Second

// envelopeSize leaves room for the JSON fields around the source
const envelopeSize = 4096

// readLimit bounds one client message for sources of up to maxInput
// bytes. A JSON escape spends at most six bytes on one source byte.
func readLimit(maxInput int) int64 {
	return int64(maxInput)*6 + envelopeSize
}

// Request is a client message
type Request struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`
	Source string `json:"source,omitempty"`
}

// Response is a server message. Result is set for parse and tokens
// requests; Tokens only when tokenizing succeeded.
type Response struct {
	Type   string        `json:"type"`
	ID     string        `json:"id,omitempty"`
	Result *ParseResult  `json:"result,omitempty"`
	Tokens []Token       `json:"tokens,omitempty"`
	Error  *ErrorPayload `json:"error,omitempty"`
}

// ErrorPayload describes a rejected request
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WebSocketHandler serves the parse protocol on upgraded connections
type WebSocketHandler struct {
	svc      *Service
	logger   *mdwlog.Logger
	limit    int64
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a handler
func NewWebSocketHandler(svc *Service, logger *mdwlog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		svc:    svc,
		logger: logger,
		limit:  readLimit(svc.engine.Parser().Options().MaxInputLength),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// local tool: editors connect from arbitrary origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP handles the upgrade and the connection
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", mdwlog.Fields{"error": err.Error()})
		return
	}
	h.handleConnection(conn)
}

func (h *WebSocketHandler) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	logger := h.logger.WithRequestID(uuid.NewString())
	logger.Info("WebSocket connection established", mdwlog.Fields{"remote": conn.RemoteAddr().String()})

	conn.SetReadLimit(h.limit)
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", mdwlog.Fields{"error": err.Error()})
			} else {
				logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			h.send(conn, logger, errorResponse("", "invalid_message", "message is not valid JSON"))
			continue
		}
		h.send(conn, logger, h.handle(req))
	}
}

// handle answers one request
func (h *WebSocketHandler) handle(req Request) Response {
	switch req.Type {
	case TypePing:
		return Response{Type: TypePong, ID: req.ID}

	case TypeParse:
		res, err := h.svc.Parse(req.Source)
		if err != nil {
			return rejected(req.ID, err)
		}
		return Response{Type: TypeResult, ID: req.ID, Result: res}

	case TypeTokens:
		toks, res, err := h.svc.Tokenize(req.Source)
		if err != nil {
			return rejected(req.ID, err)
		}
		if !res.OK {
			return Response{Type: TypeResult, ID: req.ID, Result: res}
		}
		return Response{Type: TypeTokens, ID: req.ID, Tokens: toks}
	}
	return errorResponse(req.ID, "unknown_type", "unknown message type: "+req.Type)
}

func rejected(id string, err error) Response {
	code := "internal"
	if mdwerror.HasCode(err, mdwerror.CodeInputTooLarge) {
		code = "input_too_large"
	}
	return errorResponse(id, code, err.Error())
}

func errorResponse(id, code, msg string) Response {
	return Response{Type: TypeError, ID: id, Error: &ErrorPayload{Code: code, Message: msg}}
}

func (h *WebSocketHandler) send(conn *websocket.Conn, logger *mdwlog.Logger, resp Response) {
	if err := conn.WriteJSON(resp); err != nil {
		logger.Warn("WebSocket send error", mdwlog.Fields{"error": err.Error()})
	}
}
