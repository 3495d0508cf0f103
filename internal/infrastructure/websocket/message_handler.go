package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/logger"
)

const (
	MessageTypeSubscribe   = "subscribe"
	MessageTypeUnsubscribe = "unsubscribe"
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"
	MessageTypeSnapshot    = "snapshot"
	MessageTypeError       = "error"
)

// Stream names accepted in subscribe frames.
const (
	StreamRequestsReceived = "requests.received"
	StreamRequestsSent     = "requests.sent"
	StreamCollaborations   = "collaborations"
	StreamRatings          = "ratings"
	StreamNotifications    = "notifications"
	StreamChats            = "chats"
	StreamMessages         = "messages"
	StreamBadges           = "badges"
)

// Emit delivers one snapshot of a stream. A non-nil err ends the stream.
type Emit func(data interface{}, err error)

// StreamSource opens a live stream for principal. The returned function
// releases it.
type StreamSource interface {
	Open(ctx context.Context, principal entity.Principal, stream string, params map[string]string, emit Emit) (func(), error)
}

// ClientMessage is a frame sent by the client.
type ClientMessage struct {
	Type   string            `json:"type"`
	ID     string            `json:"id,omitempty"`
	Stream string            `json:"stream,omitempty"`
	Params map[string]string `json:"params,omitempty"`
}

// ServerMessage is a frame sent to the client.
type ServerMessage struct {
	Type   string      `json:"type"`
	ID     string      `json:"id,omitempty"`
	Stream string      `json:"stream,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Code   string      `json:"code,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func (m *Manager) HandleClientMessage(ctx context.Context, client *Client, raw []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		m.sendError(client, "", "", errors.BadRequest("Invalid message format", err))
		return
	}

	switch msg.Type {
	case MessageTypePing:
		m.send(client, ServerMessage{Type: MessageTypePong})

	case MessageTypeSubscribe:
		m.handleSubscribe(ctx, client, msg)

	case MessageTypeUnsubscribe:
		if !client.untrack(msg.ID) {
			m.sendError(client, msg.ID, "", errors.NotFound(fmt.Sprintf("Subscription %q", msg.ID), nil))
		}

	default:
		m.sendError(client, msg.ID, "", errors.BadRequest(fmt.Sprintf("Unknown message type %q", msg.Type), nil))
	}
}

func (m *Manager) handleSubscribe(ctx context.Context, client *Client, msg ClientMessage) {
	if msg.ID == "" || msg.Stream == "" {
		m.sendError(client, msg.ID, msg.Stream, errors.BadRequest("Subscribe requires id and stream", nil))
		return
	}

	id, stream := msg.ID, msg.Stream
	emit := func(data interface{}, err error) {
		if err != nil {
			m.sendError(client, id, stream, err)
			return
		}
		m.send(client, ServerMessage{Type: MessageTypeSnapshot, ID: id, Stream: stream, Data: data})
	}

	unsubscribe, err := m.source.Open(ctx, client.Principal, stream, msg.Params, emit)
	if err != nil {
		m.sendError(client, id, stream, err)
		return
	}
	client.track(id, unsubscribe)
}

func (m *Manager) send(client *Client, msg ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Error("WebSocket: failed to encode %s frame for client %s: %v", msg.Type, client.ID, err)
		return
	}
	client.enqueue(payload)
}

func (m *Manager) sendError(client *Client, id, stream string, err error) {
	message := err.Error()
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	m.send(client, ServerMessage{
		Type:   MessageTypeError,
		ID:     id,
		Stream: stream,
		Code:   errors.CodeOf(err),
		Error:  message,
	})
}
