package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorconnect/internal/domain/entity"
	ws "creatorconnect/internal/infrastructure/websocket"
)

type frame struct {
	Type   string          `json:"type"`
	ID     string          `json:"id"`
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
	Code   string          `json:"code"`
}

func dialStreams(t *testing.T, h *harness, p entity.Principal) *gorillaws.Conn {
	t.Helper()

	server := httptest.NewServer(h.e)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/ws?access_token=" + h.token(p)
	conn, resp, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		resp.Body.Close()
		conn.Close()
	})
	return conn
}

func readFrame(t *testing.T, conn *gorillaws.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestWebSocket_RejectsAnonymous(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	server := httptest.NewServer(h.e)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/ws"
	_, resp, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebSocket_ChatStreamFollowsMessages(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	h.seedUser(alice)
	h.seedUser(bob)
	conn := dialStreams(t, h, bob)

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: ws.MessageTypeSubscribe, ID: "c", Stream: ws.StreamChats}))
	first := readFrame(t, conn)
	require.Equal(t, ws.MessageTypeSnapshot, first.Type)
	assert.Equal(t, "c", first.ID)
	assert.JSONEq(t, `[]`, string(first.Data))

	var chat entity.Chat
	decode(t, h.do(http.MethodPost, "/v1/chats", &alice, map[string]string{"recipient_id": "bob"}), http.StatusOK, &chat)
	decode(t, h.do(http.MethodPost, "/v1/chats/"+chat.ID+"/messages", &alice, map[string]string{"text": "hi"}), http.StatusCreated, nil)

	var unread bool
	for !unread {
		f := readFrame(t, conn)
		require.Equal(t, ws.MessageTypeSnapshot, f.Type)
		var chats []chatSummary
		require.NoError(t, json.Unmarshal(f.Data, &chats))
		unread = len(chats) == 1 && chats[0].Unread
	}

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: ws.MessageTypeSubscribe, ID: "m", Stream: ws.StreamMessages, Params: map[string]string{"chatId": chat.ID, "limit": "5"}}))
	msgs := readFrame(t, conn)
	require.Equal(t, ws.MessageTypeSnapshot, msgs.Type)
	var messages []entity.Message
	require.NoError(t, json.Unmarshal(msgs.Data, &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Text)
}

func TestWebSocket_StreamErrors(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	h.seedUser(alice)
	h.seedUser(bob)
	conn := dialStreams(t, h, bob)

	tests := []struct {
		name string
		msg  ws.ClientMessage
		code string
	}{
		{"unknown stream", ws.ClientMessage{Type: ws.MessageTypeSubscribe, ID: "x", Stream: "payments"}, "BAD_REQUEST"},
		{"messages without chat", ws.ClientMessage{Type: ws.MessageTypeSubscribe, ID: "m", Stream: ws.StreamMessages}, "BAD_REQUEST"},
		{"bad limit", ws.ClientMessage{Type: ws.MessageTypeSubscribe, ID: "l", Stream: ws.StreamMessages, Params: map[string]string{"chatId": "c", "limit": "-1"}}, "BAD_REQUEST"},
		{"missing chat", ws.ClientMessage{Type: ws.MessageTypeSubscribe, ID: "n", Stream: ws.StreamMessages, Params: map[string]string{"chatId": "nope"}}, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, conn.WriteJSON(tt.msg))
			f := readFrame(t, conn)
			assert.Equal(t, ws.MessageTypeError, f.Type)
			assert.Equal(t, tt.msg.ID, f.ID)
			assert.Equal(t, tt.code, f.Code)
		})
	}
}

func TestWebSocket_BadgeAndRatingStreams(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	h.seedUser(bob)
	conn := dialStreams(t, h, bob)

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: ws.MessageTypeSubscribe, ID: "b", Stream: ws.StreamBadges}))
	f := readFrame(t, conn)
	require.Equal(t, ws.MessageTypeSnapshot, f.Type)
	assert.JSONEq(t, `{"messages":0,"other":0}`, string(f.Data))

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: ws.MessageTypeSubscribe, ID: "r", Stream: ws.StreamRatings, Params: map[string]string{"userId": "alice"}}))
	f = readFrame(t, conn)
	require.Equal(t, ws.MessageTypeSnapshot, f.Type)
	assert.Equal(t, "r", f.ID)
	assert.JSONEq(t, `[]`, string(f.Data))
}
