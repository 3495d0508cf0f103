package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorconnect/pkg/errors"
)

func TestStartChat_IsIdempotentPerPair(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice, bob)
	ctx := context.Background()

	first, err := f.chatUC.StartChat(ctx, alice, "bob")
	require.NoError(t, err)
	second, err := f.chatUC.StartChat(ctx, bob, "alice")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.ElementsMatch(t, []string{"alice", "bob"}, first.Participants)

	_, err = f.chatUC.StartChat(ctx, alice, "alice")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	_, err = f.chatUC.StartChat(ctx, alice, "ghost")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestUnreadDerivation(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice, bob)
	ctx := context.Background()

	chat, err := f.chatUC.StartChat(ctx, alice, "bob")
	require.NoError(t, err)

	unread := func(p string) bool {
		principal := alice
		if p == "bob" {
			principal = bob
		}
		chats, err := f.chatUC.ListChats(ctx, principal)
		require.NoError(t, err)
		require.Len(t, chats, 1)
		return chats[0].Unread
	}

	assert.False(t, unread("alice"), "no messages yet")
	assert.False(t, unread("bob"))

	f.tick(time.Second)
	_, err = f.chatUC.SendMessage(ctx, alice, chat.ID, "hi bob", "")
	require.NoError(t, err)

	assert.False(t, unread("alice"), "own message is never unread")
	assert.True(t, unread("bob"))

	f.tick(time.Second)
	require.NoError(t, f.chatUC.MarkChatAsRead(ctx, bob, chat.ID))
	assert.False(t, unread("bob"))

	f.tick(time.Second)
	_, err = f.chatUC.SendMessage(ctx, alice, chat.ID, "still there?", "")
	require.NoError(t, err)
	assert.True(t, unread("bob"))
}

func TestMarkChatAsRead_IsMonotonic(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice, bob)
	ctx := context.Background()

	chat, err := f.chatUC.StartChat(ctx, alice, "bob")
	require.NoError(t, err)

	// The sender's clock runs ahead of the reader's.
	f.tick(time.Hour)
	_, err = f.chatUC.SendMessage(ctx, alice, chat.ID, "from the future", "")
	require.NoError(t, err)
	f.tick(-time.Hour)

	require.NoError(t, f.chatUC.MarkChatAsRead(ctx, bob, chat.ID))
	stored, err := f.chats.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	mark := stored.LastRead["bob"]
	assert.Equal(t, stored.LastMessage.Timestamp, mark)
	assert.False(t, stored.IsUnreadFor("bob"))

	f.tick(-time.Minute)
	require.NoError(t, f.chatUC.MarkChatAsRead(ctx, bob, chat.ID))
	stored, err = f.chats.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, mark, stored.LastRead["bob"], "watermark never moves backwards")
}

func TestSendMessage(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice, bob, carol)
	ctx := context.Background()

	chat, err := f.chatUC.StartChat(ctx, alice, "bob")
	require.NoError(t, err)

	_, err = f.chatUC.SendMessage(ctx, carol, chat.ID, "let me in", "")
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = f.chatUC.SendMessage(ctx, alice, chat.ID, "   ", "")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	for _, text := range []string{"one", "two", "three"} {
		f.tick(time.Second)
		_, err = f.chatUC.SendMessage(ctx, alice, chat.ID, text, "")
		require.NoError(t, err)
	}

	msgs, err := f.chatUC.ListMessages(ctx, bob, chat.ID, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "two", msgs[0].Text)
	assert.Equal(t, "three", msgs[1].Text)

	_, err = f.chatUC.ListMessages(ctx, carol, chat.ID, 10)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	stored, err := f.chats.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastMessage)
	assert.Equal(t, "three", stored.LastMessage.Text)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultMessageLimit, clampLimit(0))
	assert.Equal(t, MaxMessageLimit, clampLimit(10_000))
	assert.Equal(t, 7, clampLimit(7))
}
