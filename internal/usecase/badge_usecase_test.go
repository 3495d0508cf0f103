package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorconnect/internal/domain/entity"
)

func TestBadgeCounts(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice, bob, carol)
	ctx := context.Background()

	_, err := f.requestUC.SendCollabRequest(ctx, alice, SendRequestInput{ReceiverID: "bob", ProjectName: "P"})
	require.NoError(t, err)
	seedNotifications(t, f, "bob", 2)

	chat, err := f.chatUC.StartChat(ctx, carol, "bob")
	require.NoError(t, err)
	_, err = f.chatUC.SendMessage(ctx, carol, chat.ID, "hey", "")
	require.NoError(t, err)

	counts, err := f.badgeUC.BadgeCounts(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, entity.BadgeCounts{Messages: 1, Other: 3}, counts)

	counts, err = f.badgeUC.BadgeCounts(ctx, carol)
	require.NoError(t, err)
	assert.Equal(t, entity.BadgeCounts{}, counts)
}

func TestSubscribeBadgeCounts(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice, bob)
	ctx := context.Background()

	var seen []entity.BadgeCounts
	unsubscribe := f.badgeUC.SubscribeBadgeCounts(ctx, bob, func(counts entity.BadgeCounts, err error) {
		require.NoError(t, err)
		seen = append(seen, counts)
	})

	req, err := f.requestUC.SendCollabRequest(ctx, alice, SendRequestInput{ReceiverID: "bob", ProjectName: "P"})
	require.NoError(t, err)

	chat, err := f.chatUC.StartChat(ctx, alice, "bob")
	require.NoError(t, err)
	f.tick(time.Second)
	_, err = f.chatUC.SendMessage(ctx, alice, chat.ID, "hi", "")
	require.NoError(t, err)

	f.tick(time.Second)
	require.NoError(t, f.chatUC.MarkChatAsRead(ctx, bob, chat.ID))
	require.NoError(t, f.requestUC.DeclineCollabRequest(ctx, bob, req.ID))

	assert.Equal(t, []entity.BadgeCounts{
		{Messages: 0, Other: 0},
		{Messages: 0, Other: 1},
		{Messages: 1, Other: 1},
		{Messages: 0, Other: 1},
		{Messages: 0, Other: 0},
	}, seen)

	unsubscribe()
	unsubscribe()
	assert.Zero(t, f.store.SubscriberCount(), "all three streams are released")
}
