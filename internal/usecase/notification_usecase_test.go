package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
)

func seedNotifications(t *testing.T, f *fixture, userID string, n int) {
	t.Helper()
	require.NoError(t, f.uow.Run(context.Background(), func(ctx context.Context, r repository.TxReader) (repository.TxWrites, error) {
		return func(w repository.TxWriter) error {
			for i := 0; i < n; i++ {
				note := entity.NewSystemNotification(userID, "Hello", "Welcome", entity.SystemData{})
				note.Timestamp = f.clock.Add(time.Duration(i) * time.Second)
				if err := w.CreateNotification(note); err != nil {
					return err
				}
			}
			return nil
		}, nil
	}))
}

func TestListNotifications_NewestFirst(t *testing.T) {
	f := newFixture(t)
	f.seed(t, bob)
	seedNotifications(t, f, "bob", 3)

	items, err := f.notificationUC.ListNotifications(context.Background(), bob)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.True(t, items[0].Timestamp.After(items[1].Timestamp))
	assert.True(t, items[1].Timestamp.After(items[2].Timestamp))
}

func TestMarkNotificationRead(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice, bob)
	seedNotifications(t, f, "bob", 1)
	ctx := context.Background()

	items, err := f.notificationUC.ListNotifications(ctx, bob)
	require.NoError(t, err)
	id := items[0].ID

	err = f.notificationUC.MarkNotificationRead(ctx, alice, id)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	require.NoError(t, f.notificationUC.MarkNotificationRead(ctx, bob, id))
	require.NoError(t, f.notificationUC.MarkNotificationRead(ctx, bob, id), "marking twice is a no-op")

	n, err := f.notifications.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, n.Read)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice, bob)
	seedNotifications(t, f, "bob", 5)
	seedNotifications(t, f, "alice", 2)
	ctx := context.Background()

	changed, err := f.notificationUC.MarkAllNotificationsRead(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, 5, changed)

	changed, err = f.notificationUC.MarkAllNotificationsRead(ctx, bob)
	require.NoError(t, err)
	assert.Zero(t, changed)

	counts, err := f.badgeUC.BadgeCounts(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Other, "other users are untouched")
}

func TestCanRateBack(t *testing.T) {
	collab := &entity.Collaboration{ID: "c1", ParticipantIDs: []string{"alice", "bob"}, RatedBy: []string{"alice"}}
	fromAlice := entity.NewRatingReceivedNotification("bob", 5, entity.RatingReceivedData{CollabID: "c1", RaterID: "alice"})
	system := entity.NewSystemNotification("bob", "t", "m", entity.SystemData{})

	assert.True(t, CanRateBack("bob", fromAlice, collab))
	assert.False(t, CanRateBack("alice", fromAlice, collab), "the rater cannot rate back their own rating")
	assert.False(t, CanRateBack("bob", system, collab))
	assert.False(t, CanRateBack("bob", fromAlice, nil))

	collab.RatedBy = append(collab.RatedBy, "bob")
	assert.False(t, CanRateBack("bob", fromAlice, collab))
}

func TestListRateBackPrompts(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice, bob)
	ctx := context.Background()
	collab := f.completedCollab(t, alice, bob, "P", "https://x")

	_, err := f.ratingUC.SubmitRating(ctx, alice, SubmitRatingInput{CollabID: collab.ID, RatedUserID: "bob", RatingValue: 5})
	require.NoError(t, err)

	prompts, err := f.notificationUC.ListRateBackPrompts(ctx, bob)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, collab.ID, prompts[0].Collaboration.ID)

	_, err = f.ratingUC.SubmitRating(ctx, bob, SubmitRatingInput{CollabID: collab.ID, RatedUserID: "alice", RatingValue: 4})
	require.NoError(t, err)

	prompts, err = f.notificationUC.ListRateBackPrompts(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, prompts)

	prompts, err = f.notificationUC.ListRateBackPrompts(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, prompts, "alice already rated, so bob's rating needs no answer")
}
