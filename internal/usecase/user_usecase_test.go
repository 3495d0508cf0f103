package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/pkg/errors"
)

func TestEnsureProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.userUC.EnsureProfile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.DisplayName)
	assert.Equal(t, "https://img/alice.png", created.PhotoURL)
	assert.Zero(t, created.RatingCount)

	renamed := alice
	renamed.DisplayName = "Alice Again"
	again, err := f.userUC.EnsureProfile(ctx, renamed)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.DisplayName, "an existing profile is returned unchanged")
}

func TestEnsureProfile_DisplayNameFallbacks(t *testing.T) {
	assert.Equal(t, "dana", displayNameFor(entity.Principal{Email: "dana@example.com"}))
	assert.Equal(t, "Creator", displayNameFor(entity.Principal{}))
	assert.Equal(t, "Eve", displayNameFor(entity.Principal{DisplayName: "  Eve "}))
}

func TestGetProfile_Missing(t *testing.T) {
	f := newFixture(t)

	_, err := f.userUC.GetProfile(context.Background(), "ghost")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
