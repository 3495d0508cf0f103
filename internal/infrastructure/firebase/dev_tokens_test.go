package firebase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorconnect/internal/domain/entity"
)

func TestDevTokenService_RoundTrip(t *testing.T) {
	svc := NewDevTokenService("secret", time.Hour)
	in := entity.Principal{UID: "alice", Email: "alice@example.com", DisplayName: "Alice", Role: entity.RoleAdmin}

	token, err := svc.GenerateToken(in)
	require.NoError(t, err)

	out, err := svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestDevTokenService_RejectsOtherSecret(t *testing.T) {
	token, err := NewDevTokenService("secret", time.Hour).GenerateToken(entity.Principal{UID: "alice"})
	require.NoError(t, err)

	_, err = NewDevTokenService("other", time.Hour).VerifyToken(context.Background(), token)
	assert.Error(t, err)
}

func TestDevTokenService_RejectsExpired(t *testing.T) {
	svc := NewDevTokenService("secret", -time.Minute)
	token, err := svc.GenerateToken(entity.Principal{UID: "alice"})
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), token)
	assert.Error(t, err)
}

type staticVerifier struct {
	principal *entity.Principal
	err       error
}

func (s staticVerifier) VerifyToken(ctx context.Context, token string) (*entity.Principal, error) {
	return s.principal, s.err
}

func TestChainVerifier(t *testing.T) {
	boom := errors.New("boom")
	chain := ChainVerifier{
		staticVerifier{err: boom},
		staticVerifier{principal: &entity.Principal{UID: "bob"}},
	}

	p, err := chain.VerifyToken(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, "bob", p.UID)

	_, err = ChainVerifier{staticVerifier{err: boom}}.VerifyToken(context.Background(), "t")
	assert.ErrorIs(t, err, boom)
}

func TestPrincipalFromClaims(t *testing.T) {
	p := principalFromClaims("u1", map[string]interface{}{
		"email":   "u1@example.com",
		"name":    "User One",
		"picture": "https://img/u1.png",
		"role":    7,
	})
	assert.Equal(t, "u1", p.UID)
	assert.Equal(t, "User One", p.DisplayName)
	assert.Equal(t, "https://img/u1.png", p.PhotoURL)
	assert.Empty(t, p.Role)
}
