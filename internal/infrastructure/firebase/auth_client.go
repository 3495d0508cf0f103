package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"creatorconnect/internal/domain/entity"
)

// TokenVerifier turns a bearer token into the authenticated principal.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*entity.Principal, error)
}

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (*entity.Principal, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return principalFromClaims(result.UID, result.Claims), nil
}

func principalFromClaims(uid string, claims map[string]interface{}) *entity.Principal {
	p := &entity.Principal{UID: uid}
	p.Email, _ = claims["email"].(string)
	p.DisplayName, _ = claims["name"].(string)
	p.PhotoURL, _ = claims["picture"].(string)
	p.Role, _ = claims["role"].(string)
	return p
}

// ChainVerifier tries each verifier in order and returns the first success.
type ChainVerifier []TokenVerifier

func (c ChainVerifier) VerifyToken(ctx context.Context, token string) (*entity.Principal, error) {
	var lastErr error
	for _, v := range c {
		p, err := v.VerifyToken(ctx, token)
		if err == nil {
			return p, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
