package firebase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"creatorconnect/internal/domain/entity"
)

const devTokenIssuer = "creatorconnect-dev"

var ErrInvalidDevToken = errors.New("invalid development token")

type devClaims struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Role    string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// DevTokenService signs HS256 tokens for local development so the API can be
// exercised without a Firebase project.
type DevTokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewDevTokenService(secret string, ttl time.Duration) *DevTokenService {
	return &DevTokenService{secret: []byte(secret), ttl: ttl}
}

func (s *DevTokenService) GenerateToken(p entity.Principal) (string, error) {
	now := time.Now()
	claims := devClaims{
		Email:   p.Email,
		Name:    p.DisplayName,
		Picture: p.PhotoURL,
		Role:    p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UID,
			Issuer:    devTokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *DevTokenService) VerifyToken(ctx context.Context, tokenString string) (*entity.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &devClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidDevToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*devClaims)
	if !ok || !token.Valid || claims.Issuer != devTokenIssuer || claims.Subject == "" {
		return nil, ErrInvalidDevToken
	}

	return &entity.Principal{
		UID:         claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
		Role:        claims.Role,
	}, nil
}
