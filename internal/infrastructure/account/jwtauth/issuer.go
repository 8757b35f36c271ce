package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/riskibarqy/tournament-league/internal/domain/user"
)

var (
	ErrInvalidToken = errors.New("invalid access token")
	ErrEmptySecret  = errors.New("jwt secret is required")
)

// Claims is the access token payload.
type Claims struct {
	UserID int64 `json:"user_id"`
	Role   int   `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret, issuer string, ttl time.Duration, now func() time.Time) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be > 0")
	}
	if now == nil {
		now = time.Now
	}
	return &Issuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    now,
	}, nil
}

func (i *Issuer) Issue(_ context.Context, principal user.Principal) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		UserID: principal.UserID,
		Role:   int(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   fmt.Sprint(principal.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (i *Issuer) Parse(_ context.Context, raw string) (user.Principal, error) {
	var claims Claims
	// Time based claims are checked below against the injected clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	token, err := parser.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return user.Principal{}, ErrInvalidToken
	}

	now := i.now()
	if !claims.VerifyExpiresAt(now, true) {
		return user.Principal{}, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}
	if i.issuer != "" && !claims.VerifyIssuer(i.issuer, true) {
		return user.Principal{}, fmt.Errorf("%w: unexpected issuer", ErrInvalidToken)
	}
	if claims.UserID <= 0 {
		return user.Principal{}, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}

	return user.Principal{UserID: claims.UserID, Role: user.Role(claims.Role)}, nil
}
