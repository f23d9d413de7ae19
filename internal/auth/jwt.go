package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ekko-ai/agentgate/internal/config"
	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/ekko-ai/agentgate/internal/types"
)

// Claims are the identity claims carried by a gateway bearer token
type Claims struct {
	UserID   string
	TenantID string
}

// TokenValidator validates and mints bearer tokens signed with the
// gateway's shared secret
type TokenValidator struct {
	secret string
}

func NewTokenValidator(cfg *config.Configuration) *TokenValidator {
	return &TokenValidator{
		secret: cfg.Auth.Secret,
	}
}

func (v *TokenValidator) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsed, err := jwt.Parse(token, v.keyFunc)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token could not be parsed").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token missing user ID").
			Mark(ierr.ErrPermissionDenied)
	}

	// Tokens minted before tenancy was introduced carry no tenant claim
	tenantID, ok := claims["tenant_id"].(string)
	if !ok {
		tenantID = types.DefaultTenantID
	}

	return &Claims{UserID: userID, TenantID: tenantID}, nil
}

func (v *TokenValidator) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ierr.NewErrorf("unexpected signing method %v", token.Header["alg"]).
			WithHint("Token signed with an unsupported algorithm").
			Mark(ierr.ErrPermissionDenied)
	}
	return []byte(v.secret), nil
}

// GenerateToken mints an HS256 token for the user, valid for 30 days
func (v *TokenValidator) GenerateToken(userID, tenantID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   userID,
		"tenant_id": tenantID,
		"iat":       now.Unix(),
		"exp":       now.Add(30 * 24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(v.secret))
}
