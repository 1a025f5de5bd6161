package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/appsembler/figures-backend/internal/logger"
	"github.com/appsembler/figures-backend/internal/requestdata"
)

func newTestAuthService(t *testing.T, secret string) AuthService {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return NewAuthService(nil, log, nil, secret, time.Hour)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestSetContextFromToken(t *testing.T) {
	const secret = "test-secret"
	svc := newTestAuthService(t, secret)
	userID := uuid.New()
	now := time.Now().UTC()

	tokenString := signToken(t, secret, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})

	ctx, err := svc.SetContextFromToken(context.Background(), tokenString)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatalf("request data missing from context")
	}
	if rd.UserID != userID {
		t.Fatalf("UserID = %v, want %v", rd.UserID, userID)
	}
	if rd.TokenString != tokenString {
		t.Fatalf("TokenString not carried through")
	}
}

func TestSetContextFromTokenRejects(t *testing.T) {
	const secret = "test-secret"
	svc := newTestAuthService(t, secret)
	now := time.Now().UTC()

	cases := []struct {
		name  string
		token string
	}{
		{
			name:  "garbage",
			token: "not-a-token",
		},
		{
			name: "wrong_secret",
			token: signToken(t, "other-secret", jwt.MapClaims{
				"sub": uuid.New().String(),
				"exp": now.Add(time.Hour).Unix(),
			}),
		},
		{
			name: "expired",
			token: signToken(t, secret, jwt.MapClaims{
				"sub": uuid.New().String(),
				"exp": now.Add(-time.Hour).Unix(),
			}),
		},
		{
			name: "missing_subject",
			token: signToken(t, secret, jwt.MapClaims{
				"exp": now.Add(time.Hour).Unix(),
			}),
		},
		{
			name: "non_uuid_subject",
			token: signToken(t, secret, jwt.MapClaims{
				"sub": "42",
				"exp": now.Add(time.Hour).Unix(),
			}),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SetContextFromToken(context.Background(), tc.token); err == nil {
				t.Fatalf("expected error for %s token", tc.name)
			}
		})
	}
}
