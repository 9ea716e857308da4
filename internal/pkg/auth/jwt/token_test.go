package jwt

import (
	"testing"
	"time"
)

func TestToken(t *testing.T) {
	const secret = "test-secret"

	t.Run("round trip", func(t *testing.T) {
		token, err := GenerateToken("mark", secret, time.Minute)
		if err != nil {
			t.Fatalf("GenerateToken error: %v", err)
		}

		payload, err := ParseToken(token, secret)
		if err != nil {
			t.Fatalf("ParseToken error: %v", err)
		}
		if payload.Username != "mark" || payload.Issuer != TokenIssuer {
			t.Errorf("unexpected payload %+v", payload)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := GenerateToken("mark", secret, time.Minute)
		if _, err := ParseToken(token, "other"); err == nil {
			t.Error("expected error for wrong secret")
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, _ := GenerateToken("mark", secret, -time.Minute)
		if _, err := ParseToken(token, secret); err == nil {
			t.Error("expected error for expired token")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := ParseToken("not-a-token", secret); err == nil {
			t.Error("expected error for garbage input")
		}
	})
}
