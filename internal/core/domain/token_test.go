package domain

import (
	"testing"
	"time"
)

func TestToken_Valid_ExpiryBoundary(t *testing.T) {
	expiry := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	token := Token{Value: "tok-1", Expiry: expiry}

	if !token.Valid(expiry.Add(-time.Nanosecond)) {
		t.Fatalf("token must be valid strictly before its expiry")
	}
	if token.Valid(expiry) {
		t.Fatalf("token must be invalid at the expiry instant")
	}
	if token.Valid(expiry.Add(time.Second)) {
		t.Fatalf("token must be invalid after its expiry")
	}
}

func TestToken_Valid_ZeroExpiryNeverExpires(t *testing.T) {
	token := Token{Value: "session-tok"}

	if !token.Valid(time.Now().UTC()) {
		t.Fatalf("token without a tracked expiry must stay valid")
	}
	if !token.Valid(time.Now().UTC().Add(100 * 365 * 24 * time.Hour)) {
		t.Fatalf("token without a tracked expiry must stay valid indefinitely")
	}
}

func TestToken_Valid_EmptyValue(t *testing.T) {
	token := Token{Expiry: time.Now().UTC().Add(time.Hour)}

	if token.Valid(time.Now().UTC()) {
		t.Fatalf("token without a value must never validate")
	}
}
