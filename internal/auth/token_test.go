package auth

import (
	"encoding/hex"
	"testing"
	"time"
)

func TestNewTokenService_RejectsNonPositiveTTL(t *testing.T) {
	if _, err := NewTokenService(0); err == nil {
		t.Error("NewTokenService(0) should fail")
	}
	if _, err := NewTokenService(-time.Hour); err == nil {
		t.Error("NewTokenService(-1h) should fail")
	}
}

func TestGenerate_TokenShape(t *testing.T) {
	ts, err := NewTokenService(time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	token, _, err := ts.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// 32 random bytes hex-encoded → 64 characters.
	if len(token) != tokenBytes*2 {
		t.Errorf("token length = %d, want %d", len(token), tokenBytes*2)
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Errorf("token is not valid hex: %q", token)
	}
}

func TestGenerate_TokensAreUnique(t *testing.T) {
	ts, _ := NewTokenService(time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, _, err := ts.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token after %d draws", i)
		}
		seen[token] = true
	}
}

func TestGenerate_ExpiryHonoursTTL(t *testing.T) {
	ttl := 45 * time.Minute
	ts, _ := NewTokenService(ttl)

	before := time.Now()
	_, expiresAt, err := ts.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	after := time.Now()

	if expiresAt.Before(before.Add(ttl)) || expiresAt.After(after.Add(ttl)) {
		t.Errorf("expiresAt = %v, want within [%v, %v]", expiresAt, before.Add(ttl), after.Add(ttl))
	}
}
