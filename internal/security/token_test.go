package security

import (
	"errors"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	sig := SignToken("server-secret", "2OhQO9DnyyBW6ZJneCU3DlZBMEu", "digest-abc", 1693500000)
	encoded := EncodeToken("2OhQO9DnyyBW6ZJneCU3DlZBMEu", 1693500000, sig)

	tok, err := DecodeToken(encoded)
	if err != nil {
		t.Fatalf("DecodeToken error: %v", err)
	}
	if tok.UserID != "2OhQO9DnyyBW6ZJneCU3DlZBMEu" {
		t.Fatalf("user id mismatch: %q", tok.UserID)
	}
	if tok.ExpiresAt != 1693500000 {
		t.Fatalf("expiry mismatch: %d", tok.ExpiresAt)
	}
	if tok.Signature != sig {
		t.Fatalf("signature mismatch: %q", tok.Signature)
	}
}

func TestDecodeTokenMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":             "",
		"two fields":        "abc-123",
		"four fields":       "a-b-c-d",
		"non-numeric expiry": "abc-notanumber-ffff",
	}
	for name, input := range cases {
		if _, err := DecodeToken(input); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("%s: expected ErrMalformedToken, got %v", name, err)
		}
	}
}

func TestSignTokenDeterministic(t *testing.T) {
	a := SignToken("s", "u1", "d1", 1000)
	b := SignToken("s", "u1", "d1", 1000)
	if a != b {
		t.Fatalf("same inputs produced different signatures")
	}
}

func TestSignTokenSensitivity(t *testing.T) {
	base := SignToken("s", "u1", "d1", 1000)
	for name, other := range map[string]string{
		"secret":  SignToken("s2", "u1", "d1", 1000),
		"user":    SignToken("s", "u2", "d1", 1000),
		"digest":  SignToken("s", "u1", "d2", 1000),
		"expires": SignToken("s", "u1", "d1", 1001),
	} {
		if other == base {
			t.Fatalf("changing %s did not change the signature", name)
		}
	}
}

func TestVerifySignature(t *testing.T) {
	sig := SignToken("s", "u1", "d1", 1000)
	if !VerifySignature(sig, sig) {
		t.Fatalf("expected matching signatures to verify")
	}
	if VerifySignature(sig, SignToken("s", "u1", "d1", 1001)) {
		t.Fatalf("expected mismatched signatures to fail")
	}
}
