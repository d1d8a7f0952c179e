package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Session tokens travel as "{userID}-{expiresAtUnix}-{hexSignature}".
// The delimiter is safe: user ids are KSUIDs (base62), the expiry is a
// decimal integer and the signature is lowercase hex, none of which can
// contain '-'.
const tokenDelimiter = "-"

var ErrMalformedToken = errors.New("malformed session token")

type Token struct {
	UserID    string
	ExpiresAt int64
	Signature string
}

func EncodeToken(userID string, expiresAt int64, signature string) string {
	return strings.Join([]string{userID, strconv.FormatInt(expiresAt, 10), signature}, tokenDelimiter)
}

func DecodeToken(s string) (Token, error) {
	parts := strings.Split(s, tokenDelimiter)
	if len(parts) != 3 {
		return Token{}, ErrMalformedToken
	}
	expiresAt, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Token{}, ErrMalformedToken
	}
	return Token{
		UserID:    parts[0],
		ExpiresAt: expiresAt,
		Signature: parts[2],
	}, nil
}

// SignToken binds a token to the user's current password digest: changing
// the password silently invalidates every token issued before the change,
// which is the system's only revocation mechanism.
func SignToken(secret, userID, passwordDigest string, expiresAt int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s-%s-%d", userID, passwordDigest, expiresAt)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares in constant time.
func VerifySignature(signature, expected string) bool {
	return hmac.Equal([]byte(signature), []byte(expected))
}
