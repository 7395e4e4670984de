package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// TokenKeyBytes is the amount of randomness in a token key; keys are hex encoded.
const TokenKeyBytes = 20

// TokenKeyLength is the length of an encoded key
const TokenKeyLength = TokenKeyBytes * 2

// Token errors
var (
	ErrMissingToken  = errors.New("missing token")
	ErrInvalidFormat = errors.New("invalid token format")
)

// GenerateTokenKey returns a new opaque, unguessable token key
func GenerateTokenKey() (string, error) {
	buf := make([]byte, TokenKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ExtractToken extracts the key from an Authorization header.
// Both "Token <key>" and "Bearer <key>" are accepted.
func ExtractToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 {
		return "", ErrInvalidFormat
	}
	if !strings.EqualFold(parts[0], "token") && !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidFormat
	}

	key := parts[1]
	if len(key) != TokenKeyLength {
		return "", ErrInvalidFormat
	}
	if _, err := hex.DecodeString(key); err != nil {
		return "", ErrInvalidFormat
	}
	return key, nil
}
