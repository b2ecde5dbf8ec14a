package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
)

// GenerateSessionSecret produces a random 32-byte secret, hex encoded,
// suitable for signing sessions and CSRF tokens.
func GenerateSessionSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// resolveTokenSecret returns the configured bearer token HMAC key, or a
// random ephemeral one when none is set. An empty key would let anyone
// mint valid admin tokens offline, so it is never used verbatim.
func resolveTokenSecret(configured string) []byte {
	if configured != "" {
		return []byte(configured)
	}
	generated, err := GenerateSessionSecret()
	if err != nil {
		log.Fatalf("Failed to generate token secret: %v", err)
	}
	log.Printf("AUTH_TOKEN_SECRET not set, using an ephemeral secret; admin tokens will not survive a restart")
	return []byte(generated)
}
