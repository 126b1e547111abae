// Package vault encrypts third-party API keys before they reach the
// database. AES-256-GCM with a random 16-byte nonce per call; the output
// envelope is nonce:tag:ciphertext, each segment hex-encoded.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	nonceSize = 16
	tagSize   = 16
	keySize   = 32
)

var (
	ErrMalformedEnvelope    = errors.New("invalid encrypted data format")
	ErrAuthenticationFailed = errors.New("decryption failed: authentication error")
)

// ConfigurationError means the encryption key is missing or malformed.
// It is fatal at startup, never a per-request condition.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "vault configuration error: " + e.Reason
}

type Vault struct {
	aead cipher.AEAD
}

// New builds a vault from a 64-hex-char (32 byte) key string.
func New(hexKey string) (*Vault, error) {
	if hexKey == "" {
		return nil, &ConfigurationError{Reason: "ENCRYPTION_KEY is not set"}
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, &ConfigurationError{Reason: "ENCRYPTION_KEY must be hex encoded"}
	}
	if len(key) != keySize {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("ENCRYPTION_KEY must be %d hex characters (%d bytes)", keySize*2, keySize)}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}

	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}

	return &Vault{aead: aead}, nil
}

func (v *Vault) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := v.aead.Seal(nil, nonce, []byte(plaintext), nil)

	// Seal appends the tag to the ciphertext; the envelope keeps them as
	// separate segments.
	ct := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return fmt.Sprintf("%s:%s:%s",
		hex.EncodeToString(nonce),
		hex.EncodeToString(tag),
		hex.EncodeToString(ct),
	), nil
}

func (v *Vault) Decrypt(envelope string) (string, error) {
	parts := strings.Split(envelope, ":")
	if len(parts) != 3 {
		return "", ErrMalformedEnvelope
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil || len(nonce) != nonceSize {
		return "", ErrMalformedEnvelope
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) != tagSize {
		return "", ErrMalformedEnvelope
	}
	ct, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", ErrMalformedEnvelope
	}

	plaintext, err := v.aead.Open(nil, nonce, append(ct, tag...), nil)
	if err != nil {
		return "", ErrAuthenticationFailed
	}

	return string(plaintext), nil
}

// Preview recovers the plaintext transiently and returns its first 8
// characters. When decryption fails the preview degrades to a fixed
// redaction marker instead of surfacing the error.
func (v *Vault) Preview(envelope string) string {
	plaintext, err := v.Decrypt(envelope)
	if err != nil {
		return "***"
	}
	if len(plaintext) > 8 {
		plaintext = plaintext[:8]
	}
	return plaintext + "..."
}
