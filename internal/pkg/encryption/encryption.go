// Package encryption seals session tokens before they leave the process,
// so the cache holding a persisted staff session never stores credentials
// in the clear.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// keySize is the AES-256 key length in bytes.
const keySize = 32

// Encryptor seals and opens opaque payloads, exchanging raw bytes for
// base64 ciphertext suitable for a string-valued cache entry.
type Encryptor interface {
	// Encrypt seals plaintext and returns base64-encoded ciphertext.
	Encrypt(plaintext []byte) (string, error)

	// Decrypt opens base64-encoded ciphertext produced by Encrypt.
	Decrypt(ciphertext string) ([]byte, error)

	// EncryptString seals a string payload.
	EncryptString(plaintext string) (string, error)

	// DecryptString opens a string payload.
	DecryptString(ciphertext string) (string, error)
}

// AESEncryptor implements Encryptor with AES-256-GCM. Each sealed payload
// carries its own random nonce, so sealing the same session twice never
// yields the same ciphertext.
type AESEncryptor struct {
	aead cipher.AEAD
}

// NewAESEncryptor creates an encryptor from the configured session key.
// The key must decode to exactly 32 bytes; it may be given raw or
// base64-encoded, matching how deployments tend to ship generated keys.
func NewAESEncryptor(key string) (*AESEncryptor, error) {
	keyBytes := decodeKey(key)
	if len(keyBytes) != keySize {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(keyBytes))
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESEncryptor{aead: aead}, nil
}

// decodeKey accepts a base64-encoded key, falling back to the raw bytes
// when the value does not decode.
func decodeKey(key string) []byte {
	if decoded, err := base64.StdEncoding.DecodeString(key); err == nil {
		return decoded
	}
	return []byte(key)
}

// Encrypt seals plaintext under a fresh nonce. The nonce is prepended to
// the sealed bytes so Decrypt needs nothing beyond the ciphertext itself.
func (e *AESEncryptor) Encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := e.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens ciphertext produced by Encrypt. A truncated or tampered
// payload fails authentication rather than yielding garbage tokens.
func (e *AESEncryptor) Decrypt(ciphertext string) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	nonceSize := e.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	plaintext, err := e.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// EncryptString seals a string payload.
func (e *AESEncryptor) EncryptString(plaintext string) (string, error) {
	return e.Encrypt([]byte(plaintext))
}

// DecryptString opens a string payload.
func (e *AESEncryptor) DecryptString(ciphertext string) (string, error) {
	plaintext, err := e.Decrypt(ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// GenerateKey returns a fresh base64-encoded AES-256 key, for provisioning
// SESSION_ENCRYPTION_KEY.
func GenerateKey() (string, error) {
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// NoOpEncryptor passes payloads through base64 without sealing them. Used
// when no session key is configured; sessions are then readable in the
// cache, acceptable only for local development.
type NoOpEncryptor struct{}

// NewNoOpEncryptor creates a pass-through encryptor.
func NewNoOpEncryptor() *NoOpEncryptor {
	return &NoOpEncryptor{}
}

// Encrypt returns the plaintext as base64.
func (e *NoOpEncryptor) Encrypt(plaintext []byte) (string, error) {
	return base64.StdEncoding.EncodeToString(plaintext), nil
}

// Decrypt decodes base64 and returns the plaintext.
func (e *NoOpEncryptor) Decrypt(ciphertext string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(ciphertext)
}

// EncryptString returns the plaintext as base64.
func (e *NoOpEncryptor) EncryptString(plaintext string) (string, error) {
	return e.Encrypt([]byte(plaintext))
}

// DecryptString decodes base64 and returns the plaintext.
func (e *NoOpEncryptor) DecryptString(ciphertext string) (string, error) {
	plaintext, err := e.Decrypt(ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
