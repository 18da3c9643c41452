package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// Codec encrypts and decrypts email addresses at rest using AES-256-GCM.
// The key is injected once at construction; it is never read from the
// environment per call and never hard-coded.
type Codec struct {
	key []byte
}

// ParseEncryptionKey decodes a base64-encoded 32-byte key.
func ParseEncryptionKey(keyBase64 string) ([]byte, error) {
	if keyBase64 == "" {
		return nil, errors.New("encryption key not set")
	}

	keyBytes, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return nil, errors.New("encryption key must be base64-encoded")
	}

	// Key must be 32 bytes for AES-256
	if len(keyBytes) != 32 {
		return nil, errors.New("encryption key must decode to exactly 32 bytes (256 bits)")
	}

	return keyBytes, nil
}

// NewCodec builds a Codec from a base64-encoded 32-byte key.
func NewCodec(keyBase64 string) (*Codec, error) {
	key, err := ParseEncryptionKey(keyBase64)
	if err != nil {
		return nil, err
	}
	return &Codec{key: key}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM and returns base64.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts base64 ciphertext produced by Encrypt. Ciphertext that was
// not produced with the matching key (tampered or foreign data) fails with an
// error; callers must treat that as a hard integrity failure, never as a
// default value.
func (c *Codec) Decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertextBytes := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertextBytes, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
