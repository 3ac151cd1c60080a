package engine

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// AEADEngine is a nonce-based authenticated cipher, used to back
// CUSTOM_CIPHER jobs that want a uniform Seal/Open surface instead of the
// package-level ChaCha20Poly1305Encrypt/Decrypt functions directly.
type AEADEngine interface {
	Seal(nonce, plaintext, aad []byte) ([]byte, error)
	Open(nonce, ciphertext, aad []byte) ([]byte, error)
	NonceSize() int
	Overhead() int
}

type gcmEngine struct {
	aead cipher.AEAD
}

// NewAESGCMEngine wraps a key as a generic AES-GCM AEADEngine, for callers
// that want the interface form rather than GCMSeal/GCMOpen directly.
func NewAESGCMEngine(key []byte) (AEADEngine, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("engine: aes-gcm: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("engine: aes-gcm: %w", err)
	}
	return &gcmEngine{aead: aead}, nil
}

func (e *gcmEngine) Seal(nonce, plaintext, aad []byte) ([]byte, error) {
	if len(nonce) != e.NonceSize() {
		return nil, fmt.Errorf("engine: aes-gcm: nonce must be %d bytes, got %d", e.NonceSize(), len(nonce))
	}
	return e.aead.Seal(nil, nonce, plaintext, aad), nil
}

func (e *gcmEngine) Open(nonce, ciphertext, aad []byte) ([]byte, error) {
	if len(nonce) != e.NonceSize() {
		return nil, fmt.Errorf("engine: aes-gcm: nonce must be %d bytes, got %d", e.NonceSize(), len(nonce))
	}
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

func (e *gcmEngine) NonceSize() int { return e.aead.NonceSize() }
func (e *gcmEngine) Overhead() int  { return e.aead.Overhead() }

type chacha20Engine struct {
	aead cipher.AEAD
}

// NewChaCha20Poly1305Engine wraps a key as a generic ChaCha20-Poly1305
// AEADEngine; the interface form used by CUSTOM_CIPHER callbacks that
// select an engine at construction time rather than a fixed function pair.
func NewChaCha20Poly1305Engine(key []byte) (AEADEngine, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("engine: chacha20poly1305: %w", err)
	}
	return &chacha20Engine{aead: aead}, nil
}

func (e *chacha20Engine) Seal(nonce, plaintext, aad []byte) ([]byte, error) {
	if len(nonce) != e.NonceSize() {
		return nil, fmt.Errorf("engine: chacha20poly1305: nonce must be %d bytes, got %d", e.NonceSize(), len(nonce))
	}
	return e.aead.Seal(nil, nonce, plaintext, aad), nil
}

func (e *chacha20Engine) Open(nonce, ciphertext, aad []byte) ([]byte, error) {
	if len(nonce) != e.NonceSize() {
		return nil, fmt.Errorf("engine: chacha20poly1305: nonce must be %d bytes, got %d", e.NonceSize(), len(nonce))
	}
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

func (e *chacha20Engine) NonceSize() int { return e.aead.NonceSize() }
func (e *chacha20Engine) Overhead() int  { return e.aead.Overhead() }

// AEADKind selects which AEADEngine NewAEADEngine constructs.
type AEADKind int

const (
	AEADAESGCM AEADKind = iota
	AEADChaCha20Poly1305
)

// NewAEADEngine is a small factory over the AEADEngine implementations
// above, mirroring the teacher's cipher-suite-selection pattern.
func NewAEADEngine(kind AEADKind, key []byte) (AEADEngine, error) {
	switch kind {
	case AEADAESGCM:
		return NewAESGCMEngine(key)
	case AEADChaCha20Poly1305:
		return NewChaCha20Poly1305Engine(key)
	default:
		return nil, fmt.Errorf("engine: unknown AEAD kind %d", kind)
	}
}
