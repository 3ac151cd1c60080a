package engine

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ChaCha20Poly1305Encrypt and ChaCha20Poly1305Decrypt back a demo
// CUSTOM_CIPHER callback (see root package's custom_cipher.go and
// cmd/mbjobctl). CUSTOM_CIPHER exists precisely so a caller can plug in an
// AEAD the scheduler's native CipherMode enum has no tag for; ChaCha20-
// Poly1305 is exactly that case here, grounded in the teacher's own
// ChaCha20Poly1305Engine.
func ChaCha20Poly1305Encrypt(key, nonce, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("engine: chacha20poly1305: %w", err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("engine: chacha20poly1305: nonce must be %d bytes, got %d", aead.NonceSize(), len(nonce))
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

func ChaCha20Poly1305Decrypt(key, nonce, ciphertext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("engine: chacha20poly1305: %w", err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("engine: chacha20poly1305: nonce must be %d bytes, got %d", aead.NonceSize(), len(nonce))
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("engine: chacha20poly1305 authentication failed: %w", err)
	}
	return plaintext, nil
}

// AESSIVEncrypt and AESSIVDecrypt back a second CUSTOM_CIPHER demo,
// grounded in SIVEngine: unlike ChaCha20Poly1305Encrypt/Decrypt, this one
// ignores its nonce argument entirely, since AES-SIV derives its IV from
// the message and key rather than consuming a caller-supplied one.
func AESSIVEncrypt(key, _, plaintext, aad []byte) ([]byte, error) {
	e, err := NewSIVEngine(key)
	if err != nil {
		return nil, err
	}
	return e.Seal(plaintext, aad), nil
}

func AESSIVDecrypt(key, _, ciphertext, aad []byte) ([]byte, error) {
	e, err := NewSIVEngine(key)
	if err != nil {
		return nil, err
	}
	return e.Open(ciphertext, aad)
}
