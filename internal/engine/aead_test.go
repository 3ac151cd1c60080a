package engine

import (
	"bytes"
	"testing"
)

func TestNewAEADEngineAESGCMRoundTrip(t *testing.T) {
	e, err := NewAEADEngine(AEADAESGCM, make([]byte, 16))
	if err != nil {
		t.Fatalf("NewAEADEngine(AESGCM): %v", err)
	}
	nonce := make([]byte, e.NonceSize())
	plaintext := []byte("gcm via the generic interface")
	aad := []byte("aad")

	sealed, err := e.Seal(nonce, plaintext, aad)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	opened, err := e.Open(nonce, sealed, aad)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Fatalf("Open(Seal(m)) = %q, want %q", opened, plaintext)
	}

	sealed[0] ^= 0xFF
	if _, err := e.Open(nonce, sealed, aad); err == nil {
		t.Fatal("expected Open to reject a tampered ciphertext")
	}
}

func TestNewAEADEngineChaCha20Poly1305RoundTrip(t *testing.T) {
	e, err := NewAEADEngine(AEADChaCha20Poly1305, make([]byte, 32))
	if err != nil {
		t.Fatalf("NewAEADEngine(ChaCha20Poly1305): %v", err)
	}
	nonce := make([]byte, e.NonceSize())
	plaintext := []byte("chacha20poly1305 via the generic interface")

	sealed, err := e.Seal(nonce, plaintext, nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	opened, err := e.Open(nonce, sealed, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Fatalf("Open(Seal(m)) = %q, want %q", opened, plaintext)
	}
}

func TestAEADEngineRejectsWrongNonceSize(t *testing.T) {
	e, err := NewAEADEngine(AEADAESGCM, make([]byte, 16))
	if err != nil {
		t.Fatalf("NewAEADEngine: %v", err)
	}
	if _, err := e.Seal(make([]byte, 3), []byte("m"), nil); err == nil {
		t.Fatal("expected Seal to reject a wrong-size nonce")
	}
}
