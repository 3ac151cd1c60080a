package engine

import (
	"crypto/cipher"
	"fmt"
)

// GCMSeal encrypts plaintext and appends a tagSize-byte authentication
// tag, matching the synchronous "run to completion" treatment spec.md
// prescribes for GCM (no OOO lane buffering).
func GCMSeal(key, nonce, plaintext, aad []byte, tagSize int) ([]byte, error) {
	block, err := NewBlock(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCMWithTagSize(block, tagSize)
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, nonce, plaintext, aad), nil
}

// GCMOpen decrypts ciphertext (which must include its trailing tag) and
// verifies it against aad.
func GCMOpen(key, nonce, ciphertext, aad []byte, tagSize int) ([]byte, error) {
	block, err := NewBlock(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCMWithTagSize(block, tagSize)
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("engine: GCM authentication failed: %w", err)
	}
	return plaintext, nil
}

// GMACTag computes an AES-GMAC tag (GCM with a zero-length plaintext) over
// aad, used for the AES_GMAC cipher mode where no bulk encryption occurs
// and the cipher stage is a pure-authentication pass-through.
func GMACTag(key, nonce, aad []byte, tagSize int) ([]byte, error) {
	return GCMSeal(key, nonce, nil, aad, tagSize)
}
