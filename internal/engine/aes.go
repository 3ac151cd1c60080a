// Package engine implements the primitive symmetric-crypto transforms the
// scheduler's dispatch layer drives: plain AES block access, CBC, CTR,
// GCM, CBC-MAC, HMAC, AES-XCBC, DES, and the DOCSIS CFB tail transform.
//
// This package knows nothing about jobs, lanes, or chain order; it is the
// "leaf" layer the root package's dispatch/ccm code calls into per buffer.
// Lane occupancy and FIFO return-ordering live one level up.
package engine

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// NewBlock constructs the AES block cipher for the given key, accepting
// any of the three standard AES key sizes.
func NewBlock(key []byte) (cipher.Block, error) {
	switch len(key) {
	case 16, 24, 32:
		return aes.NewCipher(key)
	default:
		return nil, fmt.Errorf("engine: invalid AES key length %d", len(key))
	}
}

// CBCEncrypt encrypts plaintext (a multiple of the block size) under CBC
// mode and returns a freshly allocated ciphertext buffer; iv is not
// mutated.
func CBCEncrypt(key, iv, plaintext []byte) ([]byte, error) {
	block, err := NewBlock(key)
	if err != nil {
		return nil, err
	}
	if len(plaintext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("engine: CBC plaintext not a multiple of block size")
	}
	ivCopy := append([]byte(nil), iv...)
	out := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, ivCopy).CryptBlocks(out, plaintext)
	return out, nil
}

// CBCDecrypt reverses CBCEncrypt.
func CBCDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := NewBlock(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("engine: CBC ciphertext not a multiple of block size")
	}
	ivCopy := append([]byte(nil), iv...)
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, ivCopy).CryptBlocks(out, ciphertext)
	return out, nil
}

// CTRCrypt XORs src against the AES-CTR keystream seeded by iv; the same
// call encrypts or decrypts since CTR is a symmetric stream construction.
func CTRCrypt(key, iv, src []byte) ([]byte, error) {
	block, err := NewBlock(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(src))
	cipher.NewCTR(block, iv).XORKeyStream(out, src)
	return out, nil
}
