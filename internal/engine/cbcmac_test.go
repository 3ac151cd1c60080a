package engine

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"testing"
)

// CBCMACState's Tag is, by construction, the last block of a zero-IV CBC
// encryption of the absorbed blocks — verify that equivalence directly
// against crypto/cipher rather than re-deriving the same arithmetic.
func TestCBCMACStateMatchesZeroIVCBCEncrypt(t *testing.T) {
	key := hexBytes(t, "2b7e151628aed2a6abf7158809cf4f3c")
	block1 := []byte("AAAAAAAAAAAAAAAA")
	block2 := []byte("BBBBBBBBBBBBBBBB")

	s, err := NewCBCMACState(key)
	if err != nil {
		t.Fatalf("NewCBCMACState: %v", err)
	}
	s.Absorb(block1)
	s.Absorb(block2)
	tag := s.Tag()

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	var want [32]byte
	cipher.NewCBCEncrypter(block, make([]byte, 16)).CryptBlocks(want[:], append(append([]byte{}, block1...), block2...))

	if !bytes.Equal(tag[:], want[16:]) {
		t.Fatalf("CBCMACState.Tag() = %x, want %x", tag, want[16:])
	}
}

func TestCBCMACStateAbsorbPaddedZeroFills(t *testing.T) {
	key := make([]byte, 16)
	partial := []byte("short")

	s1, err := NewCBCMACState(key)
	if err != nil {
		t.Fatalf("NewCBCMACState: %v", err)
	}
	s1.AbsorbPadded(partial)

	var padded [16]byte
	copy(padded[:], partial)
	s2, err := NewCBCMACState(key)
	if err != nil {
		t.Fatalf("NewCBCMACState: %v", err)
	}
	s2.Absorb(padded[:])

	if s1.Tag() != s2.Tag() {
		t.Fatal("AbsorbPadded should be equivalent to Absorb on a manually zero-padded block")
	}
}
