package engine

import "crypto/cipher"

// CBCMACState is the running state of one CBC-MAC-128 lane: a single
// 16-byte chaining block plus the key schedule it advances under. The CCM
// authentication engine drives one of these per in-flight job, XORing in
// successive 16-byte blocks (B0, AAD blocks, message blocks) exactly as
// the reference multi-buffer manager's lane state does, just without the
// SIMD width that motivated batching rounds across lanes in the original.
type CBCMACState struct {
	block cipher.Block
	state [16]byte
}

// NewCBCMACState starts a new CBC-MAC-128 lane under key.
func NewCBCMACState(key []byte) (*CBCMACState, error) {
	block, err := NewBlock(key)
	if err != nil {
		return nil, err
	}
	return &CBCMACState{block: block}, nil
}

// Absorb XORs in one 16-byte block and advances the chain.
func (s *CBCMACState) Absorb(block []byte) {
	xorBlock(&s.state, block)
	s.block.Encrypt(s.state[:], s.state[:])
}

// AbsorbPadded XORs in a final, possibly-short block, zero-padded to 16
// bytes, and advances the chain.
func (s *CBCMACState) AbsorbPadded(partial []byte) {
	var block [16]byte
	copy(block[:], partial)
	s.Absorb(block[:])
}

// Tag returns the current 16-byte MAC state (the caller XORs this against
// a CTR keystream block to produce the final wire tag, per RFC 3610).
func (s *CBCMACState) Tag() [16]byte {
	return s.state
}
