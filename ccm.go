package mbmgr

import (
	"crypto/subtle"

	"github.com/cryptomb/mbmgr/internal/engine"
)

// ccmEngine drives the RFC 3610 CBC-MAC authentication half of AES-CCM.
// It is modeled as a lane group exactly like the HMAC/XCBC engines: up to
// capacity jobs buffer, then a batch computes every job's full B0+AAD+
// message CBC-MAC and tag mask in one pass. The reference manager steps
// this incrementally across three phases per round (prefix+AAD, bulk
// blocks, partial tail) because its lanes share a fixed-width SIMD round;
// this implementation computes each job's MAC to completion within the
// batch call, which is equivalent for a single job and preserves the
// batching/FIFO-draining contract the rest of the scheduler relies on.
type ccmEngine struct {
	group *laneGroup
}

func newCCMEngine(capacity int) *ccmEngine {
	return &ccmEngine{group: newLaneGroup(capacity, runCCMAuthBatch)}
}

func (c *ccmEngine) submit(j *Job) *Job { return c.group.submit(j) }
func (c *ccmEngine) flush() *Job        { return c.group.flush() }

func runCCMAuthBatch(jobs []*Job) {
	for _, j := range jobs {
		if err := ccmAuthenticate(j); err != nil {
			j.Status |= StatusInternalError
		}
	}
}

func ccmAuthenticate(j *Job) error {
	mac, err := engine.NewCBCMACState(j.Key)
	if err != nil {
		return err
	}

	hasAAD := len(j.AAD) > 0
	b0 := ccmB0Block(j.IV, j.Len, uint8(j.TagLen), hasAAD)
	mac.Absorb(b0[:])

	if hasAAD {
		ccmAbsorbAAD(mac, j.AAD)
	}

	plaintext := ccmPlaintext(j)
	ccmAbsorbMessage(mac, plaintext)

	state := mac.Tag()
	ctr0 := ccmCounterBlock(j.IV, 0)
	masked, err := engine.CTRCrypt(j.Key, ctr0[:], state[:j.TagLen])
	if err != nil {
		return err
	}

	if j.Direction == Encrypt {
		copy(j.Digest, masked)
		return nil
	}

	if subtle.ConstantTimeCompare(masked, j.Digest[:j.TagLen]) != 1 {
		return ErrAuthFailed
	}
	return nil
}

// ccmPlaintext returns the buffer CCM authenticates: the source buffer for
// ENCRYPT (plaintext in, not yet overwritten) or the destination buffer
// for DECRYPT (the bulk CTR transform, which validation.go requires to run
// first under CIPHER_HASH order, has already recovered it into Dst).
func ccmPlaintext(j *Job) []byte {
	if j.Direction == Encrypt {
		return j.Src[:j.Len]
	}
	return j.Dst[:j.Len]
}

// ccmB0Block builds RFC 3610's B0 block: flag byte, nonce, and
// big-endian message length in the remaining bytes.
func ccmB0Block(nonce []byte, msgLen uint64, tagLen uint8, hasAAD bool) [16]byte {
	var b0 [16]byte
	l := 15 - len(nonce)
	flags := byte(l - 1)
	flags |= byte((tagLen-2)/2) << 3
	if hasAAD {
		flags |= 0x40
	}
	b0[0] = flags
	copy(b0[1:1+len(nonce)], nonce)
	for i := 0; i < l; i++ {
		b0[15-i] = byte(msgLen >> (8 * i))
	}
	return b0
}

// ccmAbsorbAAD encodes the AAD length prefix (2-byte form, sufficient for
// the local 46-byte AAD cap validation.go enforces) followed by the AAD
// bytes, zero-padded out to a 16-byte boundary, and feeds the result
// through the CBC-MAC state block by block.
func ccmAbsorbAAD(mac *engine.CBCMACState, aad []byte) {
	buf := make([]byte, 2+len(aad))
	buf[0] = byte(len(aad) >> 8)
	buf[1] = byte(len(aad))
	copy(buf[2:], aad)

	for len(buf) >= 16 {
		mac.Absorb(buf[:16])
		buf = buf[16:]
	}
	if len(buf) > 0 {
		mac.AbsorbPadded(buf)
	}
}

func ccmAbsorbMessage(mac *engine.CBCMACState, msg []byte) {
	for len(msg) >= 16 {
		mac.Absorb(msg[:16])
		msg = msg[16:]
	}
	if len(msg) > 0 {
		mac.AbsorbPadded(msg)
	}
}
