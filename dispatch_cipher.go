package mbmgr

import (
	"github.com/cryptomb/mbmgr/internal/engine"
)

// submitCipher dispatches a job's cipher stage. NULL_CIPHER and the
// synchronous engines (CTR, GCM, GMAC, CCM's bulk transform, DOCSIS,
// CUSTOM_CIPHER) complete immediately and return j itself; the OOO-style
// block-cipher modes (AES-CBC, DES-CBC) enqueue into a lane group and may
// return an entirely different job that just finished a batch.
func (m *Manager) submitCipher(j *Job) *Job {
	switch j.CipherMode {
	case NullCipher:
		j.Status |= StatusCompletedCipher
		return j
	case CustomCipher:
		return m.runCustomCipher(j)
	case AESCTR:
		return m.runSyncCipher(j, runAESCTR)
	case AESCCM:
		return m.runSyncCipher(j, runAESCCMBulk)
	case AESGCM:
		return m.runSyncCipher(j, runAESGCM)
	case AESGMAC:
		// Authentication-only mode: the cipher stage is a pass-through;
		// AES_GMAC_HASH performs the actual work on the hash side.
		j.Status |= StatusCompletedCipher
		return j
	case DocsisSecBPI:
		return m.runSyncCipher(j, runDocsisSecBPI)
	default:
		if g := m.cipherLaneGroup(j.CipherMode); g != nil {
			return g.submit(j)
		}
		j.Status |= StatusInternalError
		j.Status |= StatusCompletedCipher
		return j
	}
}

// flushCipher forces whichever lane group j is buffered in to run now. For
// the synchronous modes this simply re-dispatches, since they never
// actually buffer.
func (m *Manager) flushCipher(j *Job) *Job {
	if g := m.cipherLaneGroup(j.CipherMode); g != nil {
		return g.flush()
	}
	return m.submitCipher(j)
}

func (m *Manager) cipherLaneGroup(mode CipherMode) *laneGroup {
	switch mode {
	case AESCBC128:
		return m.cbc128
	case AESCBC192:
		return m.cbc192
	case AESCBC256:
		return m.cbc256
	case DESCBC, DocsisDES:
		return m.des
	default:
		return nil
	}
}

func (m *Manager) runSyncCipher(j *Job, fn func(j *Job) error) *Job {
	if err := fn(j); err != nil {
		j.Status |= StatusInternalError
	}
	j.Status |= StatusCompletedCipher
	return j
}

func (m *Manager) runCustomCipher(j *Job) *Job {
	if j.CustomCipher == nil {
		j.Status |= StatusInternalError
	} else if err := j.CustomCipher(j); err != nil {
		j.Status |= StatusInternalError
	}
	j.Status |= StatusCompletedCipher
	return j
}

func runAESCTR(j *Job) error {
	iv := j.IV
	if len(iv) == 12 {
		// A 12-byte IV is the nonce; the trailing 4 bytes of the counter
		// block are the big-endian block counter, starting at 1.
		var ctr [16]byte
		copy(ctr[:], iv)
		ctr[15] = 1
		iv = ctr[:]
	}
	out, err := engine.CTRCrypt(j.Key, iv, j.Src[:j.Len])
	if err != nil {
		return err
	}
	copy(j.Dst, out)
	return nil
}

// runAESCCMBulk performs CCM's bulk payload transform: plain AES-CTR
// keyed with a counter block whose format reserves counter value 0 for
// the tag mask (RFC 3610 §2.3). The 16-byte counter block is a flag byte,
// then the N-byte nonce, then the big-endian block counter in the
// trailing 15-N bytes, starting at 1 for the first payload block.
func runAESCCMBulk(j *Job) error {
	ctr := ccmCounterBlock(j.IV, 1)
	out, err := engine.CTRCrypt(j.Key, ctr[:], j.Src[:j.Len])
	if err != nil {
		return err
	}
	copy(j.Dst, out)
	return nil
}

func runAESGCM(j *Job) error {
	tagLen := int(j.TagLen)
	if tagLen == 0 {
		tagLen = 16
	}
	if j.Direction == Encrypt {
		out, err := engine.GCMSeal(j.Key, j.IV, j.Src[:j.Len], j.AAD, tagLen)
		if err != nil {
			return err
		}
		copy(j.Dst, out)
		return nil
	}
	out, err := engine.GCMOpen(j.Key, j.IV, j.Src[:j.Len], j.AAD, tagLen)
	if err != nil {
		return err
	}
	copy(j.Dst, out)
	return nil
}

func runDocsisSecBPI(j *Job) error {
	block := j.Len - j.Len%16
	// The CFB tail's feedback register is the last *ciphertext* block
	// regardless of direction, so capture it before a decrypt overwrites
	// Dst with plaintext.
	var lastCiphertextBlock []byte
	if block > 0 {
		if j.Direction == Encrypt {
			out, err := engine.CBCEncrypt(j.Key, j.IV, j.Src[:block])
			if err != nil {
				return err
			}
			copy(j.Dst[:block], out)
			lastCiphertextBlock = j.Dst[block-16 : block]
		} else {
			lastCiphertextBlock = append([]byte{}, j.Src[block-16:block]...)
			out, err := engine.CBCDecrypt(j.Key, j.IV, j.Src[:block])
			if err != nil {
				return err
			}
			copy(j.Dst[:block], out)
		}
	}
	tail := j.Src[block:j.Len]
	if len(tail) == 0 {
		return nil
	}
	var tailIV []byte
	if block == 0 {
		// DOCSIS_FIRST_BLOCK: message is under one block, CFB directly off the job IV.
		tailIV = j.IV
	} else {
		// DOCSIS_LAST_BLOCK: feedback register is the next-to-last ciphertext block.
		tailIV = lastCiphertextBlock
	}
	out, err := engine.DocsisCFBBlock(j.Key, tailIV, tail)
	if err != nil {
		return err
	}
	copy(j.Dst[block:j.Len], out)
	return nil
}

// runCBCBatch encrypts or decrypts every job in a lane batch independently
// under AES-CBC, per each job's own Direction field.
func runCBCBatch(jobs []*Job) {
	for _, j := range jobs {
		var out []byte
		var err error
		if j.Direction == Encrypt {
			out, err = engine.CBCEncrypt(j.Key, j.IV, j.Src[:j.Len])
		} else {
			out, err = engine.CBCDecrypt(j.Key, j.IV, j.Src[:j.Len])
		}
		if err != nil {
			j.Status |= StatusInternalError
		} else {
			copy(j.Dst, out)
		}
	}
}

func runDESBatch(jobs []*Job) {
	for _, j := range jobs {
		var out []byte
		var err error
		if j.Direction == Encrypt {
			out, err = engine.DESCBCEncrypt(j.Key, j.IV, j.Src[:j.Len])
		} else {
			out, err = engine.DESCBCDecrypt(j.Key, j.IV, j.Src[:j.Len])
		}
		if err != nil {
			j.Status |= StatusInternalError
		} else {
			copy(j.Dst, out)
		}
	}
}

// ccmCounterBlock builds the 16-byte CTR counter block for CCM payload
// encryption: a flag byte holding L-1 (L = 15 - nonce length, all other
// flag bits zero), the nonce, and a big-endian block counter occupying
// the remaining L bytes.
func ccmCounterBlock(nonce []byte, counter uint64) [16]byte {
	var block [16]byte
	l := 15 - len(nonce)
	block[0] = byte(l - 1)
	copy(block[1:1+len(nonce)], nonce)
	for i := 0; i < l; i++ {
		block[15-i] = byte(counter >> (8 * i))
	}
	return block
}
