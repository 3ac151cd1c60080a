package mbmgr

import "github.com/cryptomb/mbmgr/internal/engine"

// submitHash dispatches a job's hash stage, mirroring submitCipher:
// NULL_HASH, CUSTOM_HASH, and AES_GMAC complete synchronously; HMAC,
// AES-XCBC, and AES_CCM enqueue into a lane group (for AES_CCM, the CCM
// engine's — see ccm.go) and may return a different job than the one just
// submitted.
func (m *Manager) submitHash(j *Job) *Job {
	switch j.HashAlg {
	case NullHash:
		j.Status |= StatusCompletedHash
		return j
	case CustomHash:
		return m.runCustomHash(j)
	case AESGMACHash:
		return m.runSyncHash(j, runAESGMACHash)
	case AESCCMHash:
		return m.ccm.submit(j)
	case AESXCBCMAC:
		return m.xcbc.submit(j)
	default:
		if g := m.hmacLaneGroup(j.HashAlg); g != nil {
			return g.submit(j)
		}
		j.Status |= StatusInternalError
		j.Status |= StatusCompletedHash
		return j
	}
}

// flushHash forces whichever lane group (HMAC, AES-XCBC, or CCM) j is
// waiting in to run now.
func (m *Manager) flushHash(j *Job) *Job {
	if j.HashAlg == AESXCBCMAC {
		return m.xcbc.flush()
	}
	if j.HashAlg == AESCCMHash {
		return m.ccm.flush()
	}
	if g := m.hmacLaneGroup(j.HashAlg); g != nil {
		return g.flush()
	}
	return m.submitHash(j)
}

func (m *Manager) hmacLaneGroup(alg HashAlg) *laneGroup {
	switch alg {
	case HMACSHA1:
		return m.hmacSHA1
	case HMACSHA224:
		return m.hmacSHA224
	case HMACSHA256:
		return m.hmacSHA256
	case HMACSHA384:
		return m.hmacSHA384
	case HMACSHA512:
		return m.hmacSHA512
	case HMACMD5:
		return m.hmacMD5
	default:
		return nil
	}
}

func (m *Manager) runSyncHash(j *Job, fn func(j *Job) error) *Job {
	if err := fn(j); err != nil {
		j.Status |= StatusInternalError
	}
	j.Status |= StatusCompletedHash
	return j
}

func (m *Manager) runCustomHash(j *Job) *Job {
	if j.CustomHash == nil {
		j.Status |= StatusInternalError
	} else if err := j.CustomHash(j); err != nil {
		j.Status |= StatusInternalError
	}
	j.Status |= StatusCompletedHash
	return j
}

// runAESGMACHash computes an AES-GMAC tag over AAD. Unlike the spec's
// stated Open Question about msg_len_to_hash==0, this implementation
// keeps that original behavior: it never special-cases an empty hash
// region, since AES_GMAC's hash region is always the AAD, which may
// legitimately be empty (DESIGN.md, Open Question 3).
func runAESGMACHash(j *Job) error {
	tagLen := int(j.TagLen)
	if tagLen == 0 {
		tagLen = 16
	}
	tag, err := engine.GMACTag(j.Key, j.IV, j.AAD, tagLen)
	if err != nil {
		return err
	}
	copy(j.Digest, tag)
	return nil
}

// hashInput selects the buffer a hash/MAC stage reads: under CIPHER_HASH
// order the cipher stage has already run, so the hash authenticates the
// ciphertext in Dst; under HASH_CIPHER the hash runs first, over the
// plaintext still sitting in Src.
func hashInput(j *Job) []byte {
	if j.ChainOrder == CipherHash {
		return j.Dst[j.HashStart : j.HashStart+j.HashLen]
	}
	return j.Src[j.HashStart : j.HashStart+j.HashLen]
}

// runHMACBatch returns a laneGroup run function computing HMAC digests
// for every job in the batch under the given hash family.
func runHMACBatch(newHash engine.HashConstructor) func([]*Job) {
	return func(jobs []*Job) {
		for _, j := range jobs {
			digest := engine.HMACSum(newHash, j.Key, hashInput(j))
			copy(j.Digest, digest)
		}
	}
}

// runXCBCBatch computes AES-XCBC-MAC-96 digests for every job in the
// batch.
func runXCBCBatch(jobs []*Job) {
	for _, j := range jobs {
		keys, err := engine.DeriveXCBCKeys(j.Key)
		if err != nil {
			j.Status |= StatusInternalError
			continue
		}
		tag, err := engine.XCBCMAC96(keys, hashInput(j))
		if err != nil {
			j.Status |= StatusInternalError
			continue
		}
		copy(j.Digest, tag[:])
	}
}
