package mbmgr

import "fmt"

// keySizeFor returns the required key length in bytes for a cipher mode
// that consumes a single symmetric key, or 0 if the mode has no such
// requirement (NULL_CIPHER, CUSTOM_CIPHER).
func keySizeFor(m CipherMode) (size int, ok bool) {
	switch m {
	case AESCBC128, AESCTR, AESGCM, AESCCM, AESGMAC, AESXCBC, DocsisSecBPI:
		return 16, true
	case AESCBC192:
		return 24, true
	case AESCBC256:
		return 32, true
	case DESCBC, DocsisDES:
		return 8, true
	default:
		return 0, false
	}
}

// ivSizeFor returns the required IV/nonce length for cipher modes that
// require a fixed one, or 0 if the mode has no fixed requirement.
func ivSizeFor(m CipherMode) (size int, ok bool) {
	switch m {
	case AESCBC128, AESCBC192, AESCBC256, DocsisSecBPI:
		return 16, true
	case DESCBC, DocsisDES:
		return 8, true
	case AESGCM, AESGMAC:
		return 12, true
	default:
		return 0, false
	}
}

// digestSizeFor returns the required digest/tag length for hash algorithms
// with a fixed output size.
func digestSizeFor(h HashAlg) (size int, ok bool) {
	switch h {
	case HMACSHA1:
		return 20, true
	case HMACSHA224:
		return 28, true
	case HMACSHA256:
		return 32, true
	case HMACSHA384:
		return 48, true
	case HMACSHA512:
		return 64, true
	case HMACMD5:
		return 16, true
	case AESXCBCMAC:
		return 12, true // AES-XCBC-MAC-96
	default:
		return 0, false
	}
}

// maxCCMAADLen is the local scratch-block cap for CCM additional
// authenticated data. Inherited from the reference implementation's
// single 64-byte B0+AAD scratch block; treated as a hard limit, not a
// soft truncation (DESIGN.md, Open Question 4).
const maxCCMAADLen = 46

// validateJob runs the full job validator constraint table (cipher_mode,
// hash_alg, chain_order) and returns the first violation found, or nil if
// the job is well-formed. It never mutates the job; callers fold the
// result into Job.Status themselves.
func validateJob(j *Job) error {
	if err := validateCipherFields(j); err != nil {
		return err
	}
	if err := validateHashFields(j); err != nil {
		return err
	}
	return validateChainOrder(j)
}

func validateCipherFields(j *Job) error {
	switch j.CipherMode {
	case NullCipher:
		// No key/IV/length requirements; NULL_CIPHER moves no data and
		// only marks the cipher stage complete (it is valid only under
		// HASH_CIPHER — see validateChainOrder).
		return nil
	case CustomCipher:
		if j.CustomCipher == nil {
			return NewValidationError("custom_cipher", nil, "CUSTOM_CIPHER mode requires a non-nil callback")
		}
		// Key/IV sizing is the callback's own concern, but direction and
		// buffer bounds still apply: the orchestrator's chain logic reads
		// Direction regardless of which engine ran the cipher stage.
		if j.Direction != Encrypt && j.Direction != Decrypt {
			return NewValidationError("cipher_direction", j.Direction, "direction must be ENCRYPT or DECRYPT")
		}
		if j.Src == nil {
			return NewValidationError("src", nil, "source buffer cannot be nil")
		}
		if uint64(len(j.Src)) < j.Len {
			return NewValidationError("len", j.Len, "job length exceeds source buffer")
		}
		return nil
	}

	if size, ok := keySizeFor(j.CipherMode); ok {
		if len(j.Key) != size {
			return NewValidationError("key", len(j.Key),
				fmt.Sprintf("%s requires a %d-byte key, got %d", j.CipherMode, size, len(j.Key)))
		}
	}
	if size, ok := ivSizeFor(j.CipherMode); ok {
		if len(j.IV) != size {
			return NewValidationError("iv", len(j.IV),
				fmt.Sprintf("%s requires a %d-byte IV/nonce, got %d", j.CipherMode, size, len(j.IV)))
		}
	}
	if j.Direction != Encrypt && j.Direction != Decrypt {
		return NewValidationError("cipher_direction", j.Direction, "direction must be ENCRYPT or DECRYPT")
	}
	if j.Src == nil {
		return NewValidationError("src", nil, "source buffer cannot be nil")
	}
	if uint64(len(j.Src)) < j.Len {
		return NewValidationError("len", j.Len, "job length exceeds source buffer")
	}
	if j.Len == 0 && j.CipherMode != AESGMAC {
		// AES_GMAC is the one length-bearing mode that's still well-formed
		// at Len==0: its cipher stage is a pass-through and the actual MAC
		// runs over AAD on the hash side, which may legitimately be empty.
		return NewValidationError("len", j.Len, fmt.Sprintf("%s requires a non-zero length", j.CipherMode))
	}

	switch j.CipherMode {
	case AESCBC128, AESCBC192, AESCBC256, DESCBC:
		if j.Len%uint64(blockSizeFor(j.CipherMode)) != 0 {
			return NewValidationError("len", j.Len, fmt.Sprintf("%s requires a length that is a multiple of the block size", j.CipherMode))
		}
	case AESCTR:
		if len(j.IV) != 12 && len(j.IV) != 16 {
			return NewValidationError("iv", len(j.IV), "AES_CTR requires a 12- or 16-byte IV/nonce")
		}
	case AESCCM:
		if len(j.IV) < 7 || len(j.IV) > 13 {
			return NewValidationError("iv", len(j.IV), "CCM nonce must be 7 to 13 bytes")
		}
		if len(j.AAD) > maxCCMAADLen {
			return NewValidationError("aad", len(j.AAD), fmt.Sprintf("CCM AAD exceeds local cap of %d bytes", maxCCMAADLen))
		}
		if j.TagLen < 4 || j.TagLen > 16 || j.TagLen%2 != 0 {
			return NewValidationError("tag_len", j.TagLen, "CCM tag length must be an even value in [4,16]")
		}
		if uint64(len(j.Digest)) < j.TagLen {
			return NewValidationError("digest", len(j.Digest), "CCM digest buffer shorter than tag_len")
		}
	case AESGCM, AESGMAC:
		if j.TagLen != 8 && j.TagLen != 12 && j.TagLen != 16 {
			return NewValidationError("tag_len", j.TagLen, "GCM/GMAC tag length must be 8, 12, or 16")
		}
		if j.CipherMode == AESGMAC && uint64(len(j.Digest)) < j.TagLen {
			return NewValidationError("digest", len(j.Digest), "GMAC digest buffer shorter than tag_len")
		}
	}
	return nil
}

func blockSizeFor(m CipherMode) int {
	switch m {
	case DESCBC:
		return 8
	default:
		return 16
	}
}

func validateHashFields(j *Job) error {
	switch j.HashAlg {
	case NullHash:
		return nil
	case CustomHash:
		if j.CustomHash == nil {
			return NewValidationError("custom_hash", nil, "CUSTOM_HASH mode requires a non-nil callback")
		}
		return nil
	case AESCCMHash:
		if j.CipherMode != AESCCM {
			return NewValidationError("hash_alg", j.HashAlg, "AES_CCM_HASH requires cipher_mode AES_CCM")
		}
		if j.ChainOrder != CipherHash {
			// CCM always authenticates the plaintext: for DECRYPT the
			// bulk CTR transform must run first to recover it, so the
			// auth engine can only ever run as the second stage.
			return NewValidationError("chain_order", j.ChainOrder, "AES_CCM requires CIPHER_HASH chain order")
		}
		return nil
	case AESGMACHash:
		if j.CipherMode != AESGMAC && j.CipherMode != AESGCM {
			return NewValidationError("hash_alg", j.HashAlg, "AES_GMAC_HASH requires cipher_mode AES_GMAC or AES_GCM")
		}
		return nil
	}

	if size, ok := digestSizeFor(j.HashAlg); ok {
		if j.Digest == nil {
			return NewValidationError("digest", nil, "digest output buffer cannot be nil")
		}
		if len(j.Digest) < size {
			return NewValidationError("digest", len(j.Digest),
				fmt.Sprintf("%s requires a %d-byte digest buffer, got %d", j.HashAlg, size, len(j.Digest)))
		}
	}
	if j.HashAlg == AESXCBCMAC && len(j.Key) != 16 {
		return NewValidationError("key", len(j.Key), "AES_XCBC_MAC requires a 16-byte key")
	}
	return nil
}

// validateChainOrder cross-checks CipherMode/HashAlg against ChainOrder.
//
// NULL_CIPHER is only a valid combination under HASH_CIPHER order (a
// MAC-then-nothing job); under CIPHER_HASH it is rejected outright. And
// under HASH_CIPHER, the cipher_direction==DECRYPT requirement that
// otherwise applies is explicitly bypassed when cipher_mode==NULL_CIPHER,
// not merely left unenforced. See DESIGN.md, Open Question 1.
func validateChainOrder(j *Job) error {
	if j.CipherMode == NullCipher && j.ChainOrder != HashCipher {
		return NewValidationError("chain_order", j.ChainOrder, "NULL_CIPHER is only valid under HASH_CIPHER chain order")
	}
	if j.ChainOrder == HashCipher && j.CipherMode != NullCipher {
		if j.Direction != Decrypt {
			return NewValidationError("cipher_direction", j.Direction, "HASH_CIPHER order requires cipher_direction DECRYPT")
		}
	}
	switch j.ChainOrder {
	case CipherHash, HashCipher:
		return nil
	default:
		return NewValidationError("chain_order", j.ChainOrder, "chain_order must be CIPHER_HASH or HASH_CIPHER")
	}
}
