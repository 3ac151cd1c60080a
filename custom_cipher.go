package mbmgr

import "github.com/cryptomb/mbmgr/internal/engine"

// ChaCha20Poly1305Cipher returns a CustomCipher callback backed by
// ChaCha20-Poly1305, for CUSTOM_CIPHER jobs that want an AEAD the native
// CipherMode enum has no tag for. aad is fixed at construction time since
// Job carries no per-job AAD field outside the CCM/GCM/GMAC modes.
func ChaCha20Poly1305Cipher(aad []byte) CipherFunc {
	return func(j *Job) error {
		var out []byte
		var err error
		if j.Direction == Encrypt {
			out, err = engine.ChaCha20Poly1305Encrypt(j.Key, j.IV, j.Src[:j.Len], aad)
		} else {
			out, err = engine.ChaCha20Poly1305Decrypt(j.Key, j.IV, j.Src[:j.Len], aad)
		}
		if err != nil {
			return err
		}
		copy(j.Dst, out)
		return nil
	}
}

// AESSIVCipher returns a CustomCipher callback backed by AES-SIV, for
// callers that want deterministic, nonce-misuse-resistant encryption
// instead of ChaCha20Poly1305Cipher's fresh-nonce-per-job model. It ignores
// Job.IV; AES-SIV derives its IV from the key and plaintext.
func AESSIVCipher(aad []byte) CipherFunc {
	return func(j *Job) error {
		var out []byte
		var err error
		if j.Direction == Encrypt {
			out, err = engine.AESSIVEncrypt(j.Key, nil, j.Src[:j.Len], aad)
		} else {
			out, err = engine.AESSIVDecrypt(j.Key, nil, j.Src[:j.Len], aad)
		}
		if err != nil {
			return err
		}
		copy(j.Dst, out)
		return nil
	}
}
