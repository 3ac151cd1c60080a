// Package mbmgr implements a multi-buffer symmetric cryptography job
// scheduler: a ring of in-flight jobs driven through per-algorithm
// out-of-order lane engines, chained cipher/hash composition, and an
// AES-CCM authentication state machine.
//
// # Overview
//
// Callers populate a Job via GetNextJob, then call SubmitJob. The Manager
// validates the job, dispatches it to the appropriate cipher and/or hash
// engine according to its ChainOrder, and returns whatever job has now
// finished — which is the oldest job still awaiting completion, not
// necessarily the one just submitted. FlushJob forces the oldest pending
// job's engine to finish early, used to drain the pipeline at shutdown.
//
//	mgr := mbmgr.NewManager()
//	j := mgr.GetNextJob()
//	j.CipherMode = mbmgr.AESCBC128
//	j.Direction = mbmgr.Encrypt
//	j.HashAlg = mbmgr.NullHash
//	j.ChainOrder = mbmgr.CipherHash
//	j.Key, j.IV, j.Src, j.Dst, j.Len = key, iv, plaintext, ciphertext, uint64(len(plaintext))
//	done := mgr.SubmitJob()
//	for done == nil {
//	    done = mgr.FlushJob()
//	}
//
// # Supported algorithms
//
// Ciphers: NULL, AES-CBC-{128,192,256}, AES-CTR, AES-GCM, AES-CCM,
// AES-GMAC (authentication-only), DES-CBC, DOCSIS_SEC_BPI, DOCSIS_DES, and
// CUSTOM_CIPHER (a caller-supplied callback — see cmd/mbjobctl for a
// ChaCha20-Poly1305-backed example). The CipherMode enum also has an
// AESXCBC value; no cipher engine handles it, so a job submitted with it
// completes with StatusInternalError. AES-XCBC is available as the
// AESXCBCMAC hash algorithm.
//
// Hashes: NULL, HMAC-{SHA1,SHA224,SHA256,SHA384,SHA512,MD5}, AES-XCBC-MAC,
// AES_CCM (driven internally by the CCM cipher mode), AES_GMAC, and
// CUSTOM_HASH.
//
// # Status reporting
//
// The scheduling API never returns a Go error. Outcome is reported
// exclusively via Job.Status, a bitmask of StatusBeingProcessed,
// StatusCompletedCipher, StatusCompletedHash, StatusInvalidArgs, and
// StatusInternalError. Ambient code outside the scheduler — internal/engine
// constructors, internal/keying, cmd/mbjobctl — uses ordinary Go errors.
//
// # Concurrency
//
// A Manager is not safe for concurrent use. It performs no synchronization
// and blocks on nothing; run one Manager per goroutine.
//
// # Key management
//
// The Manager never derives, stores, or rotates keys; callers populate
// Job.Key directly. internal/keying provides ambient PBKDF2/Argon2id
// derivation for callers that need it, entirely outside the Manager's
// trust boundary.
package mbmgr
