package mbmgr

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"testing"
)

// hmacSHA256Reference computes HMAC-SHA256 directly against the standard
// library, independent of internal/engine, so tests asserting digest
// correctness aren't just checking the engine agrees with itself.
func hmacSHA256Reference(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

func submitNullJob(t *testing.T, mgr *Manager) *Job {
	t.Helper()
	j := mgr.GetNextJob()
	j.CipherMode = NullCipher
	j.Direction = Encrypt
	j.HashAlg = NullHash
	j.ChainOrder = HashCipher
	j.Src = make([]byte, 4)
	j.Dst = make([]byte, 4)
	j.Len = 4
	return j
}

// submitPendingCBCJob submits a lone AES-CBC-128 job. The lane group it
// lands in batches at laneCapacity (4), so a single submission never
// completes on its own — it sits in the ring until three more CBC jobs of
// the same width arrive, or a flush forces it.
func submitPendingCBCJob(t *testing.T, mgr *Manager) {
	t.Helper()
	j := mgr.GetNextJob()
	j.CipherMode = AESCBC128
	j.Direction = Encrypt
	j.HashAlg = NullHash
	j.ChainOrder = CipherHash
	j.Key = make([]byte, 16)
	j.IV = make([]byte, 16)
	j.Src = make([]byte, 16)
	j.Dst = make([]byte, 16)
	j.Len = 16
	if done := mgr.SubmitJob(); done != nil {
		t.Fatalf("expected a lone AES-CBC-128 submission to buffer, got a completed job")
	}
}

func TestQueueSizeTracksInFlightJobs(t *testing.T) {
	mgr := NewManager()
	if mgr.QueueSize() != 0 {
		t.Fatalf("QueueSize() = %d, want 0 on a fresh Manager", mgr.QueueSize())
	}
	submitPendingCBCJob(t, mgr)
	if mgr.QueueSize() != 1 {
		t.Fatalf("QueueSize() = %d, want 1 after one buffered submit", mgr.QueueSize())
	}
}

// S5 / invariant 9 (scaled to this build's MaxJobs=64): once the ring holds
// MaxJobs in-flight jobs, the scheduler cannot reap any of them until the
// oldest is forced to completion — even though later, synchronous jobs may
// have already finished internally, FIFO return order holds them back.
// FlushJob exercises the forced-completion path directly, sidestepping the
// slot-reuse that a further SubmitJob call would trigger (GetNextJob would
// hand back the very slot the oldest job still occupies).
func TestRingFullForcesFlushOfOldestJob(t *testing.T) {
	mgr := NewManager()

	// The first job (CBC, slot 0) never completes on its own at this
	// batch size, so it remains the ring's earliest entry throughout.
	submitPendingCBCJob(t, mgr)
	for i := 1; i < MaxJobs; i++ {
		submitNullJob(t, mgr)
		if done := mgr.SubmitJob(); done != nil {
			t.Fatalf("submission %d: expected nil (blocked behind the pending CBC job), got a completed job", i)
		}
	}
	if mgr.QueueSize() != MaxJobs {
		t.Fatalf("QueueSize() = %d, want %d once the ring is full", mgr.QueueSize(), MaxJobs)
	}

	forced := mgr.FlushJob()
	if forced == nil {
		t.Fatal("expected FlushJob to force-complete the oldest (CBC) job")
	}
	if forced.CipherMode != AESCBC128 {
		t.Fatalf("forced job cipher mode = %v, want AES_CBC_128 (the first job submitted)", forced.CipherMode)
	}
	if forced.Status&StatusCompleted != StatusCompleted {
		t.Fatalf("forced job status = %#02x, want COMPLETED", uint8(forced.Status))
	}
	if mgr.QueueSize() != MaxJobs-1 {
		t.Fatalf("QueueSize() = %d, want %d after draining the oldest job", mgr.QueueSize(), MaxJobs-1)
	}

	// The remaining NULL_CIPHER jobs had already finished internally and
	// now drain in the FIFO order they were submitted.
	for i := 0; i < 5; i++ {
		next := mgr.FlushJob()
		if next == nil {
			t.Fatalf("drain %d: expected a completed NULL_CIPHER job", i)
		}
		if next.CipherMode != NullCipher {
			t.Fatalf("drain %d: cipher mode = %v, want NULL_CIPHER", i, next.CipherMode)
		}
	}
}

// S4: chained AES-CBC-128 + HMAC-SHA-256 under CIPHER_HASH sets both
// COMPLETED_AES and COMPLETED_HMAC, and the digest is computed over the
// ciphertext (dst), not the plaintext.
func TestChainCipherThenHash(t *testing.T) {
	mgr := NewManager()
	key := make([]byte, 16)
	iv := make([]byte, 16)
	plaintext := bytes.Repeat([]byte{0x42}, 64)

	j := mgr.GetNextJob()
	j.CipherMode = AESCBC128
	j.Direction = Encrypt
	j.HashAlg = HMACSHA256
	j.ChainOrder = CipherHash
	j.Key, j.IV = key, iv
	j.Src = plaintext
	j.Dst = make([]byte, 64)
	j.Len = 64
	j.Digest = make([]byte, 32)
	j.HashStart, j.HashLen = 0, 64

	mgr.SubmitJob()
	done := mgr.FlushJob()
	if done == nil {
		t.Fatal("expected flush to drain the chained job")
	}
	if done.Status&StatusCompletedCipher == 0 {
		t.Fatal("expected COMPLETED_AES to be set")
	}
	if done.Status&StatusCompletedHash == 0 {
		t.Fatal("expected COMPLETED_HMAC to be set")
	}
	if bytes.Equal(done.Digest, make([]byte, 32)) {
		t.Fatal("expected a non-zero HMAC digest")
	}
}

// Invariant 6: for CIPHER_HASH jobs, the hash stage authenticates the
// ciphertext the cipher stage just produced, not the original plaintext —
// verified here by confirming the digest matches an HMAC computed directly
// (via the standard library) over the ciphertext the Manager produced.
func TestChainHashReadsCiphertextNotPlaintext(t *testing.T) {
	mgr := NewManager()
	key := make([]byte, 16)
	iv := make([]byte, 16)
	plaintext := bytes.Repeat([]byte{0x07}, 32)

	j := mgr.GetNextJob()
	j.CipherMode = AESCBC128
	j.Direction = Encrypt
	j.HashAlg = HMACSHA256
	j.ChainOrder = CipherHash
	j.Key, j.IV = key, iv
	j.Src = plaintext
	j.Dst = make([]byte, 32)
	j.Len = 32
	j.Digest = make([]byte, 32)
	j.HashStart, j.HashLen = 0, 32

	mgr.SubmitJob()
	done := mgr.FlushJob()

	if bytes.Equal(done.Dst, plaintext) {
		t.Fatal("test setup invalid: ciphertext must differ from plaintext")
	}
	wantDigest := hmacSHA256Reference(key, done.Dst)
	if !bytes.Equal(done.Digest, wantDigest) {
		t.Fatalf("digest = %x, want HMAC-SHA256 over ciphertext %x", done.Digest, wantDigest)
	}
}
