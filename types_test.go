package mbmgr

import "testing"

func TestCipherModeString(t *testing.T) {
	cases := map[CipherMode]string{
		NullCipher:   "NULL_CIPHER",
		AESCBC128:    "AES_CBC_128",
		AESCCM:       "AES_CCM",
		CustomCipher: "CUSTOM_CIPHER",
		CipherMode(200): "CipherMode(200)",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("CipherMode(%d).String() = %q, want %q", uint8(mode), got, want)
		}
	}
}

func TestChainOrderString(t *testing.T) {
	if CipherHash.String() != "CIPHER_HASH" {
		t.Errorf("CipherHash.String() = %q", CipherHash.String())
	}
	if HashCipher.String() != "HASH_CIPHER" {
		t.Errorf("HashCipher.String() = %q", HashCipher.String())
	}
	if ChainOrderNone.String() != "NONE" {
		t.Errorf("ChainOrderNone.String() = %q", ChainOrderNone.String())
	}
}

func TestStatusCompletedMask(t *testing.T) {
	if StatusCompleted != StatusCompletedCipher|StatusCompletedHash {
		t.Errorf("StatusCompleted = %#02x, want %#02x", uint8(StatusCompleted), uint8(StatusCompletedCipher|StatusCompletedHash))
	}
}

func TestJobString(t *testing.T) {
	j := &Job{CipherMode: AESCBC128, Direction: Encrypt, HashAlg: NullHash, ChainOrder: CipherHash, Len: 16}
	s := j.String()
	if s == "" {
		t.Fatal("Job.String() returned empty string")
	}
}
