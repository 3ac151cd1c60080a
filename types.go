package mbmgr

import "fmt"

// CipherMode identifies the bulk cipher algorithm a job is submitted for.
type CipherMode uint8

const (
	CipherModeNone CipherMode = iota
	NullCipher
	AESCBC128
	AESCBC192
	AESCBC256
	AESCTR
	AESGCM
	AESCCM
	AESGMAC
	AESXCBC
	DESCBC
	DocsisSecBPI
	DocsisDES
	CustomCipher
)

func (m CipherMode) String() string {
	switch m {
	case NullCipher:
		return "NULL_CIPHER"
	case AESCBC128:
		return "AES_CBC_128"
	case AESCBC192:
		return "AES_CBC_192"
	case AESCBC256:
		return "AES_CBC_256"
	case AESCTR:
		return "AES_CTR"
	case AESGCM:
		return "AES_GCM"
	case AESCCM:
		return "AES_CCM"
	case AESGMAC:
		return "AES_GMAC"
	case AESXCBC:
		return "AES_XCBC"
	case DESCBC:
		return "DES_CBC"
	case DocsisSecBPI:
		return "DOCSIS_SEC_BPI"
	case DocsisDES:
		return "DOCSIS_DES"
	case CustomCipher:
		return "CUSTOM_CIPHER"
	default:
		return fmt.Sprintf("CipherMode(%d)", uint8(m))
	}
}

// CipherDirection selects encrypt or decrypt for a cipher-bearing job.
type CipherDirection uint8

const (
	DirectionNone CipherDirection = iota
	Encrypt
	Decrypt
)

func (d CipherDirection) String() string {
	switch d {
	case Encrypt:
		return "ENCRYPT"
	case Decrypt:
		return "DECRYPT"
	default:
		return "NONE"
	}
}

// HashAlg identifies the authentication/digest algorithm a job is submitted for.
type HashAlg uint8

const (
	HashAlgNone HashAlg = iota
	NullHash
	HMACSHA1
	HMACSHA224
	HMACSHA256
	HMACSHA384
	HMACSHA512
	HMACMD5
	AESXCBCMAC
	AESCCMHash
	AESGMACHash
	CustomHash
)

func (h HashAlg) String() string {
	switch h {
	case NullHash:
		return "NULL_HASH"
	case HMACSHA1:
		return "HMAC_SHA1"
	case HMACSHA224:
		return "HMAC_SHA224"
	case HMACSHA256:
		return "HMAC_SHA256"
	case HMACSHA384:
		return "HMAC_SHA384"
	case HMACSHA512:
		return "HMAC_SHA512"
	case HMACMD5:
		return "HMAC_MD5"
	case AESXCBCMAC:
		return "AES_XCBC_MAC"
	case AESCCMHash:
		return "AES_CCM_HASH"
	case AESGMACHash:
		return "AES_GMAC_HASH"
	case CustomHash:
		return "CUSTOM_HASH"
	default:
		return fmt.Sprintf("HashAlg(%d)", uint8(h))
	}
}

// ChainOrder selects whether the cipher or the hash runs first in a chained job.
type ChainOrder uint8

const (
	ChainOrderNone ChainOrder = iota
	CipherHash
	HashCipher
)

func (c ChainOrder) String() string {
	switch c {
	case CipherHash:
		return "CIPHER_HASH"
	case HashCipher:
		return "HASH_CIPHER"
	default:
		return "NONE"
	}
}

// Status is a bitmask describing a job's completion state. It is the only
// channel the Manager uses to report outcome; the scheduling API never
// returns a Go error.
type Status uint8

const (
	StatusBeingProcessed Status = 1 << iota
	StatusCompletedCipher
	StatusCompletedHash
	StatusInvalidArgs
	StatusInternalError
)

// StatusCompleted is the mask indicating both halves of a chained job finished.
const StatusCompleted = StatusCompletedCipher | StatusCompletedHash

// CipherFunc runs one cipher engine invocation against a job. A non-nil
// return maps to StatusInternalError on the job.
type CipherFunc func(j *Job) error

// HashFunc runs one hash/MAC engine invocation against a job. A non-nil
// return maps to StatusInternalError on the job.
type HashFunc func(j *Job) error

// Job is a mutable, reference-passed descriptor for one multi-buffer
// scheduling unit. Callers populate the relevant fields, call Manager's
// SubmitJob (or SubmitJobNoCheck), and read back Status/Dst/Digest from
// whichever *Job pointer the Manager returns, never assuming it is the job
// just submitted.
type Job struct {
	CipherMode CipherMode
	Direction  CipherDirection
	HashAlg    HashAlg
	ChainOrder ChainOrder
	Status     Status

	Key []byte
	IV  []byte
	Src []byte
	Dst []byte
	Len uint64

	AAD    []byte
	AADLen uint64

	Digest    []byte
	TagLen    uint64
	HashStart uint64
	HashLen   uint64

	// CustomCipher/CustomHash carry the user-supplied callback when
	// CipherMode/HashAlg is CustomCipher/CustomHash.
	CustomCipher CipherFunc
	CustomHash   HashFunc

	// slot is this job's index into the Manager's ring buffer, assigned
	// once at construction time (see NewManager); it lets finish() mark
	// completion against the correct ring slot regardless of which *Job
	// pointer a lane engine happens to hand back.
	slot int
}

func (j *Job) String() string {
	return fmt.Sprintf("Job{cipher=%s dir=%s hash=%s chain=%s status=%#02x len=%d}",
		j.CipherMode, j.Direction, j.HashAlg, j.ChainOrder, uint8(j.Status), j.Len)
}
