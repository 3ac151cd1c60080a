package engine

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

// HashConstructor maps a HashAlg to its underlying hash.Hash constructor.
// Exported so the root package's dispatch table can select one per
// HashAlg without this package needing to know about Job or HashAlg.
type HashConstructor func() hash.Hash

var (
	NewSHA1   HashConstructor = sha1.New
	NewSHA224 HashConstructor = sha256.New224
	NewSHA256 HashConstructor = sha256.New
	NewSHA384 HashConstructor = sha512.New384
	NewSHA512 HashConstructor = sha512.New
	NewMD5    HashConstructor = md5.New
)

// HMACSum computes an HMAC digest of msg under key using the hash family
// produced by newHash.
func HMACSum(newHash HashConstructor, key, msg []byte) []byte {
	mac := hmac.New(newHash, key)
	mac.Write(msg)
	return mac.Sum(nil)
}
