// Package keying provides ambient key derivation for callers of the
// mbmgr scheduler — CLI tools, integration tests, anything that needs to
// turn a passphrase or environment variable into job key material. It is
// deliberately outside the Manager's trust boundary: spec.md's Non-goals
// exclude cryptographic key management from the scheduler itself, so this
// package is never imported by the root package, only by cmd/mbjobctl
// (and exercised by this package's own tests).
package keying

import (
	"crypto/rand"
	"fmt"
	"os"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"

	"crypto/sha256"
)

// Provider derives symmetric key material from a salt. Implementations
// are stateless with respect to the salt itself — callers own salt
// generation/storage.
type Provider interface {
	DeriveKey(salt []byte) ([]byte, error)
	GenerateSalt() ([]byte, error)
}

// PBKDF2Params configures PBKDF2-HMAC-SHA256 derivation.
type PBKDF2Params struct {
	Iterations int
	SaltSize   int
	KeySize    int
}

// DefaultPBKDF2Params mirrors widely-deployed PBKDF2 guidance: a six-figure
// iteration count, a 32-byte salt, and a 32-byte (AES-256) output key.
func DefaultPBKDF2Params() PBKDF2Params {
	return PBKDF2Params{Iterations: 100_000, SaltSize: 32, KeySize: 32}
}

// Argon2idParams configures Argon2id derivation.
type Argon2idParams struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltSize    int
	KeySize     int
}

// DefaultArgon2idParams mirrors the OWASP-recommended Argon2id baseline:
// 64 MiB memory, 3 iterations, 4-way parallelism.
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{Memory: 64 * 1024, Iterations: 3, Parallelism: 4, SaltSize: 32, KeySize: 32}
}

// PasswordProvider derives job keys from a passphrase, via either PBKDF2
// or Argon2id.
type PasswordProvider struct {
	password    []byte
	useArgon2id bool
	pbkdf2      PBKDF2Params
	argon2id    Argon2idParams
}

// NewPBKDF2Provider builds a PasswordProvider backed by PBKDF2-HMAC-SHA256.
func NewPBKDF2Provider(password string, params PBKDF2Params) *PasswordProvider {
	return &PasswordProvider{password: []byte(password), pbkdf2: params}
}

// NewArgon2idProvider builds a PasswordProvider backed by Argon2id.
func NewArgon2idProvider(password string, params Argon2idParams) *PasswordProvider {
	return &PasswordProvider{password: []byte(password), useArgon2id: true, argon2id: params}
}

func (p *PasswordProvider) DeriveKey(salt []byte) ([]byte, error) {
	if p.useArgon2id {
		return argon2.IDKey(p.password, salt, p.argon2id.Iterations, p.argon2id.Memory, p.argon2id.Parallelism, uint32(p.argon2id.KeySize)), nil
	}
	return pbkdf2.Key(p.password, salt, p.pbkdf2.Iterations, p.pbkdf2.KeySize, sha256.New), nil
}

func (p *PasswordProvider) GenerateSalt() ([]byte, error) {
	size := p.pbkdf2.SaltSize
	if p.useArgon2id {
		size = p.argon2id.SaltSize
	}
	if size <= 0 {
		size = 32
	}
	salt := make([]byte, size)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("keying: generate salt: %w", err)
	}
	return salt, nil
}

// EnvProvider reads a pre-derived key directly from an environment
// variable, for operators who manage key material outside this package
// (a secrets manager injecting env vars into a container, for example).
// DeriveKey ignores its salt argument: the key is not derived here, only
// fetched and size-checked.
type EnvProvider struct {
	envVar  string
	keySize int
}

// NewEnvProvider builds an EnvProvider that reads envVar and requires its
// value, taken as raw bytes with no decoding, to be exactly keySize bytes.
func NewEnvProvider(envVar string, keySize int) *EnvProvider {
	return &EnvProvider{envVar: envVar, keySize: keySize}
}

func (e *EnvProvider) DeriveKey(_ []byte) ([]byte, error) {
	raw := os.Getenv(e.envVar)
	if raw == "" {
		return nil, fmt.Errorf("keying: environment variable %s not set", e.envVar)
	}
	key := []byte(raw)
	if len(key) != e.keySize {
		return nil, fmt.Errorf("keying: %s must hold a %d-byte key, got %d", e.envVar, e.keySize, len(key))
	}
	return key, nil
}

func (e *EnvProvider) GenerateSalt() ([]byte, error) {
	return nil, nil
}
