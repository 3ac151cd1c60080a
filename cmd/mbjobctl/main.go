package main

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/absfs/absfs"
	"github.com/absfs/memfs"
	"github.com/google/uuid"

	"github.com/cryptomb/mbmgr"
	"github.com/cryptomb/mbmgr/internal/keying"
)

// workloadEntry is the CLI's JSON wire shape for one job (cmd/mbjobctl/doc.go).
type workloadEntry struct {
	CipherMode   string `json:"cipher_mode"`
	Direction    string `json:"direction"`
	HashAlg      string `json:"hash_alg"`
	ChainOrder   string `json:"chain_order"`
	PlaintextHex string `json:"plaintext_hex"`
	// CustomCipher selects the CUSTOM_CIPHER backing ("chacha20poly1305" or
	// "aes_siv") when CipherMode is "CUSTOM_CIPHER"; ignored otherwise.
	CustomCipher string `json:"custom_cipher"`
}

const defaultWorkloadPath = "/workload.json"

const exampleWorkload = `[
  {"cipher_mode":"AES_CBC_128","direction":"ENCRYPT","hash_alg":"NULL_HASH","chain_order":"CIPHER_HASH","plaintext_hex":"00000000000000000000000000000000"},
  {"cipher_mode":"AES_CBC_128","direction":"ENCRYPT","hash_alg":"HMAC_SHA256","chain_order":"CIPHER_HASH","plaintext_hex":"48656c6c6f2c206d756c74692d6275666665722063727970746f21"},
  {"cipher_mode":"CUSTOM_CIPHER","direction":"ENCRYPT","hash_alg":"NULL_HASH","chain_order":"CIPHER_HASH","plaintext_hex":"7365637265742073617573616765","custom_cipher":"aes_siv"}
]`

func main() {
	passphrase := flag.String("passphrase", "correct-horse-battery-staple", "passphrase used to derive the demo job key")
	workloadPath := flag.String("workload", defaultWorkloadPath, "path (inside the in-memory filesystem) to the workload JSON file")
	parallel := flag.Bool("parallel", false, "shard the workload across one Manager per worker goroutine")
	flag.Parse()

	base, err := memfs.NewFS()
	if err != nil {
		log.Fatalf("mbjobctl: create in-memory filesystem: %v", err)
	}

	if err := seedWorkload(base, *workloadPath); err != nil {
		log.Fatalf("mbjobctl: seed workload: %v", err)
	}

	entries, err := loadWorkload(base, *workloadPath)
	if err != nil {
		log.Fatalf("mbjobctl: load workload: %v", err)
	}

	cfg := defaultParallelConfig()
	cfg.enabled = *parallel
	if err := runWorkloadSharded(entries, *passphrase, cfg); err != nil {
		log.Fatalf("mbjobctl: run workload: %v", err)
	}
}

// seedWorkload writes the bundled example workload into base at path if
// nothing is there yet, so the demo runs with zero external setup.
func seedWorkload(base absfs.FileSystem, path string) error {
	if _, err := base.Stat(path); err == nil {
		return nil
	}
	f, err := base.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write([]byte(exampleWorkload))
	return err
}

func loadWorkload(base absfs.FileSystem, path string) ([]workloadEntry, error) {
	f, err := base.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var entries []workloadEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse workload JSON: %w", err)
	}
	return entries, nil
}

// deriveKey derives a key of keySize bytes from passphrase. The salt is
// fixed, which makes the demo's output reproducible across runs; a real
// deployment would persist a random per-key salt instead.
func deriveKey(passphrase string, keySize int) ([]byte, error) {
	provider := keying.NewPBKDF2Provider(passphrase, keying.PBKDF2Params{
		Iterations: 100_000,
		SaltSize:   16,
		KeySize:    keySize,
	})
	salt := bytes.Repeat([]byte{0x42}, 16) // fixed salt: deterministic demo output, not a production pattern
	return provider.DeriveKey(salt)
}

func runWorkload(entries []workloadEntry, passphrase string) error {
	mgr := mbmgr.NewManager()
	iv := make([]byte, aes.BlockSize)
	ids := make(map[*mbmgr.Job]uuid.UUID) // ring slot -> correlation ID of the job it holds

	pending := 0
	for _, entry := range entries {
		plaintext, err := hex.DecodeString(entry.PlaintextHex)
		if err != nil {
			return fmt.Errorf("decode plaintext_hex: %w", err)
		}

		j := mgr.GetNextJob()
		j.CipherMode = cipherModeFromString(entry.CipherMode)
		j.Direction = directionFromString(entry.Direction)
		j.HashAlg = hashAlgFromString(entry.HashAlg)
		j.ChainOrder = chainOrderFromString(entry.ChainOrder)

		keySize := 16 // AES-128, matching the demo workload's AES_CBC_128 jobs
		if j.CipherMode == mbmgr.CustomCipher {
			switch entry.CustomCipher {
			case "aes_siv":
				keySize = 64
				j.CustomCipher = mbmgr.AESSIVCipher(nil)
			default:
				keySize = 32
				j.CustomCipher = mbmgr.ChaCha20Poly1305Cipher(nil)
			}
		}
		key, err := deriveKey(passphrase, keySize)
		if err != nil {
			return fmt.Errorf("derive key: %w", err)
		}

		j.Key = key
		j.IV = iv
		j.Src = plaintext
		j.Dst = make([]byte, len(plaintext))
		j.Len = uint64(len(plaintext))
		if j.HashAlg != mbmgr.NullHash {
			j.Digest = make([]byte, 64)
			j.HashLen = j.Len
		}

		id := uuid.New()
		ids[j] = id
		log.Printf("job %s: submitting %s/%s", id, j.CipherMode, j.HashAlg)
		pending++

		if done := mgr.SubmitJob(); done != nil {
			pending--
			reportDone(ids[done], done)
		}
	}

	for pending > 0 {
		done := mgr.FlushJob()
		if done == nil {
			break
		}
		pending--
		reportDone(ids[done], done)
	}

	return nil
}

func reportDone(id uuid.UUID, j *mbmgr.Job) {
	log.Printf("job %s: done status=%#02x ciphertext=%x", id, uint8(j.Status), j.Dst)
}

func cipherModeFromString(s string) mbmgr.CipherMode {
	switch s {
	case "AES_CBC_128":
		return mbmgr.AESCBC128
	case "AES_CBC_192":
		return mbmgr.AESCBC192
	case "AES_CBC_256":
		return mbmgr.AESCBC256
	case "AES_CTR":
		return mbmgr.AESCTR
	case "AES_GCM":
		return mbmgr.AESGCM
	case "NULL_CIPHER":
		return mbmgr.NullCipher
	case "CUSTOM_CIPHER":
		return mbmgr.CustomCipher
	default:
		return mbmgr.CipherModeNone
	}
}

func directionFromString(s string) mbmgr.CipherDirection {
	if s == "DECRYPT" {
		return mbmgr.Decrypt
	}
	return mbmgr.Encrypt
}

func hashAlgFromString(s string) mbmgr.HashAlg {
	switch s {
	case "HMAC_SHA256":
		return mbmgr.HMACSHA256
	case "HMAC_SHA1":
		return mbmgr.HMACSHA1
	case "HMAC_SHA512":
		return mbmgr.HMACSHA512
	case "AES_XCBC_MAC":
		return mbmgr.AESXCBCMAC
	default:
		return mbmgr.NullHash
	}
}

func chainOrderFromString(s string) mbmgr.ChainOrder {
	if s == "HASH_CIPHER" {
		return mbmgr.HashCipher
	}
	return mbmgr.CipherHash
}
