package engine

import (
	"crypto/cipher"
	"crypto/des"
)

// DESCBCEncrypt/DESCBCDecrypt back the DES_CBC and DOCSIS_DES cipher
// modes. DOCSIS cable-modem deployments still specify single-DES for
// backward compatibility with deployed CMTS hardware; this is carried
// through because spec.md's DOCSIS_DES cipher mode names it explicitly,
// not because single-DES is recommended for new designs.
func DESCBCEncrypt(key, iv, plaintext []byte) ([]byte, error) {
	block, err := des.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, plaintext)
	return out, nil
}

func DESCBCDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := des.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return out, nil
}

// DocsisCFBBlock runs one CFB-128 block transform (encrypt direction is
// identical to decrypt for CFB's keystream-XOR construction) used for the
// DOCSIS_SEC_BPI partial final block. iv is the 16-byte feedback register;
// for DOCSIS_LAST_BLOCK it is the next-to-last ciphertext block, per the
// reference manager's DOCSIS_LAST_BLOCK helper.
func DocsisCFBBlock(key, iv, partial []byte) ([]byte, error) {
	block, err := NewBlock(key)
	if err != nil {
		return nil, err
	}
	var keystream [16]byte
	block.Encrypt(keystream[:], iv)
	out := make([]byte, len(partial))
	for i := range partial {
		out[i] = partial[i] ^ keystream[i]
	}
	return out, nil
}
